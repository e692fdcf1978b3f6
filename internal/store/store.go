// Package store provides SQLite persistence for events and insights.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nabheet/opencausenx/internal/event"
	"github.com/nabheet/opencausenx/internal/insight"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
//
// Idempotency for the mapping pipeline lives here: events are keyed by
// their deterministic ID and insights by (business_model_id, event_id),
// both inserted with OR IGNORE, so re-running a pipeline pass over the
// same inputs changes nothing.
type Store struct {
	db *sql.DB
	mu sync.RWMutex // Protects all database operations
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// For in-memory databases, use shared cache mode so all connections
		// in the pool see the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// For in-memory databases, limit to 1 connection to avoid issues
	// with multiple connections getting different databases
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Enable WAL mode for file-based databases (not :memory:)
	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

// createTables creates the required tables and indexes if they don't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		summary TEXT NOT NULL,
		region TEXT NOT NULL,
		occurred_at DATETIME NOT NULL,
		entities TEXT,
		confidence REAL NOT NULL,
		source_name TEXT,
		url TEXT,
		metadata TEXT,
		fetched_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_occurred ON events(occurred_at DESC);
	CREATE INDEX IF NOT EXISTS idx_events_category ON events(category);

	CREATE TABLE IF NOT EXISTS insights (
		id TEXT PRIMARY KEY,
		business_model_id TEXT NOT NULL,
		event_id TEXT NOT NULL,
		title TEXT NOT NULL,
		summary TEXT,
		explanation TEXT,
		direction TEXT NOT NULL,
		magnitude TEXT NOT NULL,
		horizon TEXT NOT NULL,
		confidence REAL NOT NULL,
		mapping TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		UNIQUE(business_model_id, event_id)
	);

	CREATE INDEX IF NOT EXISTS idx_insights_model ON insights(business_model_id, confidence DESC);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveEvents stores events, returning count of new events inserted.
// Duplicates (by ID) are silently ignored via INSERT OR IGNORE.
// Thread-safe: acquires write lock.
func (s *Store) SaveEvents(events []event.Event) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(events) == 0 {
		return 0, nil
	}

	stmt, err := s.db.Prepare(`
		INSERT OR IGNORE INTO events (
			id, category, summary, region, occurred_at, entities,
			confidence, source_name, url, metadata, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now()
	newCount := 0
	for _, ev := range events {
		entities, err := json.Marshal(ev.Entities)
		if err != nil {
			return newCount, err
		}
		metadata, err := json.Marshal(ev.Metadata)
		if err != nil {
			return newCount, err
		}

		result, err := stmt.Exec(
			ev.ID,
			string(ev.Category),
			ev.Summary,
			ev.Region,
			ev.OccurredAt,
			string(entities),
			ev.Confidence,
			ev.SourceName,
			ev.URL,
			string(metadata),
			now,
		)
		if err != nil {
			return newCount, err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return newCount, err
		}
		if affected > 0 {
			newCount++
		}
	}

	return newCount, nil
}

// GetEventsSince retrieves events that occurred after the given time,
// newest first. Thread-safe: acquires read lock.
func (s *Store) GetEventsSince(since time.Time) ([]event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, category, summary, region, occurred_at, entities,
			confidence, source_name, url, metadata
		FROM events
		WHERE occurred_at > ?
		ORDER BY occurred_at DESC
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var ev event.Event
		var category, entities, metadata string
		err := rows.Scan(
			&ev.ID,
			&category,
			&ev.Summary,
			&ev.Region,
			&ev.OccurredAt,
			&entities,
			&ev.Confidence,
			&ev.SourceName,
			&ev.URL,
			&metadata,
		)
		if err != nil {
			return nil, err
		}
		ev.Category = event.Category(category)
		if err := json.Unmarshal([]byte(entities), &ev.Entities); err != nil {
			return nil, fmt.Errorf("decode entities for %s: %w", ev.ID, err)
		}
		if err := json.Unmarshal([]byte(metadata), &ev.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata for %s: %w", ev.ID, err)
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

// SaveInsight stores an insight. Returns false if an insight already
// exists for the same (business model, event) pair - the caller treats
// that as "skip", not an error. Thread-safe: acquires write lock.
func (s *Store) SaveInsight(ins insight.Insight) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mapping, err := json.Marshal(ins.Mapping)
	if err != nil {
		return false, fmt.Errorf("encode mapping: %w", err)
	}

	result, err := s.db.Exec(`
		INSERT OR IGNORE INTO insights (
			id, business_model_id, event_id, title, summary, explanation,
			direction, magnitude, horizon, confidence, mapping, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		ins.ID,
		ins.BusinessModelID,
		ins.EventID,
		ins.Title,
		ins.Summary,
		ins.Explanation,
		string(ins.Mapping.Direction),
		string(ins.Mapping.Magnitude),
		string(ins.Mapping.Horizon),
		ins.Confidence,
		string(mapping),
		ins.CreatedAt,
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// HasInsight reports whether an insight already exists for the pair.
// Thread-safe: acquires read lock.
func (s *Store) HasInsight(businessModelID, eventID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM insights WHERE business_model_id = ? AND event_id = ?",
		businessModelID, eventID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetInsights retrieves insights for a business model, highest
// confidence first. Thread-safe: acquires read lock.
func (s *Store) GetInsights(businessModelID string, limit int) ([]insight.Insight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, business_model_id, event_id, title, summary, explanation,
			confidence, mapping, created_at
		FROM insights
		WHERE business_model_id = ?
		ORDER BY confidence DESC
		LIMIT ?
	`, businessModelID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var insights []insight.Insight
	for rows.Next() {
		var ins insight.Insight
		var mapping string
		err := rows.Scan(
			&ins.ID,
			&ins.BusinessModelID,
			&ins.EventID,
			&ins.Title,
			&ins.Summary,
			&ins.Explanation,
			&ins.Confidence,
			&mapping,
			&ins.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(mapping), &ins.Mapping); err != nil {
			return nil, fmt.Errorf("decode mapping for %s: %w", ins.ID, err)
		}
		insights = append(insights, ins)
	}

	return insights, rows.Err()
}
