// Package coord runs the event-to-insight pipeline: fetch feeds,
// persist events, map them against each business model, and store the
// ranked results as insights.
package coord

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/nabheet/opencausenx/internal/business"
	"github.com/nabheet/opencausenx/internal/causal"
	"github.com/nabheet/opencausenx/internal/event"
	"github.com/nabheet/opencausenx/internal/ingest"
	"github.com/nabheet/opencausenx/internal/insight"
	"github.com/nabheet/opencausenx/internal/logging"
	"github.com/nabheet/opencausenx/internal/store"
)

// fetchTimeout is the timeout for each individual feed fetch.
const fetchTimeout = 30 * time.Second

// maxConcurrentFetches limits parallel fetch operations.
const maxConcurrentFetches = 5

// mappingWindow is how far back stored events are pulled for mapping.
// Matches the engine's 90-day relevance window, so everything older
// would be filtered out anyway.
const mappingWindow = 90 * 24 * time.Hour

// fetcher interface for dependency injection (testing).
type fetcher interface {
	Fetch(ctx context.Context, src ingest.Source) ([]event.Event, error)
}

// RunStats summarizes one pipeline pass.
type RunStats struct {
	NewEvents   int
	NewInsights int
	Skipped     int // pairs that already had an insight
	FetchErrors int
}

// Coordinator wires the collaborators around the causal engine.
// The explainer is optional (nil for template-only explanations).
// Sources and models are IMMUTABLE: set at construction, never modified.
type Coordinator struct {
	store       *store.Store
	fetcher     fetcher
	mapper      *causal.Mapper
	explainer   insight.Explainer
	sources     []ingest.Source
	models      []*business.Model
	explainTopN int

	cron *cron.Cron
	wg   sync.WaitGroup
}

// New creates a Coordinator.
func New(s *store.Store, f *ingest.Fetcher, models []*business.Model, sources []ingest.Source, explainer insight.Explainer, explainTopN int) *Coordinator {
	return NewWithFetcher(s, f, models, sources, explainer, explainTopN)
}

// NewWithFetcher allows injecting a custom fetcher (for testing).
func NewWithFetcher(s *store.Store, f fetcher, models []*business.Model, sources []ingest.Source, explainer insight.Explainer, explainTopN int) *Coordinator {
	sourcesCopy := make([]ingest.Source, len(sources))
	copy(sourcesCopy, sources)
	modelsCopy := make([]*business.Model, len(models))
	copy(modelsCopy, models)

	return &Coordinator{
		store:       s,
		fetcher:     f,
		mapper:      causal.NewMapper(),
		explainer:   explainer,
		sources:     sourcesCopy,
		models:      modelsCopy,
		explainTopN: explainTopN,
	}
}

// Start begins scheduled pipeline runs on the given cron expression
// (e.g. "@every 30m"), with an immediate first pass. Call with a
// cancellable context; cancellation is the only stop mechanism.
func (c *Coordinator) Start(ctx context.Context, schedule string) error {
	c.cron = cron.New()
	_, err := c.cron.AddFunc(schedule, func() {
		if ctx.Err() != nil {
			return
		}
		if _, err := c.Run(ctx); err != nil {
			logging.Error("pipeline run failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		// Immediate first pass, then hand off to the cron schedule
		if _, err := c.Run(ctx); err != nil {
			logging.Error("initial pipeline run failed", "error", err)
		}

		c.cron.Start()
		<-ctx.Done()
		<-c.cron.Stop().Done()
	}()

	return nil
}

// Wait blocks until the background goroutine exits.
// Call after canceling the context passed to Start.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Run executes one full pipeline pass: fetch, persist events, map every
// stored in-window event against every model, persist new insights.
func (c *Coordinator) Run(ctx context.Context) (RunStats, error) {
	var stats RunStats

	stats.NewEvents, stats.FetchErrors = c.fetchAll(ctx)

	events, err := c.store.GetEventsSince(time.Now().Add(-mappingWindow))
	if err != nil {
		return stats, err
	}

	for _, model := range c.models {
		created, skipped, err := c.mapModel(ctx, events, model)
		if err != nil {
			return stats, err
		}
		stats.NewInsights += created
		stats.Skipped += skipped
	}

	logging.Info("pipeline pass complete",
		"new_events", stats.NewEvents,
		"new_insights", stats.NewInsights,
		"skipped", stats.Skipped,
		"fetch_errors", stats.FetchErrors)

	return stats, nil
}

// fetchAll fetches all sources in parallel and persists what arrives.
// Each fetch has its own timeout; per-source errors are logged and
// counted, never fatal.
func (c *Coordinator) fetchAll(ctx context.Context) (newEvents, fetchErrors int) {
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)

	for _, src := range c.sources {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
			defer cancel()

			events, err := c.fetcher.Fetch(fetchCtx, src)
			if err != nil {
				logging.Warn("fetch failed", "source", src.Name, "error", err)
				mu.Lock()
				fetchErrors++
				mu.Unlock()
				return nil // never fail the group - errors reported per-source
			}

			saved, err := c.store.SaveEvents(events)
			if err != nil {
				logging.Error("save events failed", "source", src.Name, "error", err)
				return nil
			}

			mu.Lock()
			newEvents += saved
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait() // All goroutines return nil, but explicit discard for clarity
	return newEvents, fetchErrors
}

// mapModel maps the events against one business model and persists the
// resulting insights, skipping pairs that already have one. Only the
// top-ranked mappings get a generated explanation; the rest fall back
// to the deterministic template inside insight.New.
func (c *Coordinator) mapModel(ctx context.Context, events []event.Event, model *business.Model) (created, skipped int, err error) {
	mappings, err := c.mapper.BatchMap(events, model)
	if err != nil {
		return 0, 0, err
	}

	now := time.Now()
	for i, m := range mappings {
		if ctx.Err() != nil {
			return created, skipped, ctx.Err()
		}

		exists, err := c.store.HasInsight(m.BusinessModelID, m.EventID)
		if err != nil {
			return created, skipped, err
		}
		if exists {
			skipped++
			continue
		}

		explainer := c.explainer
		if i >= c.explainTopN {
			explainer = nil
		}

		saved, err := c.store.SaveInsight(insight.New(ctx, m, explainer, now))
		if err != nil {
			return created, skipped, err
		}
		if saved {
			created++
		} else {
			skipped++
		}
	}

	return created, skipped, nil
}
