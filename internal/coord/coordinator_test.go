package coord

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nabheet/opencausenx/internal/business"
	"github.com/nabheet/opencausenx/internal/event"
	"github.com/nabheet/opencausenx/internal/ingest"
	"github.com/nabheet/opencausenx/internal/store"
)

// fakeFetcher serves canned events per source name and counts calls.
type fakeFetcher struct {
	events map[string][]event.Event
	errs   map[string]error
	calls  atomic.Int64
}

func (f *fakeFetcher) Fetch(_ context.Context, src ingest.Source) ([]event.Event, error) {
	f.calls.Add(1)
	if err := f.errs[src.Name]; err != nil {
		return nil, err
	}
	return f.events[src.Name], nil
}

func testModel() *business.Model {
	return &business.Model{
		ID:   "saas-co",
		Name: "SaaS Co",
		RevenueLevers: map[business.Lever]float64{
			business.LeverSubscriptionRevenue: 1.0,
		},
		CostLevers: map[business.Lever]float64{
			business.LeverLaborCosts:          0.5,
			business.LeverInfrastructureCosts: 0.5,
		},
		Sensitivities:    map[business.Factor]float64{business.FactorLabor: 0.8},
		OperatingRegions: []string{"US"},
		CustomerRegions:  []string{"US"},
	}
}

func fetchedEvents(now time.Time) []event.Event {
	return []event.Event{
		{
			ID:         "ev-labor",
			Category:   event.CategoryLaborMarket,
			Summary:    "Wages increased across the tech sector",
			Region:     "US",
			OccurredAt: now.Add(-24 * time.Hour),
			Confidence: 0.85,
			SourceName: "wire-a",
		},
		{
			ID:         "ev-apac",
			Category:   event.CategoryDisaster,
			Summary:    "Typhoon disrupts shipping",
			Region:     "APAC",
			OccurredAt: now.Add(-24 * time.Hour),
			Confidence: 0.9,
			SourceName: "wire-a",
		},
	}
}

func testCoordinator(t *testing.T, f fetcher) (*Coordinator, *store.Store) {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	sources := []ingest.Source{{Name: "wire-a", URL: "https://example.com/a", Weight: 1.2}}
	c := NewWithFetcher(s, f, []*business.Model{testModel()}, sources, nil, 5)
	return c, s
}

func TestRunProducesInsights(t *testing.T) {
	now := time.Now().UTC()
	f := &fakeFetcher{events: map[string][]event.Event{"wire-a": fetchedEvents(now)}}
	c, s := testCoordinator(t, f)

	stats, err := c.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if stats.NewEvents != 2 {
		t.Errorf("new events = %d, want 2", stats.NewEvents)
	}
	// Only the US labor event is relevant to a US-only business
	if stats.NewInsights != 1 {
		t.Errorf("new insights = %d, want 1", stats.NewInsights)
	}
	if stats.FetchErrors != 0 {
		t.Errorf("fetch errors = %d", stats.FetchErrors)
	}

	insights, err := s.GetInsights("saas-co", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(insights) != 1 || insights[0].EventID != "ev-labor" {
		t.Fatalf("stored insights wrong: %+v", insights)
	}
	if insights[0].Explanation == "" {
		t.Error("insight should carry the template explanation")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	now := time.Now().UTC()
	f := &fakeFetcher{events: map[string][]event.Event{"wire-a": fetchedEvents(now)}}
	c, s := testCoordinator(t, f)

	if _, err := c.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	stats, err := c.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.NewEvents != 0 {
		t.Errorf("second pass stored %d events, want 0", stats.NewEvents)
	}
	if stats.NewInsights != 0 {
		t.Errorf("second pass created %d insights, want 0", stats.NewInsights)
	}
	if stats.Skipped != 1 {
		t.Errorf("second pass skipped %d, want 1", stats.Skipped)
	}

	insights, err := s.GetInsights("saas-co", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(insights) != 1 {
		t.Errorf("store holds %d insights after two passes, want 1", len(insights))
	}
}

func TestRunSurvivesFetchErrors(t *testing.T) {
	now := time.Now().UTC()
	f := &fakeFetcher{
		events: map[string][]event.Event{"wire-a": fetchedEvents(now)},
		errs:   map[string]error{"wire-b": errors.New("connection refused")},
	}

	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	sources := []ingest.Source{
		{Name: "wire-a", URL: "https://example.com/a", Weight: 1.2},
		{Name: "wire-b", URL: "https://example.com/b", Weight: 1.0},
	}
	c := NewWithFetcher(s, f, []*business.Model{testModel()}, sources, nil, 5)

	stats, err := c.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.FetchErrors != 1 {
		t.Errorf("fetch errors = %d, want 1", stats.FetchErrors)
	}
	if stats.NewEvents != 2 {
		t.Errorf("healthy source's events still stored: got %d, want 2", stats.NewEvents)
	}
	if f.calls.Load() != 2 {
		t.Errorf("fetcher called %d times, want 2", f.calls.Load())
	}
}

func TestRunMultipleModels(t *testing.T) {
	now := time.Now().UTC()
	f := &fakeFetcher{events: map[string][]event.Event{"wire-a": fetchedEvents(now)}}

	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	apac := testModel()
	apac.ID = "apac-co"
	apac.OperatingRegions = []string{"APAC"}
	apac.CustomerRegions = []string{"APAC"}

	sources := []ingest.Source{{Name: "wire-a", URL: "https://example.com/a", Weight: 1.2}}
	c := NewWithFetcher(s, f, []*business.Model{testModel(), apac}, sources, nil, 5)

	stats, err := c.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// saas-co maps the labor event, apac-co maps the typhoon
	if stats.NewInsights != 2 {
		t.Errorf("new insights = %d, want 2", stats.NewInsights)
	}

	for _, modelID := range []string{"saas-co", "apac-co"} {
		insights, err := s.GetInsights(modelID, 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(insights) != 1 {
			t.Errorf("%s: %d insights, want 1", modelID, len(insights))
		}
	}
}

func TestRunCancelledContext(t *testing.T) {
	now := time.Now().UTC()
	f := &fakeFetcher{events: map[string][]event.Event{"wire-a": fetchedEvents(now)}}
	c, _ := testCoordinator(t, f)

	// Seed the store so the mapping stage has work to abort
	if _, err := c.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Run(ctx); err == nil {
		t.Error("expected a context error from a cancelled run")
	}
}
