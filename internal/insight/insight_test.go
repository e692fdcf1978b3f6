package insight

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nabheet/opencausenx/internal/business"
	"github.com/nabheet/opencausenx/internal/causal"
	"github.com/nabheet/opencausenx/internal/event"
)

func testMapping(t *testing.T) causal.Mapping {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ev := &event.Event{
		ID:         "ev-1",
		Category:   event.CategoryLaborMarket,
		Summary:    "Tech sector wages increased 8% in Q3",
		Region:     "US",
		OccurredAt: now.Add(-24 * time.Hour),
		Confidence: 0.85,
	}
	b := &business.Model{
		ID:   "saas-co",
		Name: "SaaS Co",
		CostLevers: map[business.Lever]float64{
			business.LeverLaborCosts: 0.4,
		},
		RevenueLevers: map[business.Lever]float64{
			business.LeverSubscriptionRevenue: 1.0,
		},
		Sensitivities:    map[business.Factor]float64{business.FactorLabor: 0.8},
		OperatingRegions: []string{"US"},
		CustomerRegions:  []string{"US"},
	}

	mapper := &causal.Mapper{Now: func() time.Time { return now }}
	m, err := mapper.MapEvent(ev, b)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// fakeExplainer scripts the three explainer outcomes the builder must
// handle: success, unavailability, and failure.
type fakeExplainer struct {
	available bool
	text      string
	err       error
	calls     int
}

func (f *fakeExplainer) Name() string    { return "fake" }
func (f *fakeExplainer) Available() bool { return f.available }
func (f *fakeExplainer) Explain(_ context.Context, _ causal.Mapping) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestNewUsesExplainer(t *testing.T) {
	m := testMapping(t)
	now := time.Now()
	fake := &fakeExplainer{available: true, text: "because wages went up"}

	ins := New(context.Background(), m, fake, now)
	if ins.Explanation != "because wages went up" {
		t.Errorf("explanation = %q, want the explainer output", ins.Explanation)
	}
	if fake.calls != 1 {
		t.Errorf("explainer called %d times, want 1", fake.calls)
	}
	if ins.BusinessModelID != "saas-co" || ins.EventID != "ev-1" {
		t.Errorf("wrong keys: %s/%s", ins.BusinessModelID, ins.EventID)
	}
	if ins.ID == "" {
		t.Error("insight must get an id")
	}
	if !ins.CreatedAt.Equal(now) {
		t.Error("CreatedAt should be the supplied clock value")
	}
}

func TestNewFallsBackOnError(t *testing.T) {
	m := testMapping(t)
	fake := &fakeExplainer{available: true, err: errors.New("connection refused")}

	ins := New(context.Background(), m, fake, time.Now())
	if ins.Explanation != TemplateExplanation(m) {
		t.Error("failed explainer should fall back to the template")
	}
}

func TestNewSkipsUnavailableExplainer(t *testing.T) {
	m := testMapping(t)
	fake := &fakeExplainer{available: false, text: "should not appear"}

	ins := New(context.Background(), m, fake, time.Now())
	if fake.calls != 0 {
		t.Error("unavailable explainer must not be called")
	}
	if ins.Explanation != TemplateExplanation(m) {
		t.Error("expected the template explanation")
	}
}

func TestNewNilExplainer(t *testing.T) {
	m := testMapping(t)
	ins := New(context.Background(), m, nil, time.Now())
	if ins.Explanation == "" {
		t.Error("nil explainer should still produce the template explanation")
	}
}

func TestConfidenceEmptyPath(t *testing.T) {
	m := testMapping(t)

	full := Confidence(m)
	if full != m.Confidence {
		t.Errorf("with a path, insight confidence = %v, want mapping's %v", full, m.Confidence)
	}

	m.Path = nil
	if got := Confidence(m); got != 0.85*0.5 {
		t.Errorf("empty path confidence = %v, want event confidence halved", got)
	}

	m.Event = nil
	if got := Confidence(m); got != 0 {
		t.Errorf("no path and no event = %v, want 0", got)
	}
}

func TestTitleAndSummary(t *testing.T) {
	m := testMapping(t)
	ins := New(context.Background(), m, nil, time.Now())

	if !strings.Contains(ins.Title, "labor_market") || !strings.Contains(ins.Title, "increase") {
		t.Errorf("title should carry category and direction, got %q", ins.Title)
	}
	if !strings.Contains(ins.Title, "LABOR_COSTS") {
		t.Errorf("title should name the lead lever, got %q", ins.Title)
	}
	if !strings.Contains(ins.Summary, "INCREASE") || !strings.Contains(ins.Summary, "horizon") {
		t.Errorf("summary should state direction and horizon, got %q", ins.Summary)
	}
}

func TestTemplateExplanationContent(t *testing.T) {
	m := testMapping(t)
	text := TemplateExplanation(m)

	for _, want := range []string{
		"Event: Tech sector wages increased 8% in Q3",
		"Expected impact: INCREASE",
		"Causal chain:",
		"  1. ",
		"This reasoning assumes:",
		"[HIGH]",
		"Confidence ",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("template missing %q:\n%s", want, text)
		}
	}

	if !strings.Contains(text, m.Rationale) {
		t.Error("template should end with the mapping rationale")
	}
}
