// Package insight turns causal mappings into the records the
// persistence and presentation layers consume.
package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nabheet/opencausenx/internal/causal"
)

// Insight is one stored finding: a causal mapping plus the generated
// summary and explanation text, keyed by (business model, event) so the
// orchestration layer can skip pairs it has already produced.
type Insight struct {
	ID              string         `json:"id"`
	BusinessModelID string         `json:"business_model_id"`
	EventID         string         `json:"event_id"`
	Title           string         `json:"title"`
	Summary         string         `json:"summary"`
	Explanation     string         `json:"explanation"`
	Mapping         causal.Mapping `json:"mapping"`
	Confidence      float64        `json:"confidence"`
	CreatedAt       time.Time      `json:"created_at"`
}

// Explainer is the injected text-generation capability. Implementations
// may call out to a local or remote model; returning an error means the
// caller should fall back to the deterministic template.
type Explainer interface {
	// Name identifies the provider, e.g. "ollama".
	Name() string

	// Available reports whether the provider is configured and ready.
	Available() bool

	// Explain renders a natural-language explanation of the mapping.
	Explain(ctx context.Context, m causal.Mapping) (string, error)
}

// New builds an Insight from a relevant mapping. The explainer is
// optional: nil, unavailable, or failing explainers all fall back to
// the deterministic template so an insight is never blocked on a
// text-generation service.
func New(ctx context.Context, m causal.Mapping, explainer Explainer, now time.Time) Insight {
	explanation := ""
	if explainer != nil && explainer.Available() {
		if text, err := explainer.Explain(ctx, m); err == nil && text != "" {
			explanation = text
		}
	}
	if explanation == "" {
		explanation = TemplateExplanation(m)
	}

	return Insight{
		ID:              uuid.NewString(),
		BusinessModelID: m.BusinessModelID,
		EventID:         m.EventID,
		Title:           title(m),
		Summary:         summary(m),
		Explanation:     explanation,
		Mapping:         m,
		Confidence:      Confidence(m),
		CreatedAt:       now,
	}
}

// Confidence is the insight-layer score. It differs from the mapper's
// aggregate in exactly one case: a mapping with no causal path scores
// the event confidence with a flat 0.5 penalty. The mapper's aggregator
// treats an empty path as an empty product instead; the two rules are
// deliberately kept separate (see DESIGN.md).
func Confidence(m causal.Mapping) float64 {
	if len(m.Path) == 0 {
		if m.Event == nil {
			return 0
		}
		return m.Event.Confidence * 0.5
	}
	return m.Confidence
}

func title(m causal.Mapping) string {
	verb := "may affect"
	switch m.Direction {
	case causal.DirectionIncrease:
		verb = "is likely to increase"
	case causal.DirectionDecrease:
		verb = "is likely to decrease"
	}
	subject := "business exposure"
	if len(m.AffectedLevers) > 0 {
		subject = string(m.AffectedLevers[0])
	}
	category := "event"
	if m.Event != nil {
		category = string(m.Event.Category)
	}
	return fmt.Sprintf("%s %s %s", category, verb, subject)
}

func summary(m causal.Mapping) string {
	return fmt.Sprintf("%s impact of %s magnitude over a %s horizon (confidence %.2f)",
		m.Direction, m.Magnitude, m.Horizon, m.Confidence)
}
