package insight

import (
	"fmt"
	"strings"

	"github.com/nabheet/opencausenx/internal/causal"
)

// TemplateExplanation renders a deterministic, plain-text explanation
// of a mapping from its causal path, assumptions, and rationale. It is
// the fallback when no text-generation provider is configured and the
// baseline the provider output is compared against in review.
func TemplateExplanation(m causal.Mapping) string {
	var b strings.Builder

	if m.Event != nil {
		fmt.Fprintf(&b, "Event: %s\n\n", m.Event.Summary)
	}

	fmt.Fprintf(&b, "Expected impact: %s, %s magnitude, %s horizon.\n\n",
		m.Direction, m.Magnitude, m.Horizon)

	if len(m.Path) > 0 {
		b.WriteString("Causal chain:\n")
		for _, step := range m.Path {
			fmt.Fprintf(&b, "  %d. %s\n     (%s; confidence %.2f)\n",
				step.Ordinal, step.Description, step.Mechanism, step.Confidence)
		}
		b.WriteString("\n")
	}

	if len(m.Assumptions) > 0 {
		b.WriteString("This reasoning assumes:\n")
		for _, a := range m.Assumptions {
			fmt.Fprintf(&b, "  - [%s] %s\n", a.Impact, a.Description)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Confidence %.2f: %s\n", m.Confidence, m.Rationale)

	return b.String()
}
