package causal

import (
	"fmt"
	"math"
	"strings"

	"github.com/nabheet/opencausenx/internal/business"
	"github.com/nabheet/opencausenx/internal/event"
)

// BusinessContext renders the affected levers' share of the business as
// a sentence fragment the step templates can embed, e.g.
// "LABOR_COSTS represents 40% of business structure."
// Levers the model weighs at zero are omitted. Lever order follows the
// rule, so identical inputs render identical text.
func BusinessContext(rule Rule, b *business.Model) string {
	var parts []string
	for _, lever := range rule.AffectedLevers {
		w := b.LeverWeight(lever)
		if w == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s represents %d%% of business structure",
			lever, int(math.Round(w*100))))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ". ") + "."
}

// BuildPath instantiates the rule's step templates for a concrete event
// and business. The builder only supplies text; step confidences come
// from the rule unchanged.
func BuildPath(rule Rule, ev *event.Event, b *business.Model) []Step {
	return rule.Steps(ev.Summary, BusinessContext(rule, b))
}
