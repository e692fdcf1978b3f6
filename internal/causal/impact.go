package causal

import (
	"strings"

	"github.com/nabheet/opencausenx/internal/business"
	"github.com/nabheet/opencausenx/internal/event"
)

// Direction keyword classes. Increase tokens are checked before
// decrease tokens; the first class with a hit wins. This is a blunt
// string-containment heuristic with no negation handling - it is kept
// exactly as-is because downstream rationale text is tuned to its
// behavior. See DESIGN.md for the open question on replacing it.
var (
	increaseTokens = []string{"increase", "rise", "growth", "up"}
	decreaseTokens = []string{"decrease", "decline", "fall", "down"}
)

// ClassifyDirection infers impact direction from the event summary,
// falling back to the rule's default when no keyword matches.
func ClassifyDirection(summary string, rule Rule) Direction {
	lower := strings.ToLower(summary)
	for _, tok := range increaseTokens {
		if strings.Contains(lower, tok) {
			return DirectionIncrease
		}
	}
	for _, tok := range decreaseTokens {
		if strings.Contains(lower, tok) {
			return DirectionDecrease
		}
	}
	return rule.DefaultDirection
}

// Magnitude bucket thresholds. These encode the "economically material"
// cutoffs the whole prioritization depends on; both comparisons are
// strictly greater-than.
const (
	magnitudeHighThreshold   = 0.05
	magnitudeMediumThreshold = 0.02
)

// RawMagnitude is the continuous impact estimate before bucketing:
// the business's total weight on the rule's affected levers, scaled by
// its sensitivity to the rule's factor and the event's confidence.
func RawMagnitude(rule Rule, b *business.Model, ev *event.Event) float64 {
	weight := 0.0
	for _, lever := range rule.AffectedLevers {
		weight += b.LeverWeight(lever)
	}
	return weight * b.Sensitivity(rule.SensitivityFactor) * ev.Confidence
}

// ClassifyMagnitude buckets a raw magnitude. Exactly 0.05 is MEDIUM and
// exactly 0.02 is LOW.
func ClassifyMagnitude(raw float64) Magnitude {
	switch {
	case raw > magnitudeHighThreshold:
		return MagnitudeHigh
	case raw > magnitudeMediumThreshold:
		return MagnitudeMedium
	default:
		return MagnitudeLow
	}
}

// MagnitudeWeight converts a bucket to the multiplier used when ranking
// mappings by confidence x magnitude.
func MagnitudeWeight(m Magnitude) float64 {
	switch m {
	case MagnitudeHigh:
		return 3
	case MagnitudeMedium:
		return 2
	default:
		return 1
	}
}
