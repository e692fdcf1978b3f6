package causal

import (
	"fmt"
	"math"
	"strings"

	"github.com/nabheet/opencausenx/internal/business"
	"github.com/nabheet/opencausenx/internal/event"
)

// Confidence aggregation constants.
const (
	// emptyPathPenalty applies once when a path has no steps. A relevant
	// mapping always has at least one step, so this only matters for
	// callers aggregating over paths they did not build themselves. The
	// insight layer has its own, deliberately separate empty-path rule.
	emptyPathPenalty = 0.5

	// uncertainRuleFactor discounts categories whose cause-to-effect
	// links are not in the well-established set.
	uncertainRuleFactor = 0.9

	// assumptionDiscount compounds per attached assumption: each one is
	// another way for the reasoning to be wrong.
	assumptionDiscount = 0.95

	// sensitivityBonusFactor applies when the business is highly
	// sensitive to the rule's factor, as evidence of genuine exposure.
	sensitivityBonusFactor = 1.1

	// sensitivityBonusFloor is the sensitivity above which the bonus
	// applies.
	sensitivityBonusFloor = 0.7
)

// PathConfidence is the product of all step confidences: one weak link
// drags the whole chain down. An empty path yields the empty product
// discounted by the flat penalty.
func PathConfidence(path []Step) float64 {
	if len(path) == 0 {
		return 1.0 * emptyPathPenalty
	}
	conf := 1.0
	for _, s := range path {
		conf *= s.Confidence
	}
	return conf
}

// AggregateConfidence combines every confidence signal into one score:
// event confidence, chain confidence, rule quality, an assumption-count
// discount, and a sensitivity bonus, clamped to [0,1].
func AggregateConfidence(ev *event.Event, rule Rule, path []Step, assumptions []Assumption, b *business.Model) float64 {
	ruleQuality := uncertainRuleFactor
	if HighConfidenceCategory(rule.Category) {
		ruleQuality = 1.0
	}

	assumptionPenalty := math.Pow(assumptionDiscount, float64(len(assumptions)))

	sensitivityBonus := 1.0
	if b.Sensitivity(rule.SensitivityFactor) > sensitivityBonusFloor {
		sensitivityBonus = sensitivityBonusFactor
	}

	conf := ev.Confidence * PathConfidence(path) * ruleQuality * assumptionPenalty * sensitivityBonus

	return clamp01(conf)
}

// Rationale renders the human-readable justification for a confidence
// score. The exact format - fragments joined by "; " with a trailing
// period - is consumed verbatim by the explanation layer, so changes
// here are interface changes.
func Rationale(ev *event.Event, rule Rule, path []Step, assumptions []Assumption, warnings []string) string {
	var parts []string

	switch {
	case ev.Confidence >= 0.8:
		parts = append(parts, "highly reliable source")
	case ev.Confidence >= 0.6:
		parts = append(parts, "moderately reliable source")
	default:
		parts = append(parts, "uncertain or unverified source")
	}

	if HighConfidenceCategory(rule.Category) {
		parts = append(parts, "well-established causal relationship")
	} else {
		parts = append(parts, "uncertain or indirect causal relationship")
	}

	if len(path) <= 2 {
		parts = append(parts, "direct impact")
	} else {
		parts = append(parts, fmt.Sprintf("%d-step causal chain", len(path)))
	}

	high := 0
	for _, a := range assumptions {
		if a.Impact == TierHigh {
			high++
		}
	}
	if high > 0 {
		parts = append(parts, fmt.Sprintf("%d high-impact assumption(s)", high))
	}

	if len(warnings) > 0 {
		parts = append(parts, fmt.Sprintf("%d business-context caveat(s)", len(warnings)))
	}

	return strings.Join(parts, "; ") + "."
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
