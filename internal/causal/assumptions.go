package causal

import (
	"fmt"
	"strings"

	"github.com/nabheet/opencausenx/internal/business"
	"github.com/nabheet/opencausenx/internal/event"
)

// Assumption identifiers encode their precondition class in a prefix:
// "fx-" assumptions presume meaningful cross-border exposure, "local-"
// assumptions presume the business actually operates where the event
// happened. ValidateAssumptions keys off these prefixes.
const (
	fxAssumptionPrefix    = "fx-"
	localAssumptionPrefix = "local-"
)

// AssumptionsFor returns the reusable assumptions underlying the rule
// for a category. May be empty; order is fixed.
func AssumptionsFor(cat event.Category) []Assumption {
	switch cat {
	case event.CategoryLaborMarket:
		return []Assumption{
			{
				ID:          "local-labor-pool",
				Description: "The business hires from the labor pool the event describes",
				Impact:      TierHigh,
				Provenance:  "wage pass-through studies on regional labor markets",
			},
			{
				ID:          "wage-stickiness",
				Description: "Wage changes propagate within two to four quarters rather than immediately",
				Impact:      TierMedium,
				Provenance:  "compensation survey lag data",
			},
		}
	case event.CategoryInfrastructure:
		return []Assumption{
			{
				ID:          "local-infrastructure-dependency",
				Description: "The business depends on infrastructure in the affected region",
				Impact:      TierHigh,
				Provenance:  "regional dependency mapping",
			},
		}
	case event.CategoryRegulation:
		return []Assumption{
			{
				ID:          "local-regulatory-scope",
				Description: "The business falls within the jurisdiction the regulation covers",
				Impact:      TierHigh,
				Provenance:  "jurisdictional scope of comparable rules",
			},
			{
				ID:          "enforcement-follow-through",
				Description: "The regulation will be enforced rather than remaining nominal",
				Impact:      TierMedium,
				Provenance:  "enforcement history of the issuing body",
			},
		}
	case event.CategoryEconomicIndicator:
		return []Assumption{
			{
				ID:          "demand-elasticity",
				Description: "Customer spending responds to macro conditions rather than being contractually locked",
				Impact:      TierMedium,
				Provenance:  "sector demand elasticity estimates",
			},
		}
	case event.CategoryCurrency:
		return []Assumption{
			{
				ID:          "fx-unhedged-exposure",
				Description: "Cross-border cash flows are not fully hedged against the move",
				Impact:      TierHigh,
				Provenance:  "corporate hedging coverage surveys",
			},
			{
				ID:          "fx-persistent-move",
				Description: "The currency move persists long enough to affect reported results",
				Impact:      TierMedium,
				Provenance:  "exchange-rate mean-reversion horizons",
			},
		}
	case event.CategoryGeopolitical:
		return []Assumption{
			{
				ID:          "local-exposure-to-conflict",
				Description: "The business sources from or sells into the affected area",
				Impact:      TierHigh,
				Provenance:  "trade-flow exposure mapping",
			},
			{
				ID:          "escalation-path",
				Description: "The situation does not de-escalate before effects materialize",
				Impact:      TierLow,
				Provenance:  "historical crisis duration base rates",
			},
		}
	case event.CategoryMarketShift:
		return []Assumption{
			{
				ID:          "shift-durability",
				Description: "The shift reflects a durable preference change, not a transient spike",
				Impact:      TierMedium,
				Provenance:  "adoption-curve persistence studies",
			},
		}
	case event.CategoryTechnology:
		return []Assumption{
			{
				ID:          "adoption-pace",
				Description: "Adoption proceeds at typical pace for the technology class",
				Impact:      TierMedium,
				Provenance:  "technology diffusion base rates",
			},
			{
				ID:          "applicability",
				Description: "The technology applies to this business's production or product",
				Impact:      TierLow,
				Provenance:  "sector applicability mapping",
			},
		}
	case event.CategoryDisaster:
		return []Assumption{
			{
				ID:          "local-physical-footprint",
				Description: "The business has assets or suppliers in the disaster area",
				Impact:      TierHigh,
				Provenance:  "facility and supplier location records",
			},
		}
	default:
		return nil
	}
}

// Exposure is the slice of business context the assumption validator
// needs: whether the business has any cross-border footprint and
// whether it operates where the event happened.
type Exposure struct {
	InternationalOps       bool
	InternationalCustomers bool
	OperatesInEventRegion  bool
}

// ExposureFor derives an Exposure from a business model and an event.
func ExposureFor(b *business.Model, ev *event.Event) Exposure {
	return Exposure{
		InternationalOps:       b.HasInternationalOps(),
		InternationalCustomers: b.HasInternationalCustomers(),
		OperatesInEventRegion:  b.OperatesIn(ev.Region),
	}
}

// ValidateAssumptions checks each assumption's precondition against the
// business's actual exposure and returns caveat warnings for the ones
// that look shaky. Warnings never invalidate an assumption or touch the
// confidence number - they surface in the rationale text only.
func ValidateAssumptions(assumptions []Assumption, exp Exposure) []string {
	var warnings []string
	for _, a := range assumptions {
		switch {
		case strings.HasPrefix(a.ID, fxAssumptionPrefix):
			if !exp.InternationalOps && !exp.InternationalCustomers {
				warnings = append(warnings, fmt.Sprintf(
					"assumption %q presumes currency exposure, but the business has minimal international operations or customers", a.ID))
			}
		case strings.HasPrefix(a.ID, localAssumptionPrefix):
			if !exp.OperatesInEventRegion {
				warnings = append(warnings, fmt.Sprintf(
					"assumption %q presumes local presence, but the business does not operate in the event's region", a.ID))
			}
		}
	}
	return warnings
}
