package causal

import (
	"fmt"

	"github.com/nabheet/opencausenx/internal/business"
	"github.com/nabheet/opencausenx/internal/event"
)

// StepTemplate instantiates a rule's reasoning chain with the concrete
// event summary and a rendered business-context string. Templates only
// supply text; the per-step confidences are authored constants.
type StepTemplate func(summary, businessContext string) []Step

// Rule is the static causal knowledge for one event category: which
// levers it touches, which sensitivity axis governs exposure, what
// direction to assume when the text gives no signal, and how to narrate
// the cause-to-effect chain.
type Rule struct {
	Category          event.Category
	AffectedLevers    []business.Lever
	SensitivityFactor business.Factor
	DefaultDirection  Direction
	Horizon           Horizon
	Steps             StepTemplate
}

// RuleFor returns the causal rule for a category.
//
// The switch is exhaustive over event.Categories; a category falling
// through to the error arm means the catalog was not updated in
// lockstep with the category set. The mapper treats that as fatal for
// the event rather than guessing.
func RuleFor(cat event.Category) (Rule, error) {
	switch cat {
	case event.CategoryLaborMarket:
		return Rule{
			Category:          cat,
			AffectedLevers:    []business.Lever{business.LeverLaborCosts},
			SensitivityFactor: business.FactorLabor,
			DefaultDirection:  DirectionIncrease,
			Horizon:           HorizonMedium,
			Steps:             laborMarketSteps,
		}, nil
	case event.CategoryInfrastructure:
		return Rule{
			Category:          cat,
			AffectedLevers:    []business.Lever{business.LeverInfrastructureCosts, business.LeverSupplyChainCosts},
			SensitivityFactor: business.FactorInfrastructure,
			DefaultDirection:  DirectionIncrease,
			Horizon:           HorizonShort,
			Steps:             infrastructureSteps,
		}, nil
	case event.CategoryRegulation:
		return Rule{
			Category:          cat,
			AffectedLevers:    []business.Lever{business.LeverComplianceCosts},
			SensitivityFactor: business.FactorRegulation,
			DefaultDirection:  DirectionIncrease,
			Horizon:           HorizonLong,
			Steps:             regulationSteps,
		}, nil
	case event.CategoryEconomicIndicator:
		return Rule{
			Category:          cat,
			AffectedLevers:    []business.Lever{business.LeverCustomerDemand},
			SensitivityFactor: business.FactorMarketDemand,
			DefaultDirection:  DirectionNeutral,
			Horizon:           HorizonMedium,
			Steps:             economicIndicatorSteps,
		}, nil
	case event.CategoryCurrency:
		return Rule{
			Category:          cat,
			AffectedLevers:    []business.Lever{business.LeverFXExposure},
			SensitivityFactor: business.FactorFX,
			DefaultDirection:  DirectionNeutral,
			Horizon:           HorizonShort,
			Steps:             currencySteps,
		}, nil
	case event.CategoryGeopolitical:
		return Rule{
			Category:          cat,
			AffectedLevers:    []business.Lever{business.LeverSupplyChainCosts, business.LeverCustomerDemand},
			SensitivityFactor: business.FactorMarketDemand,
			DefaultDirection:  DirectionDecrease,
			Horizon:           HorizonMedium,
			Steps:             geopoliticalSteps,
		}, nil
	case event.CategoryMarketShift:
		return Rule{
			Category:          cat,
			AffectedLevers:    []business.Lever{business.LeverCustomerDemand, business.LeverTransactionRevenue},
			SensitivityFactor: business.FactorMarketDemand,
			DefaultDirection:  DirectionNeutral,
			Horizon:           HorizonMedium,
			Steps:             marketShiftSteps,
		}, nil
	case event.CategoryTechnology:
		return Rule{
			Category:          cat,
			AffectedLevers:    []business.Lever{business.LeverTechnologyCosts, business.LeverCustomerDemand},
			SensitivityFactor: business.FactorMarketDemand,
			DefaultDirection:  DirectionNeutral,
			Horizon:           HorizonLong,
			Steps:             technologySteps,
		}, nil
	case event.CategoryDisaster:
		return Rule{
			Category:          cat,
			AffectedLevers:    []business.Lever{business.LeverInfrastructureCosts, business.LeverSupplyChainCosts},
			SensitivityFactor: business.FactorInfrastructure,
			DefaultDirection:  DirectionIncrease,
			Horizon:           HorizonShort,
			Steps:             disasterSteps,
		}, nil
	default:
		return Rule{}, fmt.Errorf("no causal rule for event category %q", cat)
	}
}

// HighConfidenceCategory reports whether a category has well-established,
// empirically strong cause-to-effect links. These categories skip the
// rule-quality discount in confidence aggregation.
func HighConfidenceCategory(cat event.Category) bool {
	switch cat {
	case event.CategoryLaborMarket,
		event.CategoryInfrastructure,
		event.CategoryCurrency,
		event.CategoryDisaster:
		return true
	default:
		return false
	}
}

// Step templates. Descriptions carry the event- and business-specific
// text; mechanisms and confidences are fixed with the rule.

func laborMarketSteps(summary, businessContext string) []Step {
	return []Step{
		{
			Ordinal:     1,
			Description: "Labor market shift: " + summary,
			Mechanism:   "Wage and hiring conditions reprice labor inputs across the affected market",
			Confidence:  0.9,
		},
		{
			Ordinal:     2,
			Description: "Compensation expectations adjust for exposed businesses. " + businessContext,
			Mechanism:   "Pay drifts toward prevailing market rates as employees compare offers",
			Confidence:  0.8,
		},
		{
			Ordinal:     3,
			Description: "Labor-heavy cost structures absorb the change in unit economics",
			Mechanism:   "Higher or lower labor spend flows directly into operating margin",
			Confidence:  0.75,
		},
	}
}

func infrastructureSteps(summary, businessContext string) []Step {
	return []Step{
		{
			Ordinal:     1,
			Description: "Infrastructure event: " + summary,
			Mechanism:   "Physical or digital infrastructure capacity changes in the affected region",
			Confidence:  0.9,
		},
		{
			Ordinal:     2,
			Description: "Operating and delivery costs shift for dependent businesses. " + businessContext,
			Mechanism:   "Capacity constraints or improvements change the cost of moving goods and data",
			Confidence:  0.8,
		},
	}
}

func regulationSteps(summary, businessContext string) []Step {
	return []Step{
		{
			Ordinal:     1,
			Description: "Regulatory change: " + summary,
			Mechanism:   "New obligations alter what compliant operation requires",
			Confidence:  0.85,
		},
		{
			Ordinal:     2,
			Description: "Compliance workload grows for in-scope businesses. " + businessContext,
			Mechanism:   "Legal review, process change, and reporting consume budget and headcount",
			Confidence:  0.7,
		},
		{
			Ordinal:     3,
			Description: "Compliance cost base resets at a new level",
			Mechanism:   "Recurring obligations become a permanent line item",
			Confidence:  0.7,
		},
	}
}

func economicIndicatorSteps(summary, businessContext string) []Step {
	return []Step{
		{
			Ordinal:     1,
			Description: "Economic signal: " + summary,
			Mechanism:   "Macro indicators shift expectations about spending power",
			Confidence:  0.75,
		},
		{
			Ordinal:     2,
			Description: "Customer budgets respond to the changed outlook. " + businessContext,
			Mechanism:   "Purchasing decisions track confidence in the broader economy",
			Confidence:  0.65,
		},
	}
}

func currencySteps(summary, businessContext string) []Step {
	return []Step{
		{
			Ordinal:     1,
			Description: "Currency movement: " + summary,
			Mechanism:   "Exchange rates reprice cross-border revenue and costs",
			Confidence:  0.9,
		},
		{
			Ordinal:     2,
			Description: "Translated financials move with the exchange rate. " + businessContext,
			Mechanism:   "Foreign-denominated cash flows convert at the new rate",
			Confidence:  0.85,
		},
	}
}

func geopoliticalSteps(summary, businessContext string) []Step {
	return []Step{
		{
			Ordinal:     1,
			Description: "Geopolitical development: " + summary,
			Mechanism:   "Political instability raises the risk premium on affected trade routes and markets",
			Confidence:  0.8,
		},
		{
			Ordinal:     2,
			Description: "Supply chains and demand in exposed markets come under pressure. " + businessContext,
			Mechanism:   "Sourcing reroutes and customers defer spending amid uncertainty",
			Confidence:  0.65,
		},
		{
			Ordinal:     3,
			Description: "Costs rise and exposed revenue softens",
			Mechanism:   "Risk premia and demand hesitation both land on the income statement",
			Confidence:  0.6,
		},
	}
}

func marketShiftSteps(summary, businessContext string) []Step {
	return []Step{
		{
			Ordinal:     1,
			Description: "Market shift: " + summary,
			Mechanism:   "Competitive or preference changes redraw who buys what",
			Confidence:  0.75,
		},
		{
			Ordinal:     2,
			Description: "Demand reallocates among competing offerings. " + businessContext,
			Mechanism:   "Customers follow the shifted value proposition",
			Confidence:  0.65,
		},
	}
}

func technologySteps(summary, businessContext string) []Step {
	return []Step{
		{
			Ordinal:     1,
			Description: "Technology development: " + summary,
			Mechanism:   "New capabilities change the cost and expectation baseline",
			Confidence:  0.7,
		},
		{
			Ordinal:     2,
			Description: "Adoption pressure builds on businesses in the affected space. " + businessContext,
			Mechanism:   "Competitors who adopt first reset customer expectations",
			Confidence:  0.6,
		},
		{
			Ordinal:     3,
			Description: "Technology spend and demand patterns adjust over time",
			Mechanism:   "Investment follows the new baseline; laggards lose demand",
			Confidence:  0.6,
		},
	}
}

func disasterSteps(summary, businessContext string) []Step {
	return []Step{
		{
			Ordinal:     1,
			Description: "Disaster event: " + summary,
			Mechanism:   "Physical disruption takes capacity offline in the affected region",
			Confidence:  0.95,
		},
		{
			Ordinal:     2,
			Description: "Local operations and logistics are disrupted. " + businessContext,
			Mechanism:   "Facilities, transport, and utilities degrade until recovery",
			Confidence:  0.85,
		},
	}
}
