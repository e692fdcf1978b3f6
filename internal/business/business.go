// Package business defines the structured business-model description
// the causal mapping engine scores events against.
package business

// Lever names a revenue or cost component of a business model.
// The rule catalog references levers by these names; a business model
// assigns each a weight describing its share of the business.
type Lever string

const (
	// Revenue levers
	LeverSubscriptionRevenue Lever = "SUBSCRIPTION_REVENUE"
	LeverTransactionRevenue  Lever = "TRANSACTION_REVENUE"
	LeverServicesRevenue     Lever = "SERVICES_REVENUE"
	LeverCustomerDemand      Lever = "CUSTOMER_DEMAND"

	// Cost levers
	LeverLaborCosts          Lever = "LABOR_COSTS"
	LeverInfrastructureCosts Lever = "INFRASTRUCTURE_COSTS"
	LeverComplianceCosts     Lever = "COMPLIANCE_COSTS"
	LeverSupplyChainCosts    Lever = "SUPPLY_CHAIN_COSTS"
	LeverTechnologyCosts     Lever = "TECHNOLOGY_COSTS"
	LeverFXExposure          Lever = "FX_EXPOSURE"
)

// Factor names a sensitivity axis describing how reactive a business is
// to external shocks of that kind.
type Factor string

const (
	FactorLabor          Factor = "labor"
	FactorInfrastructure Factor = "infrastructure"
	FactorFX             Factor = "fx"
	FactorRegulation     Factor = "regulation"
	FactorMarketDemand   Factor = "market_demand"
)

// DefaultSensitivity is assumed for any factor a model leaves unset.
const DefaultSensitivity = 0.5

// Model describes one business: its weighted revenue and cost levers,
// its sensitivity to external factors, and where it operates and sells.
//
// Lever weights within each map are expected to sum to 1.0 (+/- 0.01);
// that contract is validated by the configuration layer that loads
// models, not re-checked by the mapping engine.
type Model struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	RevenueLevers    map[Lever]float64  `json:"revenue_levers"`
	CostLevers       map[Lever]float64  `json:"cost_levers"`
	Sensitivities    map[Factor]float64 `json:"sensitivities"`
	OperatingRegions []string           `json:"operating_regions"`
	CustomerRegions  []string           `json:"customer_regions"`
}

// LeverWeight returns the weight of a lever, whichever side of the
// model it sits on. Unknown levers weigh zero.
func (m *Model) LeverWeight(l Lever) float64 {
	if w, ok := m.RevenueLevers[l]; ok {
		return w
	}
	if w, ok := m.CostLevers[l]; ok {
		return w
	}
	return 0
}

// Sensitivity returns the model's sensitivity to a factor, falling back
// to DefaultSensitivity when the factor is unset.
func (m *Model) Sensitivity(f Factor) float64 {
	if s, ok := m.Sensitivities[f]; ok {
		return s
	}
	return DefaultSensitivity
}

// Regions returns the union of operating and customer regions.
func (m *Model) Regions() []string {
	seen := make(map[string]bool)
	var regions []string
	for _, r := range m.OperatingRegions {
		if !seen[r] {
			seen[r] = true
			regions = append(regions, r)
		}
	}
	for _, r := range m.CustomerRegions {
		if !seen[r] {
			seen[r] = true
			regions = append(regions, r)
		}
	}
	return regions
}

// OperatesIn reports whether the business operates in the given region.
func (m *Model) OperatesIn(region string) bool {
	for _, r := range m.OperatingRegions {
		if r == region {
			return true
		}
	}
	return false
}

// ServesRegion reports whether the business operates in or sells into
// the given region.
func (m *Model) ServesRegion(region string) bool {
	if m.OperatesIn(region) {
		return true
	}
	for _, r := range m.CustomerRegions {
		if r == region {
			return true
		}
	}
	return false
}

// HasInternationalOps reports whether the business operates in more
// than one region (or declares itself global).
func (m *Model) HasInternationalOps() bool {
	return multiRegion(m.OperatingRegions)
}

// HasInternationalCustomers reports whether the customer base spans
// more than one region (or is global).
func (m *Model) HasInternationalCustomers() bool {
	return multiRegion(m.CustomerRegions)
}

func multiRegion(regions []string) bool {
	if len(regions) > 1 {
		return true
	}
	for _, r := range regions {
		if r == "GLOBAL" {
			return true
		}
	}
	return false
}
