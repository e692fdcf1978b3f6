// Package event defines the normalized world-event record that flows
// from ingestion into the causal mapping engine.
package event

import "time"

// Category classifies a world event into one of the fixed kinds the
// rule catalog knows how to reason about.
type Category string

const (
	CategoryLaborMarket       Category = "labor_market"
	CategoryInfrastructure    Category = "infrastructure"
	CategoryRegulation        Category = "regulation"
	CategoryEconomicIndicator Category = "economic_indicator"
	CategoryCurrency          Category = "currency"
	CategoryGeopolitical      Category = "geopolitical"
	CategoryMarketShift       Category = "market_shift"
	CategoryTechnology        Category = "technology"
	CategoryDisaster          Category = "disaster"
)

// Categories lists every known category. The causal rule catalog is
// maintained in lockstep with this list.
func Categories() []Category {
	return []Category{
		CategoryLaborMarket,
		CategoryInfrastructure,
		CategoryRegulation,
		CategoryEconomicIndicator,
		CategoryCurrency,
		CategoryGeopolitical,
		CategoryMarketShift,
		CategoryTechnology,
		CategoryDisaster,
	}
}

// RegionGlobal marks an event as worldwide in scope. Global events pass
// the geographic relevance check for every business.
const RegionGlobal = "GLOBAL"

// Event is a single normalized world event.
// Immutable once produced by the ingestion layer - the mapping engine
// only ever reads it.
type Event struct {
	ID         string
	Category   Category
	Summary    string
	Region     string // region code, e.g. "US", "EU", or RegionGlobal
	OccurredAt time.Time
	Entities   []string // affected-entity tags extracted from the text
	Confidence float64  // source confidence in [0,1], computed upstream
	SourceName string
	URL        string
	Metadata   map[string]string // opaque, carried through untouched
}
