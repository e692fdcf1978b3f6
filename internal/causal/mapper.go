package causal

import (
	"fmt"
	"sort"
	"time"

	"github.com/nabheet/opencausenx/internal/business"
	"github.com/nabheet/opencausenx/internal/event"
)

// Mapper composes the relevance gate, rule catalog, path builder,
// impact classifier, and confidence aggregator into single-pair and
// batch entry points.
//
// Now is the injected clock for the recency check. Leave it nil for
// time.Now; fix it in tests for reproducible output.
type Mapper struct {
	Now func() time.Time
}

// NewMapper returns a Mapper using the wall clock.
func NewMapper() *Mapper {
	return &Mapper{Now: time.Now}
}

func (m *Mapper) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// MapEvent produces the causal mapping for one (event, business) pair.
//
// A non-relevant pair returns the canonical null mapping, not an error.
// The only error path is a category missing from the rule catalog,
// which means the catalog and the category set drifted apart - that
// aborts mapping for the event rather than guessing.
func (m *Mapper) MapEvent(ev *event.Event, b *business.Model) (Mapping, error) {
	rel := CheckRelevance(ev, b, m.now())
	if !rel.Relevant {
		return nullMapping(ev, b, rel.Reason), nil
	}

	rule, err := RuleFor(ev.Category)
	if err != nil {
		return Mapping{}, fmt.Errorf("map event %s: %w", ev.ID, err)
	}

	path := BuildPath(rule, ev, b)
	assumptions := AssumptionsFor(ev.Category)
	warnings := ValidateAssumptions(assumptions, ExposureFor(b, ev))

	direction := ClassifyDirection(ev.Summary, rule)
	magnitude := ClassifyMagnitude(RawMagnitude(rule, b, ev))
	confidence := AggregateConfidence(ev, rule, path, assumptions, b)
	rationale := Rationale(ev, rule, path, assumptions, warnings)

	return Mapping{
		EventID:         ev.ID,
		BusinessModelID: b.ID,
		AffectedLevers:  rule.AffectedLevers,
		Direction:       direction,
		Magnitude:       magnitude,
		Horizon:         rule.Horizon,
		Path:            path,
		Assumptions:     assumptions,
		Confidence:      confidence,
		Rationale:       rationale,
		Relevant:        true,
		RelevanceReason: rel.Reason,
		Event:           ev,
		Business:        b,
	}, nil
}

// BatchMap maps every event against one business independently, drops
// the non-relevant results, and returns the rest ordered by descending
// priority (confidence x magnitude weight). Ties keep input order.
//
// A catalog error for any event aborts the batch; that can only happen
// when the rule catalog is out of sync with the category set.
func (m *Mapper) BatchMap(events []event.Event, b *business.Model) ([]Mapping, error) {
	var mappings []Mapping
	for i := range events {
		mapping, err := m.MapEvent(&events[i], b)
		if err != nil {
			return nil, err
		}
		if mapping.Relevant {
			mappings = append(mappings, mapping)
		}
	}

	RankMappings(mappings)
	return mappings, nil
}

// Priority is the ranking score for a mapping: confidence scaled by the
// magnitude bucket's weight.
func (mp *Mapping) Priority() float64 {
	return mp.Confidence * MagnitudeWeight(mp.Magnitude)
}

// RankMappings orders mappings by descending priority in place. The
// sort is stable, so equal priorities keep their existing order.
func RankMappings(mappings []Mapping) {
	sort.SliceStable(mappings, func(i, j int) bool {
		return mappings[i].Priority() > mappings[j].Priority()
	})
}

// nullMapping is the canonical shape for a non-relevant pair: neutral,
// low, zero-confidence, empty path and assumptions.
func nullMapping(ev *event.Event, b *business.Model, reason string) Mapping {
	return Mapping{
		EventID:         ev.ID,
		BusinessModelID: b.ID,
		Direction:       DirectionNeutral,
		Magnitude:       MagnitudeLow,
		Horizon:         HorizonShort,
		Confidence:      0,
		Rationale:       reason,
		Relevant:        false,
		RelevanceReason: reason,
		Event:           ev,
		Business:        b,
	}
}
