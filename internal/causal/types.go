// Package causal is the mapping engine: it decides whether a world
// event matters to a business, reasons through how, and scores how
// confident it is in that reasoning.
//
// Every function in this package is pure. Nothing here performs I/O,
// keeps state between calls, or reads the wall clock on its own - the
// mapper's clock is injected so identical inputs always produce
// bit-identical mappings. Callers may memoize by (event ID, business
// model ID) without the engine tracking anything.
package causal

import (
	"github.com/nabheet/opencausenx/internal/business"
	"github.com/nabheet/opencausenx/internal/event"
)

// Direction is the inferred direction of impact on the affected levers.
type Direction string

const (
	DirectionIncrease Direction = "INCREASE"
	DirectionDecrease Direction = "DECREASE"
	DirectionNeutral  Direction = "NEUTRAL"
)

// Magnitude is a coarse bucket for estimated impact size.
type Magnitude string

const (
	MagnitudeLow    Magnitude = "LOW"
	MagnitudeMedium Magnitude = "MEDIUM"
	MagnitudeHigh   Magnitude = "HIGH"
)

// Horizon is the expected time frame over which the impact plays out.
type Horizon string

const (
	HorizonShort  Horizon = "SHORT"
	HorizonMedium Horizon = "MEDIUM"
	HorizonLong   Horizon = "LONG"
)

// Step is one link in a causal chain. Steps are ordered cause to
// effect; Confidence reflects how certain that single link is and is
// authored with the rule, not computed.
type Step struct {
	Ordinal     int     `json:"ordinal"` // 1-based position in the chain
	Description string  `json:"description"`
	Mechanism   string  `json:"mechanism"`
	Confidence  float64 `json:"confidence"` // in (0,1]
}

// Tier grades how much an assumption matters if it turns out wrong.
type Tier string

const (
	TierHigh   Tier = "HIGH"
	TierMedium Tier = "MEDIUM"
	TierLow    Tier = "LOW"
)

// Assumption is a reusable precondition a rule's reasoning rests on.
type Assumption struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Impact      Tier   `json:"impact"`
	Provenance  string `json:"provenance"`
}

// Mapping is the engine's output for one (event, business) pair.
// Constructed once and never mutated; downstream layers persist or
// discard it as-is.
//
// A non-relevant pair still yields a Mapping - the canonical null
// shape: NEUTRAL direction, LOW magnitude, zero confidence, empty path
// and assumptions, with the relevance reason explaining why.
type Mapping struct {
	EventID         string             `json:"event_id"`
	BusinessModelID string             `json:"business_model_id"`
	AffectedLevers  []business.Lever   `json:"affected_levers"`
	Direction       Direction          `json:"direction"`
	Magnitude       Magnitude          `json:"magnitude"`
	Horizon         Horizon            `json:"horizon"`
	Path            []Step             `json:"path"`
	Assumptions     []Assumption       `json:"assumptions"`
	Confidence      float64            `json:"confidence"` // in [0,1]
	Rationale       string             `json:"rationale"`
	Relevant        bool               `json:"relevant"`
	RelevanceReason string             `json:"relevance_reason"`
	Event           *event.Event       `json:"-"`
	Business        *business.Model    `json:"-"`
}
