package causal

import (
	"testing"
	"time"

	"github.com/nabheet/opencausenx/internal/event"
)

func TestClassifyDirection(t *testing.T) {
	rule, err := RuleFor(event.CategoryEconomicIndicator)
	if err != nil {
		t.Fatal(err)
	}
	// economic_indicator defaults to NEUTRAL, which makes the fallback visible
	tests := []struct {
		summary string
		want    Direction
	}{
		{"Consumer spending increased sharply in December", DirectionIncrease},
		{"Wages RISE across the tech sector", DirectionIncrease},
		{"GDP growth beats expectations", DirectionIncrease},
		{"Retail sales decline for third straight month", DirectionDecrease},
		{"Industrial output falls to a two-year low", DirectionDecrease},
		{"Central bank holds rates steady", DirectionNeutral},
		// increase tokens are checked first, so a summary with both classes
		// still reads as INCREASE
		{"Exports rise while imports fall", DirectionIncrease},
		// known heuristic quirk: "down" matches inside "downtown"
		{"New downtown facility announced", DirectionDecrease},
	}

	for _, tt := range tests {
		if got := ClassifyDirection(tt.summary, rule); got != tt.want {
			t.Errorf("ClassifyDirection(%q) = %s, want %s", tt.summary, got, tt.want)
		}
	}
}

func TestClassifyDirectionDefault(t *testing.T) {
	rule, err := RuleFor(event.CategoryGeopolitical)
	if err != nil {
		t.Fatal(err)
	}
	if got := ClassifyDirection("Border tensions continue", rule); got != DirectionDecrease {
		t.Errorf("expected the rule default DECREASE, got %s", got)
	}
}

func TestClassifyMagnitudeBoundaries(t *testing.T) {
	tests := []struct {
		raw  float64
		want Magnitude
	}{
		{0.051, MagnitudeHigh},
		{0.05, MagnitudeMedium}, // strict > for HIGH
		{0.021, MagnitudeMedium},
		{0.02, MagnitudeLow}, // strict > for MEDIUM
		{0.0, MagnitudeLow},
	}

	for _, tt := range tests {
		if got := ClassifyMagnitude(tt.raw); got != tt.want {
			t.Errorf("ClassifyMagnitude(%v) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestRawMagnitude(t *testing.T) {
	now := time.Now()
	b := testBusiness()
	ev := testEvent(now)

	rule, err := RuleFor(event.CategoryLaborMarket)
	if err != nil {
		t.Fatal(err)
	}

	// 0.4 labor weight x 0.8 labor sensitivity x 0.85 event confidence
	want := 0.4 * 0.8 * 0.85
	got := RawMagnitude(rule, b, ev)
	if got < want-1e-9 || got > want+1e-9 {
		t.Errorf("RawMagnitude = %v, want %v", got, want)
	}
	if ClassifyMagnitude(got) != MagnitudeHigh {
		t.Errorf("expected HIGH for raw %v", got)
	}
}

func TestRawMagnitudeUnsetSensitivityDefaults(t *testing.T) {
	now := time.Now()
	b := testBusiness()
	delete(b.Sensitivities, "labor")
	ev := testEvent(now)

	rule, err := RuleFor(event.CategoryLaborMarket)
	if err != nil {
		t.Fatal(err)
	}

	want := 0.4 * 0.5 * 0.85 // default sensitivity 0.5
	got := RawMagnitude(rule, b, ev)
	if got < want-1e-9 || got > want+1e-9 {
		t.Errorf("RawMagnitude with default sensitivity = %v, want %v", got, want)
	}
}

func TestMagnitudeWeight(t *testing.T) {
	if MagnitudeWeight(MagnitudeHigh) != 3 || MagnitudeWeight(MagnitudeMedium) != 2 || MagnitudeWeight(MagnitudeLow) != 1 {
		t.Error("magnitude weights must be HIGH=3, MEDIUM=2, LOW=1")
	}
}
