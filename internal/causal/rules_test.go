package causal

import (
	"testing"

	"github.com/nabheet/opencausenx/internal/event"
)

func TestRuleForCoversAllCategories(t *testing.T) {
	for _, cat := range event.Categories() {
		rule, err := RuleFor(cat)
		if err != nil {
			t.Errorf("%s: %v", cat, err)
			continue
		}
		if rule.Category != cat {
			t.Errorf("%s: rule carries category %s", cat, rule.Category)
		}
		if len(rule.AffectedLevers) == 0 {
			t.Errorf("%s: no affected levers", cat)
		}
		if rule.SensitivityFactor == "" {
			t.Errorf("%s: no sensitivity factor", cat)
		}
		if rule.Steps == nil {
			t.Errorf("%s: nil step template", cat)
			continue
		}
		steps := rule.Steps("test summary", "")
		if len(steps) == 0 {
			t.Errorf("%s: template produced no steps", cat)
		}
	}
}

func TestRuleForUnknownCategory(t *testing.T) {
	if _, err := RuleFor("weather_forecast"); err == nil {
		t.Error("expected an error for an uncataloged category")
	}
}

func TestHighConfidenceCategories(t *testing.T) {
	high := []event.Category{
		event.CategoryLaborMarket,
		event.CategoryInfrastructure,
		event.CategoryCurrency,
		event.CategoryDisaster,
	}
	for _, cat := range high {
		if !HighConfidenceCategory(cat) {
			t.Errorf("%s should be high-confidence", cat)
		}
	}
	for _, cat := range []event.Category{event.CategoryRegulation, event.CategoryTechnology, event.CategoryGeopolitical} {
		if HighConfidenceCategory(cat) {
			t.Errorf("%s should not be high-confidence", cat)
		}
	}
}
