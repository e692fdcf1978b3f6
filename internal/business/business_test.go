package business

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validModel() *Model {
	return &Model{
		ID:   "saas-co",
		Name: "SaaS Co",
		RevenueLevers: map[Lever]float64{
			LeverSubscriptionRevenue: 0.8,
			LeverServicesRevenue:     0.2,
		},
		CostLevers: map[Lever]float64{
			LeverLaborCosts:          0.4,
			LeverInfrastructureCosts: 0.35,
			LeverComplianceCosts:     0.25,
		},
		Sensitivities: map[Factor]float64{
			FactorLabor: 0.8,
		},
		OperatingRegions: []string{"US", "EU"},
		CustomerRegions:  []string{"US"},
	}
}

func TestLeverWeight(t *testing.T) {
	m := validModel()

	tests := []struct {
		lever Lever
		want  float64
	}{
		{LeverSubscriptionRevenue, 0.8}, // revenue side
		{LeverLaborCosts, 0.4},          // cost side
		{LeverFXExposure, 0},            // unknown
	}
	for _, tt := range tests {
		if got := m.LeverWeight(tt.lever); got != tt.want {
			t.Errorf("LeverWeight(%s) = %v, want %v", tt.lever, got, tt.want)
		}
	}
}

func TestSensitivityDefault(t *testing.T) {
	m := validModel()
	if got := m.Sensitivity(FactorLabor); got != 0.8 {
		t.Errorf("set sensitivity = %v, want 0.8", got)
	}
	if got := m.Sensitivity(FactorFX); got != DefaultSensitivity {
		t.Errorf("unset sensitivity = %v, want %v", got, DefaultSensitivity)
	}
}

func TestRegionsUnion(t *testing.T) {
	m := validModel()
	got := m.Regions()
	if len(got) != 2 {
		t.Fatalf("Regions() = %v, want deduplicated [US EU]", got)
	}

	if !m.OperatesIn("EU") {
		t.Error("should operate in EU")
	}
	if m.OperatesIn("APAC") {
		t.Error("should not operate in APAC")
	}
	if !m.ServesRegion("US") {
		t.Error("should serve US")
	}
	// EU is an operating region but not a customer region; ServesRegion
	// covers both
	if !m.ServesRegion("EU") {
		t.Error("ServesRegion should include operating regions")
	}
}

func TestInternationalFootprint(t *testing.T) {
	m := validModel()
	if !m.HasInternationalOps() {
		t.Error("two operating regions is international")
	}
	if m.HasInternationalCustomers() {
		t.Error("single customer region is domestic")
	}

	m.CustomerRegions = []string{"GLOBAL"}
	if !m.HasInternationalCustomers() {
		t.Error("GLOBAL customers is international")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Model)
		wantErr string
	}{
		{"valid", func(m *Model) {}, ""},
		{"missing id", func(m *Model) { m.ID = "" }, "missing id"},
		{"no revenue levers", func(m *Model) { m.RevenueLevers = nil }, "no revenue levers"},
		{"revenue sum off", func(m *Model) { m.RevenueLevers[LeverSubscriptionRevenue] = 0.5 }, "sum to"},
		{"negative weight", func(m *Model) {
			m.CostLevers[LeverLaborCosts] = -0.1
			m.CostLevers[LeverInfrastructureCosts] = 0.85
		}, "outside [0,1]"},
		{"sensitivity out of range", func(m *Model) { m.Sensitivities[FactorFX] = 1.5 }, "outside [0,1]"},
		// within the 0.01 tolerance
		{"tolerated drift", func(m *Model) {
			m.RevenueLevers[LeverSubscriptionRevenue] = 0.805
		}, ""},
	}

	for _, tt := range tests {
		m := validModel()
		tt.mutate(m)
		err := m.Validate()
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: error = %v, want containing %q", tt.name, err, tt.wantErr)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")

	data := `{
		"id": "retail-co",
		"name": "Retail Co",
		"revenue_levers": {"TRANSACTION_REVENUE": 1.0},
		"cost_levers": {"SUPPLY_CHAIN_COSTS": 0.6, "LABOR_COSTS": 0.4},
		"sensitivities": {"market_demand": 0.9},
		"operating_regions": ["US"],
		"customer_regions": ["US", "EU"]
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != "retail-co" || m.LeverWeight(LeverSupplyChainCosts) != 0.6 {
		t.Errorf("loaded model wrong: %+v", m)
	}
	if m.Sensitivity(FactorMarketDemand) != 0.9 {
		t.Errorf("sensitivity = %v", m.Sensitivity(FactorMarketDemand))
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")

	data := `{"id": "x", "revenue_levers": {"SUBSCRIPTION_REVENUE": 0.5}, "cost_levers": {"LABOR_COSTS": 1.0}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("expected a validation error for weights summing to 0.5")
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
