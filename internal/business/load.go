package business

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// weightTolerance is how far lever weights may drift from summing to 1.0
// before a model file is rejected.
const weightTolerance = 0.01

// LoadFile reads a business model from a JSON file and validates the
// lever-weight contract. The mapping engine assumes this contract holds
// and never re-checks it.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read business model: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse business model %s: %w", path, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid business model %s: %w", path, err)
	}

	return &m, nil
}

// Validate checks the input contract a well-formed model must satisfy:
// lever weights on each side summing to ~1.0 and sensitivities in [0,1].
func (m *Model) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("missing id")
	}
	if err := checkWeights("revenue", m.RevenueLevers); err != nil {
		return err
	}
	if err := checkWeights("cost", m.CostLevers); err != nil {
		return err
	}
	for factor, s := range m.Sensitivities {
		if s < 0 || s > 1 {
			return fmt.Errorf("sensitivity %s = %.2f outside [0,1]", factor, s)
		}
	}
	return nil
}

func checkWeights(side string, levers map[Lever]float64) error {
	if len(levers) == 0 {
		return fmt.Errorf("no %s levers defined", side)
	}
	sum := 0.0
	for lever, w := range levers {
		if w < 0 || w > 1 {
			return fmt.Errorf("%s lever %s weight %.2f outside [0,1]", side, lever, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("%s lever weights sum to %.3f, want 1.0", side, sum)
	}
	return nil
}
