package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		carbon     float64
		water      float64
		compliance float64
		expected   float64
	}{
		{"perfect supplier", 0, 0, 1.0, 0.0},
		{"worst case saturates at 100", 5000, 100000, 0.0, 100.0},
		{"at the ceilings", 2000, 25000, 1.0, 70.0},
		// 0.4*(1450/2000) + 0.3*(18000/25000) + 0.3*(1-0.82)
		{"seeded worst supplier", 1450, 18000, 0.82, 56.0},
		{"compliance only", 0, 0, 0.5, 15.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Score(tt.carbon, tt.water, tt.compliance), 0.01)
		})
	}
}

func TestScore_ComponentsSaturateIndependently(t *testing.T) {
	// Carbon far past its ceiling contributes no more than its weight.
	capped := Score(1e9, 0, 1.0)
	assert.InDelta(t, 40.0, capped, 0.01)

	// Water past its ceiling likewise.
	assert.InDelta(t, 30.0, Score(0, 1e9, 1.0), 0.01)
}
