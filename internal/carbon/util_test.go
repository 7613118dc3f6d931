package carbon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		min  float64
		max  float64
		want float64
	}{
		{"value within range", 1.2, 0.5, 2.0, 1.2},
		{"value below min", 0.1, 0.5, 2.0, 0.5},
		{"value above max", 3.7, 0.5, 2.0, 2.0},
		{"value at min boundary", 0.5, 0.5, 2.0, 0.5},
		{"value at max boundary", 2.0, 0.5, 2.0, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.v, tt.min, tt.max))
		})
	}
}

func TestEquivalencyFor(t *testing.T) {
	eq := EquivalencyFor(120)

	assert.InDelta(t, 1.0, eq.KmDriven, 1e-9)
	assert.InDelta(t, 120/8.22, eq.PhoneCharges, 1e-6)
	assert.Contains(t, eq.String(), "km")
}

func TestEquivalencyFor_NegativeTreatedAsZero(t *testing.T) {
	eq := EquivalencyFor(-5)

	assert.Zero(t, eq.KmDriven)
	assert.Zero(t, eq.PhoneCharges)
}
