package nmea

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAngleDeg(t *testing.T) {
	tests := []struct {
		name string
		rad  float64
		want float64
	}{
		{name: "quarter turn", rad: math.Pi / 2, want: 90},
		{name: "negative quarter turn wraps", rad: -math.Pi / 2, want: 270},
		{name: "two and a half turns", rad: 5 * math.Pi, want: 180},
		{name: "zero", rad: 0, want: 0},
		{name: "full turn collapses to zero", rad: 2 * math.Pi, want: 0},
		{name: "negative full turns collapse to zero", rad: -4 * math.Pi, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAngleDeg(tt.rad)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 360.0)
		})
	}

	// The collapsed zero must format without a sign.
	assert.Equal(t, "0.0", formatFixed(NormalizeAngleDeg(-4*math.Pi), 1))
}

func TestMetersToNauticalMiles(t *testing.T) {
	assert.InDelta(t, 1.0, MetersToNauticalMiles(1852), 1e-12)
	assert.InDelta(t, 0.5, MetersToNauticalMiles(926), 1e-12)
	assert.Equal(t, 0.0, MetersToNauticalMiles(0))
}

func TestMetersPerSecondToKnots(t *testing.T) {
	assert.InDelta(t, 1.94384, MetersPerSecondToKnots(1), 1e-4)
	assert.InDelta(t, 1.0, MetersPerSecondToKnots(1852.0/3600.0), 1e-12)
}
