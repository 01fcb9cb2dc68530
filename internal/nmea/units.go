package nmea

import "math"

const metersPerNauticalMile = 1852.0

// NormalizeAngleDeg converts an angle in radians to degrees reduced
// into [0, 360). Finite input only; callers gate NaN/Inf before the
// value gets anywhere near a sentence.
func NormalizeAngleDeg(rad float64) float64 {
	deg := math.Mod(rad*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	// Collapse -0 and the rounding edge where a whole number of turns
	// lands a hair below 360 instead of on 0.
	if deg == 0 || deg >= 360-1e-9 {
		return 0
	}
	return deg
}

// MetersToNauticalMiles converts a distance in meters to nautical miles.
func MetersToNauticalMiles(m float64) float64 {
	return m / metersPerNauticalMile
}

// MetersPerSecondToKnots converts a speed in m/s to knots.
func MetersPerSecondToKnots(mps float64) float64 {
	return mps * 3600 / metersPerNauticalMile
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
