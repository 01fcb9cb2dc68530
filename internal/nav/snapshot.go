// Package nav models the route telemetry handed to the sentence
// builders: a sparse snapshot where every field may be absent. Absence
// (nil) is an expected steady state — no active route — and is always
// distinguishable from zero.
package nav

import "math"

// Position is a geographic point in decimal degrees.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Snapshot carries the current route telemetry, JSON over MQTT. Units
// follow the upstream data source: angles in radians, distances in
// meters, speeds in m/s. Positive cross-track error means right of
// track.
type Snapshot struct {
	CrossTrackError   *float64  `json:"crossTrackError,omitempty"`
	BearingTrue       *float64  `json:"bearingTrue,omitempty"`
	BearingMagnetic   *float64  `json:"bearingMagnetic,omitempty"`
	MagneticVariation *float64  `json:"magneticVariation,omitempty"`
	Distance          *float64  `json:"distance,omitempty"`
	VelocityMadeGood  *float64  `json:"velocityMadeGood,omitempty"`
	PreviousPoint     *string   `json:"previousPoint,omitempty"`
	NextPoint         *string   `json:"nextPoint,omitempty"`
	NextPointPosition *Position `json:"nextPointPosition,omitempty"`
}

// DeriveVMG computes velocity made good toward the destination from
// speed and course over ground: sog * cos(brg - cog). Inputs in knots
// and degrees, result in knots.
func DeriveVMG(speedKnots, courseDeg, bearingDeg float64) float64 {
	return speedKnots * math.Cos((bearingDeg-courseDeg)*math.Pi/180)
}
