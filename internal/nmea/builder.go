package nmea

import (
	"strconv"

	"github.com/marinelink/nav_encoder/internal/nav"
)

// DefaultWaypoint names the destination when the route source left it
// unnamed.
const DefaultWaypoint = "WAYPOINT"

// finiteField treats a missing or non-finite number as absent.
func finiteField(p *float64) *float64 {
	if p == nil || !isFinite(*p) {
		return nil
	}
	return p
}

// trueBearing prefers the direct field, falling back to magnetic
// bearing minus magnetic variation when both are present.
func trueBearing(s *nav.Snapshot) *float64 {
	if b := finiteField(s.BearingTrue); b != nil {
		return b
	}
	m, v := finiteField(s.BearingMagnetic), finiteField(s.MagneticVariation)
	if m != nil && v != nil {
		t := *m - *v
		return &t
	}
	return nil
}

// magneticBearing prefers the direct field, falling back to true
// bearing plus magnetic variation when both are present.
func magneticBearing(s *nav.Snapshot) *float64 {
	if b := finiteField(s.BearingMagnetic); b != nil {
		return b
	}
	t, v := finiteField(s.BearingTrue), finiteField(s.MagneticVariation)
	if t != nil && v != nil {
		m := *t + *v
		return &m
	}
	return nil
}

// steerDirection maps the cross-track error sign to a steer token.
// Positive XTE means right of track; the convention comes from the
// data source and must not be inverted.
func steerDirection(xte float64) string {
	if xte >= 0 {
		return "R"
	}
	return "L"
}

func waypointName(name *string) string {
	if name == nil || *name == "" {
		return DefaultWaypoint
	}
	return *name
}

// formatFixed renders v with exactly prec fractional digits. NMEA
// consumers expect fixed decimals: no scientific notation, no
// trailing-zero stripping.
func formatFixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
