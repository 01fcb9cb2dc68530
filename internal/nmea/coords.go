package nmea

import (
	"fmt"
	"math"
)

// RangeError reports a value outside its physical domain. Coordinates
// that fail this check are surfaced, never clamped: a silently garbled
// position could steer an autopilot the wrong way.
type RangeError struct {
	Quantity string
	Value    float64
	Min, Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %g outside range [%g, %g]", e.Quantity, e.Value, e.Min, e.Max)
}

// FormatLatitude renders decimal degrees as "DDMM.MMMM" plus an N/S
// hemisphere, returned separately so sentence fields never embed a
// comma. 0 degrees counts as North. Valid domain is [-90, 90];
// anything else (including NaN/Inf) returns a *RangeError.
func FormatLatitude(deg float64) (string, string, error) {
	if !isFinite(deg) || deg < -90 || deg > 90 {
		return "", "", &RangeError{Quantity: "latitude", Value: deg, Min: -90, Max: 90}
	}
	hemi := "N"
	if deg < 0 {
		hemi = "S"
		deg = -deg
	}
	d, m := splitMinutes(deg)
	return fmt.Sprintf("%02.0f%07.4f", d, m), hemi, nil
}

// FormatLongitude renders decimal degrees as "DDDMM.MMMM" plus an E/W
// hemisphere, E for >= 0. Valid domain is [-180, 180).
func FormatLongitude(deg float64) (string, string, error) {
	if !isFinite(deg) || deg < -180 || deg >= 180 {
		return "", "", &RangeError{Quantity: "longitude", Value: deg, Min: -180, Max: 180}
	}
	hemi := "E"
	if deg < 0 {
		hemi = "W"
		deg = -deg
	}
	d, m := splitMinutes(deg)
	return fmt.Sprintf("%03.0f%07.4f", d, m), hemi, nil
}

// splitMinutes splits absolute decimal degrees into whole degrees and
// decimal minutes, carrying when the minutes would round up to 60 at
// four decimal places.
func splitMinutes(deg float64) (float64, float64) {
	d := math.Floor(deg)
	m := (deg - d) * 60
	if m >= 59.99995 {
		d++
		m = 0
	}
	return d, m
}
