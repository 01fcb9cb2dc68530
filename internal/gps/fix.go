package gps

// Fix is a single GPS fix as published by the feed, suitable for JSON
// and MQTT. The encoder uses speed and course over ground to derive
// velocity made good when the route source leaves it out.
type Fix struct {
	Time       string  `json:"time"`        // UTC, e.g. "12:34:56"
	Latitude   float64 `json:"lat"`         // decimal degrees
	Longitude  float64 `json:"lon"`         // decimal degrees
	SpeedKnots float64 `json:"speed_knots"` // speed over ground
	CourseDeg  float64 `json:"course_deg"`  // course over ground, degrees true
	Validity   string  `json:"validity"`    // "A" (valid) / "V" (void)
}
