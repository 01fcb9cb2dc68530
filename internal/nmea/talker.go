package nmea

// Talker is the two-letter station class prefixed to every sentence.
type Talker string

const (
	TalkerGP Talker = "GP" // generic GPS receiver
	TalkerII Talker = "II" // integrated instrumentation
)

// TalkerFromString maps a configured talker ID to a known Talker.
// Anything unrecognized, including the empty string, falls back to GP.
func TalkerFromString(s string) Talker {
	switch s {
	case "II":
		return TalkerII
	default:
		return TalkerGP
	}
}
