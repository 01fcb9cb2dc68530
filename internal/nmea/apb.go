package nmea

import (
	"math"

	"github.com/marinelink/nav_encoder/internal/nav"
)

// BuildAPB encodes an autopilot sentence "B" from the snapshot.
// Cross-track error and at least one true-bearing source are
// mandatory; without them it returns (nil, nil), the normal state when
// no route is active. On success the slice holds exactly one
// checksummed sentence.
//
// Field layout (16 fields):
//
//	<tt>APB, A, A, <xte NM 3dp>, <L|R>, N,
//	<brg true 1dp>, T, <brg mag 1dp|empty>,
//	<hdg-to-steer true 1dp>, T, <hdg-to-steer mag 1dp|empty>, M,
//	<waypoint>, A, A
//
// The heading-to-steer pair duplicates the bearing pair; the trailing
// "A,A" are mode indicators.
func BuildAPB(s *nav.Snapshot, talker Talker) ([]string, error) {
	xte := finiteField(s.CrossTrackError)
	brgTrue := trueBearing(s)
	if xte == nil || brgTrue == nil {
		return nil, nil
	}

	brg := formatFixed(NormalizeAngleDeg(*brgTrue), 1)
	mag := ""
	if m := magneticBearing(s); m != nil {
		mag = formatFixed(NormalizeAngleDeg(*m), 1)
	}

	fields := []string{
		string(talker) + "APB",
		"A", "A", // no loran blink / cycle lock warnings
		formatFixed(MetersToNauticalMiles(math.Abs(*xte)), 3),
		steerDirection(*xte),
		"N",
		brg, "T", mag,
		brg, "T", mag, "M",
		waypointName(s.NextPoint),
		"A", "A",
	}
	return []string{Assemble(fields)}, nil
}
