package nmea

import (
	"math"

	"github.com/marinelink/nav_encoder/internal/nav"
)

// BuildRMB encodes a recommended-minimum-navigation sentence "B".
// Cross-track error, destination position and a true-bearing source
// are mandatory; without them it returns (nil, nil). A destination
// coordinate outside its physical domain returns a *RangeError
// instead of a garbled sentence. Range and velocity made good render
// as empty fields when unavailable.
//
// Field layout (14 fields):
//
//	<tt>RMB, A, <xte NM 3dp>, <L|R>, <origin wpt|empty>, <dest wpt>,
//	<lat DDMM.MMMM>, <N|S>, <lon DDDMM.MMMM>, <E|W>,
//	<range NM 2dp|empty>, <brg true 1dp>, <vmg kn 2dp|empty>, V
func BuildRMB(s *nav.Snapshot, talker Talker) ([]string, error) {
	xte := finiteField(s.CrossTrackError)
	brgTrue := trueBearing(s)
	pos := s.NextPointPosition
	if xte == nil || brgTrue == nil || pos == nil {
		return nil, nil
	}
	// A non-finite coordinate is missing data, not bad data.
	if !isFinite(pos.Latitude) || !isFinite(pos.Longitude) {
		return nil, nil
	}

	lat, latHemi, err := FormatLatitude(pos.Latitude)
	if err != nil {
		return nil, err
	}
	lon, lonHemi, err := FormatLongitude(pos.Longitude)
	if err != nil {
		return nil, err
	}

	rng := ""
	if d := finiteField(s.Distance); d != nil {
		rng = formatFixed(MetersToNauticalMiles(*d), 2)
	}
	vmg := ""
	if v := finiteField(s.VelocityMadeGood); v != nil {
		vmg = formatFixed(MetersPerSecondToKnots(*v), 2)
	}
	origin := ""
	if s.PreviousPoint != nil {
		origin = *s.PreviousPoint
	}

	fields := []string{
		string(talker) + "RMB",
		"A",
		formatFixed(MetersToNauticalMiles(math.Abs(*xte)), 3),
		steerDirection(*xte),
		origin,
		waypointName(s.NextPoint),
		lat, latHemi,
		lon, lonHemi,
		rng,
		formatFixed(NormalizeAngleDeg(*brgTrue), 1),
		vmg,
		"V", // not yet arrived
	}
	return []string{Assemble(fields)}, nil
}
