package nmea

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinelink/nav_encoder/internal/nav"
)

func TestBuildRMB(t *testing.T) {
	snap := &nav.Snapshot{
		CrossTrackError:   f64(100),
		BearingTrue:       f64(1.5708),
		Distance:          f64(1852), // one nautical mile
		VelocityMadeGood:  f64(1.0),  // m/s
		PreviousPoint:     str("ALPHA"),
		NextPoint:         str("BRAVO"),
		NextPointPosition: &nav.Position{Latitude: 45.5, Longitude: -122.25},
	}

	sentences, err := BuildRMB(snap, TalkerGP)
	require.NoError(t, err)
	require.Len(t, sentences, 1)

	s := sentences[0]
	requireValidSentence(t, s)
	assert.True(t, strings.HasPrefix(s,
		"$GPRMB,A,0.054,R,ALPHA,BRAVO,4530.0000,N,12215.0000,W,1.00,90.0,1.94,V*"), s)
}

func TestBuildRMBOptionalFieldsEmpty(t *testing.T) {
	snap := &nav.Snapshot{
		CrossTrackError:   f64(-250),
		BearingTrue:       f64(math.Pi),
		NextPointPosition: &nav.Position{Latitude: 0, Longitude: 0},
	}

	sentences, err := BuildRMB(snap, TalkerII)
	require.NoError(t, err)
	require.Len(t, sentences, 1)

	// Origin, range and VMG render as empty fields; an unnamed
	// destination gets the placeholder.
	assert.True(t, strings.HasPrefix(sentences[0],
		"$IIRMB,A,0.135,L,,WAYPOINT,0000.0000,N,00000.0000,E,,180.0,,V*"), sentences[0])
}

func TestBuildRMBMissingMandatory(t *testing.T) {
	pos := &nav.Position{Latitude: 45, Longitude: 9}
	tests := []struct {
		name string
		snap *nav.Snapshot
	}{
		{name: "empty snapshot", snap: &nav.Snapshot{}},
		{
			name: "no destination position",
			snap: &nav.Snapshot{CrossTrackError: f64(10), BearingTrue: f64(1)},
		},
		{
			name: "no bearing",
			snap: &nav.Snapshot{CrossTrackError: f64(10), NextPointPosition: pos},
		},
		{
			name: "no cross-track error",
			snap: &nav.Snapshot{BearingTrue: f64(1), NextPointPosition: pos},
		},
		{
			name: "non-finite destination latitude",
			snap: &nav.Snapshot{
				CrossTrackError:   f64(10),
				BearingTrue:       f64(1),
				NextPointPosition: &nav.Position{Latitude: math.NaN(), Longitude: 9},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sentences, err := BuildRMB(tt.snap, TalkerGP)
			assert.NoError(t, err)
			assert.Nil(t, sentences)
		})
	}
}

func TestBuildRMBOutOfRangePosition(t *testing.T) {
	snap := &nav.Snapshot{
		CrossTrackError:   f64(10),
		BearingTrue:       f64(1),
		NextPointPosition: &nav.Position{Latitude: 91, Longitude: 9},
	}

	sentences, err := BuildRMB(snap, TalkerGP)
	require.Error(t, err)
	assert.Nil(t, sentences)

	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "latitude", rangeErr.Quantity)

	// Same for a longitude on the wrong side of the antimeridian.
	snap.NextPointPosition = &nav.Position{Latitude: 45, Longitude: 180}
	sentences, err = BuildRMB(snap, TalkerGP)
	require.Error(t, err)
	assert.Nil(t, sentences)
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "longitude", rangeErr.Quantity)
}
