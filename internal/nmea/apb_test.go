package nmea

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinelink/nav_encoder/internal/nav"
)

func f64(v float64) *float64 { return &v }

func str(s string) *string { return &s }

// requireValidSentence checks framing and that the trailing hex digits
// match the checksum of the body.
func requireValidSentence(t *testing.T, s string) {
	t.Helper()
	require.True(t, strings.HasPrefix(s, "$"))
	star := strings.IndexByte(s, '*')
	require.Equal(t, len(s)-3, star, "checksum must be the last two characters")
	body := s[1:star]
	require.Equal(t, ChecksumHex(Checksum(body)), s[star+1:])
}

func TestBuildAPB(t *testing.T) {
	snap := &nav.Snapshot{
		CrossTrackError: f64(100), // meters, right of track
		BearingTrue:     f64(1.5708),
	}

	sentences, err := BuildAPB(snap, TalkerGP)
	require.NoError(t, err)
	require.Len(t, sentences, 1)

	s := sentences[0]
	requireValidSentence(t, s)
	assert.True(t, strings.HasPrefix(s, "$GPAPB,A,A,0.054,R,N,90.0,T,,90.0,T,,M,WAYPOINT,A,A*"), s)
}

func TestBuildAPBSteerLeft(t *testing.T) {
	snap := &nav.Snapshot{
		CrossTrackError: f64(-100),
		BearingTrue:     f64(1.5708),
	}

	sentences, err := BuildAPB(snap, TalkerGP)
	require.NoError(t, err)
	require.Len(t, sentences, 1)

	// Magnitude stays positive, the sign moves into the steer token.
	assert.Contains(t, sentences[0], ",0.054,L,N,")
}

func TestBuildAPBMagneticBearing(t *testing.T) {
	t.Run("direct field", func(t *testing.T) {
		snap := &nav.Snapshot{
			CrossTrackError: f64(100),
			BearingTrue:     f64(math.Pi / 2),
			BearingMagnetic: f64(math.Pi),
		}

		sentences, err := BuildAPB(snap, TalkerGP)
		require.NoError(t, err)
		require.Len(t, sentences, 1)
		assert.Contains(t, sentences[0], ",90.0,T,180.0,90.0,T,180.0,M,")
	})

	t.Run("derived from variation", func(t *testing.T) {
		snap := &nav.Snapshot{
			CrossTrackError:   f64(100),
			BearingTrue:       f64(math.Pi / 2),
			MagneticVariation: f64(math.Pi / 18), // 10 degrees
		}

		sentences, err := BuildAPB(snap, TalkerGP)
		require.NoError(t, err)
		require.Len(t, sentences, 1)
		assert.Contains(t, sentences[0], ",90.0,T,100.0,90.0,T,100.0,M,")
	})
}

func TestBuildAPBTrueBearingFromMagnetic(t *testing.T) {
	// No direct true bearing, but magnetic minus variation derives one.
	snap := &nav.Snapshot{
		CrossTrackError:   f64(100),
		BearingMagnetic:   f64(math.Pi),
		MagneticVariation: f64(math.Pi / 18),
	}

	sentences, err := BuildAPB(snap, TalkerGP)
	require.NoError(t, err)
	require.Len(t, sentences, 1)
	assert.Contains(t, sentences[0], ",170.0,T,180.0,")
}

func TestBuildAPBWaypointAndTalker(t *testing.T) {
	snap := &nav.Snapshot{
		CrossTrackError: f64(50),
		BearingTrue:     f64(1),
		NextPoint:       str("BUOY 3"),
	}

	sentences, err := BuildAPB(snap, TalkerII)
	require.NoError(t, err)
	require.Len(t, sentences, 1)
	assert.True(t, strings.HasPrefix(sentences[0], "$IIAPB,"))
	assert.Contains(t, sentences[0], ",M,BUOY 3,A,A*")
}

func TestBuildAPBMissingMandatory(t *testing.T) {
	tests := []struct {
		name string
		snap *nav.Snapshot
	}{
		{name: "empty snapshot", snap: &nav.Snapshot{}},
		{name: "no cross-track error", snap: &nav.Snapshot{BearingTrue: f64(1)}},
		{name: "no bearing source", snap: &nav.Snapshot{CrossTrackError: f64(100)}},
		{
			name: "variation alone derives nothing",
			snap: &nav.Snapshot{CrossTrackError: f64(100), MagneticVariation: f64(0.1)},
		},
		{
			name: "non-finite cross-track error",
			snap: &nav.Snapshot{CrossTrackError: f64(math.NaN()), BearingTrue: f64(1)},
		},
		{
			name: "non-finite bearing",
			snap: &nav.Snapshot{CrossTrackError: f64(100), BearingTrue: f64(math.Inf(1))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sentences, err := BuildAPB(tt.snap, TalkerGP)
			assert.NoError(t, err)
			assert.Nil(t, sentences)
		})
	}
}
