package nmea

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		body string
		want byte
	}{
		{name: "empty string", body: "", want: 0},
		{name: "single byte", body: "A", want: 0x41},
		{name: "two bytes xor", body: "AB", want: 0x41 ^ 0x42},
		{name: "stops at asterisk", body: "AB*CD", want: 0x41 ^ 0x42},
		{name: "leading asterisk", body: "*AB", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Checksum(tt.body))
		})
	}
}

func TestChecksumHex(t *testing.T) {
	assert.Equal(t, "00", ChecksumHex(0))
	assert.Equal(t, "05", ChecksumHex(5))
	assert.Equal(t, "7F", ChecksumHex(0x7F))
	assert.Equal(t, "FF", ChecksumHex(255))
}

func TestChecksumXORProperties(t *testing.T) {
	// Body bytes drawn from printable ASCII minus the framing
	// characters '$' and '*'.
	bodyGen := rapid.StringMatching(`[ -#%-)+-~]{0,64}`)

	rapid.Check(t, func(t *rapid.T) {
		s1 := bodyGen.Draw(t, "s1")
		s2 := bodyGen.Draw(t, "s2")

		// XOR composes over concatenation and cancels itself.
		assert.Equal(t, Checksum(s1)^Checksum(s2), Checksum(s1+s2))
		assert.Equal(t, byte(0), Checksum(s1+s1))
	})
}

func TestAssemble(t *testing.T) {
	got := Assemble([]string{"GPAPB", "A", "A"})
	require.True(t, strings.HasPrefix(got, "$GPAPB,A,A*"))

	// Trailing hex digits must be the checksum of the body between
	// '$' and '*'.
	body := got[1:strings.IndexByte(got, '*')]
	assert.Equal(t, "$"+body+"*"+ChecksumHex(Checksum(body)), got)
}

func TestAssembleStripsEmbeddedChecksum(t *testing.T) {
	plain := Assemble([]string{"GPRMB", "A", "1.00"})
	withSuffix := Assemble([]string{"GPRMB", "A", "1.00*55"})
	withDollar := Assemble([]string{"$GPRMB", "A", "1.00"})

	assert.Equal(t, plain, withSuffix)
	assert.Equal(t, plain, withDollar)
}

func TestAssembleIdempotent(t *testing.T) {
	fieldGen := rapid.StringMatching(`[0-9A-Za-z]{0,12}`)

	rapid.Check(t, func(t *rapid.T) {
		fields := rapid.SliceOfN(fieldGen, 1, 16).Draw(t, "fields")

		once := Assemble(fields)
		assert.Equal(t, once, Assemble(fields), "same fields must give identical output")

		// Splitting an assembled sentence back into fields and
		// re-assembling must reproduce it byte for byte.
		again := Assemble(strings.Split(once, ","))
		assert.Equal(t, once, again)
	})
}
