// Package nmea encodes navigation telemetry into NMEA 0183 sentences
// (APB, RMB) for autopilots and chart plotters. Everything here is a
// pure function of its inputs: no state, no I/O, safe to call from any
// number of goroutines.
package nmea

import (
	"fmt"
	"strings"
)

// Checksum XORs the bytes of body, scanning left to right. body must
// not include the leading '$'; scanning stops early at a '*' in case
// one slipped through. The empty string yields 0.
func Checksum(body string) byte {
	var sum byte
	for i := 0; i < len(body); i++ {
		if body[i] == '*' {
			break
		}
		sum ^= body[i]
	}
	return sum
}

// ChecksumHex renders b as exactly two uppercase hex digits.
func ChecksumHex(b byte) string {
	return fmt.Sprintf("%02X", b)
}

// Assemble joins fields with commas and appends the checksum, yielding
// "$<body>*<HH>". A leading '$' on the first field and anything from an
// embedded '*' onward are stripped before the checksum is computed, so
// re-assembling an already assembled sentence reproduces it exactly.
func Assemble(fields []string) string {
	body := strings.Join(fields, ",")
	body = strings.TrimPrefix(body, "$")
	if i := strings.IndexByte(body, '*'); i >= 0 {
		body = body[:i]
	}
	return "$" + body + "*" + ChecksumHex(Checksum(body))
}
