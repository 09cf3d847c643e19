package oui

import (
	"errors"
	"testing"
)

func TestParseMACDelimiterAgnostic(t *testing.T) {
	want := uint64(0xACDE48000001)
	for _, in := range []string{
		"AC:DE:48:00:00:01",
		"AC-DE-48-00-00-01",
		"acde48000001",
		"acde.4800.0001",
		"ACDE48000001",
	} {
		got, err := ParseMAC(in)
		if err != nil {
			t.Fatalf("ParseMAC(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseMAC(%q) = %012x, want %012x", in, got, want)
		}
	}
}

func TestParseMACInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"not-a-mac",
		"AC:DE:48:00:00",          // 40 bits
		"AC:DE:48:00:00:01:02",    // too long
		"AC:DE:48:00:00:0G",       // bad digit
		"ACDE480000011",           // 13 digits
		"AC DE 48 00 00 01",       // unrecognized delimiter
		"AC:DE:48:00:00:01:02:03", // EUI-64
	} {
		if _, err := ParseMAC(in); !errors.Is(err, ErrInvalidMAC) {
			t.Errorf("ParseMAC(%q) err = %v, want ErrInvalidMAC", in, err)
		}
	}
}
