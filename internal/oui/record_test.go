package oui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignmentWidths(t *testing.T) {
	tests := []struct {
		in     string
		bits   uint8
		prefix uint64
	}{
		{"ACDE48", BitsMAL, 0xACDE48000000},
		{"AC-DE-48", BitsMAL, 0xACDE48000000},
		{"acde48", BitsMAL, 0xACDE48000000},
		{"8C147D9", BitsMAM, 0x8C147D900000},
		{"70B3D5ABC", BitsMAS, 0x70B3D5ABC000},
		{"70-B3-D5-ABC", BitsMAS, 0x70B3D5ABC000},
	}
	for _, tc := range tests {
		bits, prefix, err := ParseAssignment(tc.in)
		if err != nil {
			t.Fatalf("ParseAssignment(%q): %v", tc.in, err)
		}
		if bits != tc.bits {
			t.Errorf("ParseAssignment(%q) bits = %d, want %d", tc.in, bits, tc.bits)
		}
		if prefix != tc.prefix {
			t.Errorf("ParseAssignment(%q) prefix = %012x, want %012x", tc.in, prefix, tc.prefix)
		}
	}
}

func TestParseAssignmentMalformed(t *testing.T) {
	for _, in := range []string{"", "AC", "ACDE4", "ACDE4800", "ACDE48000001", "ZZDE48", "ACDE4G"} {
		_, _, err := ParseAssignment(in)
		if !errors.Is(err, ErrMalformedRecord) {
			t.Errorf("ParseAssignment(%q) err = %v, want ErrMalformedRecord", in, err)
		}
	}
}

func TestParseFieldsIEEELayout(t *testing.T) {
	rec, err := ParseFields([]string{"MA-L", "ACDE48", "Example Corp", "1 Example Way, Exampleville"})
	require.NoError(t, err)
	assert.Equal(t, uint8(BitsMAL), rec.PrefixBits)
	assert.Equal(t, uint64(0xACDE48000000), rec.Prefix)
	assert.Equal(t, "Example Corp", rec.Organization)
	assert.Equal(t, "1 Example Way, Exampleville", rec.Address)
}

func TestParseFieldsTwoColumnLayout(t *testing.T) {
	rec, err := ParseFields([]string{"ACDE48", "Example Corp"})
	require.NoError(t, err)
	assert.Equal(t, uint8(BitsMAL), rec.PrefixBits)
	assert.Empty(t, rec.Address)
}

func TestParseFieldsLabelWidthMismatch(t *testing.T) {
	// MA-S label with a 6-digit assignment
	_, err := ParseFields([]string{"MA-S", "ACDE48", "Example Corp"})
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestParseFieldsEmptyOrganization(t *testing.T) {
	_, err := ParseFields([]string{"MA-L", "ACDE48", "   "})
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestRecordPrefixHex(t *testing.T) {
	tests := []struct {
		rec  Record
		want string
	}{
		{Record{PrefixBits: BitsMAL, Prefix: 0xACDE48000000}, "ACDE48"},
		{Record{PrefixBits: BitsMAM, Prefix: 0x0C147D900000}, "0C147D9"},
		{Record{PrefixBits: BitsMAS, Prefix: 0x00B3D5ABC000}, "00B3D5ABC"},
	}
	for _, tc := range tests {
		if got := tc.rec.PrefixHex(); got != tc.want {
			t.Errorf("PrefixHex() = %q, want %q", got, tc.want)
		}
	}
}
