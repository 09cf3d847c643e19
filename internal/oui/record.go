package oui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// IEEE registry block widths: MA-L, MA-M, MA-S.
const (
	BitsMAL = 24
	BitsMAM = 28
	BitsMAS = 36

	addrBits = 48
)

var (
	ErrMalformedRecord = errors.New("malformed registry record")
	ErrDuplicatePrefix = errors.New("duplicate registry prefix")
	ErrInvalidMAC      = errors.New("invalid mac address")
	ErrIndexNotReady   = errors.New("oui index not ready")
)

// Record — one registry assignment. Prefix holds the top PrefixBits bits of
// the 48-bit address space, left-justified (low bits zero), so it compares
// directly against a masked queried address.
type Record struct {
	PrefixBits   uint8  `json:"prefix_bits"`
	Prefix       uint64 `json:"prefix"`
	Organization string `json:"organization"`
	Address      string `json:"address,omitempty"`
}

// PrefixHex returns the assignment the way the registry prints it
// (6/7/9 uppercase hex digits).
func (r Record) PrefixHex() string {
	digits := int(r.PrefixBits) / 4
	s := strconv.FormatUint(r.Prefix>>(addrBits-uint(r.PrefixBits)), 16)
	return strings.ToUpper(strings.Repeat("0", digits-len(s)) + s)
}

// ParseAssignment parses a registry assignment field (hex, optionally with
// "-", ":" or "." group separators). The block width is inferred from the
// number of significant hex digits: 6 → 24, 7 → 28, 9 → 36.
func ParseAssignment(s string) (bits uint8, prefix uint64, err error) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("-", "", ":", "", ".", "").Replace(s)

	switch len(s) {
	case 6:
		bits = BitsMAL
	case 7:
		bits = BitsMAM
	case 9:
		bits = BitsMAS
	default:
		return 0, 0, fmt.Errorf("%w: assignment %q: %d hex digits, want 6, 7 or 9", ErrMalformedRecord, s, len(s))
	}

	v, perr := strconv.ParseUint(s, 16, 64)
	if perr != nil {
		return 0, 0, fmt.Errorf("%w: assignment %q is not hexadecimal", ErrMalformedRecord, s)
	}
	return bits, v << (addrBits - uint(bits)), nil
}

// registryLabels — width indicator column values of the IEEE CSV exports.
var registryLabels = map[string]uint8{
	"MA-L": BitsMAL,
	"MA-M": BitsMAM,
	"MA-S": BitsMAS,
}

// ParseFields converts one registry row into a Record. Two layouts are
// accepted, matching the IEEE CSV exports and the trimmed two-column form:
//
//	Registry, Assignment, Organization Name, Organization Address
//	Assignment, Organization Name[, Organization Address]
//
// When the width indicator column is present it must agree with the width
// implied by the assignment's digit count.
func ParseFields(fields []string) (Record, error) {
	if len(fields) < 2 {
		return Record{}, fmt.Errorf("%w: %d fields, want at least 2", ErrMalformedRecord, len(fields))
	}

	var wantBits uint8
	if b, ok := registryLabels[strings.ToUpper(strings.TrimSpace(fields[0]))]; ok {
		wantBits = b
		fields = fields[1:]
		if len(fields) < 2 {
			return Record{}, fmt.Errorf("%w: registry label without assignment/organization", ErrMalformedRecord)
		}
	}

	bits, prefix, err := ParseAssignment(fields[0])
	if err != nil {
		return Record{}, err
	}
	if wantBits != 0 && wantBits != bits {
		return Record{}, fmt.Errorf("%w: registry label implies %d bits, assignment has %d", ErrMalformedRecord, wantBits, bits)
	}

	org := strings.TrimSpace(fields[1])
	if org == "" {
		return Record{}, fmt.Errorf("%w: empty organization for %s", ErrMalformedRecord, strings.TrimSpace(fields[0]))
	}

	var addr string
	if len(fields) > 2 {
		addr = strings.TrimSpace(fields[2])
	}

	return Record{PrefixBits: bits, Prefix: prefix, Organization: org, Address: addr}, nil
}
