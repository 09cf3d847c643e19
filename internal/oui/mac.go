package oui

import (
	"fmt"
	"strconv"
	"strings"
)

// Accepted query lengths: bare 12 hex digits up to the fully delimited
// 17-char colon/hyphen form.
const (
	minMACLen = 12
	maxMACLen = 17
)

// ParseMAC parses a MAC address string into a 48-bit value. Colon-, hyphen-
// and dot-separated forms plus the bare 12-hex-digit form are accepted,
// case-insensitively. Anything that does not strip down to exactly 12 hex
// digits fails with ErrInvalidMAC.
func ParseMAC(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if len(s) < minMACLen || len(s) > maxMACLen {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMAC, s)
	}

	var hex [12]byte
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ':' || c == '-' || c == '.':
			continue
		case isHexDigit(c):
			if n == len(hex) {
				return 0, fmt.Errorf("%w: %q: more than 12 hex digits", ErrInvalidMAC, s)
			}
			hex[n] = c
			n++
		default:
			return 0, fmt.Errorf("%w: %q: unexpected character %q", ErrInvalidMAC, s, c)
		}
	}
	if n != len(hex) {
		return 0, fmt.Errorf("%w: %q: %d hex digits, want 12", ErrInvalidMAC, s, n)
	}

	v, err := strconv.ParseUint(string(hex[:]), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMAC, s)
	}
	return v, nil
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
