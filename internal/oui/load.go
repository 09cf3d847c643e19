package oui

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadOptions — registry load policy.
//
// The default is strict: the first malformed row aborts the whole load, so a
// corrupt source file can never yield a partial index. SkipMalformed relaxes
// that to skip-and-count for sources known to carry occasional benign junk
// rows; the count is reported in LoadStats.
type LoadOptions struct {
	SkipMalformed bool
	Comma         rune // field delimiter, ',' when zero (the bundled files use ';')
}

// LoadStats — what a load consumed.
type LoadStats struct {
	Records   int `json:"records"`
	Skipped   int `json:"skipped"`   // blank rows and header rows
	Malformed int `json:"malformed"` // only counted with SkipMalformed
}

// Load reads the whole registry from r, parses every row and builds the
// index. All-or-nothing: any parse or build failure returns a nil index.
func Load(r io.Reader, opts LoadOptions) (*Index, *LoadStats, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	stats := &LoadStats{}
	var records []Record
	line := 0
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("registry line %d: %w", line, err)
		}
		if isBlankRow(row) || isHeaderRow(row) {
			stats.Skipped++
			continue
		}
		rec, err := ParseFields(row)
		if err != nil {
			if opts.SkipMalformed {
				stats.Malformed++
				continue
			}
			return nil, nil, fmt.Errorf("registry line %d (%d rows skipped so far): %w", line, stats.Skipped, err)
		}
		records = append(records, rec)
	}

	ix, err := BuildIndex(records)
	if err != nil {
		return nil, nil, err
	}
	stats.Records = ix.Len()
	return ix, stats, nil
}

// LoadBytes is Load over an in-memory payload.
func LoadBytes(b []byte, opts LoadOptions) (*Index, *LoadStats, error) {
	return Load(bytes.NewReader(b), opts)
}

// LoadFile is Load over a registry file on disk.
func LoadFile(path string, opts LoadOptions) (*Index, *LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	ix, stats, err := Load(f, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return ix, stats, nil
}

func isBlankRow(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// isHeaderRow recognizes the IEEE CSV header ("Registry,Assignment,...").
// Concatenated MA-L/MA-M/MA-S exports carry one header each, so any row
// matching the signature is tolerated, not just the first.
func isHeaderRow(row []string) bool {
	first := strings.ToLower(strings.TrimSpace(row[0]))
	if first == "registry" || first == "assignment" || first == "oui" {
		return true
	}
	if len(row) > 1 && strings.EqualFold(strings.TrimSpace(row[1]), "assignment") {
		return true
	}
	return false
}
