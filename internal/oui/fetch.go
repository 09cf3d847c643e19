package oui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// IEEE CSV export endpoints for the three block registries.
const (
	URLMAL = "https://standards-oui.ieee.org/oui/oui.csv"
	URLMAM = "https://standards-oui.ieee.org/oui28/mam.csv"
	URLMAS = "https://standards-oui.ieee.org/oui36/oui36.csv"
)

// DefaultFetchURLs returns the three IEEE export URLs.
func DefaultFetchURLs() []string {
	return []string{URLMAL, URLMAM, URLMAS}
}

var fetchClient = &http.Client{Timeout: 5 * time.Minute}

// Fetch downloads one registry CSV export.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := fetchClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, res.Status)
	}
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return b, nil
}

// FetchAll downloads and concatenates the given exports (per-file headers are
// tolerated by the loader). Any single failure fails the whole fetch — a
// partial registry is worse than a stale one.
func FetchAll(ctx context.Context, urls []string) ([]byte, error) {
	var buf bytes.Buffer
	for _, u := range urls {
		b, err := Fetch(ctx, u)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
		if len(b) > 0 && b[len(b)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}
