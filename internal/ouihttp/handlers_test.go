package ouihttp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ouisvc/internal/oui"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRegistry = `Registry,Assignment,"Organization Name","Organization Address"
MA-L,ACDE48,Example Corp,"1 Example Way, Exampleville"
MA-S,ACDE48123,Delegate Ltd,Berlin
`

func newTestRouter(t *testing.T, ready bool) *mux.Router {
	t.Helper()
	svc := oui.NewService()
	if ready {
		ix, _, err := oui.Load(strings.NewReader(testRegistry), oui.LoadOptions{})
		require.NoError(t, err)
		svc.Swap(ix)
	}
	r := mux.NewRouter()
	NewHTTP(svc).RegisterRoutes(r)
	return r
}

func doGet(r *mux.Router, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestResolveFound(t *testing.T) {
	r := newTestRouter(t, true)
	w := doGet(r, "/api/v1/oui/resolve/AC:DE:48:11:22:33")
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		MAC          string `json:"mac"`
		Found        bool   `json:"found"`
		Organization string `json:"organization"`
		PrefixBits   uint8  `json:"prefix_bits"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.Found)
	assert.Equal(t, "Example Corp", out.Organization)
	assert.Equal(t, uint8(24), out.PrefixBits)
}

func TestResolveNarrowestWinsOverHTTP(t *testing.T) {
	r := newTestRouter(t, true)
	w := doGet(r, "/api/v1/oui/resolve/ac-de-48-12-34-56")
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Organization string `json:"organization"`
		PrefixBits   uint8  `json:"prefix_bits"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Delegate Ltd", out.Organization)
	assert.Equal(t, uint8(36), out.PrefixBits)
}

func TestResolveUnresolvedIs404(t *testing.T) {
	r := newTestRouter(t, true)
	w := doGet(r, "/api/v1/oui/resolve/00:11:22:33:44:55")
	require.Equal(t, http.StatusNotFound, w.Code)

	var out struct {
		Found bool `json:"found"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.False(t, out.Found)
}

func TestResolveInvalidIs400(t *testing.T) {
	r := newTestRouter(t, true)
	w := doGet(r, "/api/v1/oui/resolve/not-a-mac-at-all")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveNotReadyIs503(t *testing.T) {
	r := newTestRouter(t, false)
	w := doGet(r, "/api/v1/oui/resolve/AC:DE:48:11:22:33")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestResolveBulk(t *testing.T) {
	r := newTestRouter(t, true)
	body := `{"macs":["AC:DE:48:11:22:33","00:11:22:33:44:55","garbage-input"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/oui/resolve", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Results []struct {
			MAC          string `json:"mac"`
			Found        bool   `json:"found"`
			Organization string `json:"organization"`
			Error        string `json:"error"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Results, 3)
	assert.True(t, out.Results[0].Found)
	assert.Equal(t, "Example Corp", out.Results[0].Organization)
	assert.False(t, out.Results[1].Found)
	assert.Empty(t, out.Results[1].Error)
	assert.NotEmpty(t, out.Results[2].Error)
}

func TestResolveBulkBadBody(t *testing.T) {
	r := newTestRouter(t, true)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/oui/resolve", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStats(t *testing.T) {
	r := newTestRouter(t, true)
	w := doGet(r, "/api/v1/oui/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Records int `json:"records"`
		MAL     int `json:"ma_l"`
		MAS     int `json:"ma_s"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 2, out.Records)
	assert.Equal(t, 1, out.MAL)
	assert.Equal(t, 1, out.MAS)
}

func TestStatsNotReady(t *testing.T) {
	r := newTestRouter(t, false)
	w := doGet(r, "/api/v1/oui/stats")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
