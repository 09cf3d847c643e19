package ouihttp

import (
	"encoding/json"
	"errors"
	"net/http"

	"ouisvc/internal/oui"

	"github.com/gorilla/mux"
)

type HTTP struct{ svc *oui.Service }

func NewHTTP(svc *oui.Service) *HTTP { return &HTTP{svc: svc} }

func (h *HTTP) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api/v1/oui").Subrouter()

	// GET /api/v1/oui/resolve/{mac}
	api.HandleFunc("/resolve/{mac}", h.resolve).Methods(http.MethodGet)

	// POST /api/v1/oui/resolve  { macs: [...] }
	api.HandleFunc("/resolve", h.resolveBulk).Methods(http.MethodPost)

	// GET /api/v1/oui/stats
	api.HandleFunc("/stats", h.stats).Methods(http.MethodGet)
}

type resolveOut struct {
	MAC          string `json:"mac"`
	Found        bool   `json:"found"`
	Organization string `json:"organization,omitempty"`
	Address      string `json:"address,omitempty"`
	PrefixBits   uint8  `json:"prefix_bits,omitempty"`
	Error        string `json:"error,omitempty"`
}

func toOut(mac string, res oui.Result) resolveOut {
	return resolveOut{
		MAC:          mac,
		Found:        res.Found,
		Organization: res.Organization,
		Address:      res.Address,
		PrefixBits:   res.PrefixBits,
	}
}

func (h *HTTP) resolve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	mac := mux.Vars(r)["mac"]

	res, err := h.svc.Resolve(mac)
	switch {
	case errors.Is(err, oui.ErrIndexNotReady):
		http.Error(w, "registry not loaded yet", http.StatusServiceUnavailable)
		return
	case errors.Is(err, oui.ErrInvalidMAC):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if !res.Found {
		w.WriteHeader(http.StatusNotFound)
	}
	_ = json.NewEncoder(w).Encode(toOut(mac, res))
}

func (h *HTTP) resolveBulk(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var in struct {
		MACs []string `json:"macs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || len(in.MACs) == 0 {
		http.Error(w, "invalid body (need {macs: [...]})", http.StatusBadRequest)
		return
	}

	results := make([]resolveOut, 0, len(in.MACs))
	for _, mac := range in.MACs {
		res, err := h.svc.Resolve(mac)
		switch {
		case errors.Is(err, oui.ErrIndexNotReady):
			http.Error(w, "registry not loaded yet", http.StatusServiceUnavailable)
			return
		case err != nil:
			results = append(results, resolveOut{MAC: mac, Error: err.Error()})
		default:
			results = append(results, toOut(mac, res))
		}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"results": results})
}

func (h *HTTP) stats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ix := h.svc.Index()
	if ix == nil {
		http.Error(w, "registry not loaded yet", http.StatusServiceUnavailable)
		return
	}
	mal, mam, mas := ix.Counts()
	_ = json.NewEncoder(w).Encode(map[string]any{
		"records":   ix.Len(),
		"ma_l":      mal,
		"ma_m":      mam,
		"ma_s":      mas,
		"loaded_at": h.svc.LoadedAt(),
	})
}
