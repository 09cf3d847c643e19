package registry

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

type HTTP struct {
	mgr  *Manager
	repo *Repo // nil — snapshot listing disabled
}

func NewHTTP(mgr *Manager, repo *Repo) *HTTP { return &HTTP{mgr: mgr, repo: repo} }

func (h *HTTP) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api/v1/registry").Subrouter()

	// POST /api/v1/registry/refresh — fetch, rebuild, swap
	api.HandleFunc("/refresh", h.refresh).Methods(http.MethodPost)

	// GET /api/v1/registry/snapshots
	api.HandleFunc("/snapshots", h.snapshots).Methods(http.MethodGet)
}

func (h *HTTP) refresh(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	stats, err := h.mgr.Refresh(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	_ = json.NewEncoder(w).Encode(stats)
}

func (h *HTTP) snapshots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if h.repo == nil {
		http.Error(w, "no database configured", http.StatusNotImplemented)
		return
	}
	snaps, err := h.repo.List(0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	type out struct {
		UID       string `json:"uid"`
		CreatedAt string `json:"created_at"`
		Source    string `json:"source"`
		SHA256    string `json:"sha256"`
		Records   int    `json:"records"`
	}
	result := make([]out, 0, len(snaps))
	for _, s := range snaps {
		result = append(result, out{
			UID:       s.UID,
			CreatedAt: s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			Source:    s.Source,
			SHA256:    s.SHA256,
			Records:   s.Records,
		})
	}
	_ = json.NewEncoder(w).Encode(result)
}
