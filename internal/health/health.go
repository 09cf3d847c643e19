package health

import (
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// RegisterRoutes — liveness plus a readiness probe without a database.
func RegisterRoutes(r *mux.Router, ready func() bool) {
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	r.HandleFunc("/readyz", readyz(nil, ready)).Methods(http.MethodGet)
}

// RegisterRoutesWithDB — readiness additionally pings the database.
func RegisterRoutesWithDB(r *mux.Router, db *gorm.DB, ready func() bool) {
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	r.HandleFunc("/readyz", readyz(db, ready)).Methods(http.MethodGet)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func readyz(db *gorm.DB, ready func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ready != nil && !ready() {
			http.Error(w, "index not loaded", http.StatusServiceUnavailable)
			return
		}
		if db != nil {
			sqlDB, err := db.DB()
			if err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
			if err := sqlDB.PingContext(r.Context()); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}
}
