package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers groups everything the router serves. AnkiProxy and TranslateLimit
// may be nil.
type Handlers struct {
	Translate      *TranslateHandler
	Health         *HealthHandler
	AnkiProxy      http.Handler
	TranslateLimit func(http.Handler) http.Handler
}

// NewRouter registers all routes. Paths are matched in their encoded form so
// a word containing an escaped slash stays one segment.
func NewRouter(h Handlers) *mux.Router {
	r := mux.NewRouter()
	r.UseEncodedPath()

	limit := h.TranslateLimit
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}
	r.Handle("/translate/{word}", limit(http.HandlerFunc(h.Translate.Get))).Methods(http.MethodGet)
	r.Handle("/translate", limit(http.HandlerFunc(h.Translate.Batch))).Methods(http.MethodPost)

	r.HandleFunc("/live", h.Health.Live).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.Health.Ready).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)

	if h.AnkiProxy != nil {
		r.Path(AnkiPrefix).Handler(h.AnkiProxy)
		r.PathPrefix(AnkiPrefix + "/").Handler(h.AnkiProxy)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	return r
}
