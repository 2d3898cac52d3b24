package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordcards/pkg/ctxutil"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "generated when absent"},
		{name: "caller id reused", incoming: "frontend-7f3a", keep: true},
		{name: "longest accepted id", incoming: strings.Repeat("a", maxRequestIDLen), keep: true},
		{name: "oversized id replaced", incoming: strings.Repeat("a", maxRequestIDLen+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inCtx string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				inCtx = ctxutil.RequestIDFromCtx(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/translate/run", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			RequestID()(handler).ServeHTTP(rec, req)

			echoed := rec.Header().Get(RequestIDHeader)
			if echoed != inCtx {
				t.Errorf("header %q and context %q differ", echoed, inCtx)
			}
			if tt.keep {
				if inCtx != tt.incoming {
					t.Errorf("request id = %q, want the incoming one", inCtx)
				}
				return
			}
			if _, err := uuid.Parse(inCtx); err != nil {
				t.Errorf("request id %q is not a UUID: %v", inCtx, err)
			}
		})
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	seen := make(map[string]bool)
	h := RequestID()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	for range 20 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
		id := rec.Header().Get(RequestIDHeader)
		if seen[id] {
			t.Fatalf("duplicate request id %q", id)
		}
		seen[id] = true
	}
}
