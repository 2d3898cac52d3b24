package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heartmarshall/wordcards/pkg/ctxutil"
)

func TestRecovery(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		status   int
		body     string
		logged   []string
		noLogged bool
	}{
		{
			name: "no panic",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusCreated)
			},
			status:   http.StatusCreated,
			noLogged: true,
		},
		{
			name: "string panic",
			handler: func(http.ResponseWriter, *http.Request) {
				panic("normalizer blew up")
			},
			status: http.StatusInternalServerError,
			body:   `{"error":"internal server error"}`,
			logged: []string{"panic recovered", "normalizer blew up", "path=/translate/run", "request_id=req-9", "stack="},
		},
		{
			name: "error panic",
			handler: func(http.ResponseWriter, *http.Request) {
				var cards map[string]int
				cards["run"]++
			},
			status: http.StatusInternalServerError,
			body:   `{"error":"internal server error"}`,
			logged: []string{"assignment to entry in nil map"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			req := httptest.NewRequest(http.MethodGet, "/translate/run", nil)
			req = req.WithContext(ctxutil.WithRequestID(req.Context(), "req-9"))
			rec := httptest.NewRecorder()

			Recovery(logger)(tt.handler).ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.body != "" {
				if got := strings.TrimSpace(rec.Body.String()); got != tt.body {
					t.Errorf("body = %q, want %q", got, tt.body)
				}
				if got := rec.Header().Get("Content-Type"); got != "application/json" {
					t.Errorf("Content-Type = %q", got)
				}
			}
			if tt.noLogged && buf.Len() > 0 {
				t.Errorf("unexpected log output %q", buf.String())
			}
			for _, want := range tt.logged {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("log %q does not contain %q", buf.String(), want)
				}
			}
		})
	}
}

func TestRecovery_AbortHandlerPropagates(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	handler := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	})

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Errorf("expected http.ErrAbortHandler to propagate, got %v", rec)
		}
	}()

	Recovery(logger)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/anki", nil))
	t.Error("expected panic")
}
