package rest

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
)

// AnkiPrefix is the path under which AnkiConnect is proxied.
const AnkiPrefix = "/anki"

// NewAnkiProxy forwards requests under AnkiPrefix to AnkiConnect with the
// prefix stripped. AnkiConnect checks Host and Origin, so both are set to the
// upstream address.
func NewAnkiProxy(target *url.URL, logger *slog.Logger) http.Handler {
	log := logger.With("handler", "anki_proxy")
	origin := target.Scheme + "://" + target.Host

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.Out.Host = target.Host
			pr.Out.Header.Set("Origin", origin)
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.WarnContext(r.Context(), "anki proxy failed", slog.String("error", err.Error()))
			writeError(w, http.StatusBadGateway, "anki unavailable")
		},
	}

	return http.StripPrefix(AnkiPrefix, proxy)
}
