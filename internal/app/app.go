package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/heartmarshall/wordcards/internal/config"
	"github.com/heartmarshall/wordcards/internal/transport/middleware"
	"github.com/heartmarshall/wordcards/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, builds the HTTP
// handler and serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	handler, cleanup, err := NewHandler(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// NewHandler wires services, handlers and middleware into one http.Handler.
// The returned cleanup releases background resources.
func NewHandler(cfg *config.Config, logger *slog.Logger) (http.Handler, func(), error) {
	ankiURL, err := url.Parse(cfg.Anki.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("app: anki url: %w", err)
	}

	translateSvc := NewTranslateService(cfg.Dictionary, logger)
	ankiClient := NewAnkiClient(cfg.Anki, logger)

	handlers := rest.Handlers{
		Translate: rest.NewTranslateHandler(translateSvc, logger),
		Health:    rest.NewHealthHandler(map[string]rest.Pinger{"anki": ankiClient}, BuildVersion()),
		AnkiProxy: rest.NewAnkiProxy(ankiURL, logger),
	}

	cleanup := func() {}
	if cfg.Dictionary.RateLimit > 0 {
		limiter := middleware.NewLookupLimiter(cfg.Dictionary.RateLimit, time.Minute)
		handlers.TranslateLimit = limiter.Middleware()
		cleanup = limiter.Stop
	}

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)

	return chain(rest.NewRouter(handlers)), cleanup, nil
}

func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("app: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", shutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	return nil
}
