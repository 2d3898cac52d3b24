package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordcards/internal/adapter/anki"
	"github.com/heartmarshall/wordcards/internal/adapter/provider/iciba"
	"github.com/heartmarshall/wordcards/internal/config"
	"github.com/heartmarshall/wordcards/internal/service/translate"
)

// NewTranslateService builds the dictionary client and the translate service
// on top of it.
func NewTranslateService(cfg config.DictionaryConfig, logger *slog.Logger) *translate.Service {
	dict := iciba.NewProvider(
		iciba.Credentials{Client: cfg.Client, Key: cfg.Key, Secret: cfg.Secret},
		logger,
		iciba.WithBaseURL(cfg.BaseURL),
		iciba.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
	return translate.NewService(logger, dict, cfg.MaxConcurrent)
}

// NewAnkiClient builds the AnkiConnect client.
func NewAnkiClient(cfg config.AnkiConfig, logger *slog.Logger) *anki.Client {
	return anki.NewClient(cfg.URL, cfg.Timeout, logger)
}
