// Command server runs the wordcards HTTP API: dictionary lookups under
// /translate and a pass-through to AnkiConnect under /anki.
//
// Configuration is read from $CONFIG_PATH (or ./config.yaml) and the
// environment; a .env file in the working directory is loaded first if present.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/wordcards/internal/app"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("server stopped", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}
