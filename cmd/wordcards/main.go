// Command wordcards looks English words up in the iciba dictionary and turns
// them into Anki cards from the terminal.
//
//	wordcards translate run,walk
//	wordcards add --deck English run walk
//	wordcards decks
//	wordcards theme toggle
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/wordcards/internal/app"
	"github.com/heartmarshall/wordcards/internal/transport/cli"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(app.BuildVersion(), app.NewCLIDeps)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "wordcards:", err)
		stop()
		os.Exit(1)
	}
}
