package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordcards/internal/service/translate"
)

const maxStdinBytes = 1 << 20

// readInput joins the arguments with commas, or reads stdin when there are none.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, ","), nil
	}
	b, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxStdinBytes))
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func printFailures(w io.Writer, failures []translate.Result) {
	for _, f := range failures {
		fmt.Fprintf(w, "%s: %v\n", f.Word, f.Err)
	}
}

// deckPrompter tells the user to pick a deck with --deck.
type deckPrompter struct {
	w     io.Writer
	decks func() []string
}

func (p deckPrompter) PromptSelectDeck() {
	decks := p.decks()
	if len(decks) == 0 {
		fmt.Fprintln(p.w, "no deck selected: pass --deck <name>")
		return
	}
	fmt.Fprintf(p.w, "no deck selected: pass --deck <name> (one of: %s)\n", strings.Join(decks, ", "))
}
