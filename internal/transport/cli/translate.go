package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordcards/internal/session"
)

var errNoCards = errors.New("no cards built")

func newTranslateCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "translate [word...]",
		Short: "Look words up and print their cards",
		Long: "Look words up and print their cards.\n\n" +
			"Words are split on commas and newlines. With no arguments they are read from stdin.",
		Example: "  wordcards translate run,walk\n  printf 'run\\nwalk\\n' | wordcards translate",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			return a.run(func(d *Deps) error {
				s := session.New(d.Logger, d.Translator, d.Anki, deckPrompter{w: cmd.ErrOrStderr(), decks: func() []string { return nil }}, d.ModelName)

				failures, err := s.Submit(cmd.Context(), input)
				if err != nil {
					return err
				}

				cards := s.State().Cards
				if err := a.renderer(d).WriteCards(cmd.OutOrStdout(), cards); err != nil {
					return err
				}
				printFailures(cmd.ErrOrStderr(), failures)

				if len(cards) == 0 {
					return errNoCards
				}
				return nil
			})
		},
	}
}
