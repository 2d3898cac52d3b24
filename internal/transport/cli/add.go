package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordcards/internal/domain"
	"github.com/heartmarshall/wordcards/internal/session"
)

func newAddCmd(a *cliApp) *cobra.Command {
	var (
		deck     string
		model    string
		oneByOne bool
	)

	cmd := &cobra.Command{
		Use:   "add --deck <name> [word...]",
		Short: "Look words up and add their cards to a deck",
		Long: "Look words up and add every card that could be built to an Anki deck.\n\n" +
			"Words are split on commas and newlines. With no arguments they are read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			return a.run(func(d *Deps) error {
				if model == "" {
					model = d.ModelName
				}

				var s *session.Session
				prompter := deckPrompter{w: cmd.ErrOrStderr(), decks: func() []string { return s.State().Decks }}
				s = session.New(d.Logger, d.Translator, d.Anki, prompter, model)

				ctx := cmd.Context()
				if err := s.Mount(ctx); err != nil {
					return err
				}
				if deck != "" {
					if decks := s.State().Decks; !slices.Contains(decks, deck) {
						return fmt.Errorf("unknown deck %q", deck)
					}
					if err := s.SelectDeck(deck); err != nil {
						return err
					}
				}

				failures, err := s.Submit(ctx, input)
				if err != nil {
					return err
				}
				printFailures(cmd.ErrOrStderr(), failures)
				if len(s.State().Cards) == 0 {
					return errNoCards
				}

				if oneByOne {
					return addEach(cmd, s)
				}
				return addAll(cmd, s)
			})
		},
	}

	cmd.Flags().StringVarP(&deck, "deck", "d", "", "target deck")
	cmd.Flags().StringVar(&model, "model", "", "note type (default from config)")
	cmd.Flags().BoolVar(&oneByOne, "one-by-one", false, "add cards one request at a time and keep going past rejected ones")

	return cmd
}

func addAll(cmd *cobra.Command, s *session.Session) error {
	cards := s.State().Cards
	ids, err := s.AddAllCards(cmd.Context())
	if err != nil {
		return err
	}

	added := 0
	for i, c := range cards {
		var id *int64
		if i < len(ids) {
			id = ids[i]
		}
		if reportAdded(cmd.OutOrStdout(), c.ID, id) {
			added++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d cards added to %s\n", added, len(cards), s.State().SelectedDeck)
	return nil
}

func addEach(cmd *cobra.Command, s *session.Session) error {
	cards := s.State().Cards

	var errs []error
	added := 0
	for _, c := range cards {
		id, err := s.AddCard(cmd.Context(), c.ID)
		if errors.Is(err, domain.ErrNoDeckSelected) {
			return err
		}
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "card #%d: %v\n", c.ID, err)
			errs = append(errs, err)
			continue
		}
		if reportAdded(cmd.OutOrStdout(), c.ID, id) {
			added++
			if err := s.RemoveCard(c.ID); err != nil {
				return err
			}
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d cards added to %s\n", added, len(cards), s.State().SelectedDeck)

	if len(errs) == len(cards) {
		return errors.Join(errs...)
	}
	return nil
}

func reportAdded(w io.Writer, cardID int64, noteID *int64) bool {
	if noteID == nil {
		fmt.Fprintf(w, "card #%d: rejected\n", cardID)
		return false
	}
	fmt.Fprintf(w, "card #%d: note %d\n", cardID, *noteID)
	return true
}
