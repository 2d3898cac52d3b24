package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

func newDecksCmd(a *cliApp) *cobra.Command {
	var withIDs bool

	cmd := &cobra.Command{
		Use:   "decks",
		Short: "List Anki decks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(func(d *Deps) error {
				out := cmd.OutOrStdout()

				if !withIDs {
					decks, err := d.Anki.DeckNames(cmd.Context())
					if err != nil {
						return err
					}
					for _, name := range decks {
						fmt.Fprintln(out, name)
					}
					return nil
				}

				decks, err := d.Anki.DeckNamesAndIDs(cmd.Context())
				if err != nil {
					return err
				}
				names := make([]string, 0, len(decks))
				for name := range decks {
					names = append(names, name)
				}
				slices.Sort(names)
				for _, name := range names {
					fmt.Fprintf(out, "%d\t%s\n", decks[name], name)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&withIDs, "ids", false, "print deck ids")
	return cmd
}
