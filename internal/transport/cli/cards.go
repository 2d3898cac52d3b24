package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCardsCmd(a *cliApp) *cobra.Command {
	var info bool

	cmd := &cobra.Command{
		Use:   "cards <deck>",
		Short: "List the cards of a deck",
		Long:  "List the card ids of a deck. With --info, print AnkiConnect's description of each card as one JSON object per line.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(func(d *Deps) error {
				out := cmd.OutOrStdout()

				ids, err := d.Anki.FindCards(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				if !info {
					for _, id := range ids {
						fmt.Fprintln(out, id)
					}
					return nil
				}
				if len(ids) == 0 {
					return nil
				}

				cards, err := d.Anki.CardsInfo(cmd.Context(), ids)
				if err != nil {
					return err
				}
				for _, raw := range cards {
					var buf bytes.Buffer
					if err := json.Compact(&buf, raw); err != nil {
						return fmt.Errorf("card info: %w", err)
					}
					fmt.Fprintln(out, buf.String())
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&info, "info", false, "print full card info")
	return cmd
}
