package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordcards/internal/render"
)

func newThemeCmd(a *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [dark|light|toggle]",
		Short: "Show or change the color theme",
		Long: "Show or change the color theme.\n\n" +
			"The theme is dark when you chose dark or when the terminal reports a dark background.\n" +
			"\"light\" clears your choice, so a dark terminal still wins.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a.opts.WritePrefs = len(args) == 1
			return a.run(func(d *Deps) error {
				stored, err := d.Prefs.PreferDark()
				if err != nil {
					return err
				}

				if len(args) == 1 {
					switch args[0] {
					case "dark":
						stored = true
					case "light":
						stored = false
					case "toggle":
						stored = !render.UseDark(stored, d.Getenv)
					default:
						return fmt.Errorf("unknown theme %q: want dark, light or toggle", args[0])
					}
					if err := d.Prefs.SetPreferDark(stored); err != nil {
						return err
					}
				}

				effective := render.ThemeFor(render.UseDark(stored, d.Getenv))
				fmt.Fprintf(cmd.OutOrStdout(), "theme: %s (saved preference: %s)\n", effective.Name, preference(stored))
				return nil
			})
		},
	}
}

func preference(dark bool) string {
	if dark {
		return "dark"
	}
	return "none"
}
