// Package cli implements the wordcards command line.
package cli

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordcards/internal/domain"
	"github.com/heartmarshall/wordcards/internal/render"
	"github.com/heartmarshall/wordcards/internal/service/translate"
)

type translator interface {
	TranslateAll(ctx context.Context, words []string) []translate.Result
}

type ankiStore interface {
	DeckNames(ctx context.Context) ([]string, error)
	DeckNamesAndIDs(ctx context.Context) (map[string]int64, error)
	FindCards(ctx context.Context, deck string) ([]int64, error)
	CardsInfo(ctx context.Context, ids []int64) ([]json.RawMessage, error)
	AddNote(ctx context.Context, note domain.Note) (*int64, error)
	AddNotes(ctx context.Context, notes []domain.Note) ([]*int64, error)
}

type prefStore interface {
	PreferDark() (bool, error)
	SetPreferDark(dark bool) error
}

// Options are the global flags. WritePrefs is not a flag: commands that
// change a preference set it before loading.
type Options struct {
	ConfigPath string
	NoColor    bool
	Verbose    bool
	WritePrefs bool
}

// Deps is what the commands run against. Close releases them.
type Deps struct {
	Translator translator
	Anki       ankiStore
	Prefs      prefStore
	Getenv     func(string) string
	Logger     *slog.Logger
	ModelName  string
	Close      func() error
}

// Loader builds Deps from the global flags.
type Loader func(opts Options) (*Deps, error)

type cliApp struct {
	opts Options
	load Loader
}

// NewRootCommand builds the wordcards command tree.
func NewRootCommand(version string, load Loader) *cobra.Command {
	a := &cliApp{load: load}

	root := &cobra.Command{
		Use:           "wordcards",
		Short:         "Turn English words into Anki flashcards",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.ConfigPath, "config", "", "config file (default $CONFIG_PATH or ./config.yaml)")
	flags.BoolVar(&a.opts.NoColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&a.opts.Verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		newTranslateCmd(a),
		newAddCmd(a),
		newDecksCmd(a),
		newCardsCmd(a),
		newThemeCmd(a),
	)

	return root
}

// run loads Deps, calls fn and closes Deps afterwards.
func (a *cliApp) run(fn func(d *Deps) error) error {
	d, err := a.load(a.opts)
	if err != nil {
		return err
	}
	if d.Getenv == nil {
		d.Getenv = os.Getenv
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	runErr := fn(d)

	if d.Close != nil {
		if err := d.Close(); err != nil && runErr == nil {
			runErr = err
		}
	}
	return runErr
}

// renderer picks the palette: none with --no-color or NO_COLOR, otherwise the
// stored preference combined with the terminal's.
func (a *cliApp) renderer(d *Deps) *render.Renderer {
	if a.opts.NoColor || d.Getenv("NO_COLOR") != "" {
		return render.NewRenderer(render.Plain)
	}

	stored, err := d.Prefs.PreferDark()
	if err != nil {
		d.Logger.Warn("read theme preference", slog.String("error", err.Error()))
	}
	return render.NewRenderer(render.ThemeFor(render.UseDark(stored, d.Getenv)))
}
