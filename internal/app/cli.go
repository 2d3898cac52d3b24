package app

import (
	"os"

	"github.com/heartmarshall/wordcards/internal/adapter/prefs"
	"github.com/heartmarshall/wordcards/internal/config"
	"github.com/heartmarshall/wordcards/internal/transport/cli"
)

// NewCLIDeps is the cli.Loader for cmd/wordcards. --config wins over
// CONFIG_PATH. Logs go to stderr at warn level unless --verbose is set. The
// preference file is opened on first use, read-only unless opts.WritePrefs.
func NewCLIDeps(opts cli.Options) (*cli.Deps, error) {
	path := opts.ConfigPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Log
	if !opts.Verbose {
		logCfg.Level = "warn"
	}
	logger := NewLoggerTo(os.Stderr, logCfg)

	store := prefs.NewLazy(cfg.Prefs.Path, opts.WritePrefs)

	return &cli.Deps{
		Translator: NewTranslateService(cfg.Dictionary, logger),
		Anki:       NewAnkiClient(cfg.Anki, logger),
		Prefs:      store,
		Getenv:     os.Getenv,
		Logger:     logger,
		ModelName:  cfg.Anki.ModelName,
		Close:      store.Close,
	}, nil
}
