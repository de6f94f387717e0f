package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/chordfinder/internal/config"
	"github.com/handiism/chordfinder/internal/instrument"
	"github.com/handiism/chordfinder/internal/logging"
	"github.com/handiism/chordfinder/internal/metrics"
	"github.com/handiism/chordfinder/internal/model"
	"github.com/handiism/chordfinder/internal/precompute"
)

// rootOptions holds the persistent flags and the app built from them.
type rootOptions struct {
	configPath string
	logLevel   string
	instrument string

	app *app
}

// app is everything a subcommand needs, built once per invocation.
type app struct {
	settings *config.Settings
	logger   *zap.Logger
	registry *instrument.Registry
	recorder *metrics.Recorder
	cache    *precompute.Cache
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "chordfinder",
		Short: "Find playable fingerings for chords",
		Long: `chordfinder searches every way to play a chord on a fretted instrument,
ranks the results by how easy they are to play and draws them.

Examples:
  # Easiest guitar shapes for A minor
  chordfinder find Am

  # Slash chords on a ukulele fall back to the plain chord
  chordfinder find C/G --instrument ukulele

  # Annotate a chord sheet
  chordfinder song wonderwall.txt --format annotated`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts.app = a
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if opts.app != nil {
				_ = opts.app.logger.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultPath(), "settings file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (overrides settings)")
	flags.StringVarP(&opts.instrument, "instrument", "i", "", "instrument ID (overrides settings)")

	cmd.AddCommand(
		newFindCmd(opts),
		newValidateCmd(opts),
		newInstrumentsCmd(opts),
		newSongCmd(opts),
		newPrecomputeCmd(opts),
	)
	return cmd
}

func newApp(opts *rootOptions, stderr io.Writer) (*app, error) {
	settings, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		settings.LogLevel = opts.logLevel
	}
	if opts.instrument != "" {
		settings.DefaultInstrument = opts.instrument
	}

	logger, err := logging.New(logging.Config{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		Output: stderr,
	})
	if err != nil {
		return nil, err
	}

	registry := instrument.DefaultRegistry()
	if settings.InstrumentCatalog != "" {
		custom, err := instrument.LoadCatalog(settings.InstrumentCatalog)
		if err != nil {
			return nil, fmt.Errorf("load instrument catalog: %w", err)
		}
		for _, inst := range custom {
			if err := registry.Register(inst); err != nil {
				return nil, err
			}
		}
		logger.Debug("instrument catalog loaded",
			zap.String("path", settings.InstrumentCatalog),
			zap.Int("instruments", len(custom)),
		)
	}

	recorder := metrics.NewRecorder()
	cache := precompute.NewCache(
		precompute.WithLogger(logger),
		precompute.WithRecorder(recorder),
	)

	return &app{
		settings: settings,
		logger:   logger,
		registry: registry,
		recorder: recorder,
		cache:    cache,
	}, nil
}

// instrument returns the selected instrument.
func (a *app) instrument() (*instrument.Instrument, error) {
	return a.registry.Get(a.settings.DefaultInstrument)
}

func parseChord(text string) (model.Chord, error) {
	chord, ok := model.ParseChord(text)
	if !ok {
		return model.Chord{}, fmt.Errorf("cannot parse chord %q", text)
	}
	return chord, nil
}
