package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/chordfinder/internal/instrument"
	"github.com/handiism/chordfinder/internal/precompute"
)

type precomputeOptions struct {
	all     bool
	slash   bool
	metrics string
	verbose bool
}

func newPrecomputeCmd(root *rootOptions) *cobra.Command {
	opts := &precomputeOptions{}

	cmd := &cobra.Command{
		Use:   "precompute [INSTRUMENT...]",
		Short: "Search every chord ahead of time",
		Long: `Search and rank every root and quality on one or more instruments, and
every bass note as well with --slash. The selected instrument is used when
none is named.

Search statistics can be written in the Prometheus text format for the
node_exporter textfile collector.

Examples:
  chordfinder precompute
  chordfinder precompute guitar ukulele --slash
  chordfinder precompute --all --metrics /var/lib/node_exporter/chordfinder.prom`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrecompute(cmd, root.app, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.all, "all", false, "precompute every known instrument")
	cmd.Flags().BoolVar(&opts.slash, "slash", false, "include slash chords (default from settings)")
	cmd.Flags().StringVar(&opts.metrics, "metrics", "", "write search metrics to this textfile (default from settings)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "show every downgraded chord")
	return cmd
}

func runPrecompute(cmd *cobra.Command, a *app, opts *precomputeOptions, args []string) error {
	instruments, err := selectInstruments(a, opts.all, args)
	if err != nil {
		return err
	}

	settings := *a.settings
	if cmd.Flags().Changed("slash") {
		settings.PrecomputeSlashChords = opts.slash
	}
	metricsPath := settings.MetricsTextfile
	if opts.metrics != "" {
		metricsPath = opts.metrics
	}

	w := cmd.OutOrStdout()
	manager := precompute.NewManager(&settings, a.cache, func(event precompute.ProgressEvent) {
		if event.Level == precompute.LevelVerbose && !opts.verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case precompute.LevelError:
			prefix = "[x] "
		case precompute.LevelWarning:
			prefix = "[!] "
		case precompute.LevelSuccess:
			prefix = "[+] "
		case precompute.LevelInfo:
			prefix = "[i] "
		default:
			prefix = "    "
		}

		fmt.Fprintln(w, prefix+event.Message)
	})

	runErr := manager.Precompute(cmd.Context(), instruments)
	done, total := manager.GetProgress()
	fmt.Fprintf(w, "\nPrecomputed %d/%d chords, %d cached\n", done, total, a.cache.Len())

	if metricsPath != "" {
		if err := a.recorder.WriteTextfile(metricsPath); err != nil {
			return errors.Join(runErr, fmt.Errorf("write metrics: %w", err))
		}
		a.logger.Info("metrics written", zap.String("path", metricsPath))
	}
	return runErr
}

func selectInstruments(a *app, all bool, ids []string) ([]*instrument.Instrument, error) {
	if all {
		return a.registry.All(), nil
	}
	if len(ids) == 0 {
		inst, err := a.instrument()
		if err != nil {
			return nil, err
		}
		return []*instrument.Instrument{inst}, nil
	}

	out := make([]*instrument.Instrument, 0, len(ids))
	for _, id := range ids {
		inst, err := a.registry.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}
