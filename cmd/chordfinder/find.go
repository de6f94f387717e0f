package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/chordfinder/internal/diagram"
	"github.com/handiism/chordfinder/internal/instrument"
	ioutils "github.com/handiism/chordfinder/internal/io"
	"github.com/handiism/chordfinder/internal/precompute"
)

type findOptions struct {
	top     int
	diagram string
	out     string
}

func newFindCmd(root *rootOptions) *cobra.Command {
	opts := &findOptions{}

	cmd := &cobra.Command{
		Use:   "find CHORD...",
		Short: "List the easiest fingerings for chords",
		Long: `List the easiest fingerings for one or more chords on the selected
instrument, best first.

Chords the instrument cannot voice are simplified first: the bass note is
dropped when the instrument has no bass, and sevenths and sixths become
triads on instruments with fewer than four strings.

Examples:
  chordfinder find Am C G
  chordfinder find Bm7 --top 10 --diagram none
  chordfinder find F#m --diagram png --out ./charts`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, root.app, opts, args)
		},
	}

	cmd.Flags().IntVarP(&opts.top, "top", "n", 0, "fingerings to list per chord (default from settings, -1 for all)")
	cmd.Flags().StringVar(&opts.diagram, "diagram", "", "diagram of the best fingering: none, ascii or png")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "directory for png diagrams (default from settings)")
	return cmd
}

func runFind(cmd *cobra.Command, a *app, opts *findOptions, args []string) error {
	inst, err := a.instrument()
	if err != nil {
		return err
	}

	top := a.settings.TopFingerings
	if opts.top != 0 {
		top = opts.top
	}
	format := a.settings.DiagramFormat
	if opts.diagram != "" {
		format = opts.diagram
	}
	switch format {
	case "none", "ascii", "png":
	default:
		return fmt.Errorf("unknown diagram format %q", format)
	}
	outDir := a.settings.OutputPath
	if opts.out != "" {
		outDir = opts.out
	}

	w := cmd.OutOrStdout()
	charts := diagram.NewChartRenderer()
	for i, arg := range args {
		chord, err := parseChord(arg)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}

		entry := a.cache.Lookup(chord, inst)
		printEntry(w, entry, inst, top)

		best, ok := entry.Best()
		if !ok {
			continue
		}
		switch format {
		case "ascii":
			fmt.Fprintln(w)
			fmt.Fprint(w, diagram.ASCII(entry.Searched.String(), best))
		case "png":
			png, err := charts.RenderPNG(cmd.Context(), entry.Searched.String(), best, a.settings.ChartWidth, a.settings.ChartHeight)
			if err != nil {
				return fmt.Errorf("render %s: %w", chord, err)
			}
			path := ioutils.OutputPath(outDir, chord.String()+" "+inst.ID, ".png")
			if err := ioutils.WriteFile(cmd.Context(), path, png); err != nil {
				return err
			}
			a.logger.Info("diagram written", zap.String("chord", chord.String()), zap.String("path", path))
			fmt.Fprintf(w, "\ndiagram: %s\n", path)
		}
	}
	return nil
}

func printEntry(w io.Writer, entry *precompute.Entry, inst *instrument.Instrument, top int) {
	fmt.Fprintf(w, "%s on %s (%s)\n", entry.Requested, inst.Name, inst.Tuning())
	for _, d := range entry.Downgrades {
		fmt.Fprintf(w, "  %s\n", d)
	}

	if len(entry.Fingerings) == 0 {
		fmt.Fprintln(w, "  no fingering found")
		return
	}

	ranked := entry.Top(top)
	width := 0
	for _, r := range ranked {
		width = max(width, len(r.Fingering.String()))
	}
	for i, r := range ranked {
		f := r.Fingering.String()
		fmt.Fprintf(w, "  %2d. %s%s  penalty %d\n", i+1, f, strings.Repeat(" ", width-len(f)), r.Penalty)
	}
	if len(ranked) < len(entry.Fingerings) {
		fmt.Fprintf(w, "  ... %d more\n", len(entry.Fingerings)-len(ranked))
	}
}
