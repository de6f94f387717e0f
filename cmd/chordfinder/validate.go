package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/chordfinder/internal/finder"
	"github.com/handiism/chordfinder/internal/ranker"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate CHORD FINGERING",
		Short: "Check that a fingering plays a chord",
		Long: `Check that a fingering plays exactly the notes of a chord on the selected
instrument. Frets are listed from the lowest string; use X for a muted
string and separate frets with commas once any fret reaches 10.

Examples:
  chordfinder validate C X32010
  chordfinder validate D/F# 2X0232
  chordfinder validate Bm X,2,4,4,3,2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := root.app
			inst, err := a.instrument()
			if err != nil {
				return err
			}
			chord, err := parseChord(args[0])
			if err != nil {
				return err
			}
			fingering, err := finder.ParseFingering(args[1])
			if err != nil {
				return err
			}

			if err := finder.Check(chord, inst, fingering); err != nil {
				return fmt.Errorf("%s is not %s on %s: %w", fingering, chord, inst.Name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s plays %s on %s (penalty %d)\n",
				fingering, chord, inst.Name, ranker.Penalty(fingering))
			return nil
		},
	}
}
