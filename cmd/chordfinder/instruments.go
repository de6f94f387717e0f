package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/handiism/chordfinder/internal/instrument"
)

func newInstrumentsCmd(root *rootOptions) *cobra.Command {
	var export bool

	cmd := &cobra.Command{
		Use:   "instruments",
		Short: "List known instruments",
		Long: `List the built-in instruments and those loaded from the instrument
catalog named in the settings.

With --export the list is written as a catalog file that can be edited
and loaded back through instrument_catalog.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := root.app.registry.All()
			if export {
				data, err := instrument.MarshalCatalog(all)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), instrumentTable(all, root.app.settings.DefaultInstrument))
			return nil
		},
	}

	cmd.Flags().BoolVar(&export, "export", false, "write a YAML catalog instead of a table")
	return cmd
}

func instrumentTable(all []*instrument.Instrument, selected string) string {
	rows := make([][]string, 0, len(all))
	for _, inst := range all {
		frets := 0
		for _, s := range inst.Strings {
			frets = max(frets, s.Frets)
		}
		id := inst.ID
		if id == selected {
			id += " *"
		}
		bass := "no"
		if inst.RequiresBass {
			bass = "yes"
		}
		rows = append(rows, []string{id, inst.Name, inst.Tuning(), strconv.Itoa(frets), bass})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "TUNING", "FRETS", "BASS").
		Rows(rows...).
		String()
}
