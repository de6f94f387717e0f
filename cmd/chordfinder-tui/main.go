// Command chordfinder-tui is an interactive chord explorer.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/chordfinder/internal/config"
	"github.com/handiism/chordfinder/internal/instrument"
	"github.com/handiism/chordfinder/internal/precompute"
	"github.com/handiism/chordfinder/internal/tui"
)

func main() {
	configFlag := flag.String("config", config.DefaultPath(), "Path to config file")
	instrumentFlag := flag.String("instrument", "", "Instrument to start with (overrides config)")
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *instrumentFlag != "" {
		settings.DefaultInstrument = *instrumentFlag
	}

	registry := instrument.DefaultRegistry()
	if settings.InstrumentCatalog != "" {
		custom, err := instrument.LoadCatalog(settings.InstrumentCatalog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading instruments: %v\n", err)
			os.Exit(1)
		}
		for _, inst := range custom {
			if err := registry.Register(inst); err != nil {
				fmt.Fprintf(os.Stderr, "Error loading instruments: %v\n", err)
				os.Exit(1)
			}
		}
	}

	// Logging would draw over the alternate screen.
	if err := tui.Run(settings, registry, precompute.NewCache()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
