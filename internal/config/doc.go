// Package config provides configuration management for chordfinder.
//
// This package handles:
//   - Default configuration values
//   - Loading settings from a YAML file with koanf
//   - CHORDFINDER_* environment overrides
//   - Saving settings back to YAML
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Guitar, top 5 fingerings, ASCII diagrams, annotated tablature
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // malformed file or invalid values; a missing file yields defaults
//	}
//
// Environment variables win over the file:
//
//	CHORDFINDER_DEFAULT_INSTRUMENT=ukulele chordfinder find C
//
// # Saving Settings
//
//	settings.TopFingerings = 10
//	err := settings.Save(config.DefaultPath())
package config
