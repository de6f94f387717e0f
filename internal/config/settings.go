package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "CHORDFINDER_"

// Settings holds all configuration options.
type Settings struct {
	// Instrument settings
	DefaultInstrument string `koanf:"default_instrument" yaml:"default_instrument"`
	InstrumentCatalog string `koanf:"instrument_catalog" yaml:"instrument_catalog"` // optional YAML catalog

	// Output settings
	TopFingerings   int    `koanf:"top_fingerings" yaml:"top_fingerings"`
	DiagramFormat   string `koanf:"diagram_format" yaml:"diagram_format"` // none, ascii, png
	ChartWidth      int    `koanf:"chart_width" yaml:"chart_width"`
	ChartHeight     int    `koanf:"chart_height" yaml:"chart_height"`
	OutputPath      string `koanf:"output_path" yaml:"output_path"`
	TablatureFormat string `koanf:"tablature_format" yaml:"tablature_format"` // annotated, legend, chordpro

	// Precompute settings
	MaxConcurrentInstruments int    `koanf:"max_concurrent_instruments" yaml:"max_concurrent_instruments"`
	MaxConcurrentChords      int    `koanf:"max_concurrent_chords" yaml:"max_concurrent_chords"`
	PrecomputeSlashChords    bool   `koanf:"precompute_slash_chords" yaml:"precompute_slash_chords"`
	MetricsTextfile          string `koanf:"metrics_textfile" yaml:"metrics_textfile"`

	// Logging settings
	LogLevel  string `koanf:"log_level" yaml:"log_level"`
	LogFormat string `koanf:"log_format" yaml:"log_format"` // console, json
}

// DefaultPath returns the settings file location under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "chordfinder", "settings.yaml")
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		DefaultInstrument: "guitar",

		TopFingerings:   5,
		DiagramFormat:   "ascii",
		ChartWidth:      240,
		ChartHeight:     300,
		OutputPath:      filepath.Join(homeDir, "Music", "Chords"),
		TablatureFormat: "annotated",

		MaxConcurrentInstruments: 2,
		MaxConcurrentChords:      8,
		PrecomputeSlashChords:    false,

		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Load reads settings from a YAML file and applies CHORDFINDER_*
// environment overrides on top. A missing file yields the defaults.
//
// Environment names map to keys by stripping the prefix and lowercasing:
//
//	CHORDFINDER_TOP_FINGERINGS=10  -> top_fingerings
//	CHORDFINDER_DEFAULT_INSTRUMENT -> default_instrument
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load settings file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	settings := DefaultSettings()
	if err := k.Unmarshal("", settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a YAML file, creating parent directories.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yamlv3.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings the tools cannot run with.
func (s *Settings) Validate() error {
	var errs []error
	if s.DefaultInstrument == "" {
		errs = append(errs, errors.New("default_instrument must not be empty"))
	}
	if s.TopFingerings < 1 {
		errs = append(errs, fmt.Errorf("top_fingerings must be positive, got %d", s.TopFingerings))
	}
	if s.MaxConcurrentInstruments < 1 || s.MaxConcurrentChords < 1 {
		errs = append(errs, errors.New("concurrency limits must be positive"))
	}
	if s.ChartWidth < 16 || s.ChartHeight < 16 {
		errs = append(errs, fmt.Errorf("chart size %dx%d is too small", s.ChartWidth, s.ChartHeight))
	}
	switch s.DiagramFormat {
	case "none", "ascii", "png":
	default:
		errs = append(errs, fmt.Errorf("unknown diagram_format %q", s.DiagramFormat))
	}
	switch s.TablatureFormat {
	case "annotated", "legend", "chordpro":
	default:
		errs = append(errs, fmt.Errorf("unknown tablature_format %q", s.TablatureFormat))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}
