package instrument

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/handiism/chordfinder/internal/model"
)

// catalogFile is the on-disk layout of a YAML instrument catalog:
//
//	instruments:
//	  - id: mandolin
//	    name: Mandolin
//	    requires_bass: false
//	    strings: ["G3:17", "G3:17", "D4:17", "D4:17", "A4:17", "A4:17", "E5:17", "E5:17"]
type catalogFile struct {
	Instruments []catalogEntry `yaml:"instruments" validate:"dive"`
}

// catalogEntry is one instrument as written in a catalog file.
type catalogEntry struct {
	ID           string   `yaml:"id" validate:"required"`
	Name         string   `yaml:"name" validate:"required"`
	Description  string   `yaml:"description"`
	RequiresBass bool     `yaml:"requires_bass"`
	Strings      []string `yaml:"strings" validate:"required,min=1,max=16,dive,stringspec"`
}

// ToInstrument converts the entry to a validated Instrument.
func (e *catalogEntry) ToInstrument() (*Instrument, error) {
	strs := make([]String, 0, len(e.Strings))
	for _, spec := range e.Strings {
		s, err := ParseString(spec)
		if err != nil {
			return nil, fmt.Errorf("instrument %q: %w", e.ID, err)
		}
		strs = append(strs, s)
	}

	inst := New(e.ID, e.Name, e.Description, e.RequiresBass, strs...)
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// ParseString parses a string definition "<note>:<frets>", e.g. "E2:24".
func ParseString(spec string) (String, error) {
	noteText, fretText, ok := strings.Cut(spec, ":")
	if !ok {
		return String{}, fmt.Errorf("invalid string %q: expected <note>:<frets>", spec)
	}

	open, err := model.ParseNote(strings.TrimSpace(noteText))
	if err != nil {
		return String{}, fmt.Errorf("invalid string %q: %w", spec, err)
	}

	frets, err := strconv.Atoi(strings.TrimSpace(fretText))
	if err != nil || frets < 1 {
		return String{}, fmt.Errorf("invalid string %q: bad fret count", spec)
	}

	return String{Open: open, Frets: frets}, nil
}

// ParseCatalog decodes and validates a YAML instrument catalog.
func ParseCatalog(data []byte) ([]*Instrument, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse instrument catalog: %w", err)
	}
	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("invalid instrument catalog: %w", err)
	}

	out := make([]*Instrument, 0, len(file.Instruments))
	for i := range file.Instruments {
		inst, err := file.Instruments[i].ToInstrument()
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// LoadCatalog reads a YAML instrument catalog from path.
func LoadCatalog(path string) ([]*Instrument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read instrument catalog: %w", err)
	}
	return ParseCatalog(data)
}

// MarshalCatalog encodes instruments in the catalog layout.
func MarshalCatalog(instruments []*Instrument) ([]byte, error) {
	file := catalogFile{Instruments: make([]catalogEntry, 0, len(instruments))}
	for _, inst := range instruments {
		entry := catalogEntry{
			ID:           inst.ID,
			Name:         inst.Name,
			Description:  inst.Description,
			RequiresBass: inst.RequiresBass,
		}
		for _, s := range inst.Strings {
			entry.Strings = append(entry.Strings, fmt.Sprintf("%s:%d", s.Open, s.Frets))
		}
		file.Instruments = append(file.Instruments, entry)
	}
	return yaml.Marshal(&file)
}
