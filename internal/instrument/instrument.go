package instrument

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/handiism/chordfinder/internal/model"
)

var (
	// ErrUnknownInstrument is returned when an instrument ID is not registered.
	ErrUnknownInstrument = errors.New("unknown instrument")

	// ErrDuplicateInstrument is returned when registering an ID twice.
	ErrDuplicateInstrument = errors.New("duplicate instrument")
)

// String is one string of a fretted instrument.
type String struct {
	// Open is the pitch of the string played without fretting.
	Open model.Note

	// Frets is the number of playable positions: frets 0 through Frets-1.
	Frets int `validate:"gte=1,lte=36"`
}

// NoteAt returns the pitch sounded when the string is stopped at fret.
func (s String) NoteAt(fret int) model.Note {
	return s.Open.Add(fret)
}

// Instrument describes a fretted string instrument.
//
// Instruments are treated as immutable once built: the finder and the
// caches key on the ID and never modify the strings.
type Instrument struct {
	// ID is the stable identifier, e.g. "guitar".
	ID string `validate:"required,max=64,excludesall= /\\"`

	// Name is the human readable name, e.g. "Guitar".
	Name string `validate:"required,max=128"`

	// Description is free-form text shown in listings.
	Description string `validate:"max=1024"`

	// Strings lists the strings from the lowest sounding to the highest.
	Strings []String `validate:"required,min=1,max=16,dive"`

	// RequiresBass is set for instruments with dedicated bass strings. On
	// such instruments the lowest sounded note of a fingering must be the
	// chord's bass.
	RequiresBass bool
}

// New builds an instrument from its strings, lowest first.
func New(id, name, description string, requiresBass bool, strings ...String) *Instrument {
	return &Instrument{
		ID:           id,
		Name:         name,
		Description:  description,
		Strings:      strings,
		RequiresBass: requiresBass,
	}
}

// StringCount returns the number of strings.
func (i *Instrument) StringCount() int {
	return len(i.Strings)
}

// Tuning renders the open strings, e.g. "E2 A2 D3 G3 B3 E4".
func (i *Instrument) Tuning() string {
	s := ""
	for idx, str := range i.Strings {
		if idx > 0 {
			s += " "
		}
		s += str.Open.String()
	}
	return s
}

// Validate checks the instrument's fields and string definitions.
func (i *Instrument) Validate() error {
	if err := validate.Struct(i); err != nil {
		return fmt.Errorf("invalid instrument %q: %w", i.ID, err)
	}
	return nil
}

// String returns the display name.
func (i *Instrument) String() string {
	return i.Name
}

// validate is shared by every instrument and catalog entry; validator
// instances are safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateNote, model.Note{})
	_ = v.RegisterValidation("stringspec", validateStringSpec)
	return v
}

// validateNote rejects notes whose key is outside the twelve pitch classes
// or whose octave is outside the audible range.
func validateNote(sl validator.StructLevel) {
	n := sl.Current().Interface().(model.Note)
	if !n.Key.Valid() {
		sl.ReportError(n.Key, "Key", "Key", "pitchclass", "")
	}
	if n.Octave < -1 || n.Octave > 9 {
		sl.ReportError(n.Octave, "Octave", "Octave", "octave", "")
	}
}

// validateStringSpec accepts catalog string definitions such as "E2:24".
func validateStringSpec(fl validator.FieldLevel) bool {
	_, err := ParseString(fl.Field().String())
	return err == nil
}
