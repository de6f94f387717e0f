package finder

import (
	"errors"
	"fmt"

	"github.com/handiism/chordfinder/internal/instrument"
	"github.com/handiism/chordfinder/internal/model"
)

var (
	// ErrWrongStringCount means the fingering does not cover every string.
	ErrWrongStringCount = errors.New("fingering does not match the instrument's string count")

	// ErrFretOutOfRange means a fret is negative or lies beyond the
	// string's fret count.
	ErrFretOutOfRange = errors.New("fret out of range")

	// ErrNoNotes means every string is muted.
	ErrNoNotes = errors.New("no string is played")

	// ErrBadBass means the lowest sounded note is not the chord's bass.
	ErrBadBass = errors.New("lowest note is not the bass")

	// ErrBadNotes means the sounded notes do not match the chord's tones.
	ErrBadNotes = errors.New("sounded notes do not match the chord")
)

// Check reports why fingering does not sound chord on inst, or nil when
// it does. Only the leaf rules are applied: the hand-span limit used while
// searching is not, so any playable shape can be checked.
func Check(chord model.Chord, inst *instrument.Instrument, fingering Fingering) error {
	if fingering.Len() != inst.StringCount() {
		return fmt.Errorf("%w: got %d, want %d", ErrWrongStringCount, fingering.Len(), inst.StringCount())
	}

	s := newState(inst)
	for i, fret := range fingering.frets {
		if fret == Muted {
			s.push(fret)
			continue
		}
		if fret < 0 || fret >= inst.Strings[i].Frets {
			return fmt.Errorf("%w: string %d plays frets 0-%d, got %d", ErrFretOutOfRange, i+1, inst.Strings[i].Frets-1, fret)
		}
		s.push(fret)
	}

	switch s.check(chord) {
	case rejectedNoNotes:
		return ErrNoNotes
	case rejectedBadBass:
		return fmt.Errorf("%w: want %s", ErrBadBass, chord.Bass)
	case rejectedBadNotes:
		return fmt.Errorf("%w: want %s", ErrBadNotes, chord.PitchClasses())
	default:
		return nil
	}
}

// Validate reports whether fingering sounds chord on inst.
func Validate(chord model.Chord, inst *instrument.Instrument, fingering Fingering) bool {
	return Check(chord, inst, fingering) == nil
}
