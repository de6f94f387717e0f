package model

import (
	"fmt"
	"strconv"
)

// Note is an absolute pitch: a pitch class in a given octave.
//
// The ordinal of a note is Key.Ordinal() + 12*Octave, so C4 is 48 and
// E2 is 28. Notes are totally ordered by their ordinal.
type Note struct {
	Key    Key
	Octave int
}

// NewNote builds a note from a key and an octave.
func NewNote(key Key, octave int) Note {
	return Note{Key: key, Octave: octave}
}

// NoteFromOrdinal decodes an absolute semitone ordinal. Negative ordinals
// use floor semantics: -1 is B in octave -1.
func NoteFromOrdinal(ordinal int) Note {
	return Note{
		Key:    KeyFromOrdinal(ordinal),
		Octave: floorDiv(ordinal, KeyCount),
	}
}

// Ordinal returns the absolute semitone number of the note.
func (n Note) Ordinal() int {
	return n.Key.Ordinal() + KeyCount*n.Octave
}

// Add returns the note the given number of semitones away.
func (n Note) Add(semitones int) Note {
	return NoteFromOrdinal(n.Ordinal() + semitones)
}

// Compare returns -1, 0 or +1 depending on whether n sounds lower than,
// equal to, or higher than other.
func (n Note) Compare(other Note) int {
	a, b := n.Ordinal(), other.Ordinal()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether n sounds lower than other.
func (n Note) Less(other Note) bool {
	return n.Ordinal() < other.Ordinal()
}

// String renders the note in scientific pitch notation, e.g. "E2" or "Bb-1".
func (n Note) String() string {
	return n.Key.String() + strconv.Itoa(n.Octave)
}

// ParseNote parses scientific pitch notation such as "E2", "C#4" or "A-1".
func ParseNote(text string) (Note, error) {
	key, n, ok := parseKeyPrefix(text)
	if !ok {
		return Note{}, fmt.Errorf("invalid note %q: unknown key", text)
	}
	octave, err := strconv.Atoi(text[n:])
	if err != nil {
		return Note{}, fmt.Errorf("invalid note %q: bad octave: %w", text, err)
	}
	return NewNote(key, octave), nil
}
