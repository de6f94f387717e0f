package finder

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Muted marks a string that is not played.
const Muted = -1

// ErrInvalidFingering is returned by ParseFingering for malformed text.
var ErrInvalidFingering = errors.New("invalid fingering")

// Fingering assigns each string of an instrument either Muted or a fret.
//
// A Fingering is immutable: constructors copy their input and accessors
// return copies.
type Fingering struct {
	frets []int
}

// NewFingering builds a fingering from per-string frets, lowest string
// first. Use Muted for strings that are not played.
func NewFingering(frets ...int) Fingering {
	return Fingering{frets: slices.Clone(frets)}
}

// Len returns the number of strings covered.
func (f Fingering) Len() int {
	return len(f.frets)
}

// Fret returns the fret played on string i, or false when it is muted.
func (f Fingering) Fret(i int) (int, bool) {
	if f.frets[i] == Muted {
		return 0, false
	}
	return f.frets[i], true
}

// IsMuted reports whether string i is not played.
func (f Fingering) IsMuted(i int) bool {
	return f.frets[i] == Muted
}

// Frets returns a copy of the per-string frets, with Muted for unplayed strings.
func (f Fingering) Frets() []int {
	return slices.Clone(f.frets)
}

// Played returns the number of strings that sound.
func (f Fingering) Played() int {
	n := 0
	for _, fret := range f.frets {
		if fret != Muted {
			n++
		}
	}
	return n
}

// Symbols returns one symbol per string: "X" when muted, the fret number otherwise.
func (f Fingering) Symbols() []string {
	out := make([]string, len(f.frets))
	for i, fret := range f.frets {
		if fret == Muted {
			out[i] = "X"
		} else {
			out[i] = strconv.Itoa(fret)
		}
	}
	return out
}

// String renders the fingering as its symbols joined without separator,
// e.g. "X32010". When any fret is 10 or above the symbols are
// comma-separated ("X,10,12,12,12,10") so that 13 cannot be read as 1, 3.
func (f Fingering) String() string {
	sep := ""
	if slices.Max(append([]int{Muted}, f.frets...)) >= 10 {
		sep = ","
	}
	return strings.Join(f.Symbols(), sep)
}

// Equal reports whether both fingerings assign the same frets.
func (f Fingering) Equal(other Fingering) bool {
	return slices.Equal(f.frets, other.frets)
}

// ParseFingering reads either rendering produced by String. Separators may
// be commas or whitespace; "x" is accepted as well as "X".
func ParseFingering(text string) (Fingering, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Fingering{}, fmt.Errorf("%w: empty", ErrInvalidFingering)
	}

	var tokens []string
	if strings.ContainsAny(text, ", \t") {
		tokens = strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
	} else {
		tokens = strings.Split(text, "")
	}

	frets := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "X" || tok == "x" {
			frets = append(frets, Muted)
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 {
			return Fingering{}, fmt.Errorf("%w: bad symbol %q in %q", ErrInvalidFingering, tok, text)
		}
		frets = append(frets, n)
	}
	return Fingering{frets: frets}, nil
}
