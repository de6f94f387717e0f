package finder

import (
	"slices"

	"github.com/handiism/chordfinder/internal/instrument"
	"github.com/handiism/chordfinder/internal/model"
)

// maxSpan is the widest stretch, in frets, allowed between the lowest and
// highest stopped frets of a fingering.
const maxSpan = 4

// multiset is a sorted multiset of ints.
type multiset []int

func (m *multiset) insert(v int) {
	i, _ := slices.BinarySearch(*m, v)
	*m = slices.Insert(*m, i, v)
}

func (m *multiset) remove(v int) {
	if i, ok := slices.BinarySearch(*m, v); ok {
		*m = slices.Delete(*m, i, i+1)
	}
}

// state is the mutable part of one search. It is created per call and
// never shared.
type state struct {
	inst       *instrument.Instrument
	placements []int
	frets      multiset // stopped frets, open strings excluded
	notes      multiset // ordinals of sounded notes
}

func newState(inst *instrument.Instrument) *state {
	n := inst.StringCount()
	return &state{
		inst:       inst,
		placements: make([]int, 0, n),
		frets:      make(multiset, 0, n),
		notes:      make(multiset, 0, n),
	}
}

// push places fret on the next unassigned string.
func (s *state) push(fret int) {
	idx := len(s.placements)
	s.placements = append(s.placements, fret)
	if fret == Muted {
		return
	}
	s.notes.insert(s.inst.Strings[idx].NoteAt(fret).Ordinal())
	if fret > 0 {
		s.frets.insert(fret)
	}
}

// pop undoes the most recent push.
func (s *state) pop() {
	idx := len(s.placements) - 1
	fret := s.placements[idx]
	s.placements = s.placements[:idx]
	if fret == Muted {
		return
	}
	s.notes.remove(s.inst.Strings[idx].NoteAt(fret).Ordinal())
	if fret > 0 {
		s.frets.remove(fret)
	}
}

// inRange reports whether fret keeps the hand within maxSpan frets of
// what is already stopped. Open strings are always in range.
func (s *state) inRange(fret int) bool {
	if fret == 0 || len(s.frets) == 0 {
		return true
	}
	lo, hi := s.frets[0], s.frets[len(s.frets)-1]
	return (hi <= maxSpan || fret >= hi-maxSpan) && fret <= lo+maxSpan
}

// verdict is the outcome of checking a complete placement.
type verdict int

const (
	accepted verdict = iota
	rejectedNoNotes
	rejectedBadBass
	rejectedBadNotes
)

// check validates a complete placement against chord.
func (s *state) check(chord model.Chord) verdict {
	if len(s.notes) == 0 {
		return rejectedNoNotes
	}

	lowest := model.KeyFromOrdinal(s.notes[0])
	if s.inst.RequiresBass && lowest != chord.Bass {
		return rejectedBadBass
	}

	// The lowest note only counts as a chord tone when the bass is the
	// root; a distinct bass is not part of the chord's own tones.
	sounded := []int(s.notes)
	if chord.HasDistinctBass() {
		sounded = sounded[1:]
	}
	var covered model.KeySet
	for _, ord := range sounded {
		covered = covered.With(model.KeyFromOrdinal(ord))
	}
	if covered != chord.PitchClasses() {
		return rejectedBadNotes
	}
	return accepted
}
