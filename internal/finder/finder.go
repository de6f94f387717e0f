package finder

import (
	"time"

	"go.uber.org/zap"

	"github.com/handiism/chordfinder/internal/instrument"
	"github.com/handiism/chordfinder/internal/model"
)

// Stats counts the work done by one search.
type Stats struct {
	// Steps is the number of search nodes visited.
	Steps int

	// Checks is the number of complete placements validated.
	Checks int

	// NoNotes counts placements rejected because every string was muted.
	NoNotes int

	// BadBass counts placements whose lowest note was not the bass.
	BadBass int

	// BadNotes counts placements that missed a chord tone or added another.
	BadNotes int

	// Duration is the wall time of the search.
	Duration time.Duration
}

// Result is the outcome of Finder.Find.
type Result struct {
	// Requested is the chord passed to Find.
	Requested model.Chord

	// Searched is the chord actually searched after downgrades.
	Searched model.Chord

	// Downgrades lists the substitutions applied, in order.
	Downgrades []Downgrade

	// Instrument is the instrument searched.
	Instrument *instrument.Instrument

	// Fingerings holds every valid fingering in discovery order.
	Fingerings []Fingering

	Stats Stats
}

// Downgraded reports whether the searched chord differs from the request.
func (r Result) Downgraded() bool {
	return len(r.Downgrades) > 0
}

// Finder enumerates the fingerings of a chord on an instrument.
//
// A Finder holds no per-search state and is safe for concurrent use.
type Finder struct {
	logger *zap.Logger
}

// Option configures a Finder.
type Option func(*Finder)

// WithLogger sets the logger used for search diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Finder) {
		f.logger = logger
	}
}

// New creates a Finder.
func New(opts ...Option) *Finder {
	f := &Finder{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Find returns every fingering of chord on inst.
//
// The chord is first adapted to the instrument (see NextDowngrade). The
// search then walks the strings from lowest to highest; on each string it
// tries muting first and then every candidate fret in ascending order, so
// the order of Result.Fingerings is reproducible. Use the ranker package
// for presentation order.
//
// Find never fails: an impossible chord yields an empty result.
func (f *Finder) Find(chord model.Chord, inst *instrument.Instrument) Result {
	start := time.Now()

	searched, downgrades := Resolve(chord, inst)
	s := newSearch(searched, inst)
	s.run()

	res := Result{
		Requested:  chord,
		Searched:   searched,
		Downgrades: downgrades,
		Instrument: inst,
		Fingerings: s.found,
		Stats:      s.stats,
	}
	res.Stats.Duration = time.Since(start)

	f.logger.Debug("chord search finished",
		zap.Stringer("chord", searched),
		zap.String("instrument", inst.ID),
		zap.Int("fingerings", len(res.Fingerings)),
		zap.Int("steps", res.Stats.Steps),
		zap.Int("checks", res.Stats.Checks),
		zap.Int("no_notes", res.Stats.NoNotes),
		zap.Int("bad_bass", res.Stats.BadBass),
		zap.Int("bad_notes", res.Stats.BadNotes),
		zap.Duration("duration", res.Stats.Duration),
	)
	return res
}

// search is one backtracking run over the strings of an instrument.
type search struct {
	chord      model.Chord
	candidates [][]int
	state      *state
	found      []Fingering
	stats      Stats
}

func newSearch(chord model.Chord, inst *instrument.Instrument) *search {
	return &search{
		chord:      chord,
		candidates: candidates(chord, inst),
		state:      newState(inst),
	}
}

// candidates lists, per string, the frets whose pitch class belongs to the
// chord or its bass.
func candidates(chord model.Chord, inst *instrument.Instrument) [][]int {
	wanted := chord.PitchClassesWithBass()
	out := make([][]int, inst.StringCount())
	for i, str := range inst.Strings {
		for fret := 0; fret < str.Frets; fret++ {
			if wanted.Contains(str.NoteAt(fret).Key) {
				out[i] = append(out[i], fret)
			}
		}
	}
	return out
}

func (s *search) run() {
	s.stats.Steps++

	depth := len(s.state.placements)
	if depth == len(s.candidates) {
		s.leaf()
		return
	}

	s.state.push(Muted)
	s.run()
	s.state.pop()

	for _, fret := range s.candidates[depth] {
		if !s.state.inRange(fret) {
			continue
		}
		s.state.push(fret)
		s.run()
		s.state.pop()
	}
}

func (s *search) leaf() {
	s.stats.Checks++
	switch s.state.check(s.chord) {
	case accepted:
		s.found = append(s.found, NewFingering(s.state.placements...))
	case rejectedNoNotes:
		s.stats.NoNotes++
	case rejectedBadBass:
		s.stats.BadBass++
	case rejectedBadNotes:
		s.stats.BadNotes++
	}
}
