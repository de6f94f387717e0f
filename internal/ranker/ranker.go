// Package ranker orders fingerings by how easy they are to play.
//
// Penalty scores a fingering; lower is easier. The score never rejects a
// fingering, it only decides presentation order.
package ranker

import (
	"slices"

	"github.com/handiism/chordfinder/internal/finder"
)

const (
	// Unplayable is returned for shapes that need more than four fingers.
	Unplayable = 1000

	mutePenalty     = 10
	holePenalty     = 50
	fullShapeBonus  = 10
	nutDistanceCost = 4
)

// Ranked pairs a fingering with its penalty.
type Ranked struct {
	Fingering finder.Fingering
	Penalty   int
}

// Penalty scores a fingering. The score is never negative.
//
// With bar being the lowest stopped fret, the score sums:
//   - the squared distance of every stopped fret from the bar,
//   - four per fret of bar position,
//   - ten per muted string at either edge of the neck,
//   - fifty for a muted string between two played ones,
//   - fifty for a barre broken by a muted or open string,
//   - ten when three or more fingers sit above the bar,
//   - the squared distance between neighbouring stopped frets.
//
// Shapes needing more than four fingers above the bar, or more than three
// when a barre is used, score Unplayable.
func Penalty(f finder.Fingering) int {
	frets := f.Frets()

	bar := 0
	for _, fret := range frets {
		if fret > 0 && (bar == 0 || fret < bar) {
			bar = fret
		}
	}

	fingers, barCount := 0, 0
	for _, fret := range frets {
		switch {
		case fret > bar:
			fingers++
		case fret == bar && bar > 0:
			barCount++
		}
	}
	if fingers > 4 || (bar > 0 && fingers > 3) {
		return Unplayable
	}

	score := 0
	for _, fret := range frets {
		if fret > 0 {
			d := fret - bar
			score += d * d
		}
	}
	score += bar * nutDistanceCost
	score += mutePenalty * leadingMuted(frets)
	score += mutePenalty * trailingMuted(frets)

	if hasNoteHole(frets) {
		score += holePenalty
	}
	if barCount > 1 && barCount+fingers >= 4 && hasBarHole(frets, bar) {
		score += holePenalty
	}
	if fingers >= 3 {
		score += fullShapeBonus
	}

	prev := 0
	for _, fret := range frets {
		if fret <= 0 {
			continue
		}
		if prev > 0 {
			d := fret - prev
			score += d * d
		}
		prev = fret
	}

	return score
}

func leadingMuted(frets []int) int {
	n := 0
	for _, fret := range frets {
		if fret != finder.Muted {
			break
		}
		n++
	}
	return n
}

func trailingMuted(frets []int) int {
	n := 0
	for i := len(frets) - 1; i >= 0; i-- {
		if frets[i] != finder.Muted {
			break
		}
		n++
	}
	return n
}

// hasNoteHole reports a muted string strictly between two played strings.
func hasNoteHole(frets []int) bool {
	played, gap := false, false
	for _, fret := range frets {
		if fret == finder.Muted {
			gap = played
			continue
		}
		if gap {
			return true
		}
		played = true
	}
	return false
}

// hasBarHole reports a muted or open string after the first string
// stopped at the bar fret.
func hasBarHole(frets []int, bar int) bool {
	inBar := false
	for _, fret := range frets {
		if fret == bar {
			inBar = true
			continue
		}
		if inBar && fret <= 0 {
			return true
		}
	}
	return false
}

// Rank scores the fingerings and returns them easiest first. Equal scores
// keep their input order.
func Rank(fingerings []finder.Fingering) []Ranked {
	out := make([]Ranked, len(fingerings))
	for i, f := range fingerings {
		out[i] = Ranked{Fingering: f, Penalty: Penalty(f)}
	}
	slices.SortStableFunc(out, func(a, b Ranked) int {
		return a.Penalty - b.Penalty
	})
	return out
}

// Sort orders fingerings in place, easiest first. Equal scores keep their
// input order.
func Sort(fingerings []finder.Fingering) {
	ranked := Rank(fingerings)
	for i, r := range ranked {
		fingerings[i] = r.Fingering
	}
}

// Best returns the easiest fingering, or false when there is none.
func Best(fingerings []finder.Fingering) (Ranked, bool) {
	if len(fingerings) == 0 {
		return Ranked{}, false
	}
	return Rank(fingerings)[0], true
}
