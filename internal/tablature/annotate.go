package tablature

import (
	"math"
	"slices"
	"strings"

	"github.com/handiism/chordfinder/internal/finder"
	"github.com/handiism/chordfinder/internal/model"
)

// Lookup returns the fingering shown next to a chord.
type Lookup func(model.Chord) (finder.Fingering, bool)

// piece is a run of output text at a column.
type piece struct {
	position int
	text     string
}

func (p piece) end() int {
	return p.position + len(p.text)
}

// renderLine collects pieces that do not overlap. last is the smallest
// column used so far; pieces are added right to left.
type renderLine struct {
	pieces []piece
	last   int
}

func newRenderLine() *renderLine {
	return &renderLine{last: math.MaxInt}
}

func (l *renderLine) add(p piece) {
	l.pieces = append(l.pieces, p)
	l.last = min(l.last, p.position)
}

// Annotate renders lines with every chord followed by its fingering in
// parentheses, "Am(X02210)". A chord without a known fingering is left as
// written.
//
// Annotations make chords wider, so a piece that would run into the next
// one moves to a new line above. The column it belongs to is marked with
// "v" on the original line and "|" on any line in between. "C G Am"
// renders as:
//
//	C(X32010)
//	| G(320003)
//	v v Am(X02210)
func Annotate(lines []Line, lookup Lookup) []string {
	var out []string
	for _, line := range lines {
		out = append(out, annotateLine(line, lookup)...)
	}
	return out
}

func annotateLine(line Line, lookup Lookup) []string {
	pieces := make([]piece, 0, len(line))
	for _, b := range line {
		text := b.Text
		if b.Kind == ChordBit && lookup != nil {
			if f, ok := lookup(b.Chord); ok {
				text += "(" + f.String() + ")"
			}
		}
		pieces = append(pieces, piece{position: b.Position, text: text})
	}

	stacked := stack(pieces)
	out := make([]string, len(stacked))
	for i, rl := range stacked {
		out[i] = layout(rl.pieces)
	}
	return out
}

// stack places pieces right to left on the lowest line where they fit,
// adding arrows below any piece that had to move up. The result is
// ordered top line first.
func stack(pieces []piece) []*renderLine {
	ordered := slices.Clone(pieces)
	slices.SortStableFunc(ordered, func(a, b piece) int {
		return b.position - a.position
	})

	lines := []*renderLine{newRenderLine()}
	for _, p := range ordered {
		idx := 0
		for p.end() > lines[idx].last {
			idx++
			if idx == len(lines) {
				lines = append(lines, newRenderLine())
			}
		}
		lines[idx].add(p)

		for i := 0; i < idx; i++ {
			arrow := "|"
			if i == 0 {
				arrow = "v"
			}
			lines[i].add(piece{position: p.position, text: arrow})
		}
	}

	slices.Reverse(lines)
	return lines
}

// layout joins pieces left to right, padding gaps with spaces.
func layout(pieces []piece) string {
	ordered := slices.Clone(pieces)
	slices.SortStableFunc(ordered, func(a, b piece) int {
		return a.position - b.position
	})

	var sb strings.Builder
	col := 0
	for _, p := range ordered {
		if col < p.position {
			sb.WriteString(strings.Repeat(" ", p.position-col))
			col = p.position
		}
		sb.WriteString(p.text)
		col += len(p.text)
	}
	return sb.String()
}
