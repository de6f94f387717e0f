package diagram

import (
	"strconv"
	"strings"

	"github.com/handiism/chordfinder/internal/finder"
)

// Window returns the first and last fret a diagram of f shows.
//
// Shapes without stopped frets show frets 0 to 3. Shapes that stay below
// the fifth fret, or that touch the first fret, are drawn from the nut.
// Everything else is drawn from its lowest stopped fret.
func Window(f finder.Fingering) (start, end int) {
	lo, hi := 0, 0
	for _, fret := range f.Frets() {
		if fret <= 0 {
			continue
		}
		if lo == 0 || fret < lo {
			lo = fret
		}
		if fret > hi {
			hi = fret
		}
	}

	switch {
	case hi == 0:
		return 0, 3
	case hi < 5:
		return 0, 4
	case lo < 2:
		return 0, hi
	default:
		return lo, hi
	}
}

// Lines draws f as text, one line per string from lowest to highest:
//
//	|X---|---|---|---|
//	||---|---|-o-|---|
//	||---|-o-|---|---|
//	|o---|---|---|---|
//	||-o-|---|---|---|
//	|o---|---|---|---|
//
// When the window does not start at the nut a header line gives the
// starting fret and each string line begins with "...|".
func Lines(f finder.Fingering) []string {
	start, end := Window(f)

	lines := make([]string, 0, f.Len()+1)
	if start > 0 {
		lines = append(lines, "       "+strconv.Itoa(start))
	}
	for _, fret := range f.Frets() {
		lines = append(lines, stringLine(fret, start, end))
	}
	return lines
}

// ASCII returns the diagram of f under a title line.
func ASCII(title string, f finder.Fingering) string {
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString(" (")
	sb.WriteString(f.String())
	sb.WriteString(")\n")
	for _, line := range Lines(f) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func stringLine(fret, start, end int) string {
	var sb strings.Builder
	switch fret {
	case finder.Muted:
		sb.WriteString("|X")
	case 0:
		sb.WriteString("|o")
	default:
		sb.WriteString("||")
	}

	if start > 0 {
		sb.WriteString("...|")
	}

	for pos := max(start, 1); pos <= end; pos++ {
		if fret == pos {
			sb.WriteString("-o-|")
		} else {
			sb.WriteString("---|")
		}
	}
	return sb.String()
}
