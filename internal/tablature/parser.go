package tablature

import (
	"strings"

	"github.com/handiism/chordfinder/internal/model"
)

// BitKind distinguishes chord names from other text in a line.
type BitKind int

const (
	// TextBit is lyrics or any other text that is not a chord name.
	TextBit BitKind = iota

	// ChordBit is a token that parses as a chord.
	ChordBit
)

// Bit is a run of a tablature line starting at byte column Position.
type Bit struct {
	Kind     BitKind
	Text     string      // trimmed text, or the chord as written
	Chord    model.Chord // set for ChordBit
	Position int
}

// Line is the bits of one source line in column order.
type Line []Bit

// HasChords reports whether any bit is a chord.
func (l Line) HasChords() bool {
	for _, b := range l {
		if b.Kind == ChordBit {
			return true
		}
	}
	return false
}

// HasText reports whether any bit is text.
func (l Line) HasText() bool {
	for _, b := range l {
		if b.Kind == TextBit {
			return true
		}
	}
	return false
}

// Parse splits source into lines and tokenizes each one.
func Parse(source string) []Line {
	var lines []Line
	for raw := range strings.Lines(source) {
		lines = append(lines, ParseLine(trimEOL(raw)))
	}
	return lines
}

// ParseLine tokenizes one line.
//
// The line is split into whitespace and non-whitespace tokens. Every
// token that parses as a chord becomes a ChordBit at its column. Runs of
// other tokens, with the whitespace between them, become a single TextBit
// trimmed of surrounding whitespace and positioned at its first
// non-blank column.
//
//	"I'M A GENIUS" -> Text "I'M" @0, Chord A @4, Text "GENIUS" @6
func ParseLine(line string) Line {
	var (
		out      Line
		position int
		pending  strings.Builder
	)

	flush := func() {
		text := pending.String()
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			lead := len(text) - len(strings.TrimLeft(text, " \t\r\n"))
			out = append(out, Bit{Kind: TextBit, Text: trimmed, Position: position + lead})
		}
		position += len(text)
		pending.Reset()
	}

	for _, tok := range tokenize(line) {
		if tok.space {
			pending.WriteString(tok.text)
			continue
		}
		chord, ok := model.ParseChord(tok.text)
		if !ok {
			pending.WriteString(tok.text)
			continue
		}
		flush()
		out = append(out, Bit{Kind: ChordBit, Text: tok.text, Chord: chord, Position: position})
		position += len(tok.text)
	}
	flush()

	return out
}

// Chords returns the distinct chords of lines in order of first appearance.
func Chords(lines []Line) []model.Chord {
	seen := make(map[model.Chord]bool)
	var out []model.Chord
	for _, line := range lines {
		for _, b := range line {
			if b.Kind == ChordBit && !seen[b.Chord] {
				seen[b.Chord] = true
				out = append(out, b.Chord)
			}
		}
	}
	return out
}

// FirstChord returns the first chord of lines, if any.
func FirstChord(lines []Line) (model.Chord, bool) {
	for _, line := range lines {
		for _, b := range line {
			if b.Kind == ChordBit {
				return b.Chord, true
			}
		}
	}
	return model.Chord{}, false
}

type token struct {
	text  string
	space bool
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// tokenize splits line into maximal runs of whitespace and non-whitespace.
func tokenize(line string) []token {
	var tokens []token
	for i := 0; i < len(line); {
		space := isSpace(line[i])
		j := i + 1
		for j < len(line) && isSpace(line[j]) == space {
			j++
		}
		tokens = append(tokens, token{text: line[i:j], space: space})
		i = j
	}
	return tokens
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
