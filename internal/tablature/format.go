package tablature

import (
	"errors"
	"fmt"
	"strings"

	"github.com/handiism/chordfinder/internal/diagram"
	"github.com/handiism/chordfinder/internal/finder"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown tablature format")

// Format selects how a chord sheet is written out.
type Format int

const (
	// FormatAnnotated writes every chord followed by its fingering,
	// stacking annotations that would overlap.
	FormatAnnotated Format = iota

	// FormatLegend writes the sheet unchanged followed by a diagram for
	// every chord used.
	FormatLegend

	// FormatChordPro writes ChordPro, with chord-only lines merged into
	// the lyric line below as [Am] markers.
	FormatChordPro
)

var formatNames = map[Format]string{
	FormatAnnotated: "annotated",
	FormatLegend:    "legend",
	FormatChordPro:  "chordpro",
}

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatAnnotated, FormatLegend, FormatChordPro}
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extension returns the file extension used for the format.
func (f Format) Extension() string {
	switch f {
	case FormatChordPro:
		return ".cho"
	default:
		return ".txt"
	}
}

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if strings.EqualFold(n, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Renderer writes chord sheets in one format.
//
// Example:
//
//	r := NewRenderer(FormatAnnotated, cache.Lookup(guitar))
//	out := r.Render("Song", "Author", contents)
type Renderer struct {
	format Format
	lookup Lookup
}

// NewRenderer creates a Renderer. lookup may be nil, in which case chords
// are written without fingerings.
func NewRenderer(format Format, lookup Lookup) *Renderer {
	return &Renderer{format: format, lookup: lookup}
}

// Format returns the renderer's output format.
func (r *Renderer) Format() Format {
	return r.format
}

// Render writes source with an optional title and author header.
func (r *Renderer) Render(title, author, source string) string {
	lines := Parse(source)

	var out []string
	switch r.format {
	case FormatLegend:
		out = append(header(title, author), r.legend(source, lines)...)
	case FormatChordPro:
		out = append(chordProHeader(title, author), chordPro(source)...)
	default:
		out = append(header(title, author), Annotate(lines, r.lookup)...)
	}

	return strings.Join(out, "\n") + "\n"
}

func header(title, author string) []string {
	var out []string
	if title != "" {
		out = append(out, title)
	}
	if author != "" {
		out = append(out, author)
	}
	if len(out) > 0 {
		out = append(out, "")
	}
	return out
}

func (r *Renderer) legend(source string, lines []Line) []string {
	out := rawLines(source)
	chords := Chords(lines)
	if len(chords) == 0 {
		return out
	}

	out = append(out, "")
	for _, c := range chords {
		var f finder.Fingering
		ok := false
		if r.lookup != nil {
			f, ok = r.lookup(c)
		}
		if !ok {
			out = append(out, c.String()+": no fingering", "")
			continue
		}
		// ASCII ends with a newline, which leaves a blank separator.
		out = append(out, strings.Split(diagram.ASCII(c.String(), f), "\n")...)
	}
	return trimTrailingEmpty(out)
}

func chordProHeader(title, author string) []string {
	var out []string
	if title != "" {
		out = append(out, "{title: "+title+"}")
	}
	if author != "" {
		out = append(out, "{artist: "+author+"}")
	}
	if len(out) > 0 {
		out = append(out, "")
	}
	return out
}

// chordPro converts a chords-over-lyrics sheet. A line holding only
// chords is merged into the following line when that one holds only
// text; any other chord-only line becomes a row of bracketed chords.
func chordPro(source string) []string {
	raw := rawLines(source)
	var out []string
	for i := 0; i < len(raw); i++ {
		line := ParseLine(raw[i])
		if !line.HasChords() || line.HasText() {
			out = append(out, raw[i])
			continue
		}

		if i+1 < len(raw) {
			next := ParseLine(raw[i+1])
			if next.HasText() && !next.HasChords() {
				out = append(out, mergeChords(line, raw[i+1]))
				i++
				continue
			}
		}

		marks := make([]string, len(line))
		for j, b := range line {
			marks[j] = "[" + b.Text + "]"
		}
		out = append(out, strings.Join(marks, " "))
	}
	return out
}

// mergeChords inserts [chord] markers into lyric at the chord columns.
func mergeChords(chords Line, lyric string) string {
	var sb strings.Builder
	col := 0
	for _, b := range chords {
		if b.Position > col {
			end := min(b.Position, len(lyric))
			if col < end {
				sb.WriteString(lyric[col:end])
			}
			if b.Position > len(lyric) {
				sb.WriteString(strings.Repeat(" ", b.Position-max(col, len(lyric))))
			}
			col = b.Position
		}
		sb.WriteString("[" + b.Text + "]")
	}
	if col < len(lyric) {
		sb.WriteString(lyric[col:])
	}
	return strings.TrimRight(sb.String(), " ")
}

func rawLines(source string) []string {
	var out []string
	for raw := range strings.Lines(source) {
		out = append(out, trimEOL(raw))
	}
	return out
}

func trimTrailingEmpty(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
