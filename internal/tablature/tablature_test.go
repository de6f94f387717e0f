package tablature

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/chordfinder/internal/finder"
	"github.com/handiism/chordfinder/internal/model"
)

func text(s string, pos int) Bit {
	return Bit{Kind: TextBit, Text: s, Position: pos}
}

func chord(s string, pos int) Bit {
	c, ok := model.ParseChord(s)
	if !ok {
		panic("bad chord " + s)
	}
	return Bit{Kind: ChordBit, Text: s, Chord: c, Position: pos}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Line
	}{
		{"lyrics only", "I'm a genius", Line{text("I'm a genius", 0)}},
		{"chord inside text", "I'M A GENIUS", Line{text("I'M", 0), chord("A", 4), text("GENIUS", 6)}},
		{"slash chord", "C#7/G#", Line{chord("C#7/G#", 0)}},
		{"surrounding whitespace", " trailing A7 whitespace ", Line{text("trailing", 1), chord("A7", 10), text("whitespace", 13)}},
		{"chord row", "Am      G   C", Line{chord("Am", 0), chord("G", 8), chord("C", 12)}},
		{"empty", "", nil},
		{"blank", "    ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLine(tt.line))
		})
	}
}

func TestParseLine_SharpChordIsCanonical(t *testing.T) {
	line := ParseLine("C#7/G#")
	require.Len(t, line, 1)
	assert.Equal(t, "Db7/Ab", line[0].Chord.String())
	assert.Equal(t, "C#7/G#", line[0].Text)
}

func TestParse_Lines(t *testing.T) {
	lines := Parse("Am  G\r\nwords here\n\nC\n")
	require.Len(t, lines, 4)
	assert.True(t, lines[0].HasChords())
	assert.False(t, lines[0].HasText())
	assert.True(t, lines[1].HasText())
	assert.Empty(t, lines[2])

	chords := Chords(lines)
	assert.Equal(t, []string{"Am", "G", "C"}, chordNames(chords))

	first, ok := FirstChord(lines)
	require.True(t, ok)
	assert.Equal(t, "Am", first.String())

	_, ok = FirstChord(Parse("no chords in here"))
	assert.False(t, ok)
}

func TestChords_Distinct(t *testing.T) {
	lines := Parse("Am G Am\nC G\n")
	assert.Equal(t, []string{"Am", "G", "C"}, chordNames(Chords(lines)))
}

func chordNames(chords []model.Chord) []string {
	out := make([]string, len(chords))
	for i, c := range chords {
		out[i] = c.String()
	}
	return out
}

func guitarLookup(t *testing.T) Lookup {
	t.Helper()
	shapes := map[string]string{
		"C":  "X32010",
		"G":  "320003",
		"Am": "X02210",
		"F":  "133211",
	}
	return func(c model.Chord) (finder.Fingering, bool) {
		s, ok := shapes[c.String()]
		if !ok {
			return finder.Fingering{}, false
		}
		f, err := finder.ParseFingering(s)
		require.NoError(t, err)
		return f, true
	}
}

func TestAnnotate(t *testing.T) {
	lookup := guitarLookup(t)

	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "room to spare",
			source: "Am            C\nsome words",
			want:   []string{"Am(X02210)    C(X32010)", "some words"},
		},
		{
			name:   "one collision",
			source: "Am G",
			want:   []string{"Am(X02210)", "v  G(320003)"},
		},
		{
			name:   "three levels",
			source: "C G Am",
			want:   []string{"C(X32010)", "| G(320003)", "v v Am(X02210)"},
		},
		{
			name:   "unknown fingering",
			source: "Bdim  C",
			want:   []string{"Bdim  C(X32010)"},
		},
		{
			name:   "empty lines kept",
			source: "\nC\n\n",
			want:   []string{"", "C(X32010)", ""},
		},
		{
			name:   "chord inside lyrics",
			source: "  I'M A GENIUS",
			want:   []string{"      A(X02210)", "  I'M v GENIUS"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Annotate(Parse(tt.source), lookup))
		})
	}
}

func TestAnnotate_NilLookup(t *testing.T) {
	assert.Equal(t, []string{"Am  G"}, Annotate(Parse("Am  G"), nil))
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := ParseFormat("ChordPro")
	require.NoError(t, err)
	assert.Equal(t, FormatChordPro, got)

	_, err = ParseFormat("html")
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	assert.Equal(t, ".cho", FormatChordPro.Extension())
	assert.Equal(t, ".txt", FormatLegend.Extension())
}

func TestRenderer_Annotated(t *testing.T) {
	r := NewRenderer(FormatAnnotated, guitarLookup(t))
	got := r.Render("Song", "Someone", "Am   C\nhello there\n")
	assert.Equal(t, "Song\nSomeone\n\nAm(X02210)\nv    C(X32010)\nhello there\n", got)
}

func TestRenderer_Legend(t *testing.T) {
	r := NewRenderer(FormatLegend, guitarLookup(t))
	got := r.Render("", "", "Am  Bdim\nla la\n")

	want := "Am  Bdim\n" +
		"la la\n" +
		"\n" +
		"Am (X02210)\n" +
		"|X---|---|---|---|\n" +
		"|o---|---|---|---|\n" +
		"||---|-o-|---|---|\n" +
		"||---|-o-|---|---|\n" +
		"||-o-|---|---|---|\n" +
		"|o---|---|---|---|\n" +
		"\n" +
		"Bdim: no fingering\n"
	assert.Equal(t, want, got)
}

func TestRenderer_ChordPro(t *testing.T) {
	r := NewRenderer(FormatChordPro, nil)
	source := "Am      G\n" +
		"Hello there world\n" +
		"\n" +
		"C       F\n" +
		"Hi\n" +
		"Am G\n" +
		"I'M A GENIUS\n"

	want := "{title: Song}\n" +
		"{artist: Someone}\n" +
		"\n" +
		"[Am]Hello th[G]ere world\n" +
		"\n" +
		"[C]Hi      [F]\n" +
		"[Am] [G]\n" +
		"I'M A GENIUS\n"
	assert.Equal(t, want, r.Render("Song", "Someone", source))
}
