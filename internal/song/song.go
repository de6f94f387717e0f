package song

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/handiism/chordfinder/internal/finder"
	"github.com/handiism/chordfinder/internal/instrument"
	"github.com/handiism/chordfinder/internal/model"
	"github.com/handiism/chordfinder/internal/tablature"
)

// Header identifies a song.
type Header struct {
	ID     uuid.UUID
	Author string
	Title  string
}

// Song is a chord sheet with its header.
type Song struct {
	Header
	Contents string
}

// FingeringSource supplies the fingering shown for a chord.
// *precompute.Cache implements it.
type FingeringSource interface {
	Best(chord model.Chord, inst *instrument.Instrument) (finder.Fingering, bool)
}

// New creates a song with a fresh ID.
func New(title, author, contents string) *Song {
	return &Song{
		Header: Header{
			ID:     uuid.New(),
			Author: author,
			Title:  title,
		},
		Contents: contents,
	}
}

// ReadText loads a plain text chord sheet. The title is the file name
// without its extension.
func ReadText(path string) (*Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return New(title, "", string(data)), nil
}

// Lines returns the parsed contents.
func (s *Song) Lines() []tablature.Line {
	return tablature.Parse(s.Contents)
}

// Chords returns the distinct chords of the song in order of first
// appearance.
func (s *Song) Chords() []model.Chord {
	return tablature.Chords(s.Lines())
}

// Fingerings maps every distinct chord, as written by Chord.String, to the
// top fingering src knows for it on inst. Chords without one are left out.
func (s *Song) Fingerings(src FingeringSource, inst *instrument.Instrument) map[string]string {
	out := make(map[string]string)
	for _, c := range s.Chords() {
		if f, ok := src.Best(c, inst); ok {
			out[c.String()] = f.String()
		}
	}
	return out
}

// Render writes the song with r.
func (s *Song) Render(r *tablature.Renderer) string {
	return r.Render(s.Title, s.Author, s.Contents)
}
