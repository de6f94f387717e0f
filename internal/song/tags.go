package song

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bogem/id3v2"
)

const (
	lyricsFrame = "Unsynchronised lyrics/text transcription"

	// fingeringsPrefix starts the description of TXXX frames holding a
	// chord map. The instrument ID follows it.
	fingeringsPrefix = "CHORD_FINGERINGS:"
)

// ErrNoLyrics is returned by ReadMP3 when the file has no lyrics frame.
var ErrNoLyrics = errors.New("no lyrics in tag")

// ReadMP3 builds a song from the title, artist and lyrics of an MP3 file's
// ID3 tag.
func ReadMP3(path string) (*Song, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("open tag: %w", err)
	}
	defer tag.Close()

	var lyrics []string
	for _, frame := range tag.GetFrames(tag.CommonID(lyricsFrame)) {
		uslf, ok := frame.(id3v2.UnsynchronisedLyricsFrame)
		if ok && uslf.Lyrics != "" {
			lyrics = append(lyrics, uslf.Lyrics)
		}
	}
	if len(lyrics) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoLyrics)
	}

	return New(tag.Title(), tag.Artist(), strings.Join(lyrics, "\n")), nil
}

// WriteFingerings stores a chord map for instrumentID in a TXXX frame,
// replacing any map stored earlier for the same instrument. Other frames
// are left unchanged.
func WriteFingerings(path, instrumentID string, fingerings map[string]string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open tag: %w", err)
	}
	defer tag.Close()

	description := fingeringsPrefix + instrumentID
	kept := userTextFrames(tag, func(udtf id3v2.UserDefinedTextFrame) bool {
		return udtf.Description != description
	})

	tag.DeleteFrames("TXXX")
	for _, udtf := range kept {
		tag.AddUserDefinedTextFrame(udtf)
	}
	tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    id3v2.EncodingUTF8,
		Description: description,
		Value:       EncodeFingerings(fingerings),
	})

	return tag.Save()
}

// ReadFingerings returns the chord map stored for instrumentID, or nil if
// there is none.
func ReadFingerings(path, instrumentID string) (map[string]string, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("open tag: %w", err)
	}
	defer tag.Close()

	description := fingeringsPrefix + instrumentID
	frames := userTextFrames(tag, func(udtf id3v2.UserDefinedTextFrame) bool {
		return udtf.Description == description
	})
	if len(frames) == 0 {
		return nil, nil
	}
	return DecodeFingerings(frames[len(frames)-1].Value), nil
}

func userTextFrames(tag *id3v2.Tag, keep func(id3v2.UserDefinedTextFrame) bool) []id3v2.UserDefinedTextFrame {
	var out []id3v2.UserDefinedTextFrame
	for _, frame := range tag.GetFrames("TXXX") {
		udtf, ok := frame.(id3v2.UserDefinedTextFrame)
		if ok && keep(udtf) {
			out = append(out, udtf)
		}
	}
	return out
}

// EncodeFingerings writes a chord map as "Am=X02210;C=X32010", sorted by
// chord.
func EncodeFingerings(fingerings map[string]string) string {
	pairs := make([]string, 0, len(fingerings))
	for _, chord := range slices.Sorted(maps.Keys(fingerings)) {
		pairs = append(pairs, chord+"="+fingerings[chord])
	}
	return strings.Join(pairs, ";")
}

// DecodeFingerings reads a chord map written by EncodeFingerings. Malformed
// pairs are skipped.
func DecodeFingerings(value string) map[string]string {
	out := make(map[string]string)
	for pair := range strings.SplitSeq(value, ";") {
		chord, fingering, ok := strings.Cut(pair, "=")
		if !ok || chord == "" || fingering == "" {
			continue
		}
		out[chord] = fingering
	}
	return out
}
