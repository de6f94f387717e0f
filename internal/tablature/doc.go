// Package tablature reads chords-over-lyrics sheets and writes them back
// with fingerings.
//
// A sheet is plain text where chord names sit above the lyric they belong
// to. Parse splits every line into text and chord bits keeping their
// columns, so a Renderer can annotate each chord in place, append a
// diagram legend, or convert the sheet to ChordPro.
package tablature
