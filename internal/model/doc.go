// Package model defines the music-theory values shared by every other
// package: pitch classes, absolute notes, chord qualities and chords.
//
// # Keys
//
// Key is one of the twelve pitch classes, C=0 through B=11:
//
//	k, ok := model.ParseKey("F#") // model.Gb, true
//	fmt.Println(k)                // "Gb"
//	model.KeyFromOrdinal(-1)      // model.B
//
// # Notes
//
// Note pairs a Key with an octave. Arithmetic uses floor-modulo semantics,
// so transposing below C0 never truncates toward zero:
//
//	e2 := model.NewNote(model.E, 2) // ordinal 28
//	e2.Add(-29)                     // B-1
//
// # Chords
//
// Chord combines a root, a Variant and a bass. ParseChord accepts the
// grammar "<root><variant>(/<bass>)?" with maximal-munch suffix matching:
//
//	c, _ := model.ParseChord("Am7/G")
//	c.PitchClasses()         // {C E G A}
//	c.PitchClassesWithBass() // {C E G A}
//	c.String()               // "Am7/G"
package model
