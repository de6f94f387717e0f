// Package song holds chord sheets and moves them in and out of MP3 tags.
//
// A Song is read from a text file or from the lyrics of an MP3 file:
//
//	s, err := song.ReadMP3("track.mp3")
//	chords := s.Chords()
//
// The top fingering of every chord can be written back to the same file
// in a TXXX frame named after the instrument:
//
//	m := s.Fingerings(cache, guitar)
//	err = song.WriteFingerings("track.mp3", guitar.ID, m)
package song
