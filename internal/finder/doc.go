// Package finder enumerates the ways a chord can be played on a fretted
// instrument.
//
// # Searching
//
//	f := finder.New(finder.WithLogger(logger))
//	res := f.Find(chord, instrument.Guitar())
//	for _, fg := range res.Fingerings {
//	    fmt.Println(fg) // "X02210", "X,12,14,14,13,12", ...
//	}
//
// For each string the candidate frets are those whose pitch class is a
// chord tone or the bass. The search walks the strings from lowest to
// highest, trying "muted" before the candidates in ascending fret order,
// and skips any stopped fret that would stretch the hand more than four
// frets. Open strings are always allowed.
//
// A complete placement is accepted when
//
//  1. at least one string sounds,
//  2. on instruments with bass strings, the lowest note is the chord's bass,
//  3. the sounded pitch classes equal the chord's tones exactly; the lowest
//     note is left out of this count when the chord has a distinct bass.
//
// # Downgrades
//
// Before searching, a chord is adapted to the instrument: a slash bass is
// dropped on instruments without bass strings, and on instruments with
// fewer than four strings m6 and m7 become m, 7 and add9 become major.
// Result.Downgrades lists what was applied.
//
// # Checking a shape
//
// Validate and Check apply the acceptance rules to a single fingering:
//
//	fg, _ := finder.ParseFingering("X32030")
//	finder.Validate(cadd9, instrument.Guitar(), fg) // true
package finder
