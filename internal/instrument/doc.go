// Package instrument describes fretted string instruments.
//
// An Instrument is an ordered list of strings, lowest first, each with an
// open pitch and a fret count, plus a flag telling whether the instrument
// has dedicated bass strings:
//
//	guitar := instrument.Guitar()
//	guitar.Strings[0].NoteAt(5) // A2
//
// # Registry
//
// Registry maps IDs to instruments and is safe for concurrent use:
//
//	reg := instrument.DefaultRegistry()
//	uke, err := reg.Get("ukulele")
//
// # Catalogs
//
// Additional instruments can be loaded from YAML. Each string is written as
// "<note>:<frets>":
//
//	instruments:
//	  - id: mandolin
//	    name: Mandolin
//	    strings: ["G3:17", "D4:17", "A4:17", "E5:17"]
//
// Entries are validated with go-playground/validator before use.
package instrument
