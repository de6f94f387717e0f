package model

// Chord is a root pitch class, a quality and a bass pitch class.
//
// A chord whose Bass equals its Root is a plain chord ("Am7"); any other
// bass makes it a slash chord ("Am7/G").
type Chord struct {
	Root    Key
	Variant Variant
	Bass    Key
}

// NewChord builds a chord with an explicit bass.
func NewChord(root Key, variant Variant, bass Key) Chord {
	return Chord{Root: root, Variant: variant, Bass: bass}
}

// NewSimpleChord builds a chord whose bass is its root.
func NewSimpleChord(root Key, variant Variant) Chord {
	return Chord{Root: root, Variant: variant, Bass: root}
}

// HasDistinctBass reports whether the bass differs from the root.
func (c Chord) HasDistinctBass() bool {
	return c.Bass != c.Root
}

// WithBass returns a copy of the chord with a different bass.
func (c Chord) WithBass(bass Key) Chord {
	c.Bass = bass
	return c
}

// WithVariant returns a copy of the chord with a different quality.
func (c Chord) WithVariant(v Variant) Chord {
	c.Variant = v
	return c
}

// PitchClasses returns the chord tones: the root transposed by each of the
// variant's intervals, reduced to pitch classes.
func (c Chord) PitchClasses() KeySet {
	var s KeySet
	for _, i := range c.Variant.Intervals() {
		s = s.With(c.Root.Add(i))
	}
	return s
}

// PitchClassesWithBass returns the chord tones plus the bass.
func (c Chord) PitchClassesWithBass() KeySet {
	return c.PitchClasses().With(c.Bass)
}

// String renders the chord in the grammar accepted by ParseChord. The bass
// suffix is omitted when the bass is the root.
func (c Chord) String() string {
	s := c.Root.String() + c.Variant.Suffix()
	if c.HasDistinctBass() {
		s += "/" + c.Bass.String()
	}
	return s
}

// ParseChord parses "<root><variant>(/<bass>)?", e.g. "C", "F#m7" or
// "Bb/D".
//
// Root and bass accept every spelling ParseKey accepts. Variant suffixes
// are matched by maximal munch, so "Am7" is A minor seventh rather than A
// minor followed by a stray "7". Any unconsumed or malformed text makes the
// whole parse fail.
func ParseChord(text string) (Chord, bool) {
	root, n, ok := parseKeyPrefix(text)
	if !ok {
		return Chord{}, false
	}
	rest := text[n:]

	variant, n := matchVariantPrefix(rest)
	rest = rest[n:]

	chord := NewSimpleChord(root, variant)
	if rest == "" {
		return chord, true
	}
	if rest[0] != '/' {
		return Chord{}, false
	}
	bass, ok := ParseKey(rest[1:])
	if !ok {
		return Chord{}, false
	}
	return chord.WithBass(bass), true
}

// AllChords enumerates every root and variant combination. When withBass is
// set, every bass is enumerated as well.
func AllChords(withBass bool) []Chord {
	chords := make([]Chord, 0, KeyCount*VariantCount*KeyCount)
	for _, root := range AllKeys() {
		for _, v := range AllVariants() {
			if !withBass {
				chords = append(chords, NewSimpleChord(root, v))
				continue
			}
			for _, bass := range AllKeys() {
				chords = append(chords, NewChord(root, v, bass))
			}
		}
	}
	return chords
}
