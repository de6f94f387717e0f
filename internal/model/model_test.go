package model

import "testing"

func TestKey_OrdinalBijection(t *testing.T) {
	for i := 0; i < KeyCount; i++ {
		k := KeyFromOrdinal(i)
		if k.Ordinal() != i {
			t.Errorf("KeyFromOrdinal(%d).Ordinal() = %d", i, k.Ordinal())
		}
		parsed, ok := ParseKey(k.String())
		if !ok || parsed != k {
			t.Errorf("ParseKey(%q) = %v, %v; want %v, true", k.String(), parsed, ok, k)
		}
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		input string
		want  Key
		ok    bool
	}{
		{"C", C, true},
		{"Db", Db, true},
		{"C#", Db, true},
		{"D#", Eb, true},
		{"F#", Gb, true},
		{"G#", Ab, true},
		{"A#", Bb, true},
		{"B", B, true},
		{"c", 0, false},
		{"H", 0, false},
		{"E#", 0, false},
		{"", 0, false},
		{"Bb ", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseKey(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseKey(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestKeyFromOrdinal_Negative(t *testing.T) {
	tests := []struct {
		ordinal int
		want    Key
	}{
		{-1, B},
		{-12, C},
		{-13, B},
		{25, Db},
	}

	for _, tt := range tests {
		if got := KeyFromOrdinal(tt.ordinal); got != tt.want {
			t.Errorf("KeyFromOrdinal(%d) = %v, want %v", tt.ordinal, got, tt.want)
		}
	}
}

func TestNote_Arithmetic(t *testing.T) {
	e2 := NewNote(E, 2)
	if e2.Ordinal() != 28 {
		t.Fatalf("E2 ordinal = %d, want 28", e2.Ordinal())
	}

	tests := []struct {
		name      string
		semitones int
		want      Note
	}{
		{"up a fourth", 5, NewNote(A, 2)},
		{"up an octave", 12, NewNote(E, 3)},
		{"down a third", -4, NewNote(C, 2)},
		{"down past C", -5, NewNote(B, 1)},
		{"below octave zero", -29, NewNote(B, -1)},
		{"far below zero", -41, NewNote(B, -2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e2.Add(tt.semitones)
			if got != tt.want {
				t.Errorf("E2.Add(%d) = %v, want %v", tt.semitones, got, tt.want)
			}
			if got.Ordinal() != 28+tt.semitones {
				t.Errorf("ordinal = %d, want %d", got.Ordinal(), 28+tt.semitones)
			}
		})
	}
}

func TestNoteFromOrdinal_RoundTrip(t *testing.T) {
	for o := -40; o <= 120; o++ {
		if got := NoteFromOrdinal(o).Ordinal(); got != o {
			t.Errorf("NoteFromOrdinal(%d).Ordinal() = %d", o, got)
		}
	}
}

func TestNote_Compare(t *testing.T) {
	low, high := NewNote(B, 2), NewNote(C, 3)
	if !low.Less(high) || high.Less(low) {
		t.Errorf("expected B2 < C3")
	}
	if low.Compare(high) != -1 || high.Compare(low) != 1 || low.Compare(low) != 0 {
		t.Errorf("Compare is inconsistent with ordinal order")
	}
}

func TestParseNote(t *testing.T) {
	tests := []struct {
		input   string
		want    Note
		wantErr bool
	}{
		{"E2", NewNote(E, 2), false},
		{"C#4", NewNote(Db, 4), false},
		{"Bb3", NewNote(Bb, 3), false},
		{"A-1", NewNote(A, -1), false},
		{"X2", Note{}, true},
		{"E", Note{}, true},
		{"E2.5", Note{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseNote(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseNote(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseNote(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestChord_PitchClasses(t *testing.T) {
	tests := []struct {
		chord    Chord
		want     KeySet
		withBass KeySet
	}{
		{NewSimpleChord(C, Major), NewKeySet(C, E, G), NewKeySet(C, E, G)},
		{NewSimpleChord(A, MinorSeventh), NewKeySet(A, C, E, G), NewKeySet(A, C, E, G)},
		{NewSimpleChord(C, AddedNinth), NewKeySet(C, D, E, G), NewKeySet(C, D, E, G)},
		{NewChord(B, Major, A), NewKeySet(B, Eb, Gb), NewKeySet(B, Eb, Gb, A)},
		{NewSimpleChord(B, Diminished), NewKeySet(B, D, F), NewKeySet(B, D, F)},
	}

	for _, tt := range tests {
		t.Run(tt.chord.String(), func(t *testing.T) {
			if got := tt.chord.PitchClasses(); got != tt.want {
				t.Errorf("PitchClasses() = %v, want %v", got, tt.want)
			}
			if got := tt.chord.PitchClassesWithBass(); got != tt.withBass {
				t.Errorf("PitchClassesWithBass() = %v, want %v", got, tt.withBass)
			}
		})
	}
}

func TestParseChord(t *testing.T) {
	tests := []struct {
		input string
		want  Chord
		ok    bool
	}{
		{"C", NewSimpleChord(C, Major), true},
		{"Am", NewSimpleChord(A, Minor), true},
		{"Am7", NewSimpleChord(A, MinorSeventh), true},
		{"Am6", NewSimpleChord(A, MinorSixth), true},
		{"C#7/G#", NewChord(Db, Seventh, Ab), true},
		{"Dsus2", NewSimpleChord(D, SuspendedSecond), true},
		{"Cadd9", NewSimpleChord(C, AddedNinth), true},
		{"Bdim", NewSimpleChord(B, Diminished), true},
		{"Ebaug/G", NewChord(Eb, Augmented, G), true},
		{"B/A", NewChord(B, Major, A), true},
		{"C/C", NewSimpleChord(C, Major), true},
		{"Amaj7", Chord{}, false},
		{"Am7/", Chord{}, false},
		{"Am7/H", Chord{}, false},
		{"Am/G/B", Chord{}, false},
		{"am", Chord{}, false},
		{"", Chord{}, false},
		{"A7sus2", Chord{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseChord(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseChord(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestChord_RoundTrip(t *testing.T) {
	for _, c := range AllChords(true) {
		text := c.String()
		got, ok := ParseChord(text)
		if !ok || got != c {
			t.Errorf("ParseChord(%q) = %v, %v; want %v", text, got, ok, c)
		}
		if c.Bass == c.Root && len(text) != len(c.Root.String())+len(c.Variant.Suffix()) {
			t.Errorf("%q should not carry a bass suffix", text)
		}
	}
	if n := len(AllChords(true)); n != KeyCount*VariantCount*KeyCount {
		t.Errorf("AllChords(true) returned %d chords", n)
	}
}

func TestKeySet(t *testing.T) {
	s := NewKeySet(C, E, G)
	if s.Len() != 3 || !s.Contains(E) || s.Contains(D) {
		t.Fatalf("unexpected set %v", s)
	}
	if got := s.Without(E).With(Eb).String(); got != "{C Eb G}" {
		t.Errorf("String() = %q", got)
	}
}
