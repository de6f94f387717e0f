package finder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/handiism/chordfinder/internal/instrument"
	"github.com/handiism/chordfinder/internal/model"
)

const x = Muted

func mustChord(t *testing.T, text string) model.Chord {
	t.Helper()
	c, ok := model.ParseChord(text)
	require.True(t, ok, "ParseChord(%q)", text)
	return c
}

func TestFind_SlashChordOnGuitar(t *testing.T) {
	res := New().Find(mustChord(t, "B/A"), instrument.Guitar())

	require.NotEmpty(t, res.Fingerings)
	assert.False(t, res.Downgraded())
	// Discovery order is mute first; see "B/A first candidate" in DESIGN.md.
	assert.Equal(t, NewFingering(x, x, 7, 8, 7, 7), res.Fingerings[0])
	assert.Contains(t, res.Fingerings, NewFingering(x, 0, 4, 4, 4, 2))
	assert.Len(t, res.Fingerings, 365)
}

func TestFind_StaysBelowFretCount(t *testing.T) {
	for _, inst := range instrument.Builtins() {
		t.Run(inst.ID, func(t *testing.T) {
			for _, text := range []string{"B/A", "C", "F#m7", "Ab"} {
				chord := mustChord(t, text)
				for _, fg := range New().Find(chord, inst).Fingerings {
					for i, fret := range fg.Frets() {
						assert.Less(t, fret, inst.Strings[i].Frets, "%s %s", text, fg)
					}
				}
			}
		})
	}
}

func TestFind_CommonShapes(t *testing.T) {
	tests := []struct {
		chord string
		inst  *instrument.Instrument
		want  Fingering
	}{
		{"C", instrument.Guitar(), NewFingering(x, 3, 2, 0, 1, 0)},
		{"Am", instrument.Guitar(), NewFingering(x, 0, 2, 2, 1, 0)},
		{"E", instrument.Guitar(), NewFingering(0, 2, 2, 1, 0, 0)},
		{"G", instrument.Guitar(), NewFingering(3, 2, 0, 0, 0, 3)},
		{"F", instrument.Guitar(), NewFingering(1, 3, 3, 2, 1, 1)},
		{"D", instrument.DropDGuitar(), NewFingering(0, 0, 0, 2, 3, 2)},
		{"C", instrument.Ukulele(), NewFingering(0, 0, 0, 3)},
		{"Am", instrument.Ukulele(), NewFingering(2, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.inst.ID+"/"+tt.chord, func(t *testing.T) {
			res := New().Find(mustChord(t, tt.chord), tt.inst)
			assert.Contains(t, res.Fingerings, tt.want)
		})
	}
}

func TestFind_EveryResultIsValidAndCompact(t *testing.T) {
	guitar := instrument.Guitar()
	for _, text := range []string{"C", "Bm7", "F#/A#", "Ebaug", "Gsus2", "Cadd9/E"} {
		t.Run(text, func(t *testing.T) {
			chord := mustChord(t, text)
			res := New().Find(chord, guitar)
			require.NotEmpty(t, res.Fingerings)

			for _, fg := range res.Fingerings {
				require.NoError(t, Check(chord, guitar, fg), fg.String())

				lo, hi := 0, 0
				for _, fret := range fg.Frets() {
					if fret <= 0 {
						continue
					}
					if lo == 0 || fret < lo {
						lo = fret
					}
					if fret > hi {
						hi = fret
					}
				}
				assert.LessOrEqual(t, hi-lo, maxSpan, fg.String())
			}
		})
	}
}

func TestFind_Deterministic(t *testing.T) {
	f := New()
	chord := mustChord(t, "Dm7/C")
	first := f.Find(chord, instrument.Guitar())
	second := f.Find(chord, instrument.Guitar())
	assert.Equal(t, first.Fingerings, second.Fingerings)
}

func TestFind_Stats(t *testing.T) {
	res := New().Find(mustChord(t, "G7"), instrument.Guitar())
	s := res.Stats

	assert.Equal(t, s.Checks, len(res.Fingerings)+s.NoNotes+s.BadBass+s.BadNotes)
	assert.Greater(t, s.Steps, s.Checks)
	assert.Equal(t, 1, s.NoNotes)
}

func TestFind_DowngradeOnShortInstrument(t *testing.T) {
	balalaika := instrument.Balalaika()
	res := New().Find(mustChord(t, "Dm7/F"), balalaika)

	assert.Equal(t, mustChord(t, "Dm7/F"), res.Requested)
	assert.Equal(t, model.NewSimpleChord(model.D, model.Minor), res.Searched)
	require.Len(t, res.Downgrades, 2)
	assert.Equal(t, DowngradeBass, res.Downgrades[0].Kind)
	assert.Equal(t, mustChord(t, "Dm7"), res.Downgrades[0].To)
	assert.Equal(t, DowngradeVariant, res.Downgrades[1].Kind)
	assert.Equal(t, "variant: Dm7 -> Dm", res.Downgrades[1].String())

	direct := New().Find(mustChord(t, "Dm"), balalaika)
	assert.Equal(t, direct.Fingerings, res.Fingerings)
	require.Len(t, res.Fingerings, 6)
	assert.Equal(t, NewFingering(1, 5, 5), res.Fingerings[0])
}

func TestNextDowngrade(t *testing.T) {
	tests := []struct {
		name  string
		chord string
		inst  *instrument.Instrument
		want  string
		ok    bool
	}{
		{"guitar keeps slash", "C/G", instrument.Guitar(), "", false},
		{"ukulele drops slash", "C/G", instrument.Ukulele(), "C", true},
		{"ukulele keeps seventh", "G7", instrument.Ukulele(), "", false},
		{"balalaika m6", "Am6", instrument.Balalaika(), "Am", true},
		{"balalaika 7", "E7", instrument.Balalaika(), "E", true},
		{"balalaika add9", "Cadd9", instrument.Balalaika(), "C", true},
		{"balalaika keeps dim", "Bdim", instrument.Balalaika(), "", false},
		{"balalaika keeps sus2", "Dsus2", instrument.Balalaika(), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := NextDowngrade(mustChord(t, tt.chord), tt.inst)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, d.To.String())
			}
		})
	}
}

func TestResolve_Terminates(t *testing.T) {
	balalaika := instrument.Balalaika()
	for _, chord := range model.AllChords(true) {
		searched, downgrades := Resolve(chord, balalaika)
		assert.LessOrEqual(t, len(downgrades), 2)
		_, again := NextDowngrade(searched, balalaika)
		assert.False(t, again, chord.String())
	}
}

func TestValidate(t *testing.T) {
	guitar := instrument.Guitar()
	tests := []struct {
		name      string
		chord     string
		fingering Fingering
		wantErr   error
	}{
		{"add9 voicing", "Cadd9", NewFingering(x, 3, 2, 0, 3, 0), nil},
		{"open C", "C", NewFingering(x, 3, 2, 0, 1, 0), nil},
		{"slash bass counted once", "B/A", NewFingering(x, 0, 4, 4, 4, 2), nil},
		{"all muted", "C", NewFingering(x, x, x, x, x, x), ErrNoNotes},
		{"wrong bass", "C", NewFingering(0, 3, 2, 0, 1, 0), ErrBadBass},
		{"missing tone", "C", NewFingering(x, 3, 5, 5, x, x), ErrBadNotes},
		{"extra tone", "C", NewFingering(x, 3, 2, 0, 1, 2), ErrBadNotes},
		{"bass as only extra note", "C/E", NewFingering(0, 3, 2, 0, 1, 0), nil},
		{"slash bass missing elsewhere", "Am/G", NewFingering(3, 0, 2, 2, 1, 0), nil},
		{"too few strings", "C", NewFingering(x, 3, 2, 0, 1), ErrWrongStringCount},
		{"fret beyond neck", "C", NewFingering(x, 3, 2, 0, 1, 25), ErrFretOutOfRange},
		{"fret at fret count", "B/A", NewFingering(x, 24, 21, 23, 24, 23), ErrFretOutOfRange},
		{"last fret in range", "B/A", NewFingering(x, 0, 21, 23, 23, 23), ErrBadNotes},
		{"negative fret", "C", NewFingering(x, -9, 2, 0, 1, 0), ErrFretOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(mustChord(t, tt.chord), guitar, tt.fingering)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.True(t, Validate(mustChord(t, tt.chord), guitar, tt.fingering))
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestFind_LogsDiagnostics(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := New(WithLogger(zap.New(core)))

	res := f.Find(mustChord(t, "Em"), instrument.Guitar())

	entries := logs.FilterMessage("chord search finished").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "guitar", fields["instrument"])
	assert.EqualValues(t, len(res.Fingerings), fields["fingerings"])
}
