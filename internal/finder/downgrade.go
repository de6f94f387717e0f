package finder

import (
	"fmt"

	"github.com/handiism/chordfinder/internal/instrument"
	"github.com/handiism/chordfinder/internal/model"
)

// minStringsForExtendedChords is the string count below which four-note
// qualities are replaced with their triads.
const minStringsForExtendedChords = 4

// DowngradeKind identifies which rule produced a Downgrade.
type DowngradeKind int

const (
	// DowngradeBass drops a slash bass on an instrument without bass strings.
	DowngradeBass DowngradeKind = iota

	// DowngradeVariant replaces a quality the instrument has too few strings for.
	DowngradeVariant
)

// String returns a short name of the rule.
func (k DowngradeKind) String() string {
	switch k {
	case DowngradeBass:
		return "bass"
	case DowngradeVariant:
		return "variant"
	default:
		return "unknown"
	}
}

// Downgrade records one substitution applied before searching.
type Downgrade struct {
	Kind DowngradeKind
	From model.Chord
	To   model.Chord
}

// String describes the substitution, e.g. "variant: Dm7 -> Dm".
func (d Downgrade) String() string {
	return fmt.Sprintf("%s: %s -> %s", d.Kind, d.From, d.To)
}

// simplerVariant maps qualities that need four sounding strings to the
// triad they extend. No target appears as a source, so substitution
// always terminates.
func simplerVariant(v model.Variant) (model.Variant, bool) {
	switch v {
	case model.MinorSixth, model.MinorSeventh:
		return model.Minor, true
	case model.Seventh, model.AddedNinth:
		return model.Major, true
	case model.Major, model.Minor, model.SuspendedSecond, model.Diminished, model.Augmented:
		return v, false
	default:
		return v, false
	}
}

// NextDowngrade returns the first substitution that applies to chord on
// inst, or false when the chord can be searched as requested.
//
// The bass rule is checked before the variant rule.
func NextDowngrade(chord model.Chord, inst *instrument.Instrument) (Downgrade, bool) {
	if !inst.RequiresBass && chord.HasDistinctBass() {
		return Downgrade{Kind: DowngradeBass, From: chord, To: chord.WithBass(chord.Root)}, true
	}
	if inst.StringCount() < minStringsForExtendedChords {
		if v, ok := simplerVariant(chord.Variant); ok {
			return Downgrade{Kind: DowngradeVariant, From: chord, To: chord.WithVariant(v)}, true
		}
	}
	return Downgrade{}, false
}

// Resolve applies downgrades until none is left and returns the chord that
// will actually be searched together with the substitutions, in order.
func Resolve(chord model.Chord, inst *instrument.Instrument) (model.Chord, []Downgrade) {
	return resolve(chord, inst, nil)
}

func resolve(chord model.Chord, inst *instrument.Instrument, applied []Downgrade) (model.Chord, []Downgrade) {
	d, ok := NextDowngrade(chord, inst)
	if !ok {
		return chord, applied
	}
	return resolve(d.To, inst, append(applied, d))
}
