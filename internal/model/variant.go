package model

import "slices"

// Variant is a chord quality, defined by the semitone intervals of its
// tones above the root.
//
// The set of variants is closed; every switch over Variant in this module
// is exhaustive.
type Variant int

const (
	// Major is the plain triad {0,4,7}, written without a suffix ("C").
	Major Variant = iota

	// Minor is {0,3,7}, suffix "m".
	Minor

	// Seventh is the dominant seventh {0,4,7,10}, suffix "7".
	Seventh

	// MinorSeventh is {0,3,7,10}, suffix "m7".
	MinorSeventh

	// MinorSixth is {0,3,7,9}, suffix "m6".
	MinorSixth

	// SuspendedSecond is {0,2,7}, suffix "sus2".
	SuspendedSecond

	// AddedNinth is {0,4,7,14}, suffix "add9".
	AddedNinth

	// Diminished is {0,3,6}, suffix "dim".
	Diminished

	// Augmented is {0,4,8}, suffix "aug".
	Augmented
)

// VariantCount is the number of defined chord qualities.
const VariantCount = 9

// AllVariants returns every variant in declaration order.
func AllVariants() []Variant {
	return []Variant{Major, Minor, Seventh, MinorSeventh, MinorSixth, SuspendedSecond, AddedNinth, Diminished, Augmented}
}

// Intervals returns the semitone offsets of the chord tones above the root.
// The returned slice is a fresh copy.
func (v Variant) Intervals() []int {
	switch v {
	case Major:
		return []int{0, 4, 7}
	case Minor:
		return []int{0, 3, 7}
	case Seventh:
		return []int{0, 4, 7, 10}
	case MinorSeventh:
		return []int{0, 3, 7, 10}
	case MinorSixth:
		return []int{0, 3, 7, 9}
	case SuspendedSecond:
		return []int{0, 2, 7}
	case AddedNinth:
		return []int{0, 4, 7, 14}
	case Diminished:
		return []int{0, 3, 6}
	case Augmented:
		return []int{0, 4, 8}
	default:
		return nil
	}
}

// Suffix returns the text appended to the root when the chord is written.
func (v Variant) Suffix() string {
	switch v {
	case Major:
		return ""
	case Minor:
		return "m"
	case Seventh:
		return "7"
	case MinorSeventh:
		return "m7"
	case MinorSixth:
		return "m6"
	case SuspendedSecond:
		return "sus2"
	case AddedNinth:
		return "add9"
	case Diminished:
		return "dim"
	case Augmented:
		return "aug"
	default:
		return "?"
	}
}

// String returns the English name of the quality.
func (v Variant) String() string {
	switch v {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Seventh:
		return "seventh"
	case MinorSeventh:
		return "minor seventh"
	case MinorSixth:
		return "minor sixth"
	case SuspendedSecond:
		return "suspended second"
	case AddedNinth:
		return "added ninth"
	case Diminished:
		return "diminished"
	case Augmented:
		return "augmented"
	default:
		return "unknown"
	}
}

// variantsByLongestSuffix lists the variants with the longest suffix first,
// so the first prefix match during parsing is the maximal munch.
var variantsByLongestSuffix = func() []Variant {
	vs := AllVariants()
	slices.SortStableFunc(vs, func(a, b Variant) int {
		return len(b.Suffix()) - len(a.Suffix())
	})
	return vs
}()

// ParseVariant returns the variant whose suffix is exactly text.
func ParseVariant(text string) (Variant, bool) {
	for _, v := range variantsByLongestSuffix {
		if v.Suffix() == text {
			return v, true
		}
	}
	return 0, false
}

// matchVariantPrefix returns the variant with the longest suffix that
// prefixes text, and the number of bytes it consumed. The empty Major
// suffix matches any input.
func matchVariantPrefix(text string) (Variant, int) {
	for _, v := range variantsByLongestSuffix {
		if s := v.Suffix(); len(s) <= len(text) && text[:len(s)] == s {
			return v, len(s)
		}
	}
	return Major, 0
}
