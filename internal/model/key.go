package model

import (
	"math/bits"
	"strings"
)

// Key is one of the twelve equal-tempered pitch classes.
//
// The ordinal of a Key is its integer value: C is 0 and B is 11. Every
// pitch class has exactly one canonical display spelling (flats are used
// for the black keys); sharps are accepted as alternate input spellings.
type Key int

const (
	C Key = iota
	Db
	D
	Eb
	E
	F
	Gb
	G
	Ab
	A
	Bb
	B
)

// KeyCount is the number of pitch classes in an octave.
const KeyCount = 12

var keySpellings = [KeyCount]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// keysBySpelling maps every accepted spelling, canonical and alternate, to its Key.
var keysBySpelling = func() map[string]Key {
	m := make(map[string]Key, KeyCount+5)
	for k, s := range keySpellings {
		m[s] = Key(k)
	}
	for s, k := range map[string]Key{"C#": Db, "D#": Eb, "F#": Gb, "G#": Ab, "A#": Bb} {
		m[s] = k
	}
	return m
}()

// AllKeys returns the twelve keys in ordinal order.
func AllKeys() []Key {
	keys := make([]Key, KeyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// KeyFromOrdinal returns the pitch class of an arbitrary semitone ordinal.
// Negative ordinals wrap with floor-modulo semantics, so -1 is B.
func KeyFromOrdinal(ordinal int) Key {
	return Key(floorMod(ordinal, KeyCount))
}

// Ordinal returns the key's position in [0,12).
func (k Key) Ordinal() int {
	return int(k)
}

// Valid reports whether k is one of the twelve defined keys.
func (k Key) Valid() bool {
	return k >= C && k <= B
}

// Add transposes the key by the given number of semitones.
func (k Key) Add(semitones int) Key {
	return KeyFromOrdinal(k.Ordinal() + semitones)
}

// String returns the canonical spelling of the key.
func (k Key) String() string {
	if !k.Valid() {
		return "?"
	}
	return keySpellings[k]
}

// ParseKey looks up a key by its exact, case-sensitive spelling.
//
// Accepted spellings are the canonical ones returned by Key.String plus the
// sharp aliases C#, D#, F#, G# and A#.
func ParseKey(text string) (Key, bool) {
	k, ok := keysBySpelling[text]
	return k, ok
}

// parseKeyPrefix resolves the longest key spelling at the start of text and
// returns the key together with the number of bytes it consumed.
func parseKeyPrefix(text string) (Key, int, bool) {
	for n := 2; n >= 1; n-- {
		if len(text) < n {
			continue
		}
		if k, ok := keysBySpelling[text[:n]]; ok {
			return k, n, true
		}
	}
	return 0, 0, false
}

// KeySet is a set of pitch classes stored as a 12-bit mask.
type KeySet uint16

// NewKeySet builds a set from the given keys.
func NewKeySet(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

// With returns a copy of the set that also contains k.
func (s KeySet) With(k Key) KeySet {
	return s | 1<<uint(floorMod(int(k), KeyCount))
}

// Without returns a copy of the set with k removed.
func (s KeySet) Without(k Key) KeySet {
	return s &^ (1 << uint(floorMod(int(k), KeyCount)))
}

// Contains reports whether k is in the set.
func (s KeySet) Contains(k Key) bool {
	return s&(1<<uint(floorMod(int(k), KeyCount))) != 0
}

// Len returns the number of keys in the set.
func (s KeySet) Len() int {
	return bits.OnesCount16(uint16(s))
}

// Keys returns the members of the set in ordinal order.
func (s KeySet) Keys() []Key {
	keys := make([]Key, 0, s.Len())
	for k := C; k <= B; k++ {
		if s.Contains(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// String renders the set as "{C E G}".
func (s KeySet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range s.Keys() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(k.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// floorMod returns a mod n in [0,n) for any sign of a.
func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// floorDiv returns a/n rounded toward negative infinity.
func floorDiv(a, n int) int {
	q := a / n
	if (a%n != 0) && ((a < 0) != (n < 0)) {
		q--
	}
	return q
}
