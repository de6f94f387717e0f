package finder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingering_String(t *testing.T) {
	tests := []struct {
		fingering Fingering
		want      string
	}{
		{NewFingering(x, 3, 2, 0, 1, 0), "X32010"},
		{NewFingering(x, 0, 4, 4, 4, 2), "X04442"},
		{NewFingering(x, x, x, x, x, x), "XXXXXX"},
		{NewFingering(9, 9, 9), "999"},
		{NewFingering(x, 10, 12, 12, 12, 10), "X,10,12,12,12,10"},
		{NewFingering(13, 1, 3), "13,1,3"},
		{NewFingering(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fingering.String())
		})
	}
}

func TestFingering_Immutable(t *testing.T) {
	frets := []int{x, 3, 2, 0, 1, 0}
	fg := NewFingering(frets...)
	frets[1] = 7

	out := fg.Frets()
	out[2] = 9

	assert.Equal(t, "X32010", fg.String())
	assert.Equal(t, 5, fg.Played())
	assert.True(t, fg.IsMuted(0))

	fret, ok := fg.Fret(1)
	assert.True(t, ok)
	assert.Equal(t, 3, fret)
}

func TestParseFingering(t *testing.T) {
	tests := []struct {
		input string
		want  Fingering
	}{
		{"X32010", NewFingering(x, 3, 2, 0, 1, 0)},
		{"x32010", NewFingering(x, 3, 2, 0, 1, 0)},
		{"X,10,12,12,12,10", NewFingering(x, 10, 12, 12, 12, 10)},
		{"x 0 2 2 1 0", NewFingering(x, 0, 2, 2, 1, 0)},
		{" 13,1,3 ", NewFingering(13, 1, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFingering(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}

	for _, bad := range []string{"", "X3201O", "1,-2,3", "X,a,3"} {
		_, err := ParseFingering(bad)
		assert.True(t, errors.Is(err, ErrInvalidFingering), bad)
	}
}
