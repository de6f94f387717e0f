package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with a settings file that does not exist, so the
// defaults apply.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "settings.yaml")}, args...))

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestFind(t *testing.T) {
	out, err := execute(t, "find", "Am", "--top", "1", "--diagram", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "Am on Guitar (E2 A2 D3 G3 B3 E4)")
	assert.Contains(t, out, " 1. ")
	assert.Contains(t, out, "more")
}

func TestFind_Downgrade(t *testing.T) {
	out, err := execute(t, "find", "C/G", "-i", "ukulele", "--diagram", "ascii")
	require.NoError(t, err)
	assert.Contains(t, out, "bass: C/G -> C")
	assert.Contains(t, out, "C (")
}

func TestFind_PNG(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "find", "G", "--top", "1", "--diagram", "png", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "diagram: ")
	assert.FileExists(t, filepath.Join(dir, "G guitar.png"))
}

func TestFind_BadChord(t *testing.T) {
	_, err := execute(t, "find", "H7")
	assert.ErrorContains(t, err, `cannot parse chord "H7"`)
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", "C", "X32010")
	require.NoError(t, err)
	assert.Equal(t, "X32010 plays C on Guitar (penalty 21)\n", out)

	_, err = execute(t, "validate", "C", "X32012")
	assert.ErrorContains(t, err, "X32012 is not C on Guitar")

	_, err = execute(t, "validate", "C", "X3201")
	assert.Error(t, err)
}

func TestInstruments(t *testing.T) {
	out, err := execute(t, "instruments")
	require.NoError(t, err)
	for _, id := range []string{"guitar *", "guitar-drop-d", "bass", "ukulele", "balalaika"} {
		assert.Contains(t, out, id)
	}

	out, err = execute(t, "instruments", "--export")
	require.NoError(t, err)
	assert.Contains(t, out, "instruments:")
	assert.Contains(t, out, "E2:24")
}

func TestSong(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.txt")
	require.NoError(t, os.WriteFile(path, []byte("Am\nhello\n"), 0o644))

	out, err := execute(t, "song", path, "--format", "chordpro")
	require.NoError(t, err)
	assert.Equal(t, "{title: sheet}\n\n[Am]hello\n", out)

	outPath := filepath.Join(t.TempDir(), "out", "sheet.txt")
	out, err = execute(t, "song", path, "-i", "ukulele", "--format", "annotated", "--out", outPath)
	require.NoError(t, err)
	assert.Empty(t, out)
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "sheet\n\nAm(2000)\nhello\n", string(data))

	_, err = execute(t, "song", path, "--tag")
	assert.ErrorContains(t, err, "--tag needs an MP3 file")

	_, err = execute(t, "song", path, "--format", "html")
	assert.Error(t, err)
}

func TestPrecompute(t *testing.T) {
	metrics := filepath.Join(t.TempDir(), "chordfinder.prom")
	out, err := execute(t, "precompute", "balalaika", "--metrics", metrics)
	require.NoError(t, err)
	assert.Contains(t, out, "Precomputed 108/108 chords")

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `chordfinder_searches_total{downgraded="true",instrument="balalaika"}`)
}

func TestPrecompute_UnknownInstrument(t *testing.T) {
	_, err := execute(t, "precompute", "banjo")
	assert.Error(t, err)
}
