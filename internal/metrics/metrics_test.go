package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/chordfinder/internal/finder"
	"github.com/handiism/chordfinder/internal/instrument"
	"github.com/handiism/chordfinder/internal/model"
)

func TestRecorder_ObserveSearch(t *testing.T) {
	r := NewRecorder()
	f := finder.New()

	res := f.Find(model.NewSimpleChord(model.D, model.MinorSeventh), instrument.Balalaika())
	r.ObserveSearch(res)
	r.ObserveSearch(f.Find(model.NewSimpleChord(model.C, model.Major), instrument.Guitar()))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.searches.WithLabelValues("balalaika", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.searches.WithLabelValues("guitar", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.downgrades.WithLabelValues("variant")))
	assert.Equal(t, float64(res.Stats.Steps), testutil.ToFloat64(r.steps.WithLabelValues("balalaika")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rejections.WithLabelValues("guitar", "no_notes")))
}

func TestRecorder_Cache(t *testing.T) {
	r := NewRecorder()
	r.CacheMiss()
	r.CacheHit()
	r.CacheHit()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.cacheRequests.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheRequests.WithLabelValues("miss")))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.CacheHit()

	path := filepath.Join(t.TempDir(), "chordfinder.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `chordfinder_cache_requests_total{result="hit"} 1`))
}
