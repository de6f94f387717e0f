package precompute

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/handiism/chordfinder/internal/config"
	"github.com/handiism/chordfinder/internal/instrument"
	"github.com/handiism/chordfinder/internal/metrics"
	"github.com/handiism/chordfinder/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCache_LookupSearchesOnce(t *testing.T) {
	recorder := metrics.NewRecorder()
	cache := NewCache(WithRecorder(recorder))
	guitar := instrument.Guitar()
	chord := model.NewChord(model.B, model.Major, model.A)

	var wg sync.WaitGroup
	entries := make([]*Entry, 32)
	for i := range entries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entries[i] = cache.Lookup(chord, guitar)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), cache.Searches())
	assert.Equal(t, 1, cache.Len())
	for _, e := range entries {
		assert.Same(t, entries[0], e)
	}

	// Every lookup is counted once, including those that waited on the search.
	expected := `
# HELP chordfinder_cache_requests_total Fingering cache lookups by result
# TYPE chordfinder_cache_requests_total counter
chordfinder_cache_requests_total{result="hit"} 31
chordfinder_cache_requests_total{result="miss"} 1
`
	require.NoError(t, testutil.GatherAndCompare(recorder.Registry(), strings.NewReader(expected), "chordfinder_cache_requests_total"))

	best, ok := entries[0].Best()
	require.True(t, ok)
	assert.Equal(t, "X0444X", best.String())
}

func TestCache_KeyedByInstrument(t *testing.T) {
	cache := NewCache()
	chord := model.NewSimpleChord(model.C, model.Major)

	g := cache.Lookup(chord, instrument.Guitar())
	u := cache.Lookup(chord, instrument.Ukulele())
	cache.Lookup(chord, instrument.Guitar())

	assert.Equal(t, int64(2), cache.Searches())
	assert.NotEqual(t, g.Fingerings[0].Fingering.Len(), u.Fingerings[0].Fingering.Len())
}

func TestCache_LogsDowngrades(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	recorder := metrics.NewRecorder()
	cache := NewCache(WithLogger(zap.New(core)), WithRecorder(recorder))

	chord, ok := model.ParseChord("Dm7/F")
	require.True(t, ok)

	entry := cache.Lookup(chord, instrument.Balalaika())
	cache.Lookup(chord, instrument.Balalaika())

	assert.Equal(t, "Dm", entry.Searched.String())
	assert.Len(t, entry.Downgrades, 2)

	downgrades := logs.FilterMessage("chord downgraded").All()
	require.Len(t, downgrades, 2)
	assert.Equal(t, "bass", downgrades[0].ContextMap()["kind"])
	assert.Equal(t, "Dm7", downgrades[1].ContextMap()["from"])

	got, err := testutil.GatherAndCount(recorder.Registry(), "chordfinder_cache_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestEntry_Top(t *testing.T) {
	entry := NewCache().Lookup(model.NewSimpleChord(model.G, model.Major), instrument.Guitar())

	top := entry.Top(3)
	require.Len(t, top, 3)
	assert.LessOrEqual(t, top[0].Penalty, top[1].Penalty)
	assert.LessOrEqual(t, top[1].Penalty, top[2].Penalty)
	assert.Len(t, entry.Top(-1), len(entry.Fingerings))
	assert.Len(t, entry.Top(100000), len(entry.Fingerings))

	empty := &Entry{}
	_, ok := empty.Best()
	assert.False(t, ok)
}

func testSettings() *config.Settings {
	s := config.DefaultSettings()
	s.MaxConcurrentInstruments = 2
	s.MaxConcurrentChords = 4
	return s
}

func TestManager_Precompute(t *testing.T) {
	cache := NewCache()

	var mu sync.Mutex
	var events []ProgressEvent
	manager := NewManager(testSettings(), cache, func(e ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	})

	instruments := []*instrument.Instrument{instrument.Ukulele(), instrument.Balalaika()}
	require.NoError(t, manager.Precompute(context.Background(), instruments))

	done, total := manager.GetProgress()
	assert.Equal(t, int32(2*model.KeyCount*model.VariantCount), total)
	assert.Equal(t, total, done)
	assert.Equal(t, int(total), cache.Len())

	successes := 0
	for _, e := range events {
		if e.Level == LevelSuccess {
			successes++
		}
	}
	assert.Equal(t, 2, successes)
}

func TestManager_PrecomputeCancelled(t *testing.T) {
	cache := NewCache()
	var sawError bool
	var mu sync.Mutex
	manager := NewManager(testSettings(), cache, func(e ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		if e.Level == LevelError {
			sawError = true
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := manager.Precompute(ctx, []*instrument.Instrument{instrument.Guitar()})
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	assert.True(t, sawError)
	assert.Equal(t, 0, cache.Len())
}
