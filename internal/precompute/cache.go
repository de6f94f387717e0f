package precompute

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/handiism/chordfinder/internal/finder"
	"github.com/handiism/chordfinder/internal/instrument"
	"github.com/handiism/chordfinder/internal/metrics"
	"github.com/handiism/chordfinder/internal/model"
	"github.com/handiism/chordfinder/internal/ranker"
)

// Entry is the ranked outcome of one chord search.
type Entry struct {
	Requested  model.Chord
	Searched   model.Chord
	Downgrades []finder.Downgrade
	Fingerings []ranker.Ranked
}

// Best returns the easiest fingering, or false when the chord cannot be
// played on the instrument.
func (e *Entry) Best() (finder.Fingering, bool) {
	if len(e.Fingerings) == 0 {
		return finder.Fingering{}, false
	}
	return e.Fingerings[0].Fingering, true
}

// Top returns at most n of the easiest fingerings.
func (e *Entry) Top(n int) []ranker.Ranked {
	if n < 0 || n > len(e.Fingerings) {
		n = len(e.Fingerings)
	}
	return e.Fingerings[:n]
}

type cacheKey struct {
	chord      model.Chord
	instrument string
}

func (k cacheKey) String() string {
	return k.instrument + "|" + k.chord.String()
}

// Cache memoises ranked search results by chord and instrument ID.
//
// Each key is searched at most once, even under concurrent lookups:
// singleflight collapses in-flight requests and the map is re-checked
// inside the flight. Entries are shared and must not be modified.
type Cache struct {
	finder   *finder.Finder
	recorder *metrics.Recorder
	logger   *zap.Logger

	group    singleflight.Group
	mu       sync.RWMutex
	entries  map[cacheKey]*Entry
	searches atomic.Int64
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger. Downgrades are logged at info level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// WithRecorder records search statistics and hit/miss counts.
func WithRecorder(r *metrics.Recorder) Option {
	return func(c *Cache) {
		c.recorder = r
	}
}

// WithFinder replaces the default finder.
func WithFinder(f *finder.Finder) Option {
	return func(c *Cache) {
		c.finder = f
	}
}

// NewCache creates an empty cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		logger:  zap.NewNop(),
		entries: make(map[cacheKey]*Entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.finder == nil {
		c.finder = finder.New(finder.WithLogger(c.logger))
	}
	return c
}

// Lookup returns the ranked fingerings of chord on inst, searching on
// first use.
func (c *Cache) Lookup(chord model.Chord, inst *instrument.Instrument) *Entry {
	key := cacheKey{chord: chord, instrument: inst.ID}

	if entry, ok := c.get(key); ok {
		c.hit()
		return entry
	}

	searched := false
	v, _, _ := c.group.Do(key.String(), func() (any, error) {
		if entry, ok := c.get(key); ok {
			return entry, nil
		}
		searched = true
		entry := c.search(chord, inst)

		c.mu.Lock()
		c.entries[key] = entry
		c.mu.Unlock()
		return entry, nil
	})
	// Callers that waited on another caller's search, or found the entry
	// once inside the group, count as hits.
	if !searched {
		c.hit()
	}
	return v.(*Entry)
}

// Best returns the easiest fingering of chord on inst.
func (c *Cache) Best(chord model.Chord, inst *instrument.Instrument) (finder.Fingering, bool) {
	return c.Lookup(chord, inst).Best()
}

// BestOn returns Best bound to inst, usable as a tablature lookup.
func (c *Cache) BestOn(inst *instrument.Instrument) func(model.Chord) (finder.Fingering, bool) {
	return func(chord model.Chord) (finder.Fingering, bool) {
		return c.Best(chord, inst)
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Searches returns how many searches the cache has run.
func (c *Cache) Searches() int64 {
	return c.searches.Load()
}

func (c *Cache) get(key cacheKey) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	return entry, ok
}

func (c *Cache) search(chord model.Chord, inst *instrument.Instrument) *Entry {
	c.searches.Add(1)
	if c.recorder != nil {
		c.recorder.CacheMiss()
	}

	res := c.finder.Find(chord, inst)
	if c.recorder != nil {
		c.recorder.ObserveSearch(res)
	}
	for _, d := range res.Downgrades {
		c.logger.Info("chord downgraded",
			zap.String("instrument", inst.ID),
			zap.Stringer("kind", d.Kind),
			zap.Stringer("from", d.From),
			zap.Stringer("to", d.To),
		)
	}

	return &Entry{
		Requested:  res.Requested,
		Searched:   res.Searched,
		Downgrades: res.Downgrades,
		Fingerings: ranker.Rank(res.Fingerings),
	}
}

func (c *Cache) hit() {
	if c.recorder != nil {
		c.recorder.CacheHit()
	}
}
