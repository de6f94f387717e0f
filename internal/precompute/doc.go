// Package precompute memoises chord searches and fills the memo ahead of
// time.
//
// # Cache
//
// Cache runs each (chord, instrument) search at most once and keeps the
// ranked result:
//
//	cache := precompute.NewCache(precompute.WithLogger(logger))
//	entry := cache.Lookup(chord, guitar)
//	best, ok := entry.Best()
//
// # Manager
//
// Manager searches every chord for a set of instruments on a bounded
// worker pool:
//
//	manager := precompute.NewManager(settings, cache, func(event precompute.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//	err := manager.Precompute(ctx, registry.All())
//
// # Concurrency
//
// The Manager uses configurable concurrency limits:
//   - MaxConcurrentInstruments: How many instruments run in parallel
//   - MaxConcurrentChords: How many chords per instrument run in parallel
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
package precompute
