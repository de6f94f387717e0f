package precompute

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/chordfinder/internal/config"
	"github.com/handiism/chordfinder/internal/instrument"
	"github.com/handiism/chordfinder/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a precompute progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Manager fills a Cache with every chord for a set of instruments.
type Manager struct {
	settings   *config.Settings
	cache      *Cache
	onProgress func(ProgressEvent)

	total atomic.Int32
	done  atomic.Int32
}

// NewManager creates a Manager. onProgress may be nil and may be called
// from several goroutines at once.
func NewManager(settings *config.Settings, cache *Cache, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		cache:      cache,
		onProgress: onProgress,
	}
}

// Precompute searches every root and quality, and every bass when
// PrecomputeSlashChords is set, on each instrument.
//
// Instruments and chords run on bounded worker pools sized by
// MaxConcurrentInstruments and MaxConcurrentChords. Cancelling ctx stops
// scheduling new chords; searches already running finish normally.
func (m *Manager) Precompute(ctx context.Context, instruments []*instrument.Instrument) error {
	chords := model.AllChords(m.settings.PrecomputeSlashChords)
	m.total.Store(int32(len(chords) * len(instruments)))
	m.done.Store(0)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.MaxConcurrentInstruments)

	for _, inst := range instruments {
		g.Go(func() error {
			return m.precomputeInstrument(ctx, inst, chords)
		})
	}

	return g.Wait()
}

// GetProgress returns how many chords are done out of the total.
func (m *Manager) GetProgress() (done, total int32) {
	return m.done.Load(), m.total.Load()
}

func (m *Manager) precomputeInstrument(ctx context.Context, inst *instrument.Instrument, chords []model.Chord) error {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Precomputing %d chords for %s", len(chords), inst.Name), Level: LevelInfo})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.MaxConcurrentChords)

	var unplayable atomic.Int32
	for _, chord := range chords {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			entry := m.cache.Lookup(chord, inst)
			m.done.Add(1)

			if len(entry.Fingerings) == 0 {
				unplayable.Add(1)
				m.progress(ProgressEvent{Message: fmt.Sprintf("No fingering for %s on %s", chord, inst.Name), Level: LevelWarning})
			} else if len(entry.Downgrades) > 0 {
				m.progress(ProgressEvent{Message: fmt.Sprintf("%s on %s searched as %s", chord, inst.Name, entry.Searched), Level: LevelVerbose})
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Precompute for %s stopped: %v", inst.Name, err), Level: LevelError})
		return err
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Precomputed %d chords for %s (%d unplayable)", len(chords), inst.Name, unplayable.Load()),
		Level:   LevelSuccess,
	})
	return nil
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
