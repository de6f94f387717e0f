// Package metrics exposes Prometheus collectors for chord searches and
// the fingering cache.
//
// Collectors live on a private registry so several recorders can coexist
// in one process (and in tests). WriteTextfile dumps the registry in the
// node_exporter textfile format for batch runs such as precompute.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/handiism/chordfinder/internal/finder"
)

// Recorder records search and cache metrics.
type Recorder struct {
	registry *prometheus.Registry

	searches       *prometheus.CounterVec
	steps          *prometheus.CounterVec
	rejections     *prometheus.CounterVec
	downgrades     *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	fingerings     prometheus.Histogram
	cacheRequests  *prometheus.CounterVec
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chordfinder_searches_total",
			Help: "Chord searches by instrument and whether the chord was downgraded",
		}, []string{"instrument", "downgraded"}),
		steps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chordfinder_search_steps_total",
			Help: "Search nodes visited by instrument",
		}, []string{"instrument"}),
		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chordfinder_search_rejections_total",
			Help: "Complete placements rejected by reason",
		}, []string{"instrument", "reason"}),
		downgrades: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chordfinder_downgrades_total",
			Help: "Chord substitutions applied before searching",
		}, []string{"kind"}),
		searchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chordfinder_search_duration_seconds",
			Help:    "Chord search duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
		}, []string{"instrument"}),
		fingerings: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "chordfinder_search_fingerings",
			Help:    "Fingerings found per search",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		}),
		cacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "chordfinder_cache_requests_total",
			Help: "Fingering cache lookups by result",
		}, []string{"result"}),
	}
}

// ObserveSearch records the statistics of one finder result.
func (r *Recorder) ObserveSearch(res finder.Result) {
	id := res.Instrument.ID
	r.searches.WithLabelValues(id, strconv.FormatBool(res.Downgraded())).Inc()
	r.steps.WithLabelValues(id).Add(float64(res.Stats.Steps))
	r.rejections.WithLabelValues(id, "no_notes").Add(float64(res.Stats.NoNotes))
	r.rejections.WithLabelValues(id, "bad_bass").Add(float64(res.Stats.BadBass))
	r.rejections.WithLabelValues(id, "bad_notes").Add(float64(res.Stats.BadNotes))
	for _, d := range res.Downgrades {
		r.downgrades.WithLabelValues(d.Kind.String()).Inc()
	}
	r.searchDuration.WithLabelValues(id).Observe(res.Stats.Duration.Seconds())
	r.fingerings.Observe(float64(len(res.Fingerings)))
}

// CacheHit records a lookup answered from the cache.
func (r *Recorder) CacheHit() {
	r.cacheRequests.WithLabelValues("hit").Inc()
}

// CacheMiss records a lookup that triggered a search.
func (r *Recorder) CacheMiss() {
	r.cacheRequests.WithLabelValues("miss").Inc()
}

// Registry returns the registry holding the collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
