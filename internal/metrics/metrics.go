// Package metrics defines the Prometheus collectors for a search run and
// exports them in the node-exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wordcliques"

const (
	StageCanonicalize = "canonicalize"
	StageGraph        = "graph"
	StageEnumerate    = "enumerate"
	StageReport       = "report"
)

// Metrics holds all collectors for one process.
type Metrics struct {
	WordsRead          prometheus.Counter
	WordsRejected      *prometheus.CounterVec
	LetterSets         prometheus.Gauge
	GraphEdges         prometheus.Gauge
	CliquesDiscovered  prometheus.Counter
	Cliques            prometheus.Gauge
	StageDuration      *prometheus.HistogramVec
	CacheRequestsTotal *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		WordsRead: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "words_read_total",
				Help:      "Candidate words read from the word list.",
			},
		),
		WordsRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "words_rejected_total",
				Help:      "Candidate words dropped by reason (length, alphabet, repeated_letter).",
			},
			[]string{"reason"},
		),
		LetterSets: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "letter_sets",
				Help:      "Distinct five-letter sets after anagram grouping.",
			},
		),
		GraphEdges: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "graph_edges",
				Help:      "Undirected edges in the compatibility graph.",
			},
		),
		CliquesDiscovered: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cliques_discovered_total",
				Help:      "Cliques found by the search before deduplication.",
			},
		),
		Cliques: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cliques",
				Help:      "Distinct cliques reported by the last run.",
			},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Wall time per pipeline stage in seconds.",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 60, 300},
			},
			[]string{"stage"},
		),
		CacheRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_requests_total",
				Help:      "Result cache lookups by result (hit, miss, error).",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(
		m.WordsRead,
		m.WordsRejected,
		m.LetterSets,
		m.GraphEdges,
		m.CliquesDiscovered,
		m.Cliques,
		m.StageDuration,
		m.CacheRequestsTotal,
	)

	return m
}

func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// WriteTextfile writes everything g gathers to path, atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}

	return nil
}
