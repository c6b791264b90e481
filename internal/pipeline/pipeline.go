// Package pipeline drives a search end to end:
//
//	words -> anagram groups -> compatibility graph -> cliques -> result lines
//
// Each stage only reads the previous stage's output. Nothing built by an
// earlier stage is modified later, so the enumeration can share the graph
// and groups across workers without locking.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/wisepythagoras/wordcliques/internal/cache"
	"github.com/wisepythagoras/wordcliques/internal/canon"
	"github.com/wisepythagoras/wordcliques/internal/clique"
	"github.com/wisepythagoras/wordcliques/internal/graph"
	"github.com/wisepythagoras/wordcliques/internal/logger"
	"github.com/wisepythagoras/wordcliques/internal/metrics"
	"github.com/wisepythagoras/wordcliques/internal/report"
)

type Options struct {
	Workers int
	Mode    clique.Mode
}

type Option func(*Pipeline)

func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithCache makes Run consult c before enumerating and fill it afterwards.
// Canonicalization and the graph are always rebuilt so a hit still reports
// full input stats.
func WithCache(c cache.Cache) Option {
	return func(p *Pipeline) { p.cache = c }
}

type Stats struct {
	Words      int
	Accepted   int
	Rejected   map[canon.Reason]int
	LetterSets int
	Edges      int
	Discovered int
	Cliques    int
	Durations  map[string]time.Duration
}

type Result struct {
	// Groups is nil when the result came from the cache. Stats then carry
	// everything except Discovered.
	Groups []report.Group
	Lines  []string
	Stats  Stats
	Cached bool
}

type Pipeline struct {
	opts    Options
	log     *slog.Logger
	metrics *metrics.Metrics
	cache   cache.Cache
}

func New(opts Options, options ...Option) *Pipeline {
	if opts.Mode == "" {
		opts.Mode = clique.ModeExhaustive
	}

	p := &Pipeline{opts: opts, log: logger.Discard()}

	for _, o := range options {
		o(p)
	}

	return p
}

// Run searches words for every set of five words with 25 distinct letters.
// Identical input always yields identical Lines.
func (p *Pipeline) Run(ctx context.Context, words []string) (*Result, error) {
	start := time.Now()

	stats := Stats{Durations: make(map[string]time.Duration)}
	timed := func(stage string, t time.Time) {
		d := time.Since(t)
		stats.Durations[stage] = d

		if p.metrics != nil {
			p.metrics.ObserveStage(stage, d)
		}
	}

	t := time.Now()
	groups, cs := canon.Canonicalize(words)
	timed(metrics.StageCanonicalize, t)

	stats.Words = cs.Read
	stats.Accepted = cs.Accepted
	stats.Rejected = cs.Rejected
	stats.LetterSets = groups.Len()

	p.log.Info("distinct letter sets found",
		"letter_sets", groups.Len(), "words", cs.Read, "accepted", cs.Accepted, "rejected", cs.RejectedTotal())

	p.log.Info("building graph")

	t = time.Now()
	g := graph.Build(groups.Keys())
	timed(metrics.StageGraph, t)

	stats.Edges = g.Edges()
	p.log.Debug("graph built", "vertices", g.Len(), "edges", g.Edges())

	key := ""

	if p.cache != nil {
		key = cache.Key(p.opts.Mode, words)

		if lines, ok := p.fromCache(ctx, key); ok {
			stats.Cliques = len(lines)
			p.record(stats)

			p.log.Info("results served from cache", "cliques", len(lines), "duration", time.Since(start))

			return &Result{Lines: lines, Stats: stats, Cached: true}, nil
		}
	}

	enum := clique.New(g, clique.Options{
		Workers: p.opts.Workers,
		Mode:    p.opts.Mode,
		Logger:  p.log,
	})

	p.log.Info("finding cliques", "workers", enum.Workers(), "mode", p.opts.Mode)

	t = time.Now()
	found, es, err := enum.Enumerate(ctx)
	if err != nil {
		return nil, err
	}
	timed(metrics.StageEnumerate, t)

	stats.Discovered = es.Discovered

	t = time.Now()
	expanded, err := report.Expand(found, groups)
	if err != nil {
		return nil, err
	}
	lines := report.Lines(expanded)
	timed(metrics.StageReport, t)

	stats.Cliques = len(lines)

	p.record(stats)

	if p.cache != nil {
		if err := p.cache.Set(ctx, key, lines); err != nil {
			p.log.Warn("caching results failed", "error", err)
		}
	}

	p.log.Info("search done", "cliques", len(lines), "discovered", es.Discovered, "duration", time.Since(start))

	return &Result{Groups: expanded, Lines: lines, Stats: stats}, nil
}

// WordGroups lists every accepted letter set as its sorted anagram group, in
// graph order.
func (p *Pipeline) WordGroups(words []string) []string {
	groups, cs := canon.Canonicalize(words)
	g := graph.Build(groups.Keys())

	p.log.Info("distinct letter sets found",
		"letter_sets", groups.Len(), "words", cs.Read)

	lines := make([]string, 0, g.Len())

	for _, key := range g.Keys() {
		ws, _ := groups.Words(key)
		lines = append(lines, report.Slot(ws))

		p.log.Debug("letter set", "letters", key.String(), "mask", uint32(key), "words", ws)
	}

	return lines
}

func (p *Pipeline) fromCache(ctx context.Context, key string) ([]string, bool) {
	lines, ok, err := p.cache.Get(ctx, key)

	result := "miss"

	switch {
	case err != nil:
		result = "error"
		p.log.Warn("cache lookup failed, searching", "error", err)
	case ok:
		result = "hit"
	}

	if p.metrics != nil {
		p.metrics.CacheRequestsTotal.WithLabelValues(result).Inc()
	}

	return lines, ok && err == nil
}

func (p *Pipeline) record(s Stats) {
	if p.metrics == nil {
		return
	}

	m := p.metrics
	m.WordsRead.Add(float64(s.Words))

	for reason, n := range s.Rejected {
		m.WordsRejected.WithLabelValues(string(reason)).Add(float64(n))
	}

	m.LetterSets.Set(float64(s.LetterSets))
	m.GraphEdges.Set(float64(s.Edges))
	m.CliquesDiscovered.Add(float64(s.Discovered))
	m.Cliques.Set(float64(s.Cliques))
}
