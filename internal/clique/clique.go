// Package clique enumerates every set of five mutually disjoint letter sets
// in a compatibility graph by nested neighbourhood intersection:
//
//	N(i) -> N(i)∩N(j) -> N(i)∩N(j)∩N(k) -> N(i)∩N(j)∩N(k)∩N(m)
//
// and every n left in the last intersection closes the clique {i,j,k,m,n}.
//
// The outer loop over i is sharded across workers. Each worker owns its
// scratch sets and the set of cliques it has found; the graph is only read.
package clique

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/wisepythagoras/wordcliques/internal/bitset"
	"github.com/wisepythagoras/wordcliques/internal/graph"
	"github.com/wisepythagoras/wordcliques/internal/letterset"
)

// Mode selects how the search walks each neighbourhood.
type Mode string

const (
	// ModeExhaustive follows every neighbour at every level. A clique is
	// found once per ordering of its members.
	ModeExhaustive Mode = "exhaustive"
	// ModeOrdered only follows neighbours with a higher index than the one
	// chosen at the previous level, so each clique is found once.
	ModeOrdered Mode = "ordered"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeExhaustive, "":
		return ModeExhaustive, nil
	case ModeOrdered:
		return ModeOrdered, nil
	default:
		return "", fmt.Errorf("unknown search mode %q", s)
	}
}

// Clique is five mutually disjoint letter sets.
type Clique [letterset.CliqueSize]letterset.Set

// Canonical returns c with its members sorted ascending.
func (c Clique) Canonical() Clique {
	slices.Sort(c[:])

	return c
}

func (c Clique) Union() letterset.Set {
	u := letterset.Set(0)

	for _, s := range c {
		u = u.Union(s)
	}

	return u
}

// Valid reports whether the members are pairwise disjoint five-letter sets.
func (c Clique) Valid() bool {
	for _, s := range c {
		if s.Len() != letterset.WordLength {
			return false
		}
	}

	return c.Union().Len() == letterset.CliqueSize*letterset.WordLength
}

type Options struct {
	Workers int
	Mode    Mode
	Logger  *slog.Logger
}

type Stats struct {
	// Roots is the number of outer-loop vertices searched.
	Roots int
	// Discovered counts cliques as found, before deduplication. In
	// ModeExhaustive it is 120 times the number of distinct cliques.
	Discovered int
}

type Enumerator struct {
	g       *graph.Graph
	workers int
	mode    Mode
	log     *slog.Logger
}

func New(g *graph.Graph, opts Options) *Enumerator {
	workers := opts.Workers

	if workers < 1 {
		workers = runtime.NumCPU()
	}

	if workers > g.Len() {
		workers = max(g.Len(), 1)
	}

	mode := opts.Mode

	if mode == "" {
		mode = ModeExhaustive
	}

	log := opts.Logger

	if log == nil {
		log = slog.Default()
	}

	return &Enumerator{g: g, workers: workers, mode: mode, log: log}
}

func (e *Enumerator) Workers() int {
	return e.workers
}

// Enumerate returns every clique once, in canonical form and sorted. In
// ModeExhaustive each clique is still found once per ordering of its members;
// Stats.Discovered counts those finds and each worker keeps only the first.
func (e *Enumerator) Enumerate(ctx context.Context) ([]Clique, Stats, error) {
	searches := make([]*search, e.workers)
	roots := make([]int, e.workers)

	eg, ctx := errgroup.WithContext(ctx)

	for w := 0; w < e.workers; w++ {
		s := e.newSearch()
		searches[w] = s
		w := w

		eg.Go(func() error {
			for i := w; i < e.g.Len(); i += e.workers {
				if err := ctx.Err(); err != nil {
					return err
				}

				s.from(i)
				roots[w]++
			}

			e.log.Debug("shard done", "worker", w, "roots", roots[w], "found", s.discovered, "kept", len(s.found))

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{}
	seen := make(map[Clique]struct{})
	out := make([]Clique, 0)

	for w, s := range searches {
		stats.Roots += roots[w]
		stats.Discovered += s.discovered

		for _, c := range s.found {
			if _, ok := seen[c]; ok {
				continue
			}

			seen[c] = struct{}{}
			out = append(out, c)
		}
	}

	slices.SortFunc(out, func(a, b Clique) int {
		return slices.Compare(a[:], b[:])
	})

	return out, stats, nil
}

// search holds one worker's scratch intersections and the canonical cliques
// it has kept so far.
type search struct {
	g       *graph.Graph
	ordered bool
	ij      bitset.Bitset
	ijk     bitset.Bitset
	ijkm    bitset.Bitset

	seen       map[Clique]struct{}
	found      []Clique
	discovered int
}

func (e *Enumerator) newSearch() *search {
	return &search{
		g:       e.g,
		ordered: e.mode == ModeOrdered,
		ij:      bitset.New(e.g.Len()),
		ijk:     bitset.New(e.g.Len()),
		ijkm:    bitset.New(e.g.Len()),
		seen:    make(map[Clique]struct{}),
	}
}

// start is where iteration over a level begins once prev has been chosen.
func (s *search) start(prev int) int {
	if s.ordered {
		return prev + 1
	}

	return 0
}

func (s *search) from(i int) {
	g := s.g
	ni := g.Neighbors(i)

	for j, ok := ni.Next(s.start(i)); ok; j, ok = ni.Next(j + 1) {
		if !bitset.And(s.ij, ni, g.Neighbors(j)) {
			continue
		}

		for k, ok := s.ij.Next(s.start(j)); ok; k, ok = s.ij.Next(k + 1) {
			if !bitset.And(s.ijk, s.ij, g.Neighbors(k)) {
				continue
			}

			for m, ok := s.ijk.Next(s.start(k)); ok; m, ok = s.ijk.Next(m + 1) {
				if !bitset.And(s.ijkm, s.ijk, g.Neighbors(m)) {
					continue
				}

				for n, ok := s.ijkm.Next(s.start(m)); ok; n, ok = s.ijkm.Next(n + 1) {
					s.keep(Clique{g.Key(i), g.Key(j), g.Key(k), g.Key(m), g.Key(n)})
				}
			}
		}
	}
}

func (s *search) keep(c Clique) {
	s.discovered++
	c = c.Canonical()

	if _, ok := s.seen[c]; ok {
		return
	}

	s.seen[c] = struct{}{}
	s.found = append(s.found, c)
}
