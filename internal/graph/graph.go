// Package graph builds the compatibility graph over letter sets: two sets are
// connected iff they share no letter.
//
// Keys are deduplicated and sorted once, and that index order is used by
// every later stage. Each disjoint pair is inserted in both directions while
// building, so Neighbors is symmetric without any lazy fix-up.
package graph

import (
	"slices"

	"github.com/wisepythagoras/wordcliques/internal/bitset"
	"github.com/wisepythagoras/wordcliques/internal/letterset"
)

type Graph struct {
	keys  []letterset.Set
	index map[letterset.Set]int
	adj   []bitset.Bitset
	edges int
}

// Build connects every pair of disjoint keys.
func Build(keys []letterset.Set) *Graph {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	g := &Graph{
		keys:  sorted,
		index: make(map[letterset.Set]int, len(sorted)),
		adj:   make([]bitset.Bitset, len(sorted)),
	}

	for i, key := range sorted {
		g.index[key] = i
		g.adj[i] = bitset.New(len(sorted))
	}

	for i, a := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			if a.Disjoint(sorted[j]) {
				g.adj[i].Set(j)
				g.adj[j].Set(i)
				g.edges++
			}
		}
	}

	return g
}

// Len is the number of vertices.
func (g *Graph) Len() int {
	return len(g.keys)
}

func (g *Graph) Key(i int) letterset.Set {
	return g.keys[i]
}

// Keys returns the vertices in index order.
func (g *Graph) Keys() []letterset.Set {
	return slices.Clone(g.keys)
}

func (g *Graph) Index(key letterset.Set) (int, bool) {
	i, ok := g.index[key]

	return i, ok
}

// Neighbors returns the neighbourhood of vertex i. Callers must not modify it.
func (g *Graph) Neighbors(i int) bitset.Bitset {
	return g.adj[i]
}

func (g *Graph) Degree(i int) int {
	return g.adj[i].Count()
}

// Edges is the number of undirected edges.
func (g *Graph) Edges() int {
	return g.edges
}

// Connected reports whether a and b are both vertices and share an edge.
func (g *Graph) Connected(a, b letterset.Set) bool {
	i, ok := g.index[a]

	if !ok {
		return false
	}

	j, ok := g.index[b]

	if !ok {
		return false
	}

	return g.adj[i].Has(j)
}

// NeighborKeys lists the neighbours of key in index order.
func (g *Graph) NeighborKeys(key letterset.Set) []letterset.Set {
	i, ok := g.index[key]

	if !ok {
		return nil
	}

	idx := g.adj[i].Indices()
	out := make([]letterset.Set, len(idx))

	for n, j := range idx {
		out[n] = g.keys[j]
	}

	return out
}
