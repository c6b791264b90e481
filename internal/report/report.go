// Package report turns discovered cliques into deterministic output lines.
//
// Every clique is canonicalised and deduplicated, each letter set is expanded
// to its whole anagram group, and the groups are sorted. Anagrams are
// reported together in one slot ("least|slate|stale"), so a clique yields
// exactly one line.
package report

import (
	"slices"
	"strings"

	"github.com/wisepythagoras/wordcliques/internal/clique"
	apperr "github.com/wisepythagoras/wordcliques/internal/errors"
	"github.com/wisepythagoras/wordcliques/internal/letterset"
)

const (
	WordSeparator = "|"
	SlotSeparator = ","
)

// WordLookup resolves a letter set to its word group.
type WordLookup interface {
	Words(key letterset.Set) ([]string, bool)
}

// Group is one clique expanded to words: one slot per letter set, each slot
// holding the sorted anagram group. Slots are ordered by their rendering.
type Group [letterset.CliqueSize][]string

func Slot(words []string) string {
	sorted := slices.Clone(words)
	slices.Sort(sorted)

	return strings.Join(sorted, WordSeparator)
}

func (g Group) String() string {
	slots := make([]string, len(g))

	for i, words := range g {
		slots[i] = strings.Join(words, WordSeparator)
	}

	return strings.Join(slots, SlotSeparator)
}

// Expand deduplicates cliques and expands them to sorted groups. A letter set
// with no word group, or a clique that does not cover 25 letters, is an
// internal fault and aborts the expansion.
func Expand(cliques []clique.Clique, groups WordLookup) ([]Group, error) {
	seen := make(map[clique.Clique]struct{}, len(cliques))
	out := make([]Group, 0)

	for _, c := range cliques {
		c = c.Canonical()

		if _, dup := seen[c]; dup {
			continue
		}

		seen[c] = struct{}{}

		if !c.Valid() {
			return nil, apperr.Internal("clique %v does not cover %d distinct letters",
				c, letterset.CliqueSize*letterset.WordLength)
		}

		g, err := expand(c, groups)
		if err != nil {
			return nil, err
		}

		out = append(out, g)
	}

	slices.SortFunc(out, func(a, b Group) int {
		return strings.Compare(a.String(), b.String())
	})

	return out, nil
}

func expand(c clique.Clique, groups WordLookup) (Group, error) {
	var g Group

	slots := make([]string, len(c))

	for i, key := range c {
		words, ok := groups.Words(key)

		if !ok || len(words) == 0 {
			return g, apperr.Internal("no word group for letter set %q (%d)", key, uint32(key))
		}

		slots[i] = Slot(words)
	}

	slices.Sort(slots)

	for i, slot := range slots {
		g[i] = strings.Split(slot, WordSeparator)
	}

	return g, nil
}

// Lines renders groups one per line.
func Lines(groups []Group) []string {
	lines := make([]string, len(groups))

	for i, g := range groups {
		lines[i] = g.String()
	}

	return lines
}
