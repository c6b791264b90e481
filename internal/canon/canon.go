// Package canon reduces raw candidate words to anagram groups keyed by their
// letter set. Words that cannot take part in a five-word clique are dropped
// and counted, never reported as errors.
package canon

import (
	"github.com/wisepythagoras/wordcliques/internal/letterset"
)

// Reason explains why a word was rejected. The empty Reason means accepted.
type Reason string

const (
	ReasonLength   Reason = "length"
	ReasonAlphabet Reason = "alphabet"
	ReasonRepeated Reason = "repeated_letter"
)

// Stats counts what happened to every input word.
type Stats struct {
	Read     int
	Accepted int
	Rejected map[Reason]int
}

func (s Stats) RejectedTotal() int {
	total := 0

	for _, n := range s.Rejected {
		total += n
	}

	return total
}

// Groups maps each letter set to the words that produced it. Keys and the
// words within a key keep their first-seen order. Groups is read-only once
// Canonicalize returns.
type Groups struct {
	keys  []letterset.Set
	words map[letterset.Set][]string
}

// Keys returns a copy of the distinct letter sets in first-seen order.
func (g *Groups) Keys() []letterset.Set {
	keys := make([]letterset.Set, len(g.keys))
	copy(keys, g.keys)

	return keys
}

// Words returns the word group of key. The returned slice must not be
// modified.
func (g *Groups) Words(key letterset.Set) ([]string, bool) {
	words, ok := g.words[key]

	return words, ok
}

// Len is the number of distinct letter sets.
func (g *Groups) Len() int {
	return len(g.keys)
}

// WordCount is the number of accepted words, duplicates included.
func (g *Groups) WordCount() int {
	total := 0

	for _, words := range g.words {
		total += len(words)
	}

	return total
}

// Check decides a single word.
func Check(word string) (letterset.Set, Reason) {
	if len(word) != letterset.WordLength {
		return 0, ReasonLength
	}

	mask, ok := letterset.FromWord(word)

	if !ok {
		return 0, ReasonAlphabet
	}

	if mask.Len() != letterset.WordLength {
		return 0, ReasonRepeated
	}

	return mask, ""
}

// Canonicalize groups words by letter set.
func Canonicalize(words []string) (*Groups, Stats) {
	groups := &Groups{
		keys:  make([]letterset.Set, 0),
		words: make(map[letterset.Set][]string),
	}
	stats := Stats{Rejected: make(map[Reason]int)}

	for _, word := range words {
		stats.Read++

		mask, reason := Check(word)

		if reason != "" {
			stats.Rejected[reason]++
			continue
		}

		if _, inMap := groups.words[mask]; !inMap {
			groups.keys = append(groups.keys, mask)
		}

		groups.words[mask] = append(groups.words[mask], word)
		stats.Accepted++
	}

	return groups, stats
}
