package clique

import (
	"context"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisepythagoras/wordcliques/internal/graph"
	"github.com/wisepythagoras/wordcliques/internal/letterset"
)

func buildGraph(t testing.TB, words ...string) *graph.Graph {
	t.Helper()

	keys := make([]letterset.Set, 0, len(words))

	for _, w := range words {
		s, ok := letterset.FromWord(w)
		require.True(t, ok, w)
		keys = append(keys, s)
	}

	return graph.Build(keys)
}

func canonicalSet(cliques []Clique) []Clique {
	seen := make(map[Clique]struct{})
	out := make([]Clique, 0)

	for _, c := range cliques {
		c = c.Canonical()

		if _, ok := seen[c]; ok {
			continue
		}

		seen[c] = struct{}{}
		out = append(out, c)
	}

	slices.SortFunc(out, func(a, b Clique) int {
		return slices.Compare(a[:], b[:])
	})

	return out
}

var partitionWords = []string{
	"abcde", "fghij", "klmno", "pqrst", "uvwxy",
	"vwxyz", "uvwxz",
	"aeiou",
}

func TestEnumerateModes(t *testing.T) {
	g := buildGraph(t, partitionWords...)

	t.Run("exhaustive finds every ordering", func(t *testing.T) {
		cliques, stats, err := New(g, Options{Workers: 3}).Enumerate(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 3*120, stats.Discovered)
		assert.Equal(t, g.Len(), stats.Roots)
		assert.Len(t, cliques, 3, "each ordering kept once")
		assert.Equal(t, canonicalSet(cliques), cliques)
	})

	t.Run("ordered finds each clique once", func(t *testing.T) {
		cliques, stats, err := New(g, Options{Workers: 2, Mode: ModeOrdered}).Enumerate(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 3, stats.Discovered)
		assert.Len(t, cliques, 3)
		assert.Len(t, canonicalSet(cliques), 3)
	})
}

func TestEnumerateKeepsOneCopyPerShard(t *testing.T) {
	g := buildGraph(t, partitionWords...)
	e := New(g, Options{Workers: 1})

	s := e.newSearch()

	for i := 0; i < g.Len(); i++ {
		s.from(i)
	}

	assert.Equal(t, 3*120, s.discovered)
	assert.Len(t, s.found, 3)
	assert.Len(t, s.seen, 3)
}

func TestEnumerateCliquesAreValid(t *testing.T) {
	g := buildGraph(t, partitionWords...)

	cliques, _, err := New(g, Options{}).Enumerate(context.Background())
	require.NoError(t, err)

	for _, c := range cliques {
		assert.True(t, c.Valid(), "%v", c)

		for a := 0; a < len(c); a++ {
			for b := a + 1; b < len(c); b++ {
				assert.True(t, c[a].Disjoint(c[b]), "%s and %s", c[a], c[b])
			}
		}
	}
}

func TestEnumerateNoClique(t *testing.T) {
	g := buildGraph(t, "aegis", "nymph", "squad", "fjord", "blitz")

	for _, mode := range []Mode{ModeExhaustive, ModeOrdered} {
		cliques, stats, err := New(g, Options{Mode: mode}).Enumerate(context.Background())
		require.NoError(t, err)
		assert.Empty(t, cliques, mode)
		assert.Zero(t, stats.Discovered)
	}
}

func TestEnumerateEmptyGraph(t *testing.T) {
	e := New(graph.Build(nil), Options{Workers: 8})
	assert.Equal(t, 1, e.Workers())

	cliques, stats, err := e.Enumerate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cliques)
	assert.Zero(t, stats.Roots)
}

func TestEnumerateCancelled(t *testing.T) {
	g := buildGraph(t, partitionWords...)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := New(g, Options{Workers: 2}).Enumerate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnumerateWorkerCountDoesNotChangeResult(t *testing.T) {
	g := buildGraph(t, randomWords(rand.New(rand.NewSource(7)), 60)...)

	want, _, err := New(g, Options{Workers: 1}).Enumerate(context.Background())
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 7, 64} {
		got, _, err := New(g, Options{Workers: workers}).Enumerate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got, "workers=%d", workers)
	}
}

func TestEnumerateMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g := buildGraph(t, randomWords(rng, 45)...)
	keys := g.Keys()

	var want []Clique

	n := len(keys)

	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				for d := c + 1; d < n; d++ {
					for e := d + 1; e < n; e++ {
						cl := Clique{keys[a], keys[b], keys[c], keys[d], keys[e]}

						if cl.Valid() {
							want = append(want, cl)
						}
					}
				}
			}
		}
	}

	require.NotEmpty(t, want)

	exhaustive, es, err := New(g, Options{Workers: 4}).Enumerate(context.Background())
	require.NoError(t, err)

	ordered, stats, err := New(g, Options{Workers: 4, Mode: ModeOrdered}).Enumerate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, canonicalSet(want), canonicalSet(exhaustive))
	assert.Equal(t, canonicalSet(want), canonicalSet(ordered))
	assert.Equal(t, len(want), stats.Discovered)
	assert.Len(t, exhaustive, len(want))
	assert.Equal(t, 120*len(want), es.Discovered)
	assert.Equal(t, canonicalSet(want), exhaustive)
	assert.Equal(t, exhaustive, ordered)
}

func TestCliqueHelpers(t *testing.T) {
	g := buildGraph(t, "abcde", "fghij", "klmno", "pqrst", "uvwxy")
	keys := g.Keys()

	c := Clique{keys[4], keys[2], keys[0], keys[3], keys[1]}
	canon := c.Canonical()

	assert.Equal(t, Clique{keys[0], keys[1], keys[2], keys[3], keys[4]}, canon)
	assert.Equal(t, keys[4], c[0], "receiver untouched")
	assert.Equal(t, 25, c.Union().Len())
	assert.True(t, c.Valid())

	c[1] = c[0]
	assert.False(t, c.Valid())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeExhaustive, false},
		{"exhaustive", ModeExhaustive, false},
		{" Ordered ", ModeOrdered, false},
		{"fast", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)

		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}

		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

// randomWords builds five-letter words with distinct letters, seeded with a
// full partition of the alphabet so that at least one clique exists.
func randomWords(rng *rand.Rand, n int) []string {
	words := []string{"abcde", "fghij", "klmno", "pqrst", "uvwxy"}
	letters := []byte("abcdefghijklmnopqrstuvwxyz")

	for len(words) < n {
		rng.Shuffle(len(letters), func(i, j int) {
			letters[i], letters[j] = letters[j], letters[i]
		})
		words = append(words, string(letters[:5]))
	}

	return words
}

func BenchmarkEnumerate(b *testing.B) {
	g := buildGraph(b, randomWords(rand.New(rand.NewSource(1)), 400)...)

	for _, mode := range []Mode{ModeExhaustive, ModeOrdered} {
		b.Run(string(mode), func(b *testing.B) {
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if _, _, err := New(g, Options{Mode: mode}).Enumerate(context.Background()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
