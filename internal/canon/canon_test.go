package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisepythagoras/wordcliques/internal/letterset"
)

func mustSet(t *testing.T, word string) letterset.Set {
	t.Helper()

	s, ok := letterset.FromWord(word)
	require.True(t, ok, word)

	return s
}

func TestCheck(t *testing.T) {
	tests := []struct {
		word   string
		reason Reason
	}{
		{"aegis", ""},
		{"fjord", ""},
		{"hello", ReasonRepeated},
		{"llama", ReasonRepeated},
		{"four", ReasonLength},
		{"sixsix", ReasonLength},
		{"", ReasonLength},
		{"Fjord", ReasonAlphabet},
		{"ab-cd", ReasonAlphabet},
		{"abcd ", ReasonAlphabet},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			mask, reason := Check(tt.word)
			assert.Equal(t, tt.reason, reason)

			if tt.reason == "" {
				assert.Equal(t, 5, mask.Len())
			} else {
				assert.Zero(t, mask)
			}
		})
	}
}

func TestCanonicalizeGroupsAnagrams(t *testing.T) {
	groups, stats := Canonicalize([]string{"least", "fjord", "slate", "hello", "stale", "slate"})

	assert.Equal(t, 6, stats.Read)
	assert.Equal(t, 5, stats.Accepted)
	assert.Equal(t, 1, stats.Rejected[ReasonRepeated])
	assert.Equal(t, 1, stats.RejectedTotal())

	require.Equal(t, 2, groups.Len())
	assert.Equal(t, 5, groups.WordCount())
	assert.Equal(t, []letterset.Set{mustSet(t, "least"), mustSet(t, "fjord")}, groups.Keys())

	words, ok := groups.Words(mustSet(t, "tales"))
	require.True(t, ok)
	assert.Equal(t, []string{"least", "slate", "stale", "slate"}, words, "first-seen order, duplicates kept")
}

func TestCanonicalizeExcludesRejectedFromKeys(t *testing.T) {
	groups, stats := Canonicalize([]string{"hello", "four", "ABCDE", "sixsix"})

	assert.Zero(t, groups.Len())
	assert.Empty(t, groups.Keys())
	assert.Equal(t, 4, stats.RejectedTotal())
	assert.Zero(t, stats.Accepted)

	_, ok := groups.Words(mustSet(t, "abcde"))
	assert.False(t, ok)
}

func TestCanonicalizeEmpty(t *testing.T) {
	groups, stats := Canonicalize(nil)

	assert.Zero(t, groups.Len())
	assert.Zero(t, stats.Read)
}

func TestKeysReturnsCopy(t *testing.T) {
	groups, _ := Canonicalize([]string{"fjord", "aegis"})

	keys := groups.Keys()
	keys[0] = 0

	assert.Equal(t, mustSet(t, "fjord"), groups.Keys()[0])
}
