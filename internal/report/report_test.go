package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisepythagoras/wordcliques/internal/clique"
	apperr "github.com/wisepythagoras/wordcliques/internal/errors"
	"github.com/wisepythagoras/wordcliques/internal/letterset"
)

type lookup map[letterset.Set][]string

func (l lookup) Words(key letterset.Set) ([]string, bool) {
	words, ok := l[key]

	return words, ok
}

func set(t *testing.T, word string) letterset.Set {
	t.Helper()

	s, ok := letterset.FromWord(word)
	require.True(t, ok)

	return s
}

func TestExpandCompoundAnagrams(t *testing.T) {
	a, f, k, p, u := set(t, "abcde"), set(t, "fghij"), set(t, "klmno"), set(t, "pqrst"), set(t, "uvwxy")
	words := lookup{
		a: {"deabc", "abcde"},
		f: {"fghij"},
		k: {"klmno"},
		p: {"pqrst"},
		u: {"uvwxy"},
	}

	groups, err := Expand([]clique.Clique{{u, k, a, p, f}}, words)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	assert.Equal(t, []string{"abcde", "deabc"}, groups[0][0])
	assert.Equal(t, "abcde|deabc,fghij,klmno,pqrst,uvwxy", groups[0].String())
	assert.Equal(t, []string{"deabc", "abcde"}, words[a], "word groups are not mutated")
}

func TestExpandDeduplicatesOrderings(t *testing.T) {
	a, f, k, p, u, z := set(t, "abcde"), set(t, "fghij"), set(t, "klmno"), set(t, "pqrst"), set(t, "uvwxy"), set(t, "vwxyz")
	words := lookup{
		a: {"abcde"}, f: {"fghij"}, k: {"klmno"}, p: {"pqrst"}, u: {"uvwxy"}, z: {"zyxwv"},
	}

	cliques := []clique.Clique{
		{z, a, f, k, p},
		{a, f, k, p, u},
		{u, p, k, f, a},
		{p, a, u, f, k},
		{a, z, p, k, f},
	}

	groups, err := Expand(cliques, words)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"abcde,fghij,klmno,pqrst,uvwxy",
		"abcde,fghij,klmno,pqrst,zyxwv",
	}, Lines(groups))
}

func TestExpandSortsSlotsByWord(t *testing.T) {
	a, f, k, p, u := set(t, "abcde"), set(t, "fghij"), set(t, "klmno"), set(t, "pqrst"), set(t, "uvwxy")
	words := lookup{
		a: {"ecabd"}, f: {"jihgf"}, k: {"monkl"}, p: {"trspq"}, u: {"yvwxu"},
	}

	groups, err := Expand([]clique.Clique{{a, f, k, p, u}}, words)
	require.NoError(t, err)

	assert.Equal(t, "ecabd,jihgf,monkl,trspq,yvwxu", groups[0].String())
}

func TestExpandMissingGroupIsInternal(t *testing.T) {
	a, f, k, p, u := set(t, "abcde"), set(t, "fghij"), set(t, "klmno"), set(t, "pqrst"), set(t, "uvwxy")
	words := lookup{a: {"abcde"}, f: {"fghij"}, k: {"klmno"}, p: {"pqrst"}}

	_, err := Expand([]clique.Clique{{a, f, k, p, u}}, words)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInternal)
	assert.Equal(t, apperr.ExitInternal, apperr.ExitCode(err))
}

func TestExpandRejectsOverlappingClique(t *testing.T) {
	a, f, k, p := set(t, "abcde"), set(t, "fghij"), set(t, "klmno"), set(t, "pqrst")
	bad := set(t, "aqxyz")
	words := lookup{a: {"abcde"}, f: {"fghij"}, k: {"klmno"}, p: {"pqrst"}, bad: {"aqxyz"}}

	_, err := Expand([]clique.Clique{{a, f, k, p, bad}}, words)
	assert.ErrorIs(t, err, apperr.ErrInternal)
}

func TestExpandEmpty(t *testing.T) {
	groups, err := Expand(nil, lookup{})
	require.NoError(t, err)

	assert.Empty(t, groups)
	assert.Empty(t, Lines(groups))
	assert.NotNil(t, Lines(groups))
}

func TestSlot(t *testing.T) {
	assert.Equal(t, "least|slate|stale", Slot([]string{"stale", "least", "slate"}))
	assert.Equal(t, "fjord", Slot([]string{"fjord"}))
}
