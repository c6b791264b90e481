// Package bitset is a fixed-size set of small non-negative integers, used as
// the neighbourhood representation of the compatibility graph.
package bitset

import "math/bits"

// Bitset holds indices [0, 64*len(b)).
type Bitset []uint64

// New returns an empty set able to hold indices [0, n).
func New(n int) Bitset {
	return make(Bitset, (n+63)/64)
}

func (b Bitset) Set(i int) {
	b[i>>6] |= 1 << uint(i&63)
}

func (b Bitset) Has(i int) bool {
	if i < 0 || i>>6 >= len(b) {
		return false
	}

	return b[i>>6]&(1<<uint(i&63)) != 0
}

func (b Bitset) Count() int {
	n := 0

	for _, w := range b {
		n += bits.OnesCount64(w)
	}

	return n
}

// And stores a∩b in dst and reports whether the result is non-empty. All
// three must have the same length.
func And(dst, a, b Bitset) bool {
	var nonEmpty uint64

	for i := range dst {
		dst[i] = a[i] & b[i]
		nonEmpty |= dst[i]
	}

	return nonEmpty != 0
}

// Next returns the smallest member >= from.
func (b Bitset) Next(from int) (int, bool) {
	if from < 0 {
		from = 0
	}

	i := from >> 6

	if i >= len(b) {
		return 0, false
	}

	w := b[i] >> uint(from&63)

	if w != 0 {
		return from + bits.TrailingZeros64(w), true
	}

	for i++; i < len(b); i++ {
		if b[i] != 0 {
			return i<<6 + bits.TrailingZeros64(b[i]), true
		}
	}

	return 0, false
}

// Indices lists the members in ascending order.
func (b Bitset) Indices() []int {
	out := make([]int, 0, b.Count())

	for i, ok := b.Next(0); ok; i, ok = b.Next(i + 1) {
		out = append(out, i)
	}

	return out
}

func (b Bitset) Clone() Bitset {
	c := make(Bitset, len(b))
	copy(c, b)

	return c
}
