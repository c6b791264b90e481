// Package letterset maps words onto 26-bit letter presence masks.
package letterset

import (
	"math/bits"
	"strings"
)

const (
	Alphabet   = 26
	WordLength = 5
	CliqueSize = 5
)

// Set has bit i set iff the letter 'a'+i is present.
type Set uint32

// FromWord returns the letter set of word. It reports false if any byte is
// outside a-z.
func FromWord(word string) (Set, bool) {
	mask := Set(0)

	for i := 0; i < len(word); i++ {
		char := word[i]

		if char < 'a' || char > 'z' {
			return 0, false
		}

		mask |= 1 << (char - 'a')
	}

	return mask, true
}

func (s Set) Len() int {
	return bits.OnesCount32(uint32(s))
}

// Disjoint reports whether s and o share no letter.
func (s Set) Disjoint(o Set) bool {
	return s&o == 0
}

func (s Set) Union(o Set) Set {
	return s | o
}

func (s Set) Has(letter byte) bool {
	if letter < 'a' || letter > 'z' {
		return false
	}

	return s&(1<<(letter-'a')) != 0
}

// String lists the letters of s in alphabetical order.
func (s Set) String() string {
	var b strings.Builder

	for i := 0; i < Alphabet; i++ {
		if s&(1<<i) != 0 {
			b.WriteByte(byte('a' + i))
		}
	}

	return b.String()
}
