package pairs

import "github.com/soniakeys/bits"

// Universe is the set of pairs not yet covered by any group. It only shrinks.
type Universe struct {
	n    int
	open bits.Bits
	left int
}

// NewUniverse returns a universe holding all C(n,2) pairs of n people.
func NewUniverse(n int) *Universe {
	total := Count(n)
	u := &Universe{
		n:    n,
		open: bits.New(total),
		left: total,
	}
	u.open.SetAll()
	return u
}

// People returns n.
func (u *Universe) People() int {
	return u.n
}

// Len returns the number of uncovered pairs.
func (u *Universe) Len() int {
	return u.left
}

// Empty reports whether every pair has been covered.
func (u *Universe) Empty() bool {
	return u.left == 0
}

// Contains reports whether the pair {a, b} is still uncovered.
func (u *Universe) Contains(a, b int) bool {
	if a == b {
		return false
	}
	return u.open.Bit(Index(u.n, a, b)) == 1
}

// Remove marks every pair internal to group as covered and returns how many
// of them were still uncovered.
func (u *Universe) Remove(group []int) int {
	removed := 0
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			idx := Index(u.n, group[i], group[j])
			if u.open.Bit(idx) == 1 {
				u.open.SetBit(idx, 0)
				removed++
			}
		}
	}
	u.left -= removed
	return removed
}

// Each calls fn for every uncovered pair in ascending (A, B) order until fn
// returns false.
func (u *Universe) Each(fn func(Pair) bool) {
	if u.left == 0 {
		return
	}
	a := 0
	u.open.IterateOnes(func(idx int) bool {
		for a+1 < u.n && idx >= rowStart(u.n, a+1) {
			a++
		}
		b := idx - rowStart(u.n, a) + a + 1
		return fn(Pair{A: a, B: b})
	})
}
