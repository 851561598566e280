// Package pairs holds the bookkeeping shared by the solvers: the universe of
// pairs still to be covered and the per-person record of who has met whom.
//
// People are dense indices 0..n-1. A pair is stored canonically with A < B and
// pairs are numbered row by row in the upper triangle of the n×n matrix, so
// (0,1), (0,2) … (0,n-1), (1,2) … (n-2,n-1) map to 0 … C(n,2)-1.
package pairs

// Pair is an unordered pair of people in canonical form (A < B).
type Pair struct {
	A, B int
}

// New returns the canonical pair for a and b.
func New(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Has reports whether x is one of the pair's members.
func (p Pair) Has(x int) bool {
	return p.A == x || p.B == x
}

// Count returns C(n, 2).
func Count(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// Index returns the triangular index of the pair {a, b} among n people.
func Index(n, a, b int) int {
	if a > b {
		a, b = b, a
	}
	return rowStart(n, a) + (b - a - 1)
}

func rowStart(n, a int) int {
	return a*n - a*(a+1)/2
}

// Of returns every pair internal to group.
func Of(group []int) []Pair {
	out := make([]Pair, 0, Count(len(group)))
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			out = append(out, New(group[i], group[j]))
		}
	}
	return out
}
