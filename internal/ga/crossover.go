package ga

import (
	"math"
	"math/rand"
)

// FragmentBounds returns the smallest and largest fragment length sampled
// from a genome of the given length: [ceil(lo·length), floor(hi·length)],
// kept within [1, length].
func FragmentBounds(length int, lo, hi float64) (int, int) {
	lower := int(math.Ceil(lo*float64(length) - 1e-9))
	upper := int(math.Floor(hi*float64(length) + 1e-9))
	lower = min(max(lower, 1), length)
	upper = min(max(upper, lower), length)
	return lower, upper
}

// Fragment copies a contiguous run of permutations from g whose length is
// uniform within FragmentBounds.
func Fragment(g Genome, lo, hi float64, rng *rand.Rand) Genome {
	if len(g) == 0 {
		return nil
	}
	lower, upper := FragmentBounds(len(g), lo, hi)
	n := lower + rng.Intn(upper-lower+1)
	start := rng.Intn(len(g) - n + 1)
	return g[start : start+n].Clone()
}

// Crossover builds a child from a fragment of each parent, mom's first. The
// child's length is the sum of the two fragment lengths.
func Crossover(mom, dad Genome, lo, hi float64, rng *rand.Rand) Genome {
	a := Fragment(mom, lo, hi, rng)
	b := Fragment(dad, lo, hi, rng)
	return append(a, b...)
}
