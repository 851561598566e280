package ga

import (
	"math/rand"
)

// Mutate swaps two random positions in each permutation of genome with
// probability rate, in place, and returns how many permutations changed.
func Mutate(genome Genome, rate float64, rng *rand.Rand) int {
	swaps := 0
	for _, perm := range genome {
		if len(perm) < 2 || rng.Float64() >= rate {
			continue
		}
		i := rng.Intn(len(perm))
		j := rng.Intn(len(perm))
		perm[i], perm[j] = perm[j], perm[i]
		swaps++
	}
	return swaps
}
