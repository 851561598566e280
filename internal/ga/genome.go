package ga

import (
	"math"
	"math/rand"

	"github.com/gigamonkey/groups/internal/score"
)

// Genome is a sequence of permutations of the people 0..n-1. Each
// permutation is read as consecutive groups; a short tail is dropped.
type Genome [][]int

// WorstFitness is assigned to genomes that decode to no groups at all.
const WorstFitness = math.MaxFloat64

// GenomeLength returns how many permutations an initial genome carries:
// multiple times the fewest rounds in which one person could meet everyone.
func GenomeLength(people, size, multiple int) int {
	rounds := (people - 1 + size - 2) / (size - 1)
	return max(1, multiple*rounds)
}

// RandomGenome returns length independently shuffled permutations.
func RandomGenome(people, length int, rng *rand.Rand) Genome {
	g := make(Genome, length)
	for i := range g {
		g[i] = rng.Perm(people)
	}
	return g
}

// Clone returns a deep copy.
func (g Genome) Clone() Genome {
	c := make(Genome, len(g))
	for i, perm := range g {
		c[i] = append([]int(nil), perm...)
	}
	return c
}

// Groups decodes the genome. The returned groups alias the genome's storage
// and must not be modified.
func (g Genome) Groups(size int) [][]int {
	var out [][]int
	for _, perm := range g {
		end := len(perm) - len(perm)%size
		for i := 0; i < end; i += size {
			out = append(out, perm[i:i+size:i+size])
		}
	}
	return out
}

// Fitness scores a genome; lower is better.
func Fitness(g Genome, people, size int) (float64, score.Score) {
	groups := g.Groups(size)
	s := score.Of(groups, people)
	if len(groups) == 0 {
		return WorstFitness, s
	}
	return s.Value(), s
}
