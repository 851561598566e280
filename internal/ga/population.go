package ga

import (
	"math/rand"
	"sort"

	"github.com/gigamonkey/groups/internal/score"
)

// Agent represents an individual in the population
type Agent struct {
	Genome  Genome
	Fitness float64
	Score   score.Score
}

// Population manages the collection of agents
type Population struct {
	Agents    []*Agent
	People    int
	GroupSize int
}

// NewPopulation creates a new random population
func NewPopulation(size, people, groupSize, length int, rng *rand.Rand) *Population {
	p := &Population{
		Agents:    make([]*Agent, size),
		People:    people,
		GroupSize: groupSize,
	}

	for i := 0; i < size; i++ {
		p.Agents[i] = &Agent{
			Genome: RandomGenome(people, length, rng),
		}
	}

	return p
}

// Size returns the population size
func (p *Population) Size() int {
	return len(p.Agents)
}

// SortByFitness sorts agents by fitness, best (lowest) first. The sort is
// stable so equal fitness keeps the previous order.
func (p *Population) SortByFitness() {
	sort.SliceStable(p.Agents, func(i, j int) bool {
		return p.Agents[i].Fitness < p.Agents[j].Fitness
	})
}

// TopK returns the top K agents by fitness
func (p *Population) TopK(k int) []*Agent {
	p.SortByFitness()
	if k > len(p.Agents) {
		k = len(p.Agents)
	}
	return p.Agents[:k]
}

// Best returns the agent with the lowest fitness; the first one wins ties.
func (p *Population) Best() *Agent {
	if len(p.Agents) == 0 {
		return nil
	}
	best := p.Agents[0]
	for _, a := range p.Agents[1:] {
		if a.Fitness < best.Fitness {
			best = a
		}
	}
	return best
}

// Worst returns the agent with the highest fitness.
func (p *Population) Worst() *Agent {
	if len(p.Agents) == 0 {
		return nil
	}
	worst := p.Agents[0]
	for _, a := range p.Agents[1:] {
		if a.Fitness > worst.Fitness {
			worst = a
		}
	}
	return worst
}

// MeanFitness returns the average fitness.
func (p *Population) MeanFitness() float64 {
	if len(p.Agents) == 0 {
		return 0
	}
	sum := 0.0
	for _, a := range p.Agents {
		sum += a.Fitness
	}
	return sum / float64(len(p.Agents))
}

// MeanLength returns the average genome length.
func (p *Population) MeanLength() float64 {
	if len(p.Agents) == 0 {
		return 0
	}
	sum := 0
	for _, a := range p.Agents {
		sum += len(a.Genome)
	}
	return float64(sum) / float64(len(p.Agents))
}

// Clone creates a deep copy of an agent
func (a *Agent) Clone() *Agent {
	return &Agent{
		Genome:  a.Genome.Clone(),
		Fitness: a.Fitness,
		Score:   a.Score,
	}
}
