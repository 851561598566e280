package ga_test

import (
	"context"
	"io"
	"math/rand"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigamonkey/groups/internal/ga"
	"github.com/gigamonkey/groups/internal/roster"
)

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func sorted(xs []int) []int {
	c := append([]int(nil), xs...)
	sort.Ints(c)
	return c
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestGenomeLength(t *testing.T) {
	assert.Equal(t, 10, ga.GenomeLength(5, 3, 5))
	assert.Equal(t, 45, ga.GenomeLength(26, 4, 5))
	assert.Equal(t, 1, ga.GenomeLength(2, 2, 1))
}

func TestRandomGenomeHoldsPermutations(t *testing.T) {
	g := ga.RandomGenome(7, 4, rand.New(rand.NewSource(1)))
	require.Len(t, g, 4)
	for _, perm := range g {
		assert.Equal(t, identity(7), sorted(perm))
	}
}

func TestGroupsDropsShortTail(t *testing.T) {
	g := ga.Genome{{4, 0, 3, 1, 2}, {2, 1, 0, 4, 3}}
	assert.Equal(t, [][]int{{4, 0, 3}, {2, 1, 0}}, g.Groups(3))
	assert.Equal(t, [][]int{{4, 0}, {3, 1}, {2, 1}, {0, 4}}, g.Groups(2))
}

func TestFitness(t *testing.T) {
	g := ga.Genome{{0, 1, 2, 3, 4}, {0, 3, 4, 1, 2}, {1, 3, 4, 0, 2}, {2, 3, 4, 0, 1}}
	f, s := ga.Fitness(g, 5, 3)
	assert.Zero(t, s.Missed)
	assert.Equal(t, 12, s.Meetings)
	assert.InDelta(t, 1.2, f, 1e-9)

	f, s = ga.Fitness(ga.Genome{}, 5, 3)
	assert.Equal(t, ga.WorstFitness, f)
	assert.Equal(t, 10, s.Missed)

	f, _ = ga.Fitness(ga.Genome{{0, 1}}, 5, 3)
	assert.Equal(t, ga.WorstFitness, f)
}

func TestFragmentBounds(t *testing.T) {
	lo, hi := ga.FragmentBounds(20, 0.25, 0.75)
	assert.Equal(t, 5, lo)
	assert.Equal(t, 15, hi)

	lo, hi = ga.FragmentBounds(10, 0.25, 0.75)
	assert.Equal(t, 3, lo)
	assert.Equal(t, 7, hi)

	lo, hi = ga.FragmentBounds(1, 0.25, 0.75)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 1, hi)
}

func TestFragmentIsContiguousCopy(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	mom := make(ga.Genome, 12)
	for i := range mom {
		mom[i] = []int{i, 100 + i}
	}

	for trial := 0; trial < 50; trial++ {
		frag := ga.Fragment(mom, 0.25, 0.75, rng)
		require.GreaterOrEqual(t, len(frag), 3)
		require.LessOrEqual(t, len(frag), 9)

		start := frag[0][0]
		for i, perm := range frag {
			assert.Equal(t, mom[start+i], perm)
		}

		frag[0][1] = -1
		assert.Equal(t, 100+start, mom[start][1])
	}
}

func TestCrossoverLengthIsSumOfFragments(t *testing.T) {
	src := rand.New(rand.NewSource(11))
	mom := ga.RandomGenome(6, 20, src)
	dad := ga.RandomGenome(6, 8, src)

	for seed := int64(0); seed < 40; seed++ {
		child := ga.Crossover(mom, dad, 0.25, 0.75, rand.New(rand.NewSource(seed)))

		replay := rand.New(rand.NewSource(seed))
		a := ga.Fragment(mom, 0.25, 0.75, replay)
		b := ga.Fragment(dad, 0.25, 0.75, replay)

		require.Len(t, child, len(a)+len(b))
		assert.GreaterOrEqual(t, len(a), 5)
		assert.LessOrEqual(t, len(a), 15)
		assert.GreaterOrEqual(t, len(b), 2)
		assert.LessOrEqual(t, len(b), 6)
		assert.Equal(t, a, child[:len(a)])
		assert.Equal(t, b, child[len(a):])
	}
}

func TestMutatePreservesPermutations(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	g := ga.RandomGenome(9, 30, rng)
	before := g.Clone()

	changed := ga.Mutate(g, 1.0, rng)
	assert.Equal(t, 30, changed)
	require.Len(t, g, 30)
	for i, perm := range g {
		require.Len(t, perm, 9)
		assert.Equal(t, sorted(before[i]), sorted(perm))
	}

	untouched := g.Clone()
	assert.Zero(t, ga.Mutate(g, 0, rng))
	assert.Equal(t, untouched, g)
}

func TestEliteCountAndParentPairs(t *testing.T) {
	assert.Equal(t, 1, ga.EliteCount(10, 0.1))
	assert.Equal(t, 100, ga.EliteCount(1000, 0.1))
	assert.Equal(t, 0, ga.EliteCount(5, 0.1))
	assert.Equal(t, 5, ga.EliteCount(5, 1))

	agents := []*ga.Agent{{Fitness: 1}, {Fitness: 2}, {Fitness: 3}}
	pairs := ga.ParentPairs(agents)
	require.Len(t, pairs, 2)
	assert.Same(t, agents[0], pairs[0][0])
	assert.Same(t, agents[1], pairs[0][1])
	assert.Same(t, agents[2], pairs[1][0])
	assert.Same(t, agents[2], pairs[1][1])
}

func TestPopulationRanking(t *testing.T) {
	pop := &ga.Population{Agents: []*ga.Agent{
		{Fitness: 3}, {Fitness: 1, Genome: ga.Genome{{0}}}, {Fitness: 2}, {Fitness: 1, Genome: ga.Genome{{1}}},
	}}
	assert.Equal(t, 1.0, pop.Best().Fitness)
	assert.Equal(t, 3.0, pop.Worst().Fitness)
	assert.InDelta(t, 1.75, pop.MeanFitness(), 1e-9)

	first := pop.Agents[1]
	pop.SortByFitness()
	assert.Same(t, first, pop.Agents[0], "stable sort keeps earlier of equal agents first")
	assert.Len(t, pop.TopK(2), 2)
	assert.Len(t, pop.TopK(10), 4)
}

func TestNextGenerationKeepsSizeAndElites(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	params := ga.DefaultParams()
	params.PopulationSize = 21
	params.EliteFraction = 0.1

	opt, err := ga.NewOptimizer(5, 3, params, nil, rng, quietLogger())
	require.NoError(t, err)

	pop := ga.NewPopulation(21, 5, 3, ga.GenomeLength(5, 3, 5), rng)
	require.NoError(t, ga.SequentialEvaluator{}.EvaluatePopulation(context.Background(), pop))
	pop.SortByFitness()

	next := opt.NextGeneration(pop.Agents)
	require.Len(t, next, 21)
	assert.Equal(t, pop.Agents[0].Genome, next[0].Genome)
	assert.Equal(t, pop.Agents[1].Genome, next[1].Genome)
	assert.NotSame(t, pop.Agents[0], next[0])
}

func TestRunNeverDegradesUnderElitism(t *testing.T) {
	params := ga.DefaultParams()
	params.PopulationSize = 10
	params.Generations = 5

	opt, err := ga.NewOptimizer(5, 3, params, nil, rand.New(rand.NewSource(17)), quietLogger())
	require.NoError(t, err)

	var seen int
	opt.Observe(func(stats ga.GenerationStats, pop *ga.Population) {
		seen++
		assert.Equal(t, 10, pop.Size())
		assert.Same(t, pop.Best(), pop.Agents[0])
	})

	res, err := opt.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ga.StopBudget, res.Stopped)
	assert.Equal(t, 5, res.Generations)
	assert.Equal(t, 5, seen)
	require.Len(t, res.History, 5)

	for i, h := range res.History {
		assert.Equal(t, i+1, h.Generation)
		assert.LessOrEqual(t, h.Best, h.Worst)
		assert.LessOrEqual(t, h.Best, h.Mean)
		if i > 0 {
			assert.LessOrEqual(t, h.Best, res.History[i-1].Best)
		}
	}
	require.NotNil(t, res.Best)
	assert.Equal(t, res.History[4].Best, res.Best.Fitness)
}

func TestRunIsReproducible(t *testing.T) {
	params := ga.DefaultParams()
	params.PopulationSize = 12
	params.Generations = 4

	run := func() *ga.Result {
		opt, err := ga.NewOptimizer(7, 3, params, nil, rand.New(rand.NewSource(99)), quietLogger())
		require.NoError(t, err)
		res, err := opt.Run(context.Background())
		require.NoError(t, err)
		return res
	}

	a, b := run(), run()
	assert.Equal(t, a.History, b.History)
	assert.Equal(t, a.Best.Genome, b.Best.Genome)
}

func TestRunStopsWhenConverged(t *testing.T) {
	params := ga.DefaultParams()
	params.PopulationSize = 20
	params.Generations = 50
	params.StopRatio = 100

	opt, err := ga.NewOptimizer(4, 2, params, nil, rand.New(rand.NewSource(1)), quietLogger())
	require.NoError(t, err)

	res, err := opt.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ga.StopConverged, res.Stopped)
	assert.Equal(t, 1, res.Generations)
	assert.Zero(t, res.Best.Score.Missed)
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opt, err := ga.NewOptimizer(5, 3, ga.DefaultParams(), nil, rand.New(rand.NewSource(1)), quietLogger())
	require.NoError(t, err)

	res, err := opt.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, ga.StopCanceled, res.Stopped)
	assert.Nil(t, res.Best)
	assert.Zero(t, res.Generations)
}

func TestNewOptimizerRejectsBadInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := ga.NewOptimizer(2, 3, ga.DefaultParams(), nil, rng, nil)
	assert.True(t, errors.Is(err, roster.ErrTooFewPeople))

	_, err = ga.NewOptimizer(5, 1, ga.DefaultParams(), nil, rng, nil)
	assert.True(t, errors.Is(err, roster.ErrGroupSize))

	bad := ga.DefaultParams()
	bad.ChildrenPerPair = 0
	_, err = ga.NewOptimizer(5, 3, bad, nil, rng, nil)
	assert.Error(t, err)

	bad = ga.DefaultParams()
	bad.FragmentMin, bad.FragmentMax = 0.8, 0.5
	_, err = ga.NewOptimizer(5, 3, bad, nil, rng, nil)
	assert.Error(t, err)
}
