package ga

import (
	"context"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gigamonkey/groups/internal/roster"
	"github.com/gigamonkey/groups/internal/score"
)

// Params holds the evolution settings.
type Params struct {
	PopulationSize  int
	Generations     int
	Multiple        int
	EliteFraction   float64
	ChildrenPerPair int
	MutationRate    float64
	FragmentMin     float64
	FragmentMax     float64
	// StopRatio ends the run early once the best genome misses no pair and
	// has at most this many meetings per pair. Zero disables the check.
	StopRatio float64
}

// DefaultParams returns the reference settings.
func DefaultParams() Params {
	return Params{
		PopulationSize:  1000,
		Generations:     1000,
		Multiple:        5,
		EliteFraction:   0.10,
		ChildrenPerPair: 4,
		MutationRate:    0.01,
		FragmentMin:     0.25,
		FragmentMax:     0.75,
	}
}

func (p Params) validate() error {
	switch {
	case p.PopulationSize < 1:
		return errors.Errorf("population size %d must be positive", p.PopulationSize)
	case p.Generations < 1:
		return errors.Errorf("generation budget %d must be positive", p.Generations)
	case p.Multiple < 1:
		return errors.Errorf("genome multiple %d must be positive", p.Multiple)
	case p.ChildrenPerPair < 1:
		return errors.Errorf("children per pair %d must be positive", p.ChildrenPerPair)
	case p.EliteFraction < 0 || p.EliteFraction > 1:
		return errors.Errorf("elite fraction %v outside [0, 1]", p.EliteFraction)
	case p.MutationRate < 0 || p.MutationRate > 1:
		return errors.Errorf("mutation rate %v outside [0, 1]", p.MutationRate)
	case p.FragmentMin <= 0 || p.FragmentMax > 1 || p.FragmentMin > p.FragmentMax:
		return errors.Errorf("fragment range [%v, %v] invalid", p.FragmentMin, p.FragmentMax)
	case p.StopRatio < 0:
		return errors.Errorf("stop ratio %v must not be negative", p.StopRatio)
	}
	return nil
}

// Evaluator fills in Fitness and Score for every agent of a population.
type Evaluator interface {
	EvaluatePopulation(ctx context.Context, pop *Population) error
}

// SequentialEvaluator scores agents one after another.
type SequentialEvaluator struct{}

// EvaluatePopulation implements Evaluator.
func (SequentialEvaluator) EvaluatePopulation(ctx context.Context, pop *Population) error {
	for _, a := range pop.Agents {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.Fitness, a.Score = Fitness(a.Genome, pop.People, pop.GroupSize)
	}
	return nil
}

// GenerationStats holds per-generation statistics
type GenerationStats struct {
	Generation int         `json:"generation"`
	Best       float64     `json:"best_fitness"`
	Worst      float64     `json:"worst_fitness"`
	Mean       float64     `json:"mean_fitness"`
	BestScore  score.Score `json:"best_score"`
	BestGroups int         `json:"best_groups"`
	MeanLength float64     `json:"mean_genome_length"`
}

// Observer is called once per generation with the ranked population.
type Observer func(stats GenerationStats, pop *Population)

// Stop reasons reported in Result.
const (
	StopBudget    = "budget"
	StopConverged = "converged"
	StopCanceled  = "canceled"
)

// Result is the outcome of a run.
type Result struct {
	Best        *Agent
	Generations int
	Stopped     string
	History     []GenerationStats
}

// Optimizer evolves genomes toward full pair coverage with few repeats.
type Optimizer struct {
	people    int
	size      int
	params    Params
	eval      Evaluator
	rng       *rand.Rand
	log       logrus.FieldLogger
	observers []Observer
}

// NewOptimizer checks the configuration and returns an optimizer. A nil
// evaluator scores sequentially.
func NewOptimizer(people, size int, params Params, eval Evaluator, rng *rand.Rand, log logrus.FieldLogger) (*Optimizer, error) {
	if err := roster.CheckGroupSize(people, size); err != nil {
		return nil, err
	}
	if err := params.validate(); err != nil {
		return nil, err
	}
	if eval == nil {
		eval = SequentialEvaluator{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Optimizer{
		people: people,
		size:   size,
		params: params,
		eval:   eval,
		rng:    rng,
		log:    log,
	}, nil
}

// Observe registers fn to run after every generation is ranked.
func (o *Optimizer) Observe(fn Observer) {
	o.observers = append(o.observers, fn)
}

// Run evolves a fresh random population until the generation budget is
// spent, the best genome converges, or ctx is canceled. The best agent seen in
// any generation is returned; cancellation is not an error.
func (o *Optimizer) Run(ctx context.Context) (*Result, error) {
	length := GenomeLength(o.people, o.size, o.params.Multiple)
	pop := NewPopulation(o.params.PopulationSize, o.people, o.size, length, o.rng)
	res := &Result{Stopped: StopBudget}

	o.log.WithFields(logrus.Fields{
		"people":     o.people,
		"size":       o.size,
		"population": o.params.PopulationSize,
		"length":     length,
	}).Debug("starting evolution")

	for gen := 1; gen <= o.params.Generations; gen++ {
		if ctx.Err() != nil {
			res.Stopped = StopCanceled
			break
		}
		if err := o.eval.EvaluatePopulation(ctx, pop); err != nil {
			if ctx.Err() != nil {
				res.Stopped = StopCanceled
				break
			}
			return nil, errors.Wrapf(err, "evaluating generation %d", gen)
		}
		pop.SortByFitness()

		leader := pop.Agents[0]
		if res.Best == nil || leader.Fitness < res.Best.Fitness {
			res.Best = leader.Clone()
		}

		stats := GenerationStats{
			Generation: gen,
			Best:       leader.Fitness,
			Worst:      pop.Agents[len(pop.Agents)-1].Fitness,
			Mean:       pop.MeanFitness(),
			BestScore:  leader.Score,
			BestGroups: len(leader.Genome.Groups(o.size)),
			MeanLength: pop.MeanLength(),
		}
		res.History = append(res.History, stats)
		res.Generations = gen
		for _, fn := range o.observers {
			fn(stats, pop)
		}

		if o.converged(leader) {
			res.Stopped = StopConverged
			break
		}
		if gen < o.params.Generations {
			pop.Agents = o.NextGeneration(pop.Agents)
		}
	}

	return res, nil
}

func (o *Optimizer) converged(a *Agent) bool {
	return o.params.StopRatio > 0 && a.Score.Missed == 0 && a.Score.Ratio() <= o.params.StopRatio
}

// NextGeneration breeds a replacement for ranked, which must be sorted best
// first. The elite fraction is carried over unchanged; the rest are children
// of consecutive ranked pairs, ChildrenPerPair per pair, walking the ranking
// again from the top if it runs out before the population is full.
func (o *Optimizer) NextGeneration(ranked []*Agent) []*Agent {
	size := len(ranked)
	next := make([]*Agent, 0, size)
	for _, a := range Elites(ranked, o.params.EliteFraction) {
		next = append(next, a.Clone())
	}

	parents := ParentPairs(ranked)
	for len(next) < size {
		for _, pair := range parents {
			for c := 0; c < o.params.ChildrenPerPair && len(next) < size; c++ {
				child := Crossover(pair[0].Genome, pair[1].Genome, o.params.FragmentMin, o.params.FragmentMax, o.rng)
				Mutate(child, o.params.MutationRate, o.rng)
				next = append(next, &Agent{Genome: child})
			}
			if len(next) == size {
				break
			}
		}
	}
	return next
}
