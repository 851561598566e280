package eval

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gigamonkey/groups/internal/ga"
)

// Evaluator handles fitness computation across a bounded pool of workers.
// Each agent only writes its own fields, so the outcome is identical to
// scoring the population sequentially.
type Evaluator struct {
	workers int
}

// NewEvaluator creates a new evaluator. workers <= 0 uses one per CPU.
func NewEvaluator(workers int) *Evaluator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Evaluator{workers: workers}
}

// Workers returns the pool size.
func (e *Evaluator) Workers() int {
	return e.workers
}

// EvaluateAgent scores a single agent
func (e *Evaluator) EvaluateAgent(a *ga.Agent, people, size int) {
	a.Fitness, a.Score = ga.Fitness(a.Genome, people, size)
}

// EvaluatePopulation scores every agent in pop.
func (e *Evaluator) EvaluatePopulation(ctx context.Context, pop *ga.Population) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for _, agent := range pop.Agents {
		a := agent
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e.EvaluateAgent(a, pop.People, pop.GroupSize)
			return nil
		})
	}
	return g.Wait()
}
