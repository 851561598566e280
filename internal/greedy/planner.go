package greedy

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gigamonkey/groups/internal/pairs"
	"github.com/gigamonkey/groups/internal/roster"
	"github.com/gigamonkey/groups/internal/score"
)

// Plan is a finished schedule.
type Plan struct {
	Groups    [][]int
	Fallbacks int
	Score     score.Score
}

// Planner runs the builder until every pair has met.
type Planner struct {
	size      int
	maxGroups int
	rng       *rand.Rand
	log       logrus.FieldLogger
}

// Option configures a Planner.
type Option func(*Planner)

// WithSeed seeds the planner's random fallback choices.
func WithSeed(seed int64) Option {
	return func(p *Planner) { p.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand makes the planner draw from rng.
func WithRand(rng *rand.Rand) Option {
	return func(p *Planner) { p.rng = rng }
}

// WithMaxGroups caps the number of groups; 0 means C(n,2).
func WithMaxGroups(limit int) Option {
	return func(p *Planner) { p.maxGroups = limit }
}

// WithLogger sets the logger used for progress and fallback events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Planner) { p.log = log }
}

// NewPlanner returns a planner for groups of size members.
func NewPlanner(size int, opts ...Option) *Planner {
	p := &Planner{size: size}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(1))
	}
	if p.log == nil {
		p.log = logrus.StandardLogger()
	}
	return p
}

// Plan schedules n people. Every group has exactly size members.
func (p *Planner) Plan(n int) (*Plan, error) {
	if err := roster.CheckGroupSize(n, p.size); err != nil {
		return nil, err
	}

	limit := p.maxGroups
	if limit <= 0 {
		limit = pairs.Count(n)
	}

	universe := pairs.NewUniverse(n)
	ledger := pairs.NewLedger(n)
	builder := NewBuilder(p.size, p.rng, p.log)
	plan := &Plan{}

	for !universe.Empty() {
		if len(plan.Groups) >= limit {
			return nil, errors.Wrapf(ErrIterationCap, "%d groups formed, %d pairs still unmet", len(plan.Groups), universe.Len())
		}
		g := builder.Build(universe, ledger)
		covered := universe.Remove(g)
		ledger.Record(g)
		plan.Groups = append(plan.Groups, g)

		p.log.WithFields(logrus.Fields{
			"group":   len(plan.Groups),
			"covered": covered,
			"left":    universe.Len(),
		}).Trace("formed group")
	}

	if err := Verify(ledger, n); err != nil {
		return nil, err
	}

	plan.Fallbacks = builder.Fallbacks()
	plan.Score = score.Of(plan.Groups, n)

	p.log.WithFields(logrus.Fields{
		"groups":    len(plan.Groups),
		"fallbacks": plan.Fallbacks,
		"score":     plan.Score.Value(),
	}).Debug("plan complete")
	return plan, nil
}
