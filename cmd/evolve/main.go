package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gigamonkey/groups/internal/cli"
	"github.com/gigamonkey/groups/internal/config"
	"github.com/gigamonkey/groups/internal/eval"
	"github.com/gigamonkey/groups/internal/ga"
	"github.com/gigamonkey/groups/internal/logging"
	"github.com/gigamonkey/groups/internal/report"
	"github.com/gigamonkey/groups/internal/roster"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type gaFlags struct {
	population  int
	generations int
	workers     int
	stopRatio   float64
	csvPath     string
	jsonPath    string
}

func (f *gaFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("population") {
		cfg.GA.Population = f.population
	}
	if flags.Changed("generations") {
		cfg.GA.Generations = f.generations
	}
	if flags.Changed("workers") {
		cfg.GA.Workers = f.workers
	}
	if flags.Changed("stop-ratio") {
		cfg.GA.StopRatio = f.stopRatio
	}
	if flags.Changed("csv") {
		cfg.Logging.CSVPath = f.csvPath
	}
	if flags.Changed("jsonl") {
		cfg.Logging.JSONPath = f.jsonPath
	}
	return cfg.Validate()
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var (
		common cli.Common
		flags  gaFlags
	)

	cmd := &cobra.Command{
		Use:          "evolve [file]",
		Short:        "Evolve a grouping where everyone meets everyone with a genetic algorithm.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := common.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}

			log, err := cli.Logger(stderr, cfg)
			if err != nil {
				return err
			}

			people, err := cli.People(args, stdin, log)
			if err != nil {
				return err
			}

			return run(cmd.Context(), cfg, people, stdout, log)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	common.Register(cmd.Flags())
	cmd.Flags().IntVarP(&flags.population, "population", "p", 0, "population size")
	cmd.Flags().IntVarP(&flags.generations, "generations", "g", 0, "number of generations to run")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "fitness workers (0 = one per CPU)")
	cmd.Flags().Float64Var(&flags.stopRatio, "stop-ratio", 0, "stop once no pair is missed and meetings per pair is at most this (0 = never)")
	cmd.Flags().StringVar(&flags.csvPath, "csv", "", "per-generation CSV metrics path")
	cmd.Flags().StringVar(&flags.jsonPath, "jsonl", "", "per-generation JSON lines metrics path")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, people *roster.Roster, stdout io.Writer, log *logrus.Logger) error {
	// Initialize RNG
	rng := rand.New(rand.NewSource(cfg.Seed))
	evaluator := eval.NewEvaluator(cfg.GA.Workers)
	entry := log.WithField("solver", "genetic")

	opt, err := ga.NewOptimizer(people.Len(), cfg.Size, cfg.Params(), evaluator, rng, entry)
	if err != nil {
		return err
	}

	metrics, err := logging.NewMetrics(cfg.Logging.CSVPath, cfg.Logging.JSONPath, entry)
	if err != nil {
		return err
	}
	if err := metrics.Init(); err != nil {
		return err
	}
	defer metrics.Close()

	opt.Observe(func(stats ga.GenerationStats, pop *ga.Population) {
		metrics.Record(stats)
		if stats.Generation%cfg.Logging.Every != 0 && stats.Generation != 1 {
			return
		}
		entry.WithFields(logrus.Fields{
			"gen":      stats.Generation,
			"best":     fmt.Sprintf("%.4f", stats.Best),
			"worst":    fmt.Sprintf("%.4f", stats.Worst),
			"mean":     fmt.Sprintf("%.4f", stats.Mean),
			"missed":   stats.BestScore.Missed,
			"meetings": stats.BestScore.Meetings,
		}).Info("generation")
		for i, a := range pop.Agents[:min(cfg.Logging.TopN, pop.Size())] {
			entry.Debugf("  #%d: fitness=%.4f groups=%d length=%d %s",
				i+1, a.Fitness, len(a.Genome.Groups(cfg.Size)), len(a.Genome), a.Score)
		}
	})

	entry.WithFields(logrus.Fields{
		"people":      people.Len(),
		"size":        cfg.Size,
		"population":  cfg.GA.Population,
		"generations": cfg.GA.Generations,
		"workers":     evaluator.Workers(),
	}).Info("evolving")

	startTime := time.Now()
	res, err := opt.Run(ctx)
	if err != nil {
		return err
	}
	if res.Best == nil {
		return errors.New("interrupted before the first generation was scored")
	}

	entry.WithFields(logrus.Fields{
		"generations": res.Generations,
		"stopped":     res.Stopped,
		"elapsed":     time.Since(startTime).Round(time.Millisecond),
		"fitness":     res.Best.Fitness,
	}).Info("evolution complete")

	groups := res.Best.Genome.Groups(cfg.Size)
	if cfg.Logging.BestPath != "" {
		best := logging.Best{
			Solver:     "genetic",
			Generation: res.Generations,
			Fitness:    res.Best.Fitness,
			Score:      res.Best.Score,
			Groups:     report.Named(groups, people),
		}
		if err := logging.SaveBest(cfg.Logging.BestPath, best); err != nil {
			entry.WithError(err).Warn("failed to save best grouping")
		}
	}

	if err := report.Write(stdout, res.Best.Score, groups, people); err != nil {
		return err
	}
	if res.Best.Score.Missed > 0 {
		return errors.Errorf("best grouping still misses %d pairs", res.Best.Score.Missed)
	}
	return nil
}
