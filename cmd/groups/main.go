package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gigamonkey/groups/internal/cli"
	"github.com/gigamonkey/groups/internal/greedy"
	"github.com/gigamonkey/groups/internal/logging"
	"github.com/gigamonkey/groups/internal/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var (
		common    cli.Common
		maxGroups int
	)

	cmd := &cobra.Command{
		Use:          "groups [file]",
		Short:        "Group people so everyone meets everyone.",
		Long:         "Reads names, one per line, from file or standard input and prints a sequence of groups in which every pair of people shares at least one group.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := common.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("max-groups") {
				cfg.Greedy.MaxGroups = maxGroups
			}

			log, err := cli.Logger(stderr, cfg)
			if err != nil {
				return err
			}

			people, err := cli.People(args, stdin, log)
			if err != nil {
				return err
			}

			planner := greedy.NewPlanner(cfg.Size,
				greedy.WithSeed(cfg.Seed),
				greedy.WithMaxGroups(cfg.Greedy.MaxGroups),
				greedy.WithLogger(log.WithField("solver", "greedy")),
			)
			plan, err := planner.Plan(people.Len())
			if err != nil {
				return err
			}

			log.WithFields(logrus.Fields{
				"groups":    len(plan.Groups),
				"repeats":   plan.Score.Repeats(),
				"fallbacks": plan.Fallbacks,
			}).Info("every pair has met")

			if cfg.Logging.BestPath != "" {
				best := logging.Best{
					Solver:  "greedy",
					Fitness: plan.Score.Value(),
					Score:   plan.Score,
					Groups:  report.Named(plan.Groups, people),
				}
				if err := logging.SaveBest(cfg.Logging.BestPath, best); err != nil {
					log.WithError(err).Warn("failed to save groups")
				}
			}

			return report.Write(stdout, plan.Score, plan.Groups, people)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	common.Register(cmd.Flags())
	cmd.Flags().IntVar(&maxGroups, "max-groups", 0, "safety limit on groups formed (0 = one per pair)")
	return cmd
}
