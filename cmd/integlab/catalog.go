package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/integlab/internal/automation"
	"github.com/san-kum/integlab/internal/config"
	"github.com/san-kum/integlab/internal/report"
	"github.com/san-kum/integlab/internal/scenario"
)

func (a *app) presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [lesson]",
		Short: "list configuration presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lessons := config.Lessons()
			if len(args) == 1 {
				if len(config.ListPresets(args[0])) == 0 {
					return fmt.Errorf("unknown lesson: %s (available: %s)", args[0], strings.Join(lessons, ", "))
				}
				lessons = args
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "LESSON\tPRESETS")
			for _, l := range lessons {
				fmt.Fprintf(w, "%s\t%s\n", l, strings.Join(config.ListPresets(l), ", "))
			}
			return w.Flush()
		},
	}
}

func (a *app) lessonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lessons [name]",
		Short: "list the lessons, or run one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := scenario.NewRegistry()
			if len(args) == 0 {
				var list []scenario.Lesson
				for _, name := range reg.List() {
					l, _ := reg.Get(name)
					list = append(list, l)
				}
				return a.write(cmd, report.Lessons{Lessons: list})
			}

			l, err := reg.Get(args[0])
			if err != nil {
				return err
			}
			out, err := l.Run(a.eval)
			if err != nil {
				return fmt.Errorf("lesson %s: %w", l.Name, err)
			}
			return a.write(cmd, report.Outcome{Title: l.Title, Outcome: out})
		},
	}
}

func (a *app) batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch plan.yaml",
		Short: "run the lessons listed in a plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := automation.LoadPlan(args[0])
			if err != nil {
				return fmt.Errorf("failed to load plan: %w", err)
			}
			a.log.Info("running plan", "name", plan.Name, "steps", len(plan.Steps))

			results, err := automation.RunPlan(cmd.Context(), plan, scenario.NewRegistry(), a.eval)
			for _, r := range results {
				if werr := a.write(cmd, report.Outcome{Title: r.Lesson.Title, Outcome: r.Outcome}); werr != nil {
					return werr
				}
			}
			return err
		},
	}
}

func (a *app) montecarloCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "spread of the stream integral across noise seeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.cfg.Stream
			trials, _ := cmd.Flags().GetInt("trials")
			ticks, _ := cmd.Flags().GetInt("ticks")
			seed := c.Seed
			if cmd.Flags().Changed("seed") {
				seed, _ = cmd.Flags().GetInt64("seed")
			}

			results, err := automation.RunMonteCarlo(cmd.Context(), automation.MonteCarloConfig{
				Trials:      trials,
				Ticks:       ticks,
				Seed:        seed,
				Window:      c.Window,
				SampleWidth: c.SampleWidth,
			})
			if err != nil {
				return err
			}
			return a.write(cmd, report.MonteCarlo{Summary: automation.Summarize(results), Runs: results})
		},
	}
	cmd.Flags().Int("trials", 20, "number of seeds")
	cmd.Flags().Int("ticks", 100, "ticks per trial")
	cmd.Flags().Int64("seed", 0, "first seed")
	return cmd
}
