package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/san-kum/integlab/internal/area"
	"github.com/san-kum/integlab/internal/optim"
	"github.com/san-kum/integlab/internal/report"
	"github.com/san-kum/integlab/internal/scenario"
)

func (a *app) sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "area between the memory and CPU curves over a grid of m and c",
		Args:  cobra.NoArgs,
		RunE:  a.runSweep,
	}
	cmd.Flags().Float64Slice("ms", []float64{1, 3, 5, 7}, "memory shifts m")
	cmd.Flags().Float64Slice("cs", []float64{0, 5, 10}, "cpu offsets c")
	cmd.Flags().Bool("min", false, "rank the smallest area first")
	scanFlags(cmd)
	return cmd
}

func (a *app) runSweep(cmd *cobra.Command, _ []string) error {
	ms, _ := cmd.Flags().GetFloat64Slice("ms")
	cs, _ := cmd.Flags().GetFloat64Slice("cs")
	minimize, _ := cmd.Flags().GetBool("min")

	g, err := optim.NewGridSearch([]string{"m", "c"}, [][]float64{ms, cs})
	if err != nil {
		return err
	}
	opts := a.scanOptions(cmd)

	objective := func(_ context.Context, p map[string]float64) (float64, error) {
		f, err := a.eval.Compile(scenario.MemoryExpr(p["m"]), "t")
		if err != nil {
			return 0, err
		}
		h, err := a.eval.Compile(scenario.CPUExpr(p["c"]), "t")
		if err != nil {
			return 0, err
		}
		res, err := area.Between(f, h, opts...)
		if err != nil {
			return 0, err
		}
		if !res.Bounded {
			return 0, optim.ErrUnranked
		}
		return res.Area, nil
	}

	best, samples, err := g.Search(cmd.Context(), objective, !minimize)
	if err != nil {
		return err
	}
	for _, s := range samples {
		if s.Err != nil {
			a.log.Warn("grid point failed", "params", s.Params, "err", s.Err)
		}
	}
	a.log.Debug("sweep", "points", len(samples), "best", best.Params)
	return a.write(cmd, report.Sweep{Names: g.Names(), Samples: samples, Best: best})
}
