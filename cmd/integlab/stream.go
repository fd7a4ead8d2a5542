package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/integlab/internal/report"
	"github.com/san-kum/integlab/internal/storage"
	"github.com/san-kum/integlab/internal/stream"
	"github.com/san-kum/integlab/internal/viz"
)

func streamFlags(cmd *cobra.Command) {
	cmd.Flags().String("period", "", "tick period, e.g. 1s or 50ms")
	cmd.Flags().Int("window", 0, "number of points kept")
	cmd.Flags().Float64("width", 0, "rectangle width of each sample")
	cmd.Flags().Int64("seed", 0, "noise seed")
	cmd.Flags().Bool("smooth", false, "disable the noise")
}

// session builds a running session and its tick period from config and flags.
func (a *app) session(cmd *cobra.Command) (*stream.Session, time.Duration, error) {
	c := a.cfg.Stream
	if cmd.Flags().Changed("period") {
		c.Period, _ = cmd.Flags().GetString("period")
	}
	cfg := *a.cfg
	cfg.Stream = c
	period, err := cfg.PeriodDuration()
	if err != nil {
		return nil, 0, err
	}

	var src stream.Source = stream.NewGenerator(c.Seed)
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetInt64("seed")
		src = stream.NewGenerator(seed)
	}
	if smooth, _ := cmd.Flags().GetBool("smooth"); smooth {
		src = stream.Smooth
	}

	s := stream.NewSession(src,
		stream.WithWindow(intFlag(cmd, "window", c.Window)),
		stream.WithSampleWidth(floatFlag(cmd, "width", c.SampleWidth)),
	)
	s.Start()
	return s, period, nil
}

func (a *app) streamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "accumulate the memory and CPU integral without a terminal UI",
		Args:  cobra.NoArgs,
		RunE:  a.runStream,
	}
	streamFlags(cmd)
	cmd.Flags().Int("ticks", 10, "stop after this many ticks (0 runs until interrupted)")
	cmd.Flags().String("save", "", "directory to record the run in")
	return cmd
}

func (a *app) runStream(cmd *cobra.Command, _ []string) error {
	s, period, err := a.session(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("ticks")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var once sync.Once
	clock := stream.NewClock(s, period, func(p stream.Point) {
		a.log.Debug("tick", "t", p.Time, "memory", p.Memory, "cpu", p.CPU, "integral", p.Integral)
		if limit > 0 && s.Ticks() >= limit {
			once.Do(func() {
				s.Pause()
				cancel()
			})
		}
	})
	a.log.Info("streaming", "period", period, "window", s.Window(), "ticks", limit)
	clock.Start(ctx)
	<-ctx.Done()
	clock.Stop()

	points := s.Points()
	if dir, _ := cmd.Flags().GetString("save"); dir != "" {
		if err := a.record(cmd, dir, s, period, points); err != nil {
			return err
		}
	}
	return a.write(cmd, report.Stream{Ticks: s.Ticks(), Integral: s.Integral(), Points: points})
}

func (a *app) record(cmd *cobra.Command, dir string, s *stream.Session, period time.Duration, points []stream.Point) error {
	seed := a.cfg.Stream.Seed
	if cmd.Flags().Changed("seed") {
		seed, _ = cmd.Flags().GetInt64("seed")
	}
	st := storage.New(dir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.RunMetadata{
		Seed:        seed,
		Period:      period.String(),
		Window:      s.Window(),
		SampleWidth: floatFlag(cmd, "width", a.cfg.Stream.SampleWidth),
		Ticks:       s.Ticks(),
		Integral:    s.Integral(),
	}, points)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	a.log.Info("run saved", "id", id, "dir", dir)
	return nil
}

func (a *app) runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs [id]",
		Short: "list recorded stream runs, or print the points of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			st := storage.New(dir)
			if len(args) == 1 {
				meta, err := st.Load(args[0])
				if err != nil {
					return err
				}
				points, err := st.LoadPoints(args[0])
				if err != nil {
					return err
				}
				return a.write(cmd, report.Stream{Ticks: meta.Ticks, Integral: meta.Integral, Points: points})
			}

			runs, err := st.List()
			if err != nil {
				return err
			}
			return a.write(cmd, report.Runs{Runs: runs})
		},
	}
	cmd.Flags().String("dir", "runs", "directory holding recorded runs")
	return cmd
}

func (a *app) liveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view of the streaming integral",
		Args:  cobra.NoArgs,
		RunE:  a.runLive,
	}
	streamFlags(cmd)
	cmd.Flags().String("theme", viz.CurrentTheme.Name, "color theme: ocean, retro or minimal")
	return cmd
}

func (a *app) runLive(cmd *cobra.Command, _ []string) error {
	s, period, err := a.session(cmd)
	if err != nil {
		return err
	}
	theme, _ := cmd.Flags().GetString("theme")
	viz.SetTheme(theme)

	p := tea.NewProgram(viz.NewModel(s, period), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return err
	}
	a.log.Info("session ended", "ticks", s.Ticks(), "integral", s.Integral())
	return nil
}
