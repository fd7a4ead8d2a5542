package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/integlab/internal/config"
	"github.com/san-kum/integlab/internal/expr"
	"github.com/san-kum/integlab/internal/report"
)

// app holds the state shared by every command.
type app struct {
	configFile string
	preset     string
	verbose    bool
	formatName string

	cfg    *config.Config
	format report.Format
	log    *slog.Logger
	eval   *expr.Engine
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{eval: expr.New()}

	rootCmd := &cobra.Command{
		Use:               "integlab",
		Short:             "numerical integration lab for calculus lessons",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&a.preset, "preset", "", "preset as lesson/name, e.g. riemann/fine")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&a.formatName, "format", "text", "output format: text, json or csv")

	rootCmd.AddCommand(
		a.riemannCmd(),
		a.integralCmd(),
		a.simpsonCmd(),
		a.compareCmd(),
		a.intersectCmd(),
		a.areaCmd(),
		a.surfaceCmd(),
		a.sweepCmd(),
		a.trafficCmd(),
		a.plotCmd(),
		a.streamCmd(),
		a.liveCmd(),
		a.runsCmd(),
		a.presetsCmd(),
		a.lessonsCmd(),
		a.batchCmd(),
		a.montecarloCmd(),
	)
	return rootCmd
}

// setup resolves configuration: defaults, then the preset, then the config
// file. Command flags override all three.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.cfg = config.DefaultConfig()

	if a.preset != "" {
		lesson, name, ok := strings.Cut(a.preset, "/")
		if !ok {
			return fmt.Errorf("preset must be lesson/name, got %q", a.preset)
		}
		cfg := config.GetPreset(lesson, name)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", a.preset, config.ListPresets(lesson))
		}
		c := *cfg
		a.cfg = &c
	}

	if a.configFile != "" {
		cfg, err := config.Load(a.configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		a.cfg = cfg
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	format, err := report.ParseFormat(a.formatName)
	if err != nil {
		return err
	}
	a.format = format

	a.log = newLogger(cmd.ErrOrStderr(), a.cfg.LogLevel, a.verbose)
	a.log.Debug("config resolved", "preset", a.preset, "file", a.configFile, "format", a.format)
	return nil
}

func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func (a *app) write(cmd *cobra.Command, v report.Tabular) error {
	return report.Write(cmd.OutOrStdout(), a.format, v)
}

// text reports whether human-oriented extras such as charts may be printed.
func (a *app) text() bool { return a.format == report.Text }

func floatFlag(cmd *cobra.Command, name string, fallback float64) float64 {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetFloat64(name)
		return v
	}
	return fallback
}

func intFlag(cmd *cobra.Command, name string, fallback int) int {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetInt(name)
		return v
	}
	return fallback
}

func stringFlag(cmd *cobra.Command, name string, fallback string) string {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return fallback
}

func argOr(args []string, i int, fallback string) string {
	if len(args) > i {
		return args[i]
	}
	return fallback
}
