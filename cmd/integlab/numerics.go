package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/san-kum/integlab/internal/area"
	"github.com/san-kum/integlab/internal/chart"
	"github.com/san-kum/integlab/internal/config"
	"github.com/san-kum/integlab/internal/numeric"
	"github.com/san-kum/integlab/internal/quadrature"
	"github.com/san-kum/integlab/internal/report"
	"github.com/san-kum/integlab/internal/roots"
	"github.com/san-kum/integlab/internal/scenario"
	"github.com/san-kum/integlab/internal/surface"
)

// chartStep is the x spacing of lesson curve charts.
const chartStep = 0.1

func (a *app) riemannCmd() *cobra.Command {
	d := config.DefaultConfig().Riemann
	cmd := &cobra.Command{
		Use:   "riemann [expression]",
		Short: "Riemann sum with the left, right, midpoint or trapezoid rule",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runRiemann,
	}
	cmd.Flags().String("var", d.Variable, "free variable")
	cmd.Flags().Float64("a", d.A, "lower bound")
	cmd.Flags().Float64("b", d.B, "upper bound")
	cmd.Flags().Int("n", d.N, "number of rectangles")
	cmd.Flags().String("rule", d.Rule, "left, right, midpoint or trapezoid")
	cmd.Flags().Bool("chart", false, "draw the curve and the rectangle heights")
	return cmd
}

func (a *app) runRiemann(cmd *cobra.Command, args []string) error {
	c := a.cfg.Riemann
	expression := argOr(args, 0, c.Expression)
	variable := stringFlag(cmd, "var", c.Variable)
	iv := numeric.Interval{A: floatFlag(cmd, "a", c.A), B: floatFlag(cmd, "b", c.B)}
	n := intFlag(cmd, "n", c.N)

	rule, err := quadrature.ParseRule(stringFlag(cmd, "rule", c.Rule))
	if err != nil {
		return err
	}
	f, err := a.eval.Compile(expression, variable)
	if err != nil {
		return err
	}
	res, err := quadrature.RiemannSum(f, iv, n, rule)
	if err != nil {
		return err
	}
	a.log.Debug("riemann sum", "expression", expression, "rule", rule, "n", n, "sum", res.Sum)

	if err := a.write(cmd, report.Riemann{Expression: expression, Riemann: res}); err != nil {
		return err
	}
	if show, _ := cmd.Flags().GetBool("chart"); show && a.text() {
		heights := make([]float64, len(res.Rectangles))
		for i, r := range res.Rectangles {
			heights[i] = r.Height
		}
		if err := a.printCurve(cmd, iv, chartPoints(iv), chart.Curve{Name: expression, F: f}); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), chart.Bars(heights, chart.Options{Height: 8, Caption: rule.String() + " heights"}))
	}
	return nil
}

func (a *app) integralCmd() *cobra.Command {
	d := config.DefaultConfig().Integral
	cmd := &cobra.Command{
		Use:   "integral [expression]",
		Short: "definite integral of f(x) by a left Riemann sum",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runIntegral,
	}
	cmd.Flags().Float64("a", d.A, "lower bound")
	cmd.Flags().Float64("b", d.B, "upper bound")
	cmd.Flags().Int("n", d.N, "number of rectangles")
	cmd.Flags().Int("points", d.Points, "chart sample cells")
	cmd.Flags().Bool("chart", false, "draw the curve")
	return cmd
}

func (a *app) runIntegral(cmd *cobra.Command, args []string) error {
	c := a.cfg.Integral
	expression := argOr(args, 0, c.Expression)
	iv := numeric.Interval{A: floatFlag(cmd, "a", c.A), B: floatFlag(cmd, "b", c.B)}

	res, err := scenario.DefiniteIntegral(a.eval, expression, iv, intFlag(cmd, "n", c.N))
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		a.log.Warn("counted as 0", "expression", expression, "detail", w)
	}
	if err := a.write(cmd, report.Riemann{Expression: expression, Riemann: res.Riemann, Warnings: res.Warnings}); err != nil {
		return err
	}

	if show, _ := cmd.Flags().GetBool("chart"); show && a.text() {
		f, err := a.eval.Compile(expression, "x")
		if err != nil {
			return err
		}
		return a.printCurve(cmd, iv, intFlag(cmd, "points", c.Points), chart.Curve{Name: expression, F: f})
	}
	return nil
}

func (a *app) simpsonCmd() *cobra.Command {
	d := config.DefaultConfig().Integral
	cmd := &cobra.Command{
		Use:   "simpson [expression]",
		Short: "composite Simpson integral of f(x), with the sampled trapezoid for comparison",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runSimpson,
	}
	cmd.Flags().String("var", "x", "free variable")
	cmd.Flags().Float64("a", d.A, "lower bound")
	cmd.Flags().Float64("b", d.B, "upper bound")
	cmd.Flags().Int("m", d.N, "number of panels (odd values are rounded up)")
	return cmd
}

func (a *app) runSimpson(cmd *cobra.Command, args []string) error {
	c := a.cfg.Integral
	expression := argOr(args, 0, c.Expression)
	iv := numeric.Interval{A: floatFlag(cmd, "a", c.A), B: floatFlag(cmd, "b", c.B)}
	m := intFlag(cmd, "m", c.N)

	f, err := a.eval.Compile(expression, stringFlag(cmd, "var", "x"))
	if err != nil {
		return err
	}
	simpson, err := quadrature.CompositeSimpson(f, iv, m)
	if err != nil {
		return err
	}
	pts, err := quadrature.Sample(f, iv, m)
	if err != nil {
		return err
	}
	if iv.A > iv.B {
		// gonum expects increasing x; integrate forwards and flip the sign.
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	trap, err := quadrature.SampledTrapezoid(pts)
	if err != nil {
		return err
	}
	if iv.A > iv.B {
		trap = -trap
	}

	return a.write(cmd, report.Outcome{
		Title: fmt.Sprintf("integral of %s on %s", expression, iv),
		Outcome: &scenario.Outcome{Lesson: "simpson", Values: []scenario.Value{
			{Name: "simpson", Value: simpson},
			{Name: "trapezoid", Value: trap},
			{Name: "difference", Value: math.Abs(simpson - trap)},
		}},
	})
}

func (a *app) compareCmd() *cobra.Command {
	d := config.DefaultConfig().Riemann
	cmd := &cobra.Command{
		Use:   "compare [expression]",
		Short: "error of every Riemann rule as n grows",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runCompare,
	}
	cmd.Flags().String("var", d.Variable, "free variable")
	cmd.Flags().Float64("a", d.A, "lower bound")
	cmd.Flags().Float64("b", d.B, "upper bound")
	cmd.Flags().IntSlice("ns", []int{4, 8, 16, 32, 64, 128}, "subdivision counts")
	cmd.Flags().Float64("exact", 0, "exact value (default: high resolution Simpson)")
	return cmd
}

// referencePanels is the Simpson resolution used when no exact value is given.
const referencePanels = 20000

func (a *app) runCompare(cmd *cobra.Command, args []string) error {
	c := a.cfg.Riemann
	expression := argOr(args, 0, c.Expression)
	iv := numeric.Interval{A: floatFlag(cmd, "a", c.A), B: floatFlag(cmd, "b", c.B)}
	ns, _ := cmd.Flags().GetIntSlice("ns")

	f, err := a.eval.Compile(expression, stringFlag(cmd, "var", c.Variable))
	if err != nil {
		return err
	}

	exact, _ := cmd.Flags().GetFloat64("exact")
	if !cmd.Flags().Changed("exact") {
		exact, err = quadrature.CompositeSimpson(f, iv, referencePanels)
		if err != nil {
			return err
		}
		a.log.Debug("reference from simpson", "panels", referencePanels, "value", exact)
	}

	rows, err := quadrature.Convergence(f, iv, numeric.Rules, ns, exact)
	if err != nil {
		return err
	}
	return a.write(cmd, report.Convergence{Expression: expression, Exact: exact, Rows: rows})
}

func scanFlags(cmd *cobra.Command) {
	d := config.DefaultConfig().Area
	cmd.Flags().String("var", "t", "free variable")
	cmd.Flags().Float64("lo", d.Lo, "scan domain lower bound")
	cmd.Flags().Float64("hi", d.Hi, "scan domain upper bound")
	cmd.Flags().Float64("step", d.Step, "scan step")
	cmd.Flags().Float64("tol", d.Tolerance, "match tolerance on |f - g|")
	cmd.Flags().Float64("m", d.MemoryShift, "memory curve shift in (t + m)^2")
	cmd.Flags().Float64("c", d.CPUOffset, "cpu curve offset in -t + c")
}

// curves compiles the two curves of an area or intersection command. With no
// arguments they are the memory and CPU curves of the area lesson.
func (a *app) curves(cmd *cobra.Command, args []string) (fe, ge string, f, g numeric.Func, err error) {
	c := a.cfg.Area
	fe = argOr(args, 0, scenario.MemoryExpr(floatFlag(cmd, "m", c.MemoryShift)))
	ge = argOr(args, 1, scenario.CPUExpr(floatFlag(cmd, "c", c.CPUOffset)))
	variable := stringFlag(cmd, "var", "t")
	if f, err = a.eval.Compile(fe, variable); err != nil {
		return
	}
	g, err = a.eval.Compile(ge, variable)
	return
}

func (a *app) scanOptions(cmd *cobra.Command) []roots.Option {
	c := a.cfg.Area
	return []roots.Option{
		roots.Domain(floatFlag(cmd, "lo", c.Lo), floatFlag(cmd, "hi", c.Hi)),
		roots.Step(floatFlag(cmd, "step", c.Step)),
		roots.Tolerance(floatFlag(cmd, "tol", c.Tolerance)),
	}
}

func (a *app) intersectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intersect [f] [g]",
		Short: "grid search for the points where two curves meet",
		Args:  cobra.MaximumNArgs(2),
		RunE:  a.runIntersect,
	}
	scanFlags(cmd)
	return cmd
}

func (a *app) runIntersect(cmd *cobra.Command, args []string) error {
	fe, ge, f, g, err := a.curves(cmd, args)
	if err != nil {
		return err
	}
	res, err := roots.Scan(f, g, a.scanOptions(cmd)...)
	if err != nil {
		return err
	}
	if res.Skipped > 0 {
		a.log.Warn("skipped grid points", "count", res.Skipped, "samples", res.Samples)
	}
	return a.write(cmd, report.Intersections{F: fe, G: ge, Roots: res.Roots, Skipped: res.Skipped})
}

func (a *app) areaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "area [f] [g]",
		Short: "area enclosed between two curves",
		Args:  cobra.MaximumNArgs(2),
		RunE:  a.runArea,
	}
	scanFlags(cmd)
	cmd.Flags().Bool("chart", false, "draw both curves and their difference")
	return cmd
}

func (a *app) runArea(cmd *cobra.Command, args []string) error {
	fe, ge, f, g, err := a.curves(cmd, args)
	if err != nil {
		return err
	}
	opts := a.scanOptions(cmd)
	res, err := area.Between(f, g, opts...)
	if err != nil {
		return err
	}
	a.log.Debug("area", "intersections", res.Intersections, "bounded", res.Bounded)
	if err := a.write(cmd, report.Area{F: fe, G: ge, Result: res}); err != nil {
		return err
	}

	if show, _ := cmd.Flags().GetBool("chart"); show && a.text() {
		c := a.cfg.Area
		iv := numeric.Interval{A: floatFlag(cmd, "lo", c.Lo), B: floatFlag(cmd, "hi", c.Hi)}
		s, err := chart.Sample(iv, chartPoints(iv), chart.Curve{Name: fe, F: f}, chart.Curve{Name: ge, F: g})
		if err != nil {
			return err
		}
		fn, gn := s.Names[0], s.Names[1]
		s.Derive("|difference|", func(v map[string]float64) float64 { return math.Abs(v[fn] - v[gn]) })
		fmt.Fprintln(cmd.OutOrStdout(), chart.Render(s, chart.Options{}))
	}
	return nil
}

func (a *app) surfaceCmd() *cobra.Command {
	d := config.DefaultConfig().Surface
	cmd := &cobra.Command{
		Use:   "surface [expression]",
		Short: "area of the surface of revolution of f(x) about the x axis",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runSurface,
	}
	cmd.Flags().String("var", "x", "free variable")
	cmd.Flags().Float64("a", d.A, "lower bound")
	cmd.Flags().Float64("b", d.B, "upper bound")
	cmd.Flags().Int("n", d.N, "panels (at least 1000 are used)")
	cmd.Flags().Bool("numeric", false, "skip the symbolic derivative")
	return cmd
}

func (a *app) runSurface(cmd *cobra.Command, args []string) error {
	c := a.cfg.Surface
	expression := argOr(args, 0, c.Expression)
	iv := numeric.Interval{A: floatFlag(cmd, "a", c.A), B: floatFlag(cmd, "b", c.B)}

	opts := []surface.Option{
		surface.WithEvaluator(a.eval),
		surface.WithVariable(stringFlag(cmd, "var", "x")),
	}
	if numericOnly, _ := cmd.Flags().GetBool("numeric"); numericOnly {
		opts = append(opts, surface.WithoutSymbolic())
	}

	res, err := surface.Revolution(expression, iv, intFlag(cmd, "n", c.N), opts...)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		a.log.Warn("recovered evaluation failure", "expression", expression, "detail", w)
	}
	a.log.Debug("surface", "symbolic", res.Symbolic, "panels", res.Panels)
	return a.write(cmd, report.Surface{Expression: expression, Result: res})
}

func (a *app) trafficCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "traffic",
		Short: "requests served during the 12 hour campaign",
		Args:  cobra.NoArgs,
		RunE:  a.runTraffic,
	}
	cmd.Flags().Int("steps", config.DefaultTraffic, "trapezoid subdivisions")
	cmd.Flags().Bool("chart", false, "draw the traffic curve")
	return cmd
}

func (a *app) runTraffic(cmd *cobra.Command, _ []string) error {
	rep, err := scenario.Traffic(a.eval, intFlag(cmd, "steps", a.cfg.Traffic.Steps))
	if err != nil {
		return err
	}
	if err := a.write(cmd, report.Traffic{TrafficReport: rep}); err != nil {
		return err
	}

	if show, _ := cmd.Flags().GetBool("chart"); show && a.text() {
		f, err := a.eval.Compile(scenario.TrafficExpr, "t")
		if err != nil {
			return err
		}
		iv := scenario.TrafficInterval
		return a.printCurve(cmd, iv, chartPoints(iv), chart.Curve{Name: "requests/hour", F: f})
	}
	return nil
}

func (a *app) plotCmd() *cobra.Command {
	d := config.DefaultConfig().Integral
	cmd := &cobra.Command{
		Use:   "plot expression [expression...]",
		Short: "sample curves and draw them, optionally saving an image",
		Args:  cobra.MinimumNArgs(1),
		RunE:  a.runPlot,
	}
	cmd.Flags().String("var", "x", "free variable")
	cmd.Flags().Float64("a", d.A, "lower bound")
	cmd.Flags().Float64("b", d.B, "upper bound")
	cmd.Flags().Int("points", d.Points, "sample cells")
	cmd.Flags().String("out", "", "image file to write (png, svg or pdf)")
	return cmd
}

func (a *app) runPlot(cmd *cobra.Command, args []string) error {
	c := a.cfg.Integral
	iv := numeric.Interval{A: floatFlag(cmd, "a", c.A), B: floatFlag(cmd, "b", c.B)}
	variable := stringFlag(cmd, "var", "x")

	curves := make([]chart.Curve, len(args))
	for i, e := range args {
		f, err := a.eval.Compile(e, variable)
		if err != nil {
			return err
		}
		curves[i] = chart.Curve{Name: e, F: f}
	}
	s, err := chart.Sample(iv, intFlag(cmd, "points", c.Points), curves...)
	if err != nil {
		return err
	}
	for _, w := range s.Warnings {
		a.log.Warn("plotted as 0", "detail", w)
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := chart.SavePNG(s, fmt.Sprintf("%s on %s", variable, iv), variable, out); err != nil {
			return err
		}
		a.log.Info("image written", "path", out)
	}
	if a.text() {
		fmt.Fprintln(cmd.OutOrStdout(), chart.Render(s, chart.Options{}))
		return nil
	}
	return a.write(cmd, report.Chart{Series: s})
}

func (a *app) printCurve(cmd *cobra.Command, iv numeric.Interval, points int, curves ...chart.Curve) error {
	s, err := chart.Sample(iv, points, curves...)
	if err != nil {
		return err
	}
	for _, w := range s.Warnings {
		a.log.Warn("plotted as 0", "detail", w)
	}
	fmt.Fprintln(cmd.OutOrStdout(), chart.Render(s, chart.Options{}))
	return nil
}

// chartPoints spaces lesson charts chartStep apart.
func chartPoints(iv numeric.Interval) int {
	lo, hi := iv.Ordered()
	return max(1, int(math.Round((hi-lo)/chartStep)))
}
