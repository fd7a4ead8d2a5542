package chart

import (
	"strings"

	"github.com/guptarohit/asciigraph"
)

type Options struct {
	Width   int
	Height  int
	Caption string
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 80
	}
	if o.Height <= 0 {
		o.Height = 12
	}
	return o
}

var palette = []asciigraph.AnsiColor{
	asciigraph.Cyan,
	asciigraph.Yellow,
	asciigraph.Green,
	asciigraph.Magenta,
	asciigraph.Red,
}

// Render draws the named curves (all of them when names is empty) on one
// terminal chart.
func Render(s *Series, opts Options, names ...string) string {
	if len(names) == 0 {
		names = s.Names
	}
	if len(s.Records) == 0 || len(names) == 0 {
		return ""
	}
	opts = opts.withDefaults()

	data := make([][]float64, len(names))
	colors := make([]asciigraph.AnsiColor, len(names))
	for i, name := range names {
		data[i] = s.Column(name)
		colors[i] = palette[i%len(palette)]
	}

	caption := opts.Caption
	if caption == "" {
		caption = strings.Join(names, ", ")
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)
}

// Bars draws heights as a single line, one step per value; used for
// Riemann rectangle heights.
func Bars(heights []float64, opts Options) string {
	if len(heights) == 0 {
		return ""
	}
	opts = opts.withDefaults()
	// Repeat each height so narrow partitions still read as steps.
	per := max(1, opts.Width/len(heights))
	steps := make([]float64, 0, per*len(heights))
	for _, h := range heights {
		for i := 0; i < per; i++ {
			steps = append(steps, h)
		}
	}
	return asciigraph.Plot(steps,
		asciigraph.Height(opts.Height),
		asciigraph.Caption(opts.Caption),
	)
}
