package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// SavePNG writes every curve of s to an image. The format follows the file
// extension (png, svg, pdf, ...).
func SavePNG(s *Series, title, xLabel, path string) error {
	if len(s.Records) == 0 {
		return fmt.Errorf("chart: empty series")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "value"

	lines := make([]interface{}, 0, 2*len(s.Names))
	for _, name := range s.Names {
		pts := make(plotter.XYs, len(s.Records))
		for i, r := range s.Records {
			pts[i] = plotter.XY{X: r.X, Y: r.Values[name]}
		}
		lines = append(lines, name, pts)
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	p.Add(plotter.NewGrid())

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("chart: save %s: %w", path, err)
	}
	return nil
}
