package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/integlab/internal/area"
	"github.com/san-kum/integlab/internal/chart"
	"github.com/san-kum/integlab/internal/numeric"
	"github.com/san-kum/integlab/internal/quadrature"
	"github.com/san-kum/integlab/internal/scenario"
	"github.com/san-kum/integlab/internal/stream"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, f Format, v Tabular) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, f, v))
	return buf.Bytes()
}

func leftSum() Riemann {
	return Riemann{
		Expression: "exp(t) + 1",
		Riemann: &quadrature.Riemann{
			Rule:     numeric.Left,
			Interval: numeric.Interval{A: 0, B: 4},
			N:        2,
			Sum:      10.5,
			Dt:       2,
			Rectangles: []quadrature.Rectangle{
				{X: 0, Width: 2, Height: 2},
				{X: 2, Width: 2, Height: 3.25},
			},
		},
	}
}

func TestGolden(t *testing.T) {
	g := goldie.New(t)

	traffic := Traffic{&scenario.TrafficReport{
		Interval:  numeric.Interval{A: 0, B: 12},
		Steps:     120,
		Analytic:  scenario.Breakdown{Base: 1200, Cyclic: 0, Growth: 1440, Total: 2640},
		Numeric:   2640.0049,
		RelError:  1.8560606e-06,
		PerHour:   220,
		PerMinute: 220.0 / 60,
	}}

	bounded := Area{F: "(t + 5)^2", G: "-t + 5", Result: &area.Result{
		Intersections: []float64{-8.7, -2.3},
		Area:          43.75,
		A:             -8.7,
		B:             -2.3,
		Bounded:       true,
	}}

	points := Stream{Ticks: 2, Integral: 19.775, Points: []stream.Point{
		{Time: 1, Memory: 60, CPU: 40, Integral: 10},
		{Time: 2, Memory: 55.5, CPU: 42.25, Integral: 19.775},
	}}

	tests := []struct {
		name   string
		format Format
		value  Tabular
	}{
		{"riemann_text", Text, leftSum()},
		{"riemann_csv", CSV, leftSum()},
		{"traffic_text", Text, traffic},
		{"area_json", JSON, bounded},
		{"area_unbounded_text", Text, Area{F: "f", G: "g", Result: &area.Result{}}},
		{"stream_csv", CSV, points},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Assert(t, tt.name, render(t, tt.format, tt.value))
		})
	}
}

func TestChart_Table(t *testing.T) {
	s := &chart.Series{
		Names: []string{"f", "g"},
		Records: []chart.Record{
			{X: 0, Values: map[string]float64{"f": 1, "g": 2}},
			{X: 0.5, Values: map[string]float64{"f": 1.5, "g": 0}},
		},
		Warnings: []string{"bad point"},
	}
	out := string(render(t, CSV, Chart{s}))
	assert.Equal(t, "x,f,g\n0,1,2\n0.5,1.5,0\n", out)

	text := string(render(t, Text, Chart{s}))
	assert.Contains(t, text, "warning: bad point")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": Text, "text": Text, "JSON": JSON, " csv ": CSV} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, Format("yaml"), leftSum()))
}

func TestRiemann_JSONFlattensResult(t *testing.T) {
	var got map[string]any
	require.NoError(t, json.Unmarshal(render(t, JSON, leftSum()), &got))
	assert.Equal(t, "exp(t) + 1", got["expression"])
	assert.Equal(t, "left", got["rule"])
	assert.Equal(t, 10.5, got["sum"])
}

func TestIntersections_NotesSkipped(t *testing.T) {
	out := string(render(t, Text, Intersections{F: "f", G: "g", Roots: []float64{1}, Skipped: 3}))
	assert.Contains(t, out, "intersections of f and g: 1")
	assert.Contains(t, out, "3 grid points could not be evaluated")
}

func TestLessons(t *testing.T) {
	r := scenario.NewRegistry()
	var ls []scenario.Lesson
	for _, name := range r.List() {
		l, err := r.Get(name)
		require.NoError(t, err)
		ls = append(ls, l)
	}

	text := string(render(t, Text, Lessons{Lessons: ls}))
	assert.True(t, strings.HasPrefix(text, "name"))
	assert.Contains(t, text, "traffic")

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal(render(t, JSON, Lessons{Lessons: ls}), &decoded))
	require.Len(t, decoded, len(ls))
	assert.Equal(t, "area", decoded[0]["name"])
}
