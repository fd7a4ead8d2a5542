package viz

import "strings"

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille pixel grid with 2x4 sub-pixels per cell.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel (x, y); y grows downwards.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// column lights x from the bottom row up to and including top.
func (c *Canvas) column(x, top int) {
	for y := c.Height*4 - 1; y >= top; y-- {
		c.Set(x, y)
	}
}

// FillArea shades the region under values, scaled to the canvas. Each value
// becomes one column of sub-pixels from the baseline up to its height.
func (c *Canvas) FillArea(values []float64, lo, hi float64) {
	pw, ph := c.Width*2, c.Height*4
	if len(values) == 0 || pw == 0 || ph == 0 {
		return
	}
	if len(values) > pw {
		values = values[len(values)-pw:]
	}
	rng := hi - lo
	if rng <= 0 {
		rng = 1
	}
	x0 := pw - len(values)
	for i, v := range values {
		top := ph - 1 - int((v-lo)/rng*float64(ph-1))
		top = min(max(top, 0), ph-1)
		c.column(x0+i, top)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}
