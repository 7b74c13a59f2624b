package viz

import (
	"strings"
)

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

const blank = 0x2800

// Canvas is a grid of braille cells with a text overlay. Pixel
// coordinates are sub-cell dots: the canvas is Width*2 by Height*4 dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	overlay       [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:   w,
		Height:  h,
		Grid:    make([][]rune, h),
		overlay: make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.overlay[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	return row, col, col < c.Width && row < c.Height
}

func (c *Canvas) Set(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Put writes a glyph over the cell holding dot (x, y).
func (c *Canvas) Put(x, y int, r rune) {
	if row, col, ok := c.cell(x, y); ok {
		c.overlay[row][col] = r
	}
}

// Label writes text starting at the cell right of dot (x, y), clipped at
// the canvas edge.
func (c *Canvas) Label(x, y int, text string) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	for _, r := range text {
		col++
		if col >= c.Width {
			return
		}
		c.overlay[row][col] = r
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.overlay[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm. Lines with an end
// far outside the canvas are skipped.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	w, h := c.Dots()
	if outside(x0, y0, w, h) || outside(x1, y1, w, h) {
		return
	}

	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func outside(x, y, w, h int) bool {
	return x < -w || x > 2*w || y < -h || y > 2*h
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if o := c.overlay[i][j]; o != 0 {
				r = o
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
