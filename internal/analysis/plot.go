package analysis

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// PlotXY draws the X/Y projection of one or more tracks, each with its own
// glyph, on a shared equal-aspect grid. The origin is marked with '+'.
// Terminal cells are about twice as tall as wide, which the horizontal
// scale accounts for.
func PlotXY(tracks [][]mgl64.Vec3, glyphs []rune, width, height int) string {
	if width < 2 || height < 2 {
		return ""
	}

	extent := 0.0
	for _, tr := range tracks {
		for _, p := range tr {
			extent = math.Max(extent, math.Max(math.Abs(p.X()), math.Abs(p.Y())))
		}
	}
	if extent == 0 {
		extent = 1
	}
	extent *= 1.1

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	// Half extents in cells, corrected so a circle stays round.
	hx := float64(width-1) / 2
	hy := float64(height-1) / 2
	scale := math.Min(hx/2, hy)

	put := func(x, y float64, r rune) {
		col := int(math.Round(hx + 2*x/extent*scale))
		row := int(math.Round(hy - y/extent*scale))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = r
		}
	}

	for i, tr := range tracks {
		g := '•'
		if i < len(glyphs) {
			g = glyphs[i]
		}
		for _, p := range tr {
			put(p.X(), p.Y(), g)
		}
	}
	put(0, 0, '+')

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteRune('\n')
	}
	return sb.String()
}
