package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/orrery/internal/kepler"
	"github.com/san-kum/orrery/internal/orrery"
)

// Scene is a top-down drawing in render units.
type Scene struct {
	Title  string
	Orbits []Path
	Bodies []Mark
}

type Path struct {
	Name   string
	Points []mgl32.Vec3
	Closed bool
}

type Mark struct {
	Name     string
	Position mgl32.Vec3
	Radius   float64
}

var palette = []string{"#ffd166", "#9e9e9e", "#e9c46a", "#4ea8de", "#e76f51", "#f4a261", "#e9d8a6", "#90e0ef", "#4361ee", "#b5838d", "#cccccc"}

func color(i int) string { return palette[i%len(palette)] }

func toRender(p mgl64.Vec3) mgl32.Vec3 {
	s := p.Mul(kepler.RenderScale)
	return mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
}

// SystemScene draws every body's current orbit and position. segments
// gives the number of orbit samples per body.
func SystemScene(sys *orrery.System, segments func(name string) int) Scene {
	sc := Scene{Title: sys.SimulationTime().Format("2006-01-02 15:04 MST")}
	for i, b := range sys.Bodies() {
		if i > 0 && b.CurrentOrbitData().SemiMajorAxis > 0 {
			sc.Orbits = append(sc.Orbits, Path{Name: b.Name, Points: b.OrbitPath(segments(b.Name)), Closed: true})
		}
		r := 3.0
		if i == 0 {
			r = 6
		}
		sc.Bodies = append(sc.Bodies, Mark{Name: b.Name, Position: toRender(b.Position), Radius: r})
	}
	return sc
}

// TracksScene draws sampled positions in metres as open paths, marking the
// final position of each.
func TracksScene(title string, names []string, tracks map[string][]mgl64.Vec3) Scene {
	sc := Scene{Title: title}
	for i, name := range names {
		tr := tracks[name]
		if len(tr) == 0 {
			continue
		}
		pts := make([]mgl32.Vec3, len(tr))
		for k, p := range tr {
			pts[k] = toRender(p)
		}
		sc.Orbits = append(sc.Orbits, Path{Name: name, Points: pts})
		r := 3.0
		if i == 0 {
			r = 6
		}
		sc.Bodies = append(sc.Bodies, Mark{Name: name, Position: pts[len(pts)-1], Radius: r})
	}
	return sc
}

func (sc Scene) extent() float64 {
	ext := 0.0
	grow := func(p mgl32.Vec3) {
		ext = math.Max(ext, math.Max(math.Abs(float64(p[0])), math.Abs(float64(p[1]))))
	}
	for _, o := range sc.Orbits {
		for _, p := range o.Points {
			grow(p)
		}
	}
	for _, b := range sc.Bodies {
		grow(b.Position)
	}
	if ext == 0 {
		return 1
	}
	return ext * 1.1
}

// SVG renders the scene as a size×size image centred on the origin with
// +Y up.
func SVG(sc Scene, size int) string {
	ext := sc.extent()
	half := float64(size) / 2
	px := func(p mgl32.Vec3) (float64, float64) {
		return half + float64(p[0])/ext*half, half - float64(p[1])/ext*half
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size)

	if sc.Title != "" {
		fmt.Fprintf(&sb, `<text x="8" y="18" fill="#cccccc" font-family="monospace" font-size="12">%s</text>
`, escape(sc.Title))
	}

	for i, o := range sc.Orbits {
		if len(o.Points) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path id="orbit-%s" fill="none" stroke="%s" stroke-opacity="0.6" stroke-width="1" d="`, escape(o.Name), color(i+1))
		for k, p := range o.Points {
			x, y := px(p)
			if k == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		if o.Closed {
			sb.WriteString(" Z")
		}
		sb.WriteString("\"/>\n")
	}

	for i, b := range sc.Bodies {
		x, y := px(b.Position)
		fmt.Fprintf(&sb, `<circle id="body-%s" cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
<text x="%.1f" y="%.1f" fill="#cccccc" font-family="monospace" font-size="10">%s</text>
`, escape(b.Name), x, y, b.Radius, color(i), x+b.Radius+2, y-b.Radius, escape(b.Name))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;").Replace(s)
}
