package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orrery/internal/kepler"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/orrery"
	"github.com/san-kum/orrery/internal/solar"
)

const (
	width           = 80
	height          = 28
	historyCapacity = 600
	trailCapacity   = 240
	frameRate       = 30
)

type TickMsg time.Time

// Model is the live top-down view of a system.
type Model struct {
	sys   *orrery.System
	title string
	tick  float64

	canvas *Canvas
	camera *Camera

	running    bool
	showOrbits bool
	showLabels bool
	showHelp   bool
	// focus is the index of the body the camera follows, -1 for the origin.
	focus int

	trails  map[string][]mgl64.Vec3
	drift   []float64
	energy0 float64
	lastErr string
}

// NewModel shows sys, advancing it by one frame of wall time per tick.
func NewModel(sys *orrery.System, title string) Model {
	m := Model{
		sys:        sys,
		title:      title,
		tick:       1.0 / frameRate,
		canvas:     NewCanvas(width, height),
		camera:     NewCamera(extent(sys)),
		running:    true,
		showOrbits: true,
		showLabels: true,
		focus:      -1,
		trails:     make(map[string][]mgl64.Vec3),
		drift:      make([]float64, 0, historyCapacity),
	}
	m.energy0 = metrics.TotalEnergy(sys.Bodies())
	return m
}

// extent is the largest aphelion in the system, or the farthest body.
func extent(sys *orrery.System) float64 {
	ext := 0.0
	for _, b := range sys.Bodies() {
		if b.Parent != nil {
			continue
		}
		el := b.CurrentOrbitData()
		if el.Eccentricity < 1 {
			ext = math.Max(ext, el.SemiMajorAxis*(1+el.Eccentricity))
		}
		ext = math.Max(ext, b.Position.Len())
	}
	if ext == 0 {
		return kepler.AU
	}
	return ext * 1.05
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.lastErr = ""
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "]":
			m.setTimeScale(m.sys.TimeScale() * 2)
		case "[":
			m.setTimeScale(m.sys.TimeScale() / 2)
		case ".":
			m.setIterations(m.sys.SolverIterations() * 2)
		case ",":
			m.setIterations(m.sys.SolverIterations() / 2)
		case "p":
			m.sys.SetSimulatePhysics(!m.sys.SimulatePhysics())
			m.resetEnergy()
		case "r":
			m.sys.RecalculatePositions()
			m.resetEnergy()
			m.trails = make(map[string][]mgl64.Vec3)
		case "tab":
			m.cycleFocus()
		case "o":
			m.showOrbits = !m.showOrbits
		case "l":
			m.showLabels = !m.showLabels
		case "t":
			NextTheme()
		case "left", "h":
			m.camera.Rotate(-0.1)
		case "right":
			m.camera.Rotate(0.1)
		case "up", "k":
			m.camera.Tilt(0.1)
		case "down", "j":
			m.camera.Tilt(-0.1)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) setTimeScale(v float64) {
	if err := m.sys.SetTimeScale(v); err != nil {
		m.lastErr = err.Error()
	}
}

func (m *Model) setIterations(n int) {
	if err := m.sys.SetSolverIterations(n); err != nil {
		m.lastErr = err.Error()
	}
}

func (m *Model) resetEnergy() {
	m.energy0 = metrics.TotalEnergy(m.sys.Bodies())
	m.drift = m.drift[:0]
}

func (m *Model) cycleFocus() {
	m.focus++
	if m.focus >= m.sys.Len() {
		m.focus = -1
	}
}

// step advances the system by one frame and records trails and drift.
func (m *Model) step() {
	m.sys.Update(m.tick)

	for _, b := range m.sys.Bodies() {
		tr := append(m.trails[b.Name], b.Position)
		if len(tr) > trailCapacity {
			tr = tr[1:]
		}
		m.trails[b.Name] = tr
	}

	d := 0.0
	if m.energy0 != 0 {
		d = math.Abs((metrics.TotalEnergy(m.sys.Bodies()) - m.energy0) / m.energy0)
	}
	m.drift = append(m.drift, d)
	if len(m.drift) > historyCapacity {
		m.drift = m.drift[1:]
	}
}

func (m *Model) focusBody() (string, bool) {
	bodies := m.sys.Bodies()
	if m.focus < 0 || m.focus >= len(bodies) {
		m.camera.Center = mgl64.Vec3{}
		return "", false
	}
	b := bodies[m.focus]
	m.camera.Center = b.Position
	return b.Name, true
}

// draw renders orbits, trails and bodies onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	m.focusBody()
	w, h := m.canvas.Dots()

	for i, b := range m.sys.Bodies() {
		if m.showOrbits && i > 0 && b.CurrentOrbitData().SemiMajorAxis > 0 {
			path := b.OrbitPath(solar.Segments(b.Name))
			px, py, _ := m.camera.Project(fromRender(path[len(path)-1]), w, h)
			for _, v := range path {
				x, y, _ := m.camera.Project(fromRender(v), w, h)
				m.canvas.DrawLine(px, py, x, y)
				px, py = x, y
			}
		}
		for _, p := range m.trails[b.Name] {
			if x, y, ok := m.camera.Project(p, w, h); ok {
				m.canvas.Set(x, y)
			}
		}
	}

	for i, b := range m.sys.Bodies() {
		x, y, ok := m.camera.Project(b.Position, w, h)
		if !ok {
			continue
		}
		glyph := '●'
		if i == 0 {
			glyph = '☉'
		}
		m.canvas.Put(x, y, glyph)
		if m.showLabels {
			m.canvas.Label(x, y, b.Name)
		}
	}
}

func fromRender(v [3]float32) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}.Mul(1 / kepler.RenderScale)
}

// FormatTimeScale describes simulated time per wall second.
func FormatTimeScale(s float64) string {
	switch {
	case s >= 365.25*86400:
		return fmt.Sprintf("%.3g yr/s", s/(365.25*86400))
	case s >= 86400:
		return fmt.Sprintf("%.3g d/s", s/86400)
	case s >= 3600:
		return fmt.Sprintf("%.3g h/s", s/3600)
	case s >= 60:
		return fmt.Sprintf("%.3g min/s", s/60)
	}
	return fmt.Sprintf("%.3g s/s", s)
}

func (m Model) View() string {
	st := currentStyles()
	m.draw()

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.title)) + "\n")

	status := st.running.Render("RUNNING")
	if !m.running {
		status = st.paused.Render("PAUSED")
	}
	s.WriteString(status + "  " + st.muted.Render(string(m.sys.Mode())) + "\n\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Date", m.sys.SimulationTime().Format("2006-01-02 15:04"))
	row("JD", fmt.Sprintf("%.4f", m.sys.JulianDate()))
	row("Scale", FormatTimeScale(m.sys.TimeScale()))
	s.WriteString(st.label.Render("") + st.graph.Render(ScaleBar(m.sys.TimeScale(), orrery.TimeScaleMin, orrery.TimeScaleMax, 20)) + "\n")
	row("Solver", fmt.Sprintf("%s ×%d", m.sys.Stepper().Name(), m.sys.SolverIterations()))
	row("Bodies", fmt.Sprintf("%d", m.sys.Len()))
	if m.sys.ClockResets() > 0 {
		row("Resets", st.warn.Render(fmt.Sprintf("%d", m.sys.ClockResets())))
	}

	if name, ok := m.focusBody(); ok {
		b, _ := m.sys.Body(name)
		s.WriteString("\n" + st.header.Render(name) + "\n")
		if b.Parent != nil {
			row("Distance", fmt.Sprintf("%.0f km from %s", b.Position.Sub(b.Parent.Position).Len()/1e3, b.Parent.Name))
		} else {
			row("Distance", fmt.Sprintf("%.4f AU", b.Position.Len()/kepler.AU))
		}
		row("Speed", fmt.Sprintf("%.3f km/s", b.Velocity.Len()/1e3))
		el := b.CurrentOrbitData()
		row("a / e", fmt.Sprintf("%.4f AU / %.4f", el.SemiMajorAxis/kepler.AU, el.Eccentricity))
	}

	if len(m.drift) > 1 {
		chart := asciigraph.Plot(m.drift, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("energy drift"))
		s.WriteString("\n" + st.graph.Render(chart) + "\n")
	}
	if m.lastErr != "" {
		s.WriteString("\n" + st.warn.Render(m.lastErr) + "\n")
	}

	s.WriteString(st.help.Render(Separator(36) + "\nSP:Pause P:Physics R:Recompute Q:Quit\n[ ]:Scale , .:Solver TAB:Focus ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, st.canvas.Render(m.canvas.String()), st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  P        - Physics / analytic       ║
║  R        - Recompute from elements  ║
║  [ ]      - Halve / double scale     ║
║  , .      - Halve / double solver    ║
║  + -      - Zoom                     ║
║  ← → ↑ ↓  - Rotate / tilt camera     ║
║  Tab      - Follow next body         ║
║  O L      - Orbits / labels          ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
