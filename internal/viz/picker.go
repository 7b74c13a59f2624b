package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/integrators"
	"github.com/san-kum/orrery/internal/orrery"
)

var presetInfo = map[string]string{
	"classic":    "sun to pluto, one day per second",
	"inner":      "rocky planets",
	"outer":      "giants and pluto, a year per second",
	"sun-earth":  "two-body year",
	"earth-moon": "lunar months",
	"analytic":   "pure kepler motion",
	"perihelion": "all planets start at perihelion",
}

const (
	stateMenu = iota
	stateConfig
	stateLive
)

// Builder turns a configuration into a ready system.
type Builder func(cfg *config.Config) (*orrery.System, error)

// Picker lets the user choose a preset, adjust it and watch it live.
type Picker struct {
	state, cursor int
	presets       []string
	cfg           *config.Config
	field         int
	build         Builder
	err           string
	live          Model
}

var pickerFields = []string{"time scale", "solver iterations", "integrator", "physics", "placement"}

func NewPicker(build Builder) Picker {
	return Picker{presets: config.ListPresets(), build: build}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.state == stateLive {
		next, cmd := p.live.Update(msg)
		p.live = next.(Model)
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch p.state {
	case stateMenu:
		return p.menuKey(key)
	case stateConfig:
		return p.configKey(key)
	}
	return p, nil
}

func (p Picker) menuKey(msg tea.KeyMsg) (Picker, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.presets)-1 {
			p.cursor++
		}
	case "enter", " ":
		p.cfg = config.GetPreset(p.presets[p.cursor])
		p.state, p.field, p.err = stateConfig, 0, ""
	}
	return p, nil
}

func (p Picker) configKey(msg tea.KeyMsg) (Picker, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return p, tea.Quit
	case "esc":
		p.state = stateMenu
	case "up", "k":
		if p.field > 0 {
			p.field--
		}
	case "down", "j":
		if p.field < len(pickerFields)-1 {
			p.field++
		}
	case "left", "h":
		p.adjust(-1)
	case "right", "l":
		p.adjust(1)
	case "enter", "s":
		if err := p.cfg.Validate(); err != nil {
			p.err = err.Error()
			return p, nil
		}
		sys, err := p.build(p.cfg)
		if err != nil {
			p.err = err.Error()
			return p, nil
		}
		p.live = NewModel(sys, p.cfg.Name)
		p.state = stateLive
		return p, p.live.Init()
	}
	return p, nil
}

func (p *Picker) adjust(dir int) {
	c := p.cfg
	switch p.field {
	case 0:
		if dir > 0 {
			c.TimeScale = min(c.TimeScale*2, orrery.TimeScaleMax)
		} else {
			c.TimeScale = max(c.TimeScale/2, orrery.TimeScaleMin)
		}
	case 1:
		if dir > 0 {
			c.SolverIterations = min(c.SolverIterations*2, orrery.MaxSolverIterations)
		} else {
			c.SolverIterations = max(c.SolverIterations/2, orrery.MinSolverIterations)
		}
	case 2:
		names := integrators.Names()
		for i, n := range names {
			if n == c.Integrator {
				c.Integrator = names[(i+dir+len(names))%len(names)]
				break
			}
		}
	case 3:
		c.SimulatePhysics = !c.SimulatePhysics
	case 4:
		if c.Placement == "analytic" {
			c.Placement = "default"
		} else {
			c.Placement = "analytic"
		}
	}
}

func (p Picker) fieldValue(i int) string {
	c := p.cfg
	switch i {
	case 0:
		return FormatTimeScale(c.TimeScale)
	case 1:
		return fmt.Sprintf("%d", c.SolverIterations)
	case 2:
		return c.Integrator
	case 3:
		if c.SimulatePhysics {
			return "on"
		}
		return "off"
	case 4:
		return c.Placement
	}
	return ""
}

func (p Picker) View() string {
	switch p.state {
	case stateMenu:
		return p.viewMenu()
	case stateConfig:
		return p.viewConfig()
	case stateLive:
		return p.live.View()
	}
	return ""
}

func (p Picker) heading(title, sub string) string {
	t := CurrentTheme
	h := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	d := lipgloss.NewStyle().Foreground(t.Muted)
	return "\n\n    " + h.Render(title) + "\n    " + d.Render(sub) + "\n    " + d.Render(strings.Repeat("─", 25)) + "\n\n"
}

func (p Picker) line(selected bool, name, value string) string {
	t := CurrentTheme
	if selected {
		return fmt.Sprintf("    %s %s  %s\n",
			lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render("▸"),
			lipgloss.NewStyle().Foreground(t.Text).Bold(true).Render(fmt.Sprintf("%-18s", name)),
			lipgloss.NewStyle().Foreground(t.Accent).Render(value))
	}
	return fmt.Sprintf("      %s  %s\n",
		lipgloss.NewStyle().Foreground(t.Muted).Render(fmt.Sprintf("%-18s", name)),
		lipgloss.NewStyle().Foreground(t.Muted).Render(value))
}

func (p Picker) viewMenu() string {
	var b strings.Builder
	b.WriteString(p.heading("ORRERY", "n-body solar system"))
	for i, name := range p.presets {
		b.WriteString(p.line(i == p.cursor, name, presetInfo[name]))
	}
	b.WriteString("\n    " + KeyHints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (p Picker) viewConfig() string {
	var b strings.Builder
	b.WriteString(p.heading(strings.ToUpper(p.cfg.Name), strings.Join(p.cfg.Bodies, " ")))
	for i, name := range pickerFields {
		b.WriteString(p.line(i == p.field, name, p.fieldValue(i)))
	}
	if p.err != "" {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(CurrentTheme.Bad).Render(p.err) + "\n")
	}
	b.WriteString("\n    " + KeyHints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// KeyHints renders key/description pairs.
func KeyHints(pairs ...string) string {
	k := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
	d := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(k.Render(pairs[i]) + d.Render(" "+pairs[i+1]+"  "))
	}
	return strings.TrimRight(b.String(), " ")
}

// Run shows m full screen until the user quits.
func Run(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
