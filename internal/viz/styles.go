package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	canvas, panel, header, label, value, muted, running, paused, warn, graph, help lipgloss.Style
}

// currentStyles derives the view styles from CurrentTheme.
func currentStyles() styles {
	t := CurrentTheme
	return styles{
		canvas:  lipgloss.NewStyle().Padding(0, 1),
		panel:   lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(0, 2).Width(44),
		header:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		muted:   lipgloss.NewStyle().Foreground(t.Muted),
		running: lipgloss.NewStyle().Foreground(t.Good).Bold(true),
		paused:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		warn:    lipgloss.NewStyle().Foreground(t.Bad),
		graph:   lipgloss.NewStyle().Foreground(t.Accent),
		help:    lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
	}
}

// ScaleBar draws the position of v on a logarithmic [lo, hi] axis.
func ScaleBar(v, lo, hi float64, width int) string {
	frac := 0.0
	if v > lo && hi > lo {
		frac = math.Log(v/lo) / math.Log(hi/lo)
	}
	filled := int(math.Round(math.Max(0, math.Min(1, frac)) * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Sparkline renders the last width values with block characters.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(chars)-1))
		b.WriteRune(chars[max(0, min(idx, len(chars)-1))])
	}
	return b.String()
}

func Separator(width int) string {
	mid := width / 2
	return strings.Repeat("─", max(mid-3, 0)) + " ◆ " + strings.Repeat("─", max(width-mid-3, 0))
}
