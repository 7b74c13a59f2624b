package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the live view.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Good    lipgloss.Color
	Warning lipgloss.Color
	Bad     lipgloss.Color
	// Star colours the first body; Bodies cycle over the rest.
	Star   lipgloss.Color
	Bodies []lipgloss.Color
}

var (
	ThemeDeepSpace = Theme{
		Name:    "deep-space",
		Primary: lipgloss.Color("#7aa2f7"),
		Accent:  lipgloss.Color("#bb9af7"),
		Text:    lipgloss.Color("#c0caf5"),
		Muted:   lipgloss.Color("#565f89"),
		Good:    lipgloss.Color("#9ece6a"),
		Warning: lipgloss.Color("#e0af68"),
		Bad:     lipgloss.Color("#f7768e"),
		Star:    lipgloss.Color("#ffd166"),
		Bodies: []lipgloss.Color{
			"#9e9e9e", "#e9c46a", "#4ea8de", "#e76f51", "#f4a261",
			"#e9d8a6", "#90e0ef", "#4361ee", "#b5838d", "#cccccc",
		},
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Good:    lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
		Bad:     lipgloss.Color("#ff0000"),
		Star:    lipgloss.Color("#ccff00"),
		Bodies:  []lipgloss.Color{"#00cc00", "#66ff66"},
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Good:    lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ffaa00"),
		Bad:     lipgloss.Color("#ff0000"),
		Star:    lipgloss.Color("#ffffff"),
		Bodies:  []lipgloss.Color{"#cccccc"},
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Primary: lipgloss.Color("#ff6b6b"),
		Accent:  lipgloss.Color("#ff9ff3"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Good:    lipgloss.Color("#5fd068"),
		Warning: lipgloss.Color("#ffc048"),
		Bad:     lipgloss.Color("#ff4757"),
		Star:    lipgloss.Color("#feca57"),
		Bodies:  []lipgloss.Color{"#ff9ff3", "#48dbfb", "#ff6b6b", "#1dd1a1"},
	}

	CurrentTheme = ThemeDeepSpace

	Themes = []Theme{ThemeDeepSpace, ThemeRetro, ThemeMinimal, ThemeSunset}
)

// BodyColor returns the colour of the i-th body of a system.
func (t Theme) BodyColor(i int) lipgloss.Color {
	if i == 0 || len(t.Bodies) == 0 {
		return t.Star
	}
	return t.Bodies[(i-1)%len(t.Bodies)]
}

func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDeepSpace
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}
