// Package ui is the terminal front end for the life engine.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light Mode Colors
	LightBackground = lipgloss.Color("#f4f5f6")
	LightForeground = lipgloss.Color("#101F38")
	LightDead       = lipgloss.Color("#d6dae0")
	LightMuted      = lipgloss.Color("#6b7280")
	LightBorder     = lipgloss.Color("#dce0e5")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#141d2b")
	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkDead       = lipgloss.Color("#000000")
	DarkMuted      = lipgloss.Color("#8b95a5")
	DarkBorder     = lipgloss.Color("#2a3850")

	// Same in both modes
	AliveColor  = lipgloss.Color("#e53935") // red, like the canvas renderer
	CursorColor = lipgloss.Color("#2196F3")
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Alive      lipgloss.Color
	Dead       lipgloss.Color
	Cursor     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Alive:      AliveColor,
		Dead:       LightDead,
		Cursor:     CursorColor,
		Muted:      LightMuted,
		Border:     LightBorder,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Alive:      AliveColor,
		Dead:       DarkDead,
		Cursor:     CursorColor,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// DetectTheme guesses the terminal background from COLORFGBG, falling back
// to LIFE_DARK_MODE and then dark.
func DetectTheme() Theme {
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// "foreground;background"; ANSI 0-6 and 8 are dark backgrounds.
		parts := strings.Split(colorTerm, ";")
		if bgIdx, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
				return DarkTheme()
			}
			return LightTheme()
		}
	}

	if os.Getenv("LIFE_DARK_MODE") == "0" {
		return LightTheme()
	}
	return DarkTheme()
}

// ThemeFor resolves a ux.theme setting: "light", "dark" or "auto".
func ThemeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Title lipgloss.Style
	Board lipgloss.Style

	Alive       lipgloss.Style
	Dead        lipgloss.Style
	CursorAlive lipgloss.Style
	CursorDead  lipgloss.Style

	Playing lipgloss.Style
	Paused  lipgloss.Style
	Status  lipgloss.Style
	Help    lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Board: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Border),

		Alive: lipgloss.NewStyle().
			Background(theme.Alive),

		Dead: lipgloss.NewStyle().
			Background(theme.Dead),

		CursorAlive: lipgloss.NewStyle().
			Background(theme.Alive).
			Foreground(theme.Cursor).
			Bold(true),

		CursorDead: lipgloss.NewStyle().
			Background(theme.Dead).
			Foreground(theme.Cursor).
			Bold(true),

		Playing: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Paused: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Status: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles for the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}
