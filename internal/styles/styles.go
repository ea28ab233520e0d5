// Package styles holds the chartfit palette and the lipgloss styles built
// from it. ApplyTheme swaps the palette and rebuilds every style.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/chartfit/internal/chart"
)

// Color palette, set from the current theme.
var (
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color

	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color

	ToastSuccessTextColor lipgloss.Color
	ToastErrorTextColor   lipgloss.Color

	// CurrentMarkdownTheme is the glamour style used for the help overlay.
	CurrentMarkdownTheme = "dark"
)

// Styles, rebuilt by ApplyTheme.
var (
	Title        lipgloss.Style
	Footer       lipgloss.Style
	Muted        lipgloss.Style
	HelpBox      lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
)

func init() {
	ApplyTheme(DefaultThemeName)
}

// rebuildStyles recreates all lipgloss styles with current colors
func rebuildStyles() {
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		Background(Primary).
		Padding(0, 1)

	Footer = lipgloss.NewStyle().
		Foreground(TextMuted)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	HelpBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary)

	ToastSuccess = lipgloss.NewStyle().
		Foreground(ToastSuccessTextColor).
		Background(Success).
		Padding(0, 1)

	ToastError = lipgloss.NewStyle().
		Foreground(ToastErrorTextColor).
		Background(Error).
		Padding(0, 1)
}

// Chart returns the bar chart styles for the current palette.
func Chart() chart.Styles {
	return chart.Styles{
		Label: lipgloss.NewStyle().Foreground(TextSecondary),
		Bar:   lipgloss.NewStyle().Foreground(Secondary),
		Value: lipgloss.NewStyle().Foreground(Accent),
		Muted: Muted,
	}
}
