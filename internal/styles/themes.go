package styles

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// DefaultThemeName is used when no theme or an unknown one is requested.
const DefaultThemeName = "dark"

var themeMu sync.RWMutex

// hexColorRegex matches #RRGGBB or #RRGGBBAA.
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// ColorPalette holds every color a theme sets.
type ColorPalette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`

	Success string `json:"success"`
	Error   string `json:"error"`

	TextPrimary   string `json:"textPrimary"`
	TextSecondary string `json:"textSecondary"`
	TextMuted     string `json:"textMuted"`

	ToastSuccessText string `json:"toastSuccessText"`
	ToastErrorText   string `json:"toastErrorText"`

	// MarkdownTheme is a glamour standard style name.
	MarkdownTheme string `json:"markdownTheme"`
}

// Theme is a named palette.
type Theme struct {
	Name        string
	DisplayName string
	Colors      ColorPalette
}

var (
	darkTheme = Theme{
		Name:        "dark",
		DisplayName: "Dark",
		Colors: ColorPalette{
			Primary:          "#7C3AED",
			Secondary:        "#3B82F6",
			Accent:           "#F59E0B",
			Success:          "#10B981",
			Error:            "#EF4444",
			TextPrimary:      "#F9FAFB",
			TextSecondary:    "#9CA3AF",
			TextMuted:        "#6B7280",
			ToastSuccessText: "#000000",
			ToastErrorText:   "#FFFFFF",
			MarkdownTheme:    "dark",
		},
	}

	lightTheme = Theme{
		Name:        "light",
		DisplayName: "Light",
		Colors: ColorPalette{
			Primary:          "#6D28D9",
			Secondary:        "#2563EB",
			Accent:           "#B45309",
			Success:          "#047857",
			Error:            "#B91C1C",
			TextPrimary:      "#FFFFFF",
			TextSecondary:    "#374151",
			TextMuted:        "#6B7280",
			ToastSuccessText: "#FFFFFF",
			ToastErrorText:   "#FFFFFF",
			MarkdownTheme:    "light",
		},
	}
)

var themeRegistry = map[string]Theme{
	darkTheme.Name:  darkTheme,
	lightTheme.Name: lightTheme,
}

var currentTheme = DefaultThemeName

// IsValidHexColor reports whether hex is #RRGGBB or #RRGGBBAA.
func IsValidHexColor(hex string) bool {
	return hexColorRegex.MatchString(hex)
}

// IsValidTheme reports whether a theme is registered under name.
func IsValidTheme(name string) bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	_, ok := themeRegistry[name]
	return ok
}

// GetTheme returns the named theme, or the default theme if unknown.
func GetTheme(name string) Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if t, ok := themeRegistry[name]; ok {
		return t
	}
	return themeRegistry[DefaultThemeName]
}

// GetCurrentThemeName returns the name of the applied theme.
func GetCurrentThemeName() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// ListThemes returns registered theme names, sorted.
func ListThemes() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyTheme applies a theme by name, updating all style variables.
func ApplyTheme(name string) {
	ApplyThemeWithOverrides(name, nil)
}

// ApplyThemeWithOverrides applies a theme with color overrides from config.
// Override keys are ColorPalette JSON names; invalid colors are ignored.
func ApplyThemeWithOverrides(name string, overrides map[string]string) {
	theme := GetTheme(name)
	for key, value := range overrides {
		applyOverride(&theme.Colors, key, value)
	}
	applyColors(theme.Colors)

	themeMu.Lock()
	currentTheme = theme.Name
	themeMu.Unlock()
}

func applyOverride(p *ColorPalette, key, value string) {
	if key == "markdownTheme" {
		p.MarkdownTheme = value
		return
	}
	if !IsValidHexColor(value) {
		return
	}
	switch strings.TrimSpace(key) {
	case "primary":
		p.Primary = value
	case "secondary":
		p.Secondary = value
	case "accent":
		p.Accent = value
	case "success":
		p.Success = value
	case "error":
		p.Error = value
	case "textPrimary":
		p.TextPrimary = value
	case "textSecondary":
		p.TextSecondary = value
	case "textMuted":
		p.TextMuted = value
	case "toastSuccessText":
		p.ToastSuccessText = value
	case "toastErrorText":
		p.ToastErrorText = value
	}
}

func applyColors(p ColorPalette) {
	Primary = lipgloss.Color(p.Primary)
	Secondary = lipgloss.Color(p.Secondary)
	Accent = lipgloss.Color(p.Accent)
	Success = lipgloss.Color(p.Success)
	Error = lipgloss.Color(p.Error)
	TextPrimary = lipgloss.Color(p.TextPrimary)
	TextSecondary = lipgloss.Color(p.TextSecondary)
	TextMuted = lipgloss.Color(p.TextMuted)
	ToastSuccessTextColor = lipgloss.Color(p.ToastSuccessText)
	ToastErrorTextColor = lipgloss.Color(p.ToastErrorText)
	if p.MarkdownTheme != "" {
		CurrentMarkdownTheme = p.MarkdownTheme
	}
	rebuildStyles()
}
