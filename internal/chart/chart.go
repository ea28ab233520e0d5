// Package chart renders a horizontal bar chart that fits a given width.
package chart

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// MinWidth is the narrowest width a bar chart is drawn at.
const MinWidth = 16

const (
	barRune      = "█"
	labelGap     = 1
	maxLabelFrac = 3 // labels take at most 1/3 of the width
)

// Point is one bar.
type Point struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

// Series is a titled list of points.
type Series struct {
	Title  string  `json:"title" yaml:"title"`
	Points []Point `json:"points" yaml:"points"`
}

// DefaultSeries is shown when no data file is configured.
func DefaultSeries() Series {
	return Series{
		Title: "Planetary orbital periods (days)",
		Points: []Point{
			{Label: "Mercury", Value: 88},
			{Label: "Venus", Value: 225},
			{Label: "Earth", Value: 365},
			{Label: "Mars", Value: 687},
			{Label: "Ceres", Value: 1682},
			{Label: "Jupiter", Value: 4333},
		},
	}
}

// LoadSeries reads a series from a YAML or JSON file. An empty path
// returns DefaultSeries.
func LoadSeries(path string) (Series, error) {
	if path == "" {
		return DefaultSeries(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Series{}, fmt.Errorf("read series: %w", err)
	}
	var s Series
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Series{}, fmt.Errorf("parse series %s: %w", path, err)
	}
	if len(s.Points) == 0 {
		return Series{}, fmt.Errorf("series %s has no points", path)
	}
	return s, nil
}

// Styles controls how bars and labels are colored.
type Styles struct {
	Label lipgloss.Style
	Bar   lipgloss.Style
	Value lipgloss.Style
	Muted lipgloss.Style
}

// PlainStyles renders without any escape sequences.
func PlainStyles() Styles {
	return Styles{
		Label: lipgloss.NewStyle(),
		Bar:   lipgloss.NewStyle(),
		Value: lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle(),
	}
}

// Render draws s in at most width display columns per line.
func Render(s Series, width int, st Styles) string {
	if width < MinWidth {
		return st.Muted.Render(ansi.Truncate("(too narrow)", max(width, 0), ""))
	}
	if len(s.Points) == 0 {
		return st.Muted.Render("(no data)")
	}

	labelW := labelWidth(s.Points, width)
	valueW := valueWidth(s.Points)
	barW := width - labelW - valueW - 2*labelGap
	if barW < 1 {
		// Drop the value column before the bars.
		valueW = 0
		barW = width - labelW - labelGap
	}

	peak := 0.0
	for _, p := range s.Points {
		peak = math.Max(peak, p.Value)
	}

	var b strings.Builder
	if s.Title != "" {
		b.WriteString(ansi.Truncate(s.Title, width, "…"))
		b.WriteByte('\n')
	}
	for i, p := range s.Points {
		label := runewidth.FillRight(runewidth.Truncate(p.Label, labelW, "…"), labelW)
		n := barLength(p.Value, peak, barW)
		bar := strings.Repeat(barRune, n) + strings.Repeat(" ", barW-n)

		b.WriteString(st.Label.Render(label))
		b.WriteString(strings.Repeat(" ", labelGap))
		b.WriteString(st.Bar.Render(bar))
		if valueW > 0 {
			b.WriteString(strings.Repeat(" ", labelGap))
			b.WriteString(st.Value.Render(runewidth.FillLeft(formatValue(p.Value), valueW)))
		}
		if i < len(s.Points)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func labelWidth(points []Point, width int) int {
	w := 1
	for _, p := range points {
		w = max(w, runewidth.StringWidth(p.Label))
	}
	return min(w, width/maxLabelFrac)
}

func valueWidth(points []Point) int {
	w := 0
	for _, p := range points {
		w = max(w, len(formatValue(p.Value)))
	}
	return w
}

func barLength(v, peak float64, barW int) int {
	if v <= 0 || peak <= 0 {
		return 0
	}
	n := int(math.Round(v / peak * float64(barW)))
	return min(max(n, 1), barW)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
