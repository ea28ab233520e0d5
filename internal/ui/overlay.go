// Package ui holds small rendering helpers shared by chartfit views.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Faded is applied to whatever sits behind an overlay. Colors are stripped
// first since SGR 2 (faint) does not combine reliably with them.
var Faded = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

// Overlay centers box over background within a width x height screen and
// fades the visible background around it. Lines past height are dropped.
func Overlay(background, box string, width, height int) string {
	if height <= 0 {
		return ""
	}
	bg := strings.Split(background, "\n")
	fg := strings.Split(box, "\n")

	boxW := blockWidth(fg)
	x := max((width-boxW)/2, 0)
	y := max((height-len(fg))/2, 0)

	out := make([]string, height)
	for row := range out {
		var line string
		if row < len(bg) {
			line = ansi.Strip(bg[row])
		}
		if i := row - y; i >= 0 && i < len(fg) {
			out[row] = splice(line, fg[i], x, boxW)
			continue
		}
		out[row] = fade(line)
	}
	return strings.Join(out, "\n")
}

// splice writes boxLine into plain line at column x. The box occupies boxW
// columns even where boxLine is shorter.
func splice(line, boxLine string, x, boxW int) string {
	var b strings.Builder

	left := ansi.Truncate(line, x, "")
	b.WriteString(fade(left))
	if pad := x - ansi.StringWidth(left); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}

	b.WriteString(boxLine)
	if pad := boxW - ansi.StringWidth(boxLine); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}

	if end, w := x+boxW, ansi.StringWidth(line); w > end {
		b.WriteString(fade(ansi.Cut(line, end, w)))
	}
	return b.String()
}

func fade(s string) string {
	if s == "" {
		return ""
	}
	return Faded.Render(s)
}

// blockWidth is the widest visible line.
func blockWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	return w
}
