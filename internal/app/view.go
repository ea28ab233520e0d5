package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/chartfit/internal/chart"
	"github.com/marcus/chartfit/internal/styles"
	"github.com/marcus/chartfit/internal/ui"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	body := m.renderMain()
	if m.showHelp {
		box := styles.HelpBox.Render(m.renderHelp(max(m.chartWidth()-4, 20)))
		return ui.Overlay(body, box, m.width, m.height)
	}
	return body
}

func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(ansi.Truncate(styles.Title.Render(m.cfg.UI.Title), m.width, "…"))
	b.WriteString("\n\n")
	b.WriteString(chart.Render(m.series, m.chartWidth(), m.chartStyles()))

	if m.cfg.UI.ShowFooter {
		b.WriteString("\n\n")
		b.WriteString(m.renderFooter())
	}
	return b.String()
}

func (m Model) renderFooter() string {
	if m.statusMsg != "" {
		style := styles.ToastSuccess
		if m.statusIsError {
			style = styles.ToastError
		}
		return ansi.Truncate(style.Render(m.statusMsg), m.width, "…")
	}

	info := fmt.Sprintf("width %d/max %d · term %d", m.renderWidth, m.cfg.Chart.MaxWidth, m.width)
	var hints []string
	for _, k := range m.keys.short() {
		h := k.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	right := strings.Join(hints, "  ")

	gap := m.width - lipgloss.Width(info) - lipgloss.Width(right)
	if gap < 2 {
		return styles.Footer.Render(ansi.Truncate(info, m.width, "…"))
	}
	return styles.Footer.Render(info + strings.Repeat(" ", gap) + right)
}
