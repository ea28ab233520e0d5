package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/chartfit/internal/chart"
	"github.com/marcus/chartfit/internal/resize"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.element.Set(msg.Width)
		if !m.ready {
			m.ready = true
			if err := m.attach(); err != nil {
				m.logger.Error("attach resize adapter", "err", err)
				return m, ReportError(err)
			}
			return m, nil
		}
		m.window.Emit()
		return m, nil

	case StateMsg:
		if msg.Key == resize.StateKeyWidth {
			m.renderWidth = msg.Value
			m.logger.Debug("render width", "width", msg.Value)
		}
		return m, waitForState(m.bridge)

	case SeriesMsg:
		next := waitForSeries(m.reloads, m.bridge.done)
		if msg.Update.Err != nil {
			shownAt := m.ShowToast("Reload failed: "+msg.Update.Err.Error(), true)
			return m, tea.Batch(next, clearToastAfter(5*time.Second, shownAt))
		}
		m.series = msg.Update.Series
		m.logger.Debug("series reloaded", "points", len(m.series.Points))
		shownAt := m.ShowToast("Data reloaded", false)
		return m, tea.Batch(next, clearToastAfter(2*time.Second, shownAt))

	case ToastMsg:
		shownAt := m.ShowToast(msg.Message, msg.IsError)
		d := msg.Duration
		if d <= 0 {
			d = 2 * time.Second
		}
		return m, clearToastAfter(d, shownAt)

	case clearToastMsg:
		if msg.shownAt.Equal(m.statusShownAt) {
			m.statusMsg = ""
			m.statusIsError = false
		}
		return m, nil

	case ErrorMsg:
		m.lastError = msg.Err
		shownAt := m.ShowToast("Error: "+msg.Err.Error(), true)
		return m, clearToastAfter(5*time.Second, shownAt)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case msg.Type == tea.KeyEsc && m.showHelp:
		m.showHelp = false
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m, copyToClipboard(m.plainChart())
	}
	return m, nil
}

// plainChart renders the chart without styling for the clipboard.
func (m Model) plainChart() string {
	return ansi.Strip(chart.Render(m.series, m.chartWidth(), chart.PlainStyles()))
}
