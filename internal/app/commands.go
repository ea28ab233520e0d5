package app

import (
	"sync"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/chartfit/internal/chart"
)

// Message types for tea.Cmd
type (
	// StateMsg carries a render-state write from the resize adapter.
	StateMsg struct {
		Key   string
		Value int
	}

	// SeriesMsg carries a reloaded series file.
	SeriesMsg struct {
		Update chart.SeriesUpdate
	}

	// ToastMsg displays a temporary message.
	ToastMsg struct {
		Message  string
		Duration time.Duration
		IsError  bool // true for error toasts (red), false for success (green)
	}

	// clearToastMsg expires the toast shown at the given time.
	clearToastMsg struct {
		shownAt time.Time
	}

	// ErrorMsg represents an error condition.
	ErrorMsg struct {
		Err error
	}
)

// stateBridge carries render-state writes from the adapter, which may run
// on a timer goroutine, into the Bubble Tea loop.
type stateBridge struct {
	ch   chan StateMsg
	done chan struct{}
	once sync.Once
}

func newStateBridge() *stateBridge {
	return &stateBridge{
		ch:   make(chan StateMsg, 16),
		done: make(chan struct{}),
	}
}

// set is the adapter's SetStateValue. It blocks only until the program
// drains the channel or shuts down.
func (b *stateBridge) set(key string, value int) {
	select {
	case b.ch <- StateMsg{Key: key, Value: value}:
	case <-b.done:
	}
}

func (b *stateBridge) close() {
	b.once.Do(func() { close(b.done) })
}

// waitForState returns a command that delivers the next StateMsg.
func waitForState(b *stateBridge) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.ch:
			return msg
		case <-b.done:
			return nil
		}
	}
}

// waitForSeries returns a command that delivers the next series reload.
// It yields nil once done is closed.
func waitForSeries(ch <-chan chart.SeriesUpdate, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case u := <-ch:
			return SeriesMsg{Update: u}
		case <-done:
			return nil
		}
	}
}

// ReportError returns a command to report an error.
func ReportError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

func clearToastAfter(d time.Duration, shownAt time.Time) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearToastMsg{shownAt: shownAt}
	})
}

// copyToClipboard writes text to the system clipboard off the UI loop.
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return ToastMsg{Message: "Copy failed: " + err.Error(), Duration: 3 * time.Second, IsError: true}
		}
		return ToastMsg{Message: "Chart copied", Duration: 2 * time.Second}
	}
}
