package app

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/chartfit/internal/chart"
	"github.com/marcus/chartfit/internal/config"
	"github.com/marcus/chartfit/internal/debounce"
	"github.com/marcus/chartfit/internal/debounce/debouncetest"
	"github.com/marcus/chartfit/internal/resize"
	"github.com/marcus/chartfit/internal/state"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestModel(t *testing.T, maxWidth int) (Model, *debouncetest.Clock, *state.MemoryStore) {
	t.Helper()
	cfg := config.Default()
	cfg.Chart.MaxWidth = maxWidth
	clock := debouncetest.NewClock()
	store := state.NewMemory()
	m := New(Options{
		Config:    cfg,
		Store:     store,
		Logger:    quietLogger(),
		AfterFunc: clock.AfterFunc,
	})
	return m, clock, store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

// nextState runs the pending state listener and feeds its message back in.
func nextState(t *testing.T, m Model) Model {
	t.Helper()
	select {
	case msg := <-m.bridge.ch:
		m, cmd := update(t, m, msg)
		require.NotNil(t, cmd, "state listener should be re-armed")
		return m
	case <-time.After(time.Second):
		t.Fatal("no state message")
		return m
	}
}

func requireNoState(t *testing.T, m Model) {
	t.Helper()
	select {
	case msg := <-m.bridge.ch:
		t.Fatalf("unexpected state message %+v", msg)
	default:
	}
}

func TestNew_Defaults(t *testing.T) {
	m := New(Options{})
	assert.Equal(t, config.DefaultMaxWidth, m.RenderWidth())
	assert.NotEmpty(t, m.series.Points)
	assert.NotNil(t, m.Init())
	assert.Equal(t, "Loading...", m.View())
}

func TestUpdate_FirstSizeAttachesNarrow(t *testing.T) {
	m, _, store := newTestModel(t, 100)

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Nil(t, cmd)
	require.NotNil(t, m.adapter)
	assert.Equal(t, 1, m.window.Len())

	m = nextState(t, m)
	assert.Equal(t, 60, m.RenderWidth())

	v, ok := store.Get(resize.StorageKeyPreviousWidth)
	require.True(t, ok)
	assert.Equal(t, "60", v)
}

func TestUpdate_FirstSizeAttachesWide(t *testing.T) {
	m, _, _ := newTestModel(t, 100)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 20})
	requireNoState(t, m)
	assert.Equal(t, 100, m.RenderWidth())
}

func TestUpdate_ResizeIsDebounced(t *testing.T) {
	m, clock, store := newTestModel(t, 100)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 20})

	for _, w := range []int{110, 90, 70, 50} {
		m, _ = update(t, m, tea.WindowSizeMsg{Width: w, Height: 20})
		clock.Advance(50 * time.Millisecond)
	}
	requireNoState(t, m)

	clock.Advance(debounce.DefaultDuration)
	m = nextState(t, m)
	assert.Equal(t, 50, m.RenderWidth())
	requireNoState(t, m)

	v, ok := store.Get(resize.StorageKeyPreviousWidth)
	require.True(t, ok)
	assert.Equal(t, "50", v)
}

func TestUpdate_GrowingPastMaxCapsWidth(t *testing.T) {
	m, clock, _ := newTestModel(t, 100)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	m = nextState(t, m)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 20})
	clock.Advance(debounce.DefaultDuration)
	m = nextState(t, m)
	assert.Equal(t, 100, m.RenderWidth())

	// Both widths now at or above the cap.
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 180, Height: 20})
	clock.Advance(debounce.DefaultDuration)
	requireNoState(t, m)
}

func TestUpdate_QuitDetaches(t *testing.T) {
	m, clock, store := newTestModel(t, 100)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 20})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	require.Equal(t, 1, clock.Scheduled())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 0, m.window.Len())

	clock.Advance(time.Second)
	requireNoState(t, m)
	_, ok := store.Get(resize.StorageKeyPreviousWidth)
	assert.False(t, ok, "cancelled resize must not persist")

	// The listener unblocks once the bridge is closed.
	assert.Nil(t, waitForState(m.bridge)())
}

func TestUpdate_AttachFailureReportsError(t *testing.T) {
	m, _, _ := newTestModel(t, 100)
	m.cfg.Chart.MaxWidth = 0

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	require.NotNil(t, cmd)
	msg, ok := cmd().(ErrorMsg)
	require.True(t, ok)
	assert.True(t, errors.Is(msg.Err, resize.ErrInvalidMaxWidth))

	m, _ = update(t, m, msg)
	assert.True(t, m.statusIsError)
	assert.Contains(t, m.statusMsg, "max chart width")
}

func TestUpdate_ToastLifecycle(t *testing.T) {
	m, _, _ := newTestModel(t, 100)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 20})

	m, cmd := update(t, m, ToastMsg{Message: "Chart copied"})
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Chart copied")

	// A stale clear does not hide a newer toast.
	m, _ = update(t, m, clearToastMsg{shownAt: m.statusShownAt.Add(-time.Second)})
	assert.Equal(t, "Chart copied", m.statusMsg)

	m, _ = update(t, m, clearToastMsg{shownAt: m.statusShownAt})
	assert.Empty(t, m.statusMsg)
	assert.NotContains(t, m.View(), "Chart copied")
}

func TestUpdate_HelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t, 100)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.True(t, m.showHelp)
	assert.Contains(t, ansi.Strip(m.View()), "copy")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
}

func TestView_ChartFitsRenderWidth(t *testing.T) {
	m, _, _ := newTestModel(t, 40)
	m.cfg.UI.ShowFooter = true
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})

	view := ansi.Strip(m.View())
	assert.Contains(t, view, m.cfg.UI.Title)
	assert.Contains(t, view, "width 40/max 40")
	assert.Contains(t, view, m.series.Points[0].Label)

	for _, line := range strings.Split(m.plainChart(), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 40, line)
	}
}

func TestChartWidth_ClipsToTerminal(t *testing.T) {
	m, _, _ := newTestModel(t, 100)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	assert.Equal(t, 100, m.chartWidth())

	// Shrink still inside the debounce window.
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 50, Height: 30})
	assert.Equal(t, 100, m.RenderWidth())
	assert.Equal(t, 50, m.chartWidth())
}

func TestUpdate_SeriesReloadSwapsData(t *testing.T) {
	reloads := make(chan chart.SeriesUpdate, 1)
	m := New(Options{Logger: quietLogger(), SeriesUpdates: reloads})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	fresh := chart.Series{Title: "fresh", Points: []chart.Point{{Label: "only", Value: 3}}}
	reloads <- chart.SeriesUpdate{Series: fresh}
	msg := waitForSeries(m.reloads, m.bridge.done)()
	m, cmd := update(t, m, msg)

	require.NotNil(t, cmd, "series listener should be re-armed")
	assert.Equal(t, fresh, m.series)
	assert.Equal(t, "Data reloaded", m.statusMsg)
	assert.Contains(t, ansi.Strip(m.View()), "only")
	m.Shutdown()
}

func TestUpdate_SeriesReloadErrorKeepsData(t *testing.T) {
	m := New(Options{Logger: quietLogger(), SeriesUpdates: make(chan chart.SeriesUpdate)})
	before := m.series

	m, cmd := update(t, m, SeriesMsg{Update: chart.SeriesUpdate{Err: errors.New("series x has no points")}})

	require.NotNil(t, cmd)
	assert.Equal(t, before, m.series)
	assert.True(t, m.statusIsError)
	assert.Contains(t, m.statusMsg, "no points")
	m.Shutdown()
}

func TestWaitForSeries_StopsOnShutdown(t *testing.T) {
	m := New(Options{Logger: quietLogger(), SeriesUpdates: make(chan chart.SeriesUpdate)})
	m.Shutdown()
	assert.Nil(t, waitForSeries(m.reloads, m.bridge.done)())
}
