package app

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/chartfit/internal/chart"
	"github.com/marcus/chartfit/internal/config"
	"github.com/marcus/chartfit/internal/debounce"
	"github.com/marcus/chartfit/internal/resize"
	"github.com/marcus/chartfit/internal/state"
	"github.com/marcus/chartfit/internal/styles"
	"github.com/marcus/chartfit/internal/viewport"
)

// Options configures a Model.
type Options struct {
	Config *config.Config
	Store  state.Store
	Series chart.Series
	Logger *slog.Logger

	// AfterFunc replaces the resize debounce scheduler in tests.
	AfterFunc debounce.AfterFunc

	// SeriesUpdates delivers reloaded series data, usually from a
	// chart.SeriesWatcher. Nil disables live reload.
	SeriesUpdates <-chan chart.SeriesUpdate
}

// Model is the root Bubble Tea model for chartfit.
type Model struct {
	cfg       *config.Config
	store     state.Store
	series    chart.Series
	logger    *slog.Logger
	afterFunc debounce.AfterFunc
	keys      keyMap

	// Resize plumbing. Pointers so copies of Model share them.
	element *viewport.TrackedElement
	window  *viewport.Broadcaster
	bridge  *stateBridge
	adapter *resize.Adapter
	reloads <-chan chart.SeriesUpdate

	// UI state
	width, height int
	renderWidth   int
	ready         bool
	showHelp      bool
	help          *helpCache

	// Status/toast messages
	statusMsg     string
	statusShownAt time.Time
	statusIsError bool

	lastError error
}

// New creates a new application model. The render width starts at the
// configured maximum until the resize adapter publishes a smaller one.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	store := opts.Store
	if store == nil {
		store = state.NewMemory()
	}
	series := opts.Series
	if len(series.Points) == 0 {
		series = chart.DefaultSeries()
	}

	return Model{
		cfg:         cfg,
		store:       store,
		series:      series,
		logger:      logger,
		afterFunc:   opts.AfterFunc,
		keys:        defaultKeys(),
		element:     viewport.NewTrackedElement(0),
		window:      viewport.NewBroadcaster(),
		bridge:      newStateBridge(),
		reloads:     opts.SeriesUpdates,
		renderWidth: cfg.Chart.MaxWidth,
		help:        &helpCache{},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.reloads == nil {
		return waitForState(m.bridge)
	}
	return tea.Batch(waitForState(m.bridge), waitForSeries(m.reloads, m.bridge.done))
}

// RenderWidth returns the chart width currently in effect.
func (m Model) RenderWidth() int {
	return m.renderWidth
}

// attach binds the resize adapter once the first window size is known.
func (m *Model) attach() error {
	a, err := resize.Attach(resize.Component{
		SetStateValue: m.bridge.set,
		ParentElement: m.element,
		Data:          m.cfg.Chart.MaxWidth,
	}, resize.Host{
		Window:    m.window,
		Storage:   m.store,
		Debounce:  m.cfg.Chart.Debounce,
		Logger:    m.logger,
		AfterFunc: m.afterFunc,
	})
	if err != nil {
		return err
	}
	m.adapter = a
	return nil
}

// Shutdown stops the state listener and detaches the resize adapter. The
// bridge closes first so a firing blocked on a full channel can return.
func (m *Model) Shutdown() {
	m.bridge.close()
	if m.adapter != nil {
		m.adapter.Detach()
	}
}

// ShowToast displays a temporary status message.
func (m *Model) ShowToast(msg string, isError bool) time.Time {
	m.statusMsg = msg
	m.statusIsError = isError
	m.statusShownAt = time.Now()
	return m.statusShownAt
}

// chartWidth is the render width, clipped to the terminal while a
// shrink is still inside the debounce window.
func (m Model) chartWidth() int {
	if m.width > 0 {
		return min(m.renderWidth, m.width)
	}
	return m.renderWidth
}

func (m Model) chartStyles() chart.Styles {
	return styles.Chart()
}
