// Package resize keeps a chart's render width in step with the space its
// host element offers, capped at a maximum chart width.
//
// Raw resize events are debounced. When the host has been quiet for the
// debounce window the adapter measures the element once and decides
// whether to push a new width. The last measured width is persisted so
// the decision survives restarts.
package resize

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/marcus/chartfit/internal/debounce"
	"github.com/marcus/chartfit/internal/state"
)

const (
	// StateKeyWidth is the render-state key the width is published under.
	StateKeyWidth = "width"
	// StorageKeyPreviousWidth is the durable key for the last seen width.
	StorageKeyPreviousWidth = "previousWidth"
	// DefaultDebounce is the quiescence window for resize events.
	DefaultDebounce = debounce.DefaultDuration
)

var (
	ErrInvalidMaxWidth = errors.New("resize: max chart width must be positive")
	ErrNoElement       = errors.New("resize: parent element is nil")
	ErrNoSink          = errors.New("resize: SetStateValue is nil")
	ErrNoSignal        = errors.New("resize: host window signal is nil")
	ErrNoStorage       = errors.New("resize: host storage is nil")
)

// Element is the container the chart lives in.
type Element interface {
	// Width returns the current width, measured on every call.
	Width() int
}

// Signal delivers viewport resize notifications.
type Signal interface {
	// Subscribe registers fn and returns a func that removes it.
	Subscribe(fn func()) (unsubscribe func())
}

// Component is what the owning chart hands to Setup.
type Component struct {
	// SetStateValue publishes render state to the chart owner.
	SetStateValue func(key string, value int)
	// ParentElement is measured for the available width.
	ParentElement Element
	// Data is the maximum chart width.
	Data int
}

// Host holds the capabilities the adapter binds to.
type Host struct {
	Window   Signal
	Storage  state.Store
	Debounce time.Duration // 0 = DefaultDebounce
	Logger   *slog.Logger  // nil = slog.Default()

	// AfterFunc replaces the debounce scheduler; nil uses real timers.
	AfterFunc debounce.AfterFunc
}

// Adapter is one attached resize listener.
type Adapter struct {
	setState func(key string, value int)
	element  Element
	maxWidth int
	storage  state.Store
	logger   *slog.Logger

	debouncer   *debounce.Debouncer
	unsubscribe func()

	mu       sync.Mutex
	detached bool
}

// Setup attaches an adapter and returns its teardown func.
func Setup(c Component, h Host) (func(), error) {
	a, err := Attach(c, h)
	if err != nil {
		return nil, err
	}
	return a.Detach, nil
}

// Attach is Setup returning the Adapter itself.
func Attach(c Component, h Host) (*Adapter, error) {
	switch {
	case c.Data <= 0:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxWidth, c.Data)
	case c.ParentElement == nil:
		return nil, ErrNoElement
	case c.SetStateValue == nil:
		return nil, ErrNoSink
	case h.Window == nil:
		return nil, ErrNoSignal
	case h.Storage == nil:
		return nil, ErrNoStorage
	}

	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}

	a := &Adapter{
		setState:  c.SetStateValue,
		element:   c.ParentElement,
		maxWidth:  c.Data,
		storage:   h.Storage,
		logger:    logger.With("component", "resize"),
		debouncer: debounce.NewWithScheduler(h.Debounce, h.AfterFunc),
	}

	a.initialize()
	a.unsubscribe = h.Window.Subscribe(a.onResize)

	a.logger.Debug("resize adapter attached",
		"maxWidth", a.maxWidth, "debounce", a.debouncer.Duration())
	return a, nil
}

// initialize publishes the starting width when the element is narrower
// than the cap. At or above the cap the owner keeps its default.
func (a *Adapter) initialize() {
	a.mu.Lock()
	defer a.mu.Unlock()

	current := a.element.Width()
	if current >= a.maxWidth {
		return
	}
	a.setState(StateKeyWidth, current)
	a.persist(current)
}

func (a *Adapter) onResize() {
	a.debouncer.Trigger(a.HandleResize)
}

// HandleResize runs the debounced resize logic once. It is a no-op after
// Detach.
func (a *Adapter) HandleResize() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.detached {
		return
	}

	current := a.element.Width()
	previous := a.PreviousWidth()

	if ShouldUpdate(current, previous, a.maxWidth) {
		a.setState(StateKeyWidth, RenderWidth(current, a.maxWidth))
	}
	a.persist(current)

	a.logger.Debug("resize handled",
		"current", current, "previous", previous, "max", a.maxWidth)
}

// PreviousWidth reads the persisted width, falling back to the max width
// when it is missing or not an integer.
func (a *Adapter) PreviousWidth() int {
	raw, ok := a.storage.Get(StorageKeyPreviousWidth)
	if !ok || raw == "" {
		return a.maxWidth
	}
	w, err := strconv.Atoi(raw)
	if err != nil {
		a.logger.Debug("ignoring unparseable previous width", "value", raw)
		return a.maxWidth
	}
	return w
}

func (a *Adapter) persist(width int) {
	if err := a.storage.Set(StorageKeyPreviousWidth, strconv.Itoa(width)); err != nil {
		a.logger.Warn("failed to persist previous width", "width", width, "err", err)
	}
}

// MaxWidth returns the configured cap.
func (a *Adapter) MaxWidth() int {
	return a.maxWidth
}

// Detach removes the resize listener and drops any pending firing.
// Calling it more than once is safe.
func (a *Adapter) Detach() {
	a.mu.Lock()
	if a.detached {
		a.mu.Unlock()
		return
	}
	a.detached = true
	a.mu.Unlock()

	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.debouncer.Cancel()
	a.logger.Debug("resize adapter detached")
}

// ShouldUpdate reports whether a resize should publish a new width: the
// chart is in its responsive range, or the resize crosses the cap from
// below so the capped frame is still published.
func ShouldUpdate(current, previous, maxWidth int) bool {
	return current < maxWidth || previous < maxWidth
}

// RenderWidth caps current at maxWidth.
func RenderWidth(current, maxWidth int) int {
	return min(current, maxWidth)
}
