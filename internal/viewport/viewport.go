// Package viewport provides the resize signal and width measurements the
// resize adapter binds to: a broadcaster fed by the TUI or by SIGWINCH,
// and elements backed by the last window size or the live terminal.
package viewport

import (
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/x/term"
)

// DefaultTerminalWidth is used when the terminal cannot be measured.
const DefaultTerminalWidth = 80

// Broadcaster fans a resize notification out to every subscriber.
type Broadcaster struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func()
}

// NewBroadcaster returns a Broadcaster with no listeners.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{listeners: make(map[int]func())}
}

// Subscribe registers fn. The returned func removes it and may be called
// more than once.
func (b *Broadcaster) Subscribe(fn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// Emit calls every current listener. Listeners run outside the lock, so
// they may subscribe or unsubscribe.
func (b *Broadcaster) Emit() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.listeners))
	for _, fn := range b.listeners {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Len returns the number of listeners.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// TrackedElement reports the width it was last told about. The TUI sets
// it from tea.WindowSizeMsg.
type TrackedElement struct {
	width atomic.Int64
}

// NewTrackedElement returns an element starting at width.
func NewTrackedElement(width int) *TrackedElement {
	e := &TrackedElement{}
	e.Set(width)
	return e
}

// Set records a new width.
func (e *TrackedElement) Set(width int) {
	e.width.Store(int64(width))
}

// Width implements resize.Element.
func (e *TrackedElement) Width() int {
	return int(e.width.Load())
}

// TerminalElement measures a terminal on every call.
type TerminalElement struct {
	file *os.File
}

// NewTerminalElement measures f, or stdout when f is nil.
func NewTerminalElement(f *os.File) *TerminalElement {
	if f == nil {
		f = os.Stdout
	}
	return &TerminalElement{file: f}
}

// Width implements resize.Element. It tries the TTY first, then
// $COLUMNS, then DefaultTerminalWidth.
func (e *TerminalElement) Width() int {
	if w, _, err := term.GetSize(e.file.Fd()); err == nil && w > 0 {
		return w
	}
	return columnsFromEnv()
}

func columnsFromEnv() int {
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if w, err := strconv.Atoi(cols); err == nil && w > 0 {
			return w
		}
	}
	return DefaultTerminalWidth
}
