package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/marcus/chartfit/internal/debounce"
	"github.com/marcus/chartfit/internal/resize"
	"github.com/marcus/chartfit/internal/state"
)

// WatchOptions configures Watch.
type WatchOptions struct {
	Element  resize.Element
	Window   resize.Signal
	Store    state.Store
	MaxWidth int
	Debounce time.Duration
	Out      io.Writer
	Logger   *slog.Logger

	// AfterFunc replaces the debounce scheduler in tests.
	AfterFunc debounce.AfterFunc
}

// Watch runs the resize adapter without a UI, writing "width=N" to Out
// for every render-state change until ctx is cancelled.
func Watch(ctx context.Context, opts WatchOptions) error {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	// cancel runs before detach so a firing blocked on a full writes
	// channel releases the adapter lock that Detach needs.
	ctx, cancel := context.WithCancel(ctx)
	writes := make(chan int, 16)
	detach, err := resize.Setup(resize.Component{
		SetStateValue: func(key string, value int) {
			if key != resize.StateKeyWidth {
				return
			}
			select {
			case writes <- value:
			case <-ctx.Done():
			}
		},
		ParentElement: opts.Element,
		Data:          opts.MaxWidth,
	}, resize.Host{
		Window:    opts.Window,
		Storage:   opts.Store,
		Debounce:  opts.Debounce,
		Logger:    opts.Logger,
		AfterFunc: opts.AfterFunc,
	})
	if err != nil {
		cancel()
		return err
	}
	defer detach()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case w := <-writes:
			if _, err := fmt.Fprintf(out, "width=%d\n", w); err != nil {
				return fmt.Errorf("write width: %w", err)
			}
		}
	}
}
