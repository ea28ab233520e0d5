//go:build !windows

package viewport

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// NotifyResize emits on b whenever the process receives SIGWINCH. The
// returned func stops listening.
func NotifyResize(b *Broadcaster) (stop func()) {
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, syscall.SIGWINCH)

	go func() {
		for {
			select {
			case <-ch:
				b.Emit()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
		})
	}
}
