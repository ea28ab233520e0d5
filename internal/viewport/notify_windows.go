//go:build windows

package viewport

// NotifyResize is a no-op on Windows, which has no SIGWINCH. The TUI still
// receives resizes through bubbletea.
func NotifyResize(b *Broadcaster) (stop func()) {
	return func() {}
}
