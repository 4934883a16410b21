package tui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const statusInterval = 100 * time.Millisecond

// StatusWriter renders a single spinning status line in place. It covers the
// setup phases (config, tool lookup) that happen before the progress table
// takes over the terminal.
type StatusWriter struct {
	w io.Writer

	mu      sync.Mutex
	phase   string
	since   time.Time
	stopped bool

	quit chan struct{}
}

// NewStatusWriter starts the spinner goroutine immediately.
func NewStatusWriter(w io.Writer) *StatusWriter {
	sw := &StatusWriter{
		w:     w,
		since: time.Now(),
		quit:  make(chan struct{}),
	}
	go sw.spin()
	return sw
}

// Update switches the phase text and restarts the elapsed timer.
func (sw *StatusWriter) Update(phase string) {
	sw.mu.Lock()
	sw.phase = phase
	sw.since = time.Now()
	sw.mu.Unlock()
}

// Stop halts the spinner and erases the status line. Safe to call twice.
func (sw *StatusWriter) Stop() {
	sw.mu.Lock()
	if sw.stopped {
		sw.mu.Unlock()
		return
	}
	sw.stopped = true
	sw.mu.Unlock()

	close(sw.quit)
	fmt.Fprint(sw.w, "\r\033[K")
}

func (sw *StatusWriter) spin() {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-sw.quit:
			return
		case <-ticker.C:
		}

		sw.mu.Lock()
		phase := sw.phase
		elapsed := time.Since(sw.since)
		sw.mu.Unlock()

		fmt.Fprintf(sw.w, "\r\033[K%s %s (%s)",
			spinnerFrames[frame%len(spinnerFrames)], phase, formatElapsed(elapsed))
	}
}

// formatElapsed keeps the elapsed display short: millisecond resolution only
// below a second, tenths below ten seconds, whole units beyond that.
func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < 10*time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	default:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}
