package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a progress message on a stream until stopped or until
// its context is done. All writes happen on the animation goroutine, which
// has exited by the time Stop returns.
type spinner struct {
	p       *printer
	w       io.Writer
	message string
	quit    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// startSpinner begins animating message on w.
func startSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	s := &spinner{
		p:       newPrinter(w),
		w:       w,
		message: message,
		quit:    make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer s.wg.Done()
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	frame := 0
	for {
		select {
		case <-tick.C:
			glyph := s.p.fg(colorAccent).Render(spinnerFrames[frame%len(spinnerFrames)])
			fmt.Fprintf(s.w, "\r%s %s", glyph, s.p.fg(colorFaint).Render(s.message))
			frame++
		case <-ctx.Done():
			s.clear()
			return
		case <-s.quit:
			s.clear()
			return
		}
	}
}

func (s *spinner) clear() {
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// Stop clears the line and waits for the animation to end. Calling it more
// than once is fine.
func (s *spinner) Stop() {
	s.once.Do(func() { close(s.quit) })
	s.wg.Wait()
}

// Fail stops the spinner and prints message as a failure.
func (s *spinner) Fail(message string) {
	s.Stop()
	s.p.failure("%s", message)
}
