package cli

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// spinnerFrames are the animation frames for the progress spinner.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner displays an animated progress indicator on the terminal.
type spinner struct {
	message string
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
	stopped bool
}

// newSpinner starts a spinner with the given message.
func newSpinner(message string) *spinner {
	ctx, cancel := context.WithCancel(context.Background())
	s := &spinner{
		message: message,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			icon := styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)])
			fmt.Printf("\r%s %s", icon, s.message)
			frame++
		}
	}
}

// clearLine erases the spinner line.
func (s *spinner) clearLine() {
	fmt.Printf("\r\033[K")
}

// stop halts the animation and clears the line. Safe to call twice.
func (s *spinner) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	s.cancel()
	<-s.done
	s.clearLine()
}

// StopWithSuccess stops the spinner and prints a success message.
func (s *spinner) StopWithSuccess(format string, args ...any) {
	s.stop()
	printSuccess(format, args...)
}

// StopWithError stops the spinner and prints an error message.
func (s *spinner) StopWithError(format string, args ...any) {
	s.stop()
	printError(format, args...)
}

// Cancelled stops the spinner and prints a cancellation notice.
func (s *spinner) Cancelled() {
	s.stop()
	printWarning("cancelled")
}
