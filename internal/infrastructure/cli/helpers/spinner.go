package helpers

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/doeshing/texturepro/internal/application/generate"
)

// Spinner displays an animated spinner during long operations
type Spinner struct {
	frames   []string
	interval time.Duration
	writer   io.Writer
	label    string
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewSpinner creates a new spinner
func NewSpinner(w io.Writer, label string) *Spinner {
	return &Spinner{
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		interval: 80 * time.Millisecond,
		writer:   w,
		label:    label,
	}
}

// Start begins the spinner animation. A stopped spinner can be started again.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	stop := make(chan struct{})
	s.stopChan = stop
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		idx := 0
		for {
			fmt.Fprintf(s.writer, "\r%s %s", s.frames[idx%len(s.frames)], s.label)
			idx++
			select {
			case <-stop:
				// Clear the spinner line
				fmt.Fprintf(s.writer, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop stops the spinner animation
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
}

// Observer spins while metadata is requested and stops once the record is stored.
func (s *Spinner) Observer() generate.Observer {
	return generate.ObserverFunc(func(_, to generate.State) {
		switch to {
		case generate.StateRequestingMetadata:
			s.Start()
		case generate.StateRecorded:
			s.Stop()
		}
	})
}

// IsTerminal reports whether f is an interactive terminal, including
// Cygwin and MSYS terminals on Windows.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
