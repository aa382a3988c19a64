package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner draws the same dot animation the screen uses on a single
// terminal line, for one-shot commands waiting on the API.
type Spinner struct {
	w       io.Writer
	label   string
	anim    spinner.Spinner
	once    sync.Once
	quit    chan struct{}
	stopped chan struct{}
}

func NewSpinner(w io.Writer, label string) *Spinner {
	return &Spinner{
		w:       w,
		label:   label,
		anim:    spinner.Dot,
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (s *Spinner) Start() {
	go s.loop()
}

func (s *Spinner) loop() {
	defer close(s.stopped)
	tick := time.NewTicker(s.anim.FPS)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		fmt.Fprintf(s.w, "\r  %s %s", StylePurple.Render(s.anim.Frames[frame%len(s.anim.Frames)]), Dim(s.label))
		select {
		case <-s.quit:
			// Erase the line so the command's own output starts clean.
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-tick.C:
		}
	}
}

// Stop blocks until the line is cleared. Extra calls are no-ops.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.quit)
		<-s.stopped
	})
}

// StartSpinner starts a spinner on w and returns its Stop. A nil w gives a
// no-op.
func StartSpinner(w io.Writer, label string) func() {
	if w == nil {
		return func() {}
	}
	s := NewSpinner(w, label)
	s.Start()
	return s.Stop
}
