package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerOut is where status lines are drawn; tests swap it.
var spinnerOut io.Writer = os.Stderr

// spinner animates a status line while a layout runs or a provider is
// asked. After a second it also shows the elapsed time. Nothing is drawn
// when the output is not a terminal.
type spinner struct {
	label   string
	out     io.Writer
	draw    bool
	start   time.Time
	width   int
	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func startSpinner(ctx context.Context, label string) *spinner {
	return runSpinner(ctx, label, spinnerOut, isTerminal(spinnerOut))
}

func runSpinner(ctx context.Context, label string, out io.Writer, draw bool) *spinner {
	s := &spinner{
		label:   label,
		out:     out,
		draw:    draw,
		start:   time.Now(),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.stopped)
	if !s.draw {
		select {
		case <-ctx.Done():
		case <-s.stop:
		}
		return
	}

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()
	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			s.clear()
			return
		case <-s.stop:
			s.clear()
			return
		case <-ticker.C:
			s.frame(i)
		}
	}
}

func (s *spinner) frame(i int) {
	line := styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]) + " " + StyleDim.Render(s.label)
	if d := time.Since(s.start); d >= time.Second {
		line += StyleDim.Render(fmt.Sprintf(" %ds", int(d.Seconds())))
	}
	fmt.Fprint(s.out, "\r"+line)
	s.width = max(s.width, lipgloss.Width(line))
}

func (s *spinner) clear() {
	if s.width > 0 {
		fmt.Fprint(s.out, "\r"+strings.Repeat(" ", s.width)+"\r")
	}
}

// done stops the animation and waits until its line is cleared. It may be
// called more than once.
func (s *spinner) done() {
	s.once.Do(func() { close(s.stop) })
	<-s.stopped
}

// fail stops the spinner and prints msg as an error line.
func (s *spinner) fail(msg string) {
	s.done()
	printError("%s", msg)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
