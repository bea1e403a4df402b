package ui

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

var (
	doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Progress tracks completion of parallel tasks with a simple counter display.
type Progress struct {
	out       io.Writer
	total     int
	completed atomic.Int32
	mu        sync.Mutex
}

// NewProgress creates a progress tracker for n tasks.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total}
}

// Done marks one task as completed and prints the current progress.
func (p *Progress) Done(label string) {
	n := int(p.completed.Add(1))
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, "%s %s\n", doneStyle.Render(fmt.Sprintf("[%d/%d]", n, p.total)), label)
}

// Warn marks one task as failed and prints a highlighted message.
func (p *Progress) Warn(format string, args ...any) {
	n := int(p.completed.Add(1))
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, "%s %s\n", warnStyle.Render(fmt.Sprintf("[%d/%d]", n, p.total)), fmt.Sprintf(format, args...))
}

// Log prints an informational message within the progress context.
func (p *Progress) Log(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}
