package ui

import (
	"fmt"
	"io"
)

// Progress prints a running counter as sequential steps complete.
type Progress struct {
	out       io.Writer
	total     int
	completed int
}

// NewProgress creates a progress tracker for n steps.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total}
}

// Done marks one step as completed and prints the current progress.
func (p *Progress) Done(label string) {
	p.completed++
	_, _ = fmt.Fprintf(p.out, "[%d/%d] %s\n", p.completed, p.total, label)
}
