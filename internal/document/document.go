package document

import (
	"strings"

	"github.com/sokinpui/dpane/model"
)

// Document is the narrow capability handle the engine holds on a text
// document. The owner (a host adapter) may tear the document down at any
// time, so Closed must be consulted before every use; operations on a
// closed document are silent no-ops.
type Document interface {
	LineCount() int
	// Line returns the 1-based line n, or "" when n is out of range.
	Line(n int) string
	// LineRange returns the inclusive span [start, end] of lines. Out of
	// range portions are dropped.
	LineRange(start, end int) []string
	// ApplyEdit applies the single mutation primitive. See model.Edit.
	ApplyEdit(edit model.Edit) error
	Closed() bool
}

// ClampLine forces line into [1, maxLine]. maxLine below 1 is treated as 1
// so the result is always a valid anchor.
func ClampLine(line, maxLine int) int {
	if maxLine < 1 {
		maxLine = 1
	}
	if line < 1 {
		return 1
	}
	if line > maxLine {
		return maxLine
	}
	return line
}

// IsEmpty reports effective emptiness: no lines at all, or a single line
// that is blank after trimming.
func IsEmpty(doc Document) bool {
	if doc == nil || doc.Closed() {
		return true
	}
	switch doc.LineCount() {
	case 0:
		return true
	case 1:
		return strings.TrimSpace(doc.Line(1)) == ""
	default:
		return false
	}
}

// Buffer is the in-memory Document used by the TUI host and tests.
type Buffer struct {
	lines  []string
	closed bool
}

// NewBuffer splits text into lines. A trailing newline does not produce a
// spurious empty last line.
func NewBuffer(text string) *Buffer {
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return &Buffer{lines: lines}
}

// NewBufferLines wraps the given lines directly.
func NewBufferLines(lines []string) *Buffer {
	return &Buffer{lines: append([]string(nil), lines...)}
}

func (b *Buffer) LineCount() int {
	if b.closed {
		return 0
	}
	return len(b.lines)
}

func (b *Buffer) Line(n int) string {
	if b.closed || n < 1 || n > len(b.lines) {
		return ""
	}
	return b.lines[n-1]
}

func (b *Buffer) LineRange(start, end int) []string {
	if b.closed || len(b.lines) == 0 {
		return nil
	}
	if start < 1 {
		start = 1
	}
	if end > len(b.lines) {
		end = len(b.lines)
	}
	if start > end {
		return nil
	}
	return append([]string(nil), b.lines[start-1:end]...)
}

// Lines returns a copy of the whole buffer.
func (b *Buffer) Lines() []string {
	return b.LineRange(1, len(b.lines))
}

// Text joins the buffer's lines with a trailing newline per line.
func (b *Buffer) Text() string {
	if b.closed || len(b.lines) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, line := range b.lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Buffer) ApplyEdit(edit model.Edit) error {
	if b.closed {
		return nil
	}

	if edit.EndLine == 0 {
		// Insertion above StartLine; an index one past the end appends.
		at := edit.StartLine
		if at < 1 {
			at = 1
		}
		if at > len(b.lines)+1 {
			at = len(b.lines) + 1
		}
		b.lines = splice(b.lines, at-1, at-1, edit.Lines)
		return nil
	}

	start := ClampLine(edit.StartLine, len(b.lines))
	end := ClampLine(edit.EndLine, len(b.lines))
	if start > end {
		// Inverted span, nothing sensible to replace.
		return nil
	}
	if len(b.lines) == 0 {
		b.lines = append([]string(nil), edit.Lines...)
		return nil
	}
	b.lines = splice(b.lines, start-1, end, edit.Lines)
	return nil
}

func (b *Buffer) Closed() bool {
	return b.closed
}

// Close tears the buffer down; every later operation is a no-op.
func (b *Buffer) Close() {
	b.closed = true
	b.lines = nil
}

// splice replaces lines[from:to] with repl.
func splice(lines []string, from, to int, repl []string) []string {
	out := make([]string, 0, len(lines)-(to-from)+len(repl))
	out = append(out, lines[:from]...)
	out = append(out, repl...)
	out = append(out, lines[to:]...)
	return out
}
