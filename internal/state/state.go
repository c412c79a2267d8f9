package state

import (
	"github.com/sokinpui/dpane/model"
)

// Operation records one executed merge: which document it touched and the
// edits that take that document backward or forward across the merge.
type Operation struct {
	Side model.Side
	Undo model.Edit
	Redo model.Edit
}

// Manager keeps the session's merge history. It is a linear history with a
// cursor: recording after an undo discards the abandoned redo tail.
type Manager struct {
	history []Operation
	current int
}

// New creates an empty history.
func New() *Manager {
	return &Manager{current: -1}
}

// Record appends an operation and moves the cursor onto it.
func (m *Manager) Record(op Operation) {
	if m.current < len(m.history)-1 {
		m.history = m.history[:m.current+1]
	}
	m.history = append(m.history, op)
	m.current++
}

// ToUndo returns the operation to reverse and steps the cursor back.
func (m *Manager) ToUndo() (Operation, bool) {
	if m.current < 0 {
		return Operation{}, false
	}
	op := m.history[m.current]
	m.current--
	return op, true
}

// ToRedo returns the operation to re-apply and steps the cursor forward.
func (m *Manager) ToRedo() (Operation, bool) {
	next := m.current + 1
	if next >= len(m.history) {
		return Operation{}, false
	}
	m.current = next
	return m.history[next], true
}

// Len reports how many operations are recorded.
func (m *Manager) Len() int {
	return len(m.history)
}
