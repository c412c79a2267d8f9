// Package session owns the compare loop: content changes trigger a fresh
// diff, the diff drives decoration sync, and gutter interactions locate and
// execute merges, which feed back into the same cycle. The session holds no
// diff state across cycles beyond the current change-record list.
package session

import (
	"sync"
	"time"

	"github.com/sokinpui/dpane/internal/decor"
	"github.com/sokinpui/dpane/internal/document"
	"github.com/sokinpui/dpane/internal/linediff"
	"github.com/sokinpui/dpane/internal/logger"
	"github.com/sokinpui/dpane/internal/merge"
	"github.com/sokinpui/dpane/internal/state"
	"github.com/sokinpui/dpane/model"
)

// Session wires the two documents to the diff engine and the decoration
// synchronizer.
type Session struct {
	mu sync.Mutex

	original document.Document
	modified document.Document

	changes []model.ChangeRecord
	markers decor.Set

	sync    *decor.Synchronizer
	history *state.Manager
	log     *logger.Logger

	closed bool
}

// New builds a session over the two documents. sink may be nil when the
// host renders markers straight from Markers(). The initial diff runs
// immediately.
func New(original, modified document.Document, sink decor.Sink, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Disabled()
	}
	s := &Session{
		original: original,
		modified: modified,
		sync:     decor.New(sink),
		history:  state.New(),
		log:      log,
	}
	s.Refresh()
	return s
}

// Refresh recomputes the change records and re-syncs both marker groups.
// It runs after every content mutation, before the next input is handled.
func (s *Session) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshLocked()
}

func (s *Session) refreshLocked() {
	if s.closed {
		return
	}
	s.changes = linediff.Compute(lines(s.original), lines(s.modified))
	s.markers = s.sync.Sync(s.changes, s.original, s.modified)
	s.log.Refresh(len(s.changes), len(s.markers.Original), len(s.markers.Modified))
}

// Changes returns the current change-record list.
func (s *Session) Changes() []model.ChangeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changes
}

// Markers returns the marker set of the last sync.
func (s *Session) Markers() decor.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markers
}

// Document returns the given side's document handle.
func (s *Session) Document(side model.Side) document.Document {
	if side == model.Original {
		return s.original
	}
	return s.modified
}

// MergeAt resolves the clicked line on the given side to its hunk and, if
// one covers it, transplants the hunk in the given direction. A miss is not
// an error; nothing happens and false is returned.
func (s *Session) MergeAt(line int, side model.Side, dir model.Direction) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}

	change, ok := merge.Locate(s.changes, line, side)
	if !ok {
		return false
	}

	op, recordable := buildOperation(change, s.original, s.modified, dir)
	if err := merge.Execute(change, s.original, s.modified, dir); err != nil {
		s.log.Error(err, "merge failed")
		return false
	}
	if recordable {
		s.history.Record(op)
	}
	s.log.Merge(line, side.String(), dir.String())
	s.refreshLocked()
	return true
}

// Undo reverses the most recent merge, if any.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	op, ok := s.history.ToUndo()
	if !ok {
		return false
	}
	s.applyLocked(op.Side, op.Undo)
	return true
}

// Redo re-applies the most recently undone merge, if any.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	op, ok := s.history.ToRedo()
	if !ok {
		return false
	}
	s.applyLocked(op.Side, op.Redo)
	return true
}

// Merges reports how many merges this session has recorded.
func (s *Session) Merges() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Len()
}

// ReplaceAll swaps a document's entire content, as after a large paste, and
// re-runs the cycle.
func (s *Session) ReplaceAll(side model.Side, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	doc := s.original
	if side == model.Modified {
		doc = s.modified
	}
	if doc.Closed() {
		return
	}
	count := doc.LineCount()
	if count < 1 {
		count = 1
	}
	if err := doc.ApplyEdit(model.Edit{
		StartLine: 1,
		EndLine:   count,
		Lines:     document.NewBuffer(text).Lines(),
	}); err != nil {
		s.log.Error(err, "replace failed")
		return
	}
	s.refreshLocked()
}

// ScheduleScrollFix runs action once after delay, for cursor/scroll
// correction after a large paste. The action is inert if the session has
// been closed by the time it fires.
func (s *Session) ScheduleScrollFix(delay time.Duration, action func()) {
	time.AfterFunc(delay, func() {
		s.mu.Lock()
		closed := s.closed
		s.mu.Unlock()
		if closed {
			return
		}
		action()
	})
}

// Close tears the session down. Every later operation is a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.log.Event("session closed")
}

func (s *Session) applyLocked(side model.Side, edit model.Edit) {
	doc := s.original
	if side == model.Modified {
		doc = s.modified
	}
	if doc.Closed() {
		return
	}
	if err := doc.ApplyEdit(edit); err != nil {
		s.log.Error(err, "history edit failed")
		return
	}
	s.refreshLocked()
}

func lines(doc document.Document) []string {
	if doc == nil || doc.Closed() {
		return nil
	}
	return doc.LineRange(1, doc.LineCount())
}

// targetSide maps a merge direction to the document it mutates.
func targetSide(dir model.Direction) model.Side {
	if dir == model.ToModified {
		return model.Modified
	}
	return model.Original
}

// buildOperation captures, before a merge executes, the edits that will
// later reverse and re-apply it. It mirrors the executor's three edit
// shapes; recordable is false when the merge will not execute (vacuous
// record, missing or closed target).
func buildOperation(change model.ChangeRecord, orig, mod document.Document, dir model.Direction) (state.Operation, bool) {
	if change.Vacuous() {
		return state.Operation{}, false
	}

	source, target := change.Original, change.Modified
	sourceDoc, targetDoc := orig, mod
	if dir == model.ToOriginal {
		source, target = change.Modified, change.Original
		sourceDoc, targetDoc = mod, orig
	}
	if targetDoc == nil || targetDoc.Closed() {
		return state.Operation{}, false
	}

	targetStart := target.Start
	if targetStart < 1 {
		targetStart = 1
	}

	op := state.Operation{Side: targetSide(dir)}

	if !source.Present() {
		targetEnd := target.End
		if targetEnd < 1 {
			targetEnd = 1
		}
		prior := targetDoc.LineRange(targetStart, targetEnd)
		op.Redo = model.Edit{StartLine: targetStart, EndLine: targetEnd}
		op.Undo = model.Edit{StartLine: targetStart, Lines: prior}
		return op, true
	}

	var sourceLines []string
	if sourceDoc != nil && !sourceDoc.Closed() {
		sourceLines = sourceDoc.LineRange(source.Start, source.End)
	}

	if !target.Present() {
		op.Redo = model.Edit{StartLine: targetStart, Lines: sourceLines}
		if len(sourceLines) == 0 {
			// Nothing was inserted; undoing is inserting nothing.
			op.Undo = model.Edit{StartLine: targetStart}
		} else {
			op.Undo = model.Edit{StartLine: targetStart, EndLine: targetStart + len(sourceLines) - 1}
		}
		return op, true
	}

	prior := targetDoc.LineRange(targetStart, target.End)
	op.Redo = model.Edit{StartLine: targetStart, EndLine: target.End, Lines: sourceLines}
	if len(sourceLines) == 0 {
		// The replacement removed the span outright; restore by insertion.
		op.Undo = model.Edit{StartLine: targetStart, Lines: prior}
	} else {
		op.Undo = model.Edit{StartLine: targetStart, EndLine: targetStart + len(sourceLines) - 1, Lines: prior}
	}
	return op, true
}
