// Package decor turns change records into gutter merge markers and owns
// their lifecycle: every sync fully supersedes the previous marker set of
// its category on each side, so callers never accumulate stale markers.
package decor

import (
	"github.com/sokinpui/dpane/internal/document"
	"github.com/sokinpui/dpane/model"
)

// Set is the declarative marker output of one sync pass, one slice per side.
type Set struct {
	Original []model.Marker
	Modified []model.Marker
}

// Sink renders markers. Replace must clear everything previously placed
// under (side, kind) before placing the given markers, even when the new
// list is empty.
type Sink interface {
	Replace(side model.Side, kind model.MarkerKind, markers []model.Marker)
}

// Synchronizer drives a Sink with the clear-then-apply protocol.
type Synchronizer struct {
	sink Sink
}

func New(sink Sink) *Synchronizer {
	return &Synchronizer{sink: sink}
}

// Sync computes the marker set for the current changes and replaces both
// category groups. Calling it twice with the same inputs leaves the same
// final marker set as calling it once.
func (s *Synchronizer) Sync(changes []model.ChangeRecord, orig, mod document.Document) Set {
	set := Compute(changes, orig, mod)
	if s.sink != nil {
		s.sink.Replace(model.Modified, model.CopyFromOriginal, set.Modified)
		s.sink.Replace(model.Original, model.CopyFromModified, set.Original)
	}
	return set
}

// Compute derives the marker set without touching any sink. A document that
// is gone entirely (nil handle) yields the empty set.
//
// A side gets a marker only when it can anchor one (the document is not
// effectively empty) and the opposite side has content to copy. Degenerate
// hunks (length zero on one side) still produce a marker on the nearest
// valid line: suppressing them would take away the only affordance for
// restoring content at that boundary.
func Compute(changes []model.ChangeRecord, orig, mod document.Document) Set {
	var set Set
	if len(changes) == 0 || orig == nil || mod == nil {
		return set
	}
	origEmpty := document.IsEmpty(orig)
	modEmpty := document.IsEmpty(mod)
	if origEmpty && modEmpty {
		return set
	}

	origMax := orig.LineCount()
	modMax := mod.LineCount()

	for _, change := range changes {
		if change.Vacuous() {
			continue
		}

		if !modEmpty && change.Original.Present() {
			set.Modified = append(set.Modified, model.Marker{
				Line: anchorLine(change.Modified, modMax),
				Side: model.Modified,
				Kind: model.CopyFromOriginal,
			})
		}

		if !origEmpty && change.Modified.Present() {
			set.Original = append(set.Original, model.Marker{
				Line: anchorLine(change.Original, origMax),
				Side: model.Original,
				Kind: model.CopyFromModified,
			})
		}
	}
	return set
}

// anchorLine picks where to place a marker for one side of a hunk. A zero
// start means the side has no lines of its own, so the marker falls back to
// the recorded end (or line 1), clamped into the document.
func anchorLine(r model.LineRange, maxLine int) int {
	if r.Start == 0 {
		line := r.End
		if line == 0 {
			line = 1
		}
		return document.ClampLine(line, maxLine)
	}
	return document.ClampLine(r.Start, maxLine)
}
