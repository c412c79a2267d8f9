// Package merge resolves a gutter interaction back to its hunk and executes
// the one-directional content transplant between the two documents.
package merge

import (
	"github.com/sokinpui/dpane/internal/document"
	"github.com/sokinpui/dpane/model"
)

// Locate returns the first change record whose effective range on the given
// side contains line. Records arrive in diff order, which is monotonic by
// position, so first match is the covering hunk. A line outside every hunk,
// or below 1, yields ok == false; that is not an error, the click simply
// landed on unchanged content.
func Locate(changes []model.ChangeRecord, line int, side model.Side) (model.ChangeRecord, bool) {
	if line < 1 {
		return model.ChangeRecord{}, false
	}
	for _, change := range changes {
		if change.Vacuous() {
			continue
		}
		start, end := change.Range(side).Effective()
		if line >= start && line <= end {
			return change, true
		}
	}
	return model.ChangeRecord{}, false
}

// Execute copies the hunk's content across the panes. Direction selects
// which of the record's line pairs is source and which is target; only the
// target document is mutated, through its ApplyEdit capability. Vacuous
// records and closed targets are silent no-ops.
//
// Three disjoint edit shapes, in order of precedence:
//  1. absent source: delete the target span
//  2. absent target: insert the source lines at the collapsed anchor point
//  3. otherwise: replace the target span with the source lines
func Execute(change model.ChangeRecord, orig, mod document.Document, dir model.Direction) error {
	if change.Vacuous() {
		return nil
	}

	source, target := change.Original, change.Modified
	sourceDoc, targetDoc := document.Document(orig), document.Document(mod)
	if dir == model.ToOriginal {
		source, target = change.Modified, change.Original
		sourceDoc, targetDoc = mod, orig
	}
	if targetDoc == nil || targetDoc.Closed() {
		return nil
	}

	targetStart := target.Start
	if targetStart < 1 {
		targetStart = 1
	}

	if !source.Present() {
		targetEnd := target.End
		if targetEnd < 1 {
			targetEnd = 1
		}
		return targetDoc.ApplyEdit(model.Edit{StartLine: targetStart, EndLine: targetEnd})
	}

	var sourceLines []string
	if sourceDoc != nil && !sourceDoc.Closed() {
		sourceLines = sourceDoc.LineRange(source.Start, source.End)
	}

	if !target.Present() {
		return targetDoc.ApplyEdit(model.Edit{StartLine: targetStart, Lines: sourceLines})
	}

	return targetDoc.ApplyEdit(model.Edit{
		StartLine: targetStart,
		EndLine:   target.End,
		Lines:     sourceLines,
	})
}
