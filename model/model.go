package model

// Side identifies one of the two compared documents.
type Side int

const (
	Original Side = iota
	Modified
)

func (s Side) String() string {
	if s == Original {
		return "original"
	}
	return "modified"
}

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == Original {
		return Modified
	}
	return Original
}

// Direction selects which way a merge copies content.
type Direction int

const (
	// ToModified copies the original side's lines into the modified document.
	ToModified Direction = iota
	// ToOriginal copies the modified side's lines into the original document.
	ToOriginal
)

func (d Direction) String() string {
	if d == ToModified {
		return "to-modified"
	}
	return "to-original"
}

// LineRange is one side of a change record. Line numbers are 1-based.
// A zero value in either field marks the side as having no corresponding
// lines (pure insertion or deletion on the other side).
type LineRange struct {
	Start int
	End   int
}

// Present reports whether this side of the hunk spans any lines.
func (r LineRange) Present() bool {
	return r.End > 0
}

// Effective resolves the degenerate zero encoding into a usable [start, end]
// pair: an absent start borrows the end, an absent end borrows the start,
// and both are floored at line 1.
func (r LineRange) Effective() (start, end int) {
	start, end = r.Start, r.End
	if start == 0 {
		start = end
	}
	if end == 0 {
		end = start
	}
	if start < 1 {
		start = 1
	}
	if end < 1 {
		end = 1
	}
	return start, end
}

// ChangeRecord describes one contiguous diff hunk between the two documents.
// Records are produced fresh by the diff engine after every content change
// and are never mutated by consumers.
type ChangeRecord struct {
	Original LineRange
	Modified LineRange
}

// Range returns the record's line pair for the given side.
func (c ChangeRecord) Range(side Side) LineRange {
	if side == Original {
		return c.Original
	}
	return c.Modified
}

// Vacuous reports whether the record is absent on both sides. Such a record
// carries no information; it produces no marker and cannot be merged.
func (c ChangeRecord) Vacuous() bool {
	return !c.Original.Present() && !c.Modified.Present()
}

// MarkerKind is the category tag of a gutter marker. Each kind owns its own
// decoration group; re-syncing a kind replaces all of its markers at once.
type MarkerKind int

const (
	// CopyFromOriginal points right: activating it copies the hunk's
	// original lines into the modified document.
	CopyFromOriginal MarkerKind = iota
	// CopyFromModified points left: activating it copies the hunk's
	// modified lines into the original document.
	CopyFromModified
)

func (k MarkerKind) String() string {
	if k == CopyFromOriginal {
		return "copy-from-original"
	}
	return "copy-from-modified"
}

// Marker is a gutter decoration anchored at column 1 of a single line.
type Marker struct {
	Line int
	Side Side
	Kind MarkerKind
}

// Edit is the single mutation primitive a document accepts. EndLine == 0
// collapses the range to an insertion point: Lines are inserted above
// StartLine, pushing existing content down. Otherwise the inclusive span
// [StartLine, EndLine] is replaced by Lines; empty Lines delete the span.
type Edit struct {
	StartLine int
	EndLine   int
	Lines     []string
}

// Summary holds the results of a session or headless run for display.
type Summary struct {
	Hunks         int
	MergesApplied int
	OriginalLang  string
	ModifiedLang  string
	Message       string
}
