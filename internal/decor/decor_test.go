package decor

import (
	"reflect"
	"testing"

	"github.com/sokinpui/dpane/internal/document"
	"github.com/sokinpui/dpane/model"
)

// recordingSink captures every Replace call, keyed by (side, kind).
type recordingSink struct {
	calls []replaceCall
}

type replaceCall struct {
	side    model.Side
	kind    model.MarkerKind
	markers []model.Marker
}

func (r *recordingSink) Replace(side model.Side, kind model.MarkerKind, markers []model.Marker) {
	r.calls = append(r.calls, replaceCall{side, kind, markers})
}

func TestComputeNoChanges(t *testing.T) {
	set := Compute(nil, document.NewBuffer("a"), document.NewBuffer("a"))
	if len(set.Original) != 0 || len(set.Modified) != 0 {
		t.Errorf("no changes should produce no markers, got %+v", set)
	}
}

func TestComputeBothEmpty(t *testing.T) {
	changes := []model.ChangeRecord{
		{Original: model.LineRange{Start: 1, End: 1}, Modified: model.LineRange{Start: 1, End: 1}},
	}
	set := Compute(changes, document.NewBuffer(""), document.NewBuffer("  "))
	if len(set.Original) != 0 || len(set.Modified) != 0 {
		t.Errorf("two empty documents should produce no markers, got %+v", set)
	}
}

func TestComputeMissingDocument(t *testing.T) {
	changes := []model.ChangeRecord{
		{Original: model.LineRange{Start: 1, End: 1}, Modified: model.LineRange{Start: 1, End: 1}},
	}
	present := document.NewBuffer("a\nb\n")

	for _, tt := range []struct {
		name      string
		orig, mod document.Document
	}{
		{"nil original", nil, present},
		{"nil modified", present, nil},
		{"both nil", nil, nil},
	} {
		t.Run(tt.name, func(t *testing.T) {
			set := Compute(changes, tt.orig, tt.mod)
			if len(set.Original) != 0 || len(set.Modified) != 0 {
				t.Errorf("missing document produced markers: %+v", set)
			}
		})
	}
}

func TestComputeReplacementHunk(t *testing.T) {
	changes := []model.ChangeRecord{
		{Original: model.LineRange{Start: 2, End: 2}, Modified: model.LineRange{Start: 2, End: 2}},
	}
	set := Compute(changes, document.NewBuffer("a\nb\nc\n"), document.NewBuffer("a\nx\nc\n"))

	wantMod := []model.Marker{{Line: 2, Side: model.Modified, Kind: model.CopyFromOriginal}}
	wantOrig := []model.Marker{{Line: 2, Side: model.Original, Kind: model.CopyFromModified}}
	if !reflect.DeepEqual(set.Modified, wantMod) {
		t.Errorf("modified markers = %+v, want %+v", set.Modified, wantMod)
	}
	if !reflect.DeepEqual(set.Original, wantOrig) {
		t.Errorf("original markers = %+v, want %+v", set.Original, wantOrig)
	}
}

func TestComputeDeletionHunk(t *testing.T) {
	// Line b exists only in the original; the modified pane still gets a
	// marker at the collapsed anchor so the deletion can be restored.
	changes := []model.ChangeRecord{
		{Original: model.LineRange{Start: 2, End: 2}, Modified: model.LineRange{Start: 2, End: 0}},
	}
	set := Compute(changes, document.NewBuffer("a\nb\nc\n"), document.NewBuffer("a\nc\n"))

	if len(set.Modified) != 1 || set.Modified[0].Line != 2 {
		t.Fatalf("modified markers = %+v", set.Modified)
	}
	// The original side has nothing to receive; no marker there.
	if len(set.Original) != 0 {
		t.Errorf("original markers = %+v, want none", set.Original)
	}
}

func TestComputeInsertionHunk(t *testing.T) {
	changes := []model.ChangeRecord{
		{Original: model.LineRange{Start: 2, End: 0}, Modified: model.LineRange{Start: 2, End: 2}},
	}
	set := Compute(changes, document.NewBuffer("a\nc\n"), document.NewBuffer("a\nb\nc\n"))

	if len(set.Original) != 1 || set.Original[0].Line != 2 {
		t.Fatalf("original markers = %+v", set.Original)
	}
	if len(set.Modified) != 0 {
		t.Errorf("modified markers = %+v, want none", set.Modified)
	}
}

func TestComputeSkipsVacuous(t *testing.T) {
	changes := []model.ChangeRecord{{}}
	set := Compute(changes, document.NewBuffer("a"), document.NewBuffer("b"))
	if len(set.Original) != 0 || len(set.Modified) != 0 {
		t.Errorf("vacuous record produced markers: %+v", set)
	}
}

func TestComputeClampsAnchor(t *testing.T) {
	// Stale record pointing past the end of a shrunken document.
	changes := []model.ChangeRecord{
		{Original: model.LineRange{Start: 9, End: 9}, Modified: model.LineRange{Start: 9, End: 9}},
	}
	set := Compute(changes, document.NewBuffer("a\nb\n"), document.NewBuffer("a\n"))

	if len(set.Modified) != 1 || set.Modified[0].Line != 1 {
		t.Errorf("modified markers = %+v, want anchor clamped to 1", set.Modified)
	}
	if len(set.Original) != 1 || set.Original[0].Line != 2 {
		t.Errorf("original markers = %+v, want anchor clamped to 2", set.Original)
	}
}

func TestAnchorLineFallbacks(t *testing.T) {
	tests := []struct {
		r    model.LineRange
		max  int
		want int
	}{
		{model.LineRange{Start: 3, End: 5}, 10, 3},
		{model.LineRange{Start: 0, End: 4}, 10, 4},
		{model.LineRange{Start: 0, End: 0}, 10, 1},
		{model.LineRange{Start: 0, End: 99}, 5, 5},
	}
	for _, tt := range tests {
		if got := anchorLine(tt.r, tt.max); got != tt.want {
			t.Errorf("anchorLine(%+v, %d) = %d, want %d", tt.r, tt.max, got, tt.want)
		}
	}
}

func TestSyncReplacesBothGroups(t *testing.T) {
	sink := &recordingSink{}
	s := New(sink)

	orig := document.NewBuffer("a\nb\nc\n")
	mod := document.NewBuffer("a\nx\nc\n")
	changes := []model.ChangeRecord{
		{Original: model.LineRange{Start: 2, End: 2}, Modified: model.LineRange{Start: 2, End: 2}},
	}

	s.Sync(changes, orig, mod)
	if len(sink.calls) != 2 {
		t.Fatalf("got %d Replace calls, want 2", len(sink.calls))
	}

	// Both category groups are replaced even when their new list is empty.
	sink.calls = nil
	s.Sync(nil, orig, mod)
	if len(sink.calls) != 2 {
		t.Fatalf("got %d Replace calls for empty set, want 2", len(sink.calls))
	}
	for _, call := range sink.calls {
		if len(call.markers) != 0 {
			t.Errorf("Replace(%v, %v) got markers %+v, want none", call.side, call.kind, call.markers)
		}
	}
}

func TestSyncIdempotent(t *testing.T) {
	sink := &recordingSink{}
	s := New(sink)

	orig := document.NewBuffer("a\nb\n")
	mod := document.NewBuffer("a\nx\n")
	changes := []model.ChangeRecord{
		{Original: model.LineRange{Start: 2, End: 2}, Modified: model.LineRange{Start: 2, End: 2}},
	}

	first := s.Sync(changes, orig, mod)
	second := s.Sync(changes, orig, mod)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated sync diverged: %+v vs %+v", first, second)
	}
}

func TestSyncNilSink(t *testing.T) {
	s := New(nil)
	set := s.Sync(nil, document.NewBuffer("a"), document.NewBuffer("a"))
	if len(set.Original) != 0 || len(set.Modified) != 0 {
		t.Errorf("got %+v", set)
	}
}
