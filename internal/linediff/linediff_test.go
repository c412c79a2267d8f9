package linediff

import (
	"reflect"
	"testing"

	"github.com/sokinpui/dpane/model"
)

func TestComputeIdentical(t *testing.T) {
	lines := []string{"a", "b", "c"}
	if got := Compute(lines, lines); got != nil {
		t.Errorf("identical inputs: got %v, want nil", got)
	}
	if got := Compute(nil, nil); got != nil {
		t.Errorf("both empty: got %v, want nil", got)
	}
}

func TestComputeReplacement(t *testing.T) {
	got := Compute(
		[]string{"a", "b", "c"},
		[]string{"a", "x", "c"},
	)
	want := []model.ChangeRecord{
		{
			Original: model.LineRange{Start: 2, End: 2},
			Modified: model.LineRange{Start: 2, End: 2},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestComputeUnevenReplacement(t *testing.T) {
	got := Compute(
		[]string{"a", "b", "c", "d"},
		[]string{"a", "x", "d"},
	)
	want := []model.ChangeRecord{
		{
			Original: model.LineRange{Start: 2, End: 3},
			Modified: model.LineRange{Start: 2, End: 2},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestComputeDeletion(t *testing.T) {
	got := Compute(
		[]string{"a", "b", "c"},
		[]string{"a", "c"},
	)
	want := []model.ChangeRecord{
		{
			Original: model.LineRange{Start: 2, End: 2},
			Modified: model.LineRange{Start: 2, End: 0},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got[0].Modified.Present() {
		t.Error("deleted side should not be present")
	}
}

func TestComputeInsertion(t *testing.T) {
	got := Compute(
		[]string{"a", "c"},
		[]string{"a", "b", "c"},
	)
	want := []model.ChangeRecord{
		{
			Original: model.LineRange{Start: 2, End: 0},
			Modified: model.LineRange{Start: 2, End: 2},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestComputeInsertionAtTop(t *testing.T) {
	got := Compute(
		[]string{"b"},
		[]string{"a", "b"},
	)
	want := []model.ChangeRecord{
		{
			Original: model.LineRange{Start: 1, End: 0},
			Modified: model.LineRange{Start: 1, End: 1},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestComputeAgainstEmpty(t *testing.T) {
	got := Compute(nil, []string{"a", "b"})
	want := []model.ChangeRecord{
		{
			Original: model.LineRange{Start: 1, End: 0},
			Modified: model.LineRange{Start: 1, End: 2},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestComputeMultipleHunks(t *testing.T) {
	got := Compute(
		[]string{"a", "b", "c", "d", "e"},
		[]string{"a", "x", "c", "d", "y"},
	)
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	for i := 1; i < len(got); i++ {
		prevStart, _ := got[i-1].Original.Effective()
		curStart, _ := got[i].Original.Effective()
		if curStart <= prevStart {
			t.Errorf("records out of order: %+v", got)
		}
	}
}

func TestJoinLines(t *testing.T) {
	if got := JoinLines(nil); got != "" {
		t.Errorf("JoinLines(nil) = %q", got)
	}
	if got := JoinLines([]string{"a", ""}); got != "a\n\n" {
		t.Errorf("JoinLines = %q, want %q", got, "a\n\n")
	}
}
