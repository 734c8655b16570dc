package history

import (
	"reflect"
	"testing"

	"github.com/example/stageplot/internal/stage"
)

func items(ids ...string) []stage.Item {
	out := make([]stage.Item, len(ids))
	for i, id := range ids {
		out[i] = stage.Item{ID: id, Size: stage.Square(100)}
	}
	return out
}

func idsAt(l *Log) [][]string {
	var out [][]string
	for _, e := range l.Entries() {
		out = append(out, stage.IDsOf(e.Items))
	}
	return out
}

func TestRecordAfterUndoTruncatesRedoBranch(t *testing.T) {
	l := New(0)
	l.Record(items("A"), "A")
	l.Record(items("B"), "B")
	if _, ok := l.Undo(); !ok {
		t.Fatal("undo failed")
	}
	l.Record(items("C"), "C")

	want := [][]string{{}, {"A"}, {"C"}}
	if got := idsAt(l); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected log %v, want %v", got, want)
	}
	if l.CanRedo() {
		t.Fatal("redo branch should be gone")
	}
	if l.Cursor() != 2 {
		t.Fatalf("cursor %d, want 2", l.Cursor())
	}
}

func TestUndoRedoBounds(t *testing.T) {
	l := New(0)
	if _, ok := l.Undo(); ok {
		t.Fatal("undo at the oldest entry should report nothing")
	}
	if _, ok := l.Redo(); ok {
		t.Fatal("redo at the newest entry should report nothing")
	}
	l.Record(items("A"), "A")
	e, ok := l.Undo()
	if !ok || len(e.Items) != 0 {
		t.Fatalf("unexpected undo result %+v %v", e, ok)
	}
	e, ok = l.Redo()
	if !ok || e.LatestSelectedID != "A" || len(e.Items) != 1 {
		t.Fatalf("unexpected redo result %+v %v", e, ok)
	}
}

func TestEvictsOldest(t *testing.T) {
	l := New(3)
	l.Record(items("A"), "")
	l.Record(items("B"), "")
	l.Record(items("C"), "")
	want := [][]string{{"A"}, {"B"}, {"C"}}
	if got := idsAt(l); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected log %v, want %v", got, want)
	}
	if l.Cursor() != 2 {
		t.Fatalf("cursor %d, want 2", l.Cursor())
	}
}

func TestStoredEntriesAreIsolated(t *testing.T) {
	l := New(0)
	live := items("A")
	l.Record(live, "A")
	live[0].Position = stage.Pt(500, 500)

	got := l.Current()
	if got.Items[0].Position != (stage.Point{}) {
		t.Fatal("mutating live items corrupted history")
	}
	got.Items[0].Position = stage.Pt(1, 1)
	if l.Current().Items[0].Position != (stage.Point{}) {
		t.Fatal("mutating a returned entry corrupted history")
	}
}

func TestReset(t *testing.T) {
	l := New(0)
	l.Record(items("A"), "")
	l.Record(items("B"), "")
	l.Reset(items("X", "Y"))
	if l.Len() != 1 || l.Cursor() != 0 || l.CanUndo() || l.CanRedo() {
		t.Fatalf("reset left state behind: len=%d cursor=%d", l.Len(), l.Cursor())
	}
	if got := stage.IDsOf(l.Current().Items); !reflect.DeepEqual(got, []string{"X", "Y"}) {
		t.Fatalf("unexpected initial entry %v", got)
	}
}
