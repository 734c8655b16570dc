// Package history keeps a linear undo/redo log of item-list snapshots.
package history

import "github.com/example/stageplot/internal/stage"

// DefaultMaxEntries bounds the log when no explicit capacity is given.
const DefaultMaxEntries = 100

// Entry is one snapshot of the stage.
type Entry struct {
	Items            []stage.Item
	LatestSelectedID string
}

func (e Entry) clone() Entry {
	return Entry{Items: stage.Clone(e.Items), LatestSelectedID: e.LatestSelectedID}
}

// Log is a linear sequence of entries plus a cursor. Entries after the
// cursor are redo-able. The zero value is not usable; call New.
type Log struct {
	entries []Entry
	cursor  int
	max     int
}

// New returns a log holding a single empty entry. max <= 0 selects
// DefaultMaxEntries.
func New(max int) *Log {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	if max < 2 {
		max = 2
	}
	l := &Log{max: max}
	l.Reset(nil)
	return l
}

// Reset discards everything and stores initial as the only entry.
func (l *Log) Reset(initial []stage.Item) {
	l.entries = []Entry{{Items: stage.Clone(initial)}}
	l.cursor = 0
}

// Record appends a snapshot of items after the cursor, dropping any redo
// branch, and evicts the oldest entries beyond capacity.
func (l *Log) Record(items []stage.Item, latestSelectedID string) {
	if l.cursor < len(l.entries)-1 {
		l.entries = l.entries[:l.cursor+1]
	}
	l.entries = append(l.entries, Entry{Items: stage.Clone(items), LatestSelectedID: latestSelectedID})
	if over := len(l.entries) - l.max; over > 0 {
		l.entries = append([]Entry(nil), l.entries[over:]...)
	}
	l.cursor = len(l.entries) - 1
}

// Undo steps the cursor back and returns a copy of the entry it lands on.
// ok is false when already at the oldest entry.
func (l *Log) Undo() (Entry, bool) {
	if l.cursor == 0 {
		return Entry{}, false
	}
	l.cursor--
	return l.entries[l.cursor].clone(), true
}

// Redo steps the cursor forward. ok is false at the newest entry.
func (l *Log) Redo() (Entry, bool) {
	if l.cursor >= len(l.entries)-1 {
		return Entry{}, false
	}
	l.cursor++
	return l.entries[l.cursor].clone(), true
}

// CanUndo reports whether Undo would move the cursor.
func (l *Log) CanUndo() bool { return l.cursor > 0 }

// CanRedo reports whether Redo would move the cursor.
func (l *Log) CanRedo() bool { return l.cursor < len(l.entries)-1 }

// Len returns the number of stored entries.
func (l *Log) Len() int { return len(l.entries) }

// Cursor returns the index of the current entry.
func (l *Log) Cursor() int { return l.cursor }

// Current returns a copy of the entry at the cursor.
func (l *Log) Current() Entry { return l.entries[l.cursor].clone() }

// Entries returns copies of every stored entry, oldest first.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.clone()
	}
	return out
}
