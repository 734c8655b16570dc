package surface

import "github.com/example/stageplot/internal/stage"

// Listener receives committed changes. Calls are fire-and-forget: the
// surface does not wait for, or look at, anything the listener does.
type Listener interface {
	// OnCommit is called after every commit point with a copy of the
	// committed items.
	OnCommit(items []stage.Item, latestSelectedID string)
	// OnUnsavedChangesChanged is called whenever the unsaved flag flips.
	OnUnsavedChangesChanged(unsaved bool)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Commit  func(items []stage.Item, latestSelectedID string)
	Unsaved func(unsaved bool)
}

func (f ListenerFuncs) OnCommit(items []stage.Item, latestSelectedID string) {
	if f.Commit != nil {
		f.Commit(items, latestSelectedID)
	}
}

func (f ListenerFuncs) OnUnsavedChangesChanged(unsaved bool) {
	if f.Unsaved != nil {
		f.Unsaved(unsaved)
	}
}

type nopListener struct{}

func (nopListener) OnCommit([]stage.Item, string) {}
func (nopListener) OnUnsavedChangesChanged(bool) {}
