// Package surface owns the committed list of stage items. Every change to
// that list goes through one of the commit points here, which apply the item
// transformation, adjust the selection, record history and tell the
// listener.
//
// A Surface is not safe for concurrent use; it is driven from a single UI
// event loop.
package surface

import (
	"log"

	"github.com/example/stageplot/internal/history"
	"github.com/example/stageplot/internal/selection"
	"github.com/example/stageplot/internal/stage"
)

// DefaultStageSize is used by PlaceAtCenter when no stage size is set.
var DefaultStageSize = stage.Size{Width: 1200, Height: 800}

// Surface holds the committed items and the selection.
type Surface struct {
	items  []stage.Item
	sel    selection.Set
	latest string
	meta   stage.Metadata

	hist     *history.Log
	ids      *stage.IDs
	listener Listener
	logger   *log.Logger

	loading   int
	unsaved   bool
	stageSize stage.Size

	historyMax int
	idSource   stage.IDSource
}

// Option modifies a Surface during creation.
type Option func(*Surface)

// WithHistory sets the history capacity.
func WithHistory(max int) Option { return func(s *Surface) { s.historyMax = max } }

// WithListener registers the commit listener.
func WithListener(l Listener) Option { return func(s *Surface) { s.listener = l } }

// WithLogger sets where anomalies are reported.
func WithLogger(l *log.Logger) Option { return func(s *Surface) { s.logger = l } }

// WithIDSource overrides how item ids are generated.
func WithIDSource(src stage.IDSource) Option { return func(s *Surface) { s.idSource = src } }

// WithStageSize sets the visible stage size used for centring new items.
func WithStageSize(size stage.Size) Option { return func(s *Surface) { s.stageSize = size } }

// New creates an empty surface.
func New(opts ...Option) *Surface {
	s := &Surface{stageSize: DefaultStageSize}
	for _, o := range opts {
		o(s)
	}
	if s.listener == nil {
		s.listener = nopListener{}
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.stageSize.Width <= 0 || s.stageSize.Height <= 0 {
		s.stageSize = DefaultStageSize
	}
	s.hist = history.New(s.historyMax)
	s.ids = stage.NewIDs(s.idSource)
	return s
}

// Items returns a copy of the committed items.
func (s *Surface) Items() []stage.Item { return stage.Clone(s.items) }

// Item returns a copy of one committed item.
func (s *Surface) Item(id string) (stage.Item, bool) {
	it, ok := stage.Find(s.items, id)
	return it.Clone(), ok
}

// Len returns the number of committed items.
func (s *Surface) Len() int { return len(s.items) }

// Metadata returns a copy of the configuration metadata.
func (s *Surface) Metadata() stage.Metadata { return s.meta.Clone() }

// StageSize returns the stage dimensions.
func (s *Surface) StageSize() stage.Size { return s.stageSize }

// SetStageSize changes the stage dimensions used for centring.
func (s *Surface) SetStageSize(size stage.Size) {
	if size.Width > 0 && size.Height > 0 {
		s.stageSize = size
	}
}

// Unsaved reports whether there are changes not yet saved.
func (s *Surface) Unsaved() bool { return s.unsaved }

// Loading reports whether the surface is importing a configuration.
func (s *Surface) Loading() bool { return s.loading > 0 }

// CanUndo reports whether an undo step is available.
func (s *Surface) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether a redo step is available.
func (s *Surface) CanRedo() bool { return s.hist.CanRedo() }

// History exposes the log for inspection.
func (s *Surface) History() *history.Log { return s.hist }

func (s *Surface) exists(id string) bool { return stage.Index(s.items, id) >= 0 }

func (s *Surface) setUnsaved(v bool) {
	if s.unsaved == v {
		return
	}
	s.unsaved = v
	s.listener.OnUnsavedChangesChanged(v)
}

// MarkSaved clears the unsaved flag after the persistence collaborator has
// stored the current state.
func (s *Surface) MarkSaved() { s.setUnsaved(false) }

// BeginLoading enters loading mode. Commits made while loading do not mark
// the surface unsaved. Calls nest.
func (s *Surface) BeginLoading() { s.loading++ }

// EndLoading leaves one level of loading mode.
func (s *Surface) EndLoading() {
	if s.loading > 0 {
		s.loading--
	}
}

// commit installs next as the committed list. It is the only place s.items
// is assigned outside of Load.
func (s *Surface) commit(next []stage.Item, latest string, record bool) {
	next, dropped := stage.Dedupe(next)
	if len(dropped) > 0 {
		s.logger.Printf("surface: dropped items with duplicate ids %v", dropped)
	}
	s.items = next
	s.ids.Observe(next)
	s.sel.Prune(next)
	if latest != "" && !s.exists(latest) {
		latest = ""
	}
	s.latest = latest
	if record {
		s.hist.Record(next, latest)
	}
	s.listener.OnCommit(stage.Clone(next), latest)
	if s.loading == 0 {
		s.setUnsaved(true)
	}
}

// Load replaces the committed items wholesale, resets history and clears the
// selection. The surface is in loading mode for the duration.
func (s *Surface) Load(items []stage.Item, meta stage.Metadata) {
	s.BeginLoading()
	defer s.EndLoading()

	s.sel.Clear()
	s.meta = meta.Clone()
	s.commit(stage.Clone(items), "", false)
	s.hist.Reset(s.items)
	s.setUnsaved(false)
}

// NewConfiguration starts a blank configuration.
func (s *Surface) NewConfiguration(meta stage.Metadata) { s.Load(nil, meta) }

// SetMetadata replaces the metadata. It is not part of item history.
func (s *Surface) SetMetadata(meta stage.Metadata) {
	s.meta = meta.Clone()
	if s.loading == 0 {
		s.setUnsaved(true)
	}
}
