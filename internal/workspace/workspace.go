// Package workspace binds an editing surface to the configuration store and
// the export targets.
package workspace

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/stageplot/internal/clipboard"
	"github.com/example/stageplot/internal/notify"
	"github.com/example/stageplot/internal/render"
	"github.com/example/stageplot/internal/stage"
	"github.com/example/stageplot/internal/store"
	"github.com/example/stageplot/internal/surface"
	"github.com/example/stageplot/internal/theme"
)

// Store is the persistence the workspace needs.
type Store interface {
	LoadLatestConfig(ctx context.Context, user string) (*store.Config, error)
	Get(ctx context.Context, id string) (*store.Config, error)
	Create(ctx context.Context, c store.Config) (string, error)
	Save(ctx context.Context, id string, items []stage.Item, meta stage.Metadata) error
	SavePreset(ctx context.Context, user, name string, items []stage.Item) (string, error)
	FindPreset(ctx context.Context, user, nameOrID string) (*store.Config, error)
}

// Clipboard publishes data for other applications.
type Clipboard interface {
	WriteImage(img image.Image) error
	WriteText(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteImage(img image.Image) error { return clipboard.WriteImage(img) }
func (systemClipboard) WriteText(text string) error { return clipboard.WriteText(text) }

// Option configures a Workspace.
type Option func(*Workspace)

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(w *Workspace) { w.notifier = n } }

// WithTheme sets the theme used for exports.
func WithTheme(t *theme.Theme) Option { return func(w *Workspace) { w.theme = t } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(w *Workspace) { w.logger = l } }

// WithClipboard replaces the system clipboard.
func WithClipboard(c Clipboard) Option { return func(w *Workspace) { w.clipboard = c } }

// WithSurfaceOptions passes options through to the surface.
func WithSurfaceOptions(opts ...surface.Option) Option {
	return func(w *Workspace) { w.surfaceOpts = append(w.surfaceOpts, opts...) }
}

// WithChangeHook registers fn to run after every commit and every change of
// the unsaved flag, typically to repaint.
func WithChangeHook(fn func()) Option { return func(w *Workspace) { w.onChange = fn } }

// Workspace is one user's open configuration.
type Workspace struct {
	store     Store
	user      string
	id        string
	surface   *surface.Surface
	notifier  *notify.Notifier
	theme     *theme.Theme
	logger    *log.Logger
	clipboard Clipboard
	onChange  func()

	surfaceOpts []surface.Option
	commits     int
	savedAt     time.Time
}

// Open loads the most recent configuration of user, creating a blank one
// when there is none.
func Open(ctx context.Context, st Store, user string, opts ...Option) (*Workspace, error) {
	w := &Workspace{store: st, user: user}
	for _, o := range opts {
		o(w)
	}
	if w.logger == nil {
		w.logger = log.Default()
	}
	if w.theme == nil {
		w.theme = theme.Default()
	}
	if w.clipboard == nil {
		w.clipboard = systemClipboard{}
	}
	w.surface = surface.New(append(w.surfaceOpts, surface.WithListener(w), surface.WithLogger(w.logger))...)

	cfg, err := st.LoadLatestConfig(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("workspace: load latest: %w", err)
	}
	if cfg == nil {
		return w, w.New(ctx, "")
	}
	w.load(cfg)
	return w, nil
}

// Surface returns the editing surface.
func (w *Workspace) Surface() *surface.Surface { return w.surface }

// ID returns the id of the open configuration.
func (w *Workspace) ID() string { return w.id }

// User returns the owner of the workspace.
func (w *Workspace) User() string { return w.user }

// Name returns the configuration name.
func (w *Workspace) Name() string { return w.surface.Metadata().Name }

// Theme returns the export theme.
func (w *Workspace) Theme() *theme.Theme { return w.theme }

// SetTheme changes the export theme.
func (w *Workspace) SetTheme(t *theme.Theme) {
	if t != nil {
		w.theme = t
	}
}

// Commits counts the commits since the configuration was opened.
func (w *Workspace) Commits() int { return w.commits }

// OnCommit implements surface.Listener.
func (w *Workspace) OnCommit(items []stage.Item, latestSelectedID string) {
	w.commits++
	w.changed()
}

// OnUnsavedChangesChanged implements surface.Listener.
func (w *Workspace) OnUnsavedChangesChanged(unsaved bool) {
	w.changed()
}

func (w *Workspace) changed() {
	if w.onChange != nil {
		w.onChange()
	}
}

func (w *Workspace) load(cfg *store.Config) {
	w.id = cfg.ID
	w.surface.Load(cfg.Items, cfg.Metadata())
	w.commits = 0
}

// New creates and opens a blank configuration.
func (w *Workspace) New(ctx context.Context, name string) error {
	id, err := w.store.Create(ctx, store.Config{UserID: w.user, Name: name})
	if err != nil {
		return fmt.Errorf("workspace: new: %w", err)
	}
	w.id = id
	w.surface.NewConfiguration(stage.Metadata{Name: name})
	w.commits = 0
	return nil
}

// Switch opens another configuration by id.
func (w *Workspace) Switch(ctx context.Context, id string) error {
	cfg, err := w.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("workspace: open %s: %w", id, err)
	}
	if cfg.UserID != w.user {
		return fmt.Errorf("workspace: open %s: %w", id, store.ErrNotFound)
	}
	w.load(cfg)
	return nil
}

// Rename changes the configuration name; it is saved with the next Save.
func (w *Workspace) Rename(name string) {
	meta := w.surface.Metadata()
	meta.Name = strings.TrimSpace(name)
	w.surface.SetMetadata(meta)
}

// Save writes the items and metadata and clears the unsaved flag.
func (w *Workspace) Save(ctx context.Context) error {
	if err := w.store.Save(ctx, w.id, w.surface.Items(), w.surface.Metadata()); err != nil {
		return fmt.Errorf("workspace: save: %w", err)
	}
	w.surface.MarkSaved()
	w.savedAt = time.Now()
	w.notifier.Save(w.Name())
	return nil
}

// SavedAt reports when Save last succeeded.
func (w *Workspace) SavedAt() time.Time { return w.savedAt }

// SavePreset stores the selected items, or all items when nothing is
// selected, as a named preset.
func (w *Workspace) SavePreset(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("workspace: preset needs a name")
	}
	items := w.selectedOrAll()
	if len(items) == 0 {
		return "", fmt.Errorf("workspace: nothing to save as preset")
	}
	return w.store.SavePreset(ctx, w.user, name, items)
}

// ApplyPreset inserts the items of a preset as one undoable step.
func (w *Workspace) ApplyPreset(ctx context.Context, nameOrID string) ([]string, error) {
	p, err := w.store.FindPreset(ctx, w.user, nameOrID)
	if err != nil {
		return nil, fmt.Errorf("workspace: preset %q: %w", nameOrID, err)
	}
	return w.surface.Insert(p.Items, stage.Point{}), nil
}

func (w *Workspace) selectedOrAll() []stage.Item {
	items := w.surface.Items()
	sel := w.surface.Selection()
	if len(sel) == 0 {
		return items
	}
	var out []stage.Item
	for _, id := range sel {
		if it, ok := stage.Find(items, id); ok {
			out = append(out, it)
		}
	}
	return out
}

// Snapshot captures the committed state for drawing.
func (w *Workspace) Snapshot() render.Snapshot {
	return render.Snapshot{
		Items:     w.surface.Items(),
		Selected:  w.surface.Selection(),
		StageSize: w.surface.StageSize(),
	}
}

// Image renders the committed items the way they are exported.
func (w *Workspace) Image() *image.RGBA {
	return render.Stage(w.Snapshot(), w.theme, render.ExportOptions())
}

// ExportPNG writes the stage as a PNG file and returns the path written.
func (w *Workspace) ExportPNG(path string) (string, error) {
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, w.Image()); err != nil {
		return "", err
	}
	return w.writeExport(path, ".png", buf.Bytes())
}

// ExportJSON writes the configuration document to path.
func (w *Workspace) ExportJSON(path string) (string, error) {
	var buf bytes.Buffer
	if err := w.WriteJSON(&buf); err != nil {
		return "", err
	}
	return w.writeExport(path, ".json", buf.Bytes())
}

// WriteJSON writes the configuration document to out.
func (w *Workspace) WriteJSON(out io.Writer) error {
	return store.EncodeDocument(out, w.surface.Items(), w.surface.Metadata())
}

// Import inserts the items of a JSON document as one undoable step.
func (w *Workspace) Import(r io.Reader) ([]string, error) {
	items, _, err := store.DecodeDocument(r)
	if err != nil {
		return nil, err
	}
	return w.surface.Insert(items, stage.Point{}), nil
}

// CopyPNG places the rendered stage on the clipboard.
func (w *Workspace) CopyPNG() error {
	if err := w.clipboard.WriteImage(w.Image()); err != nil {
		return fmt.Errorf("workspace: copy image: %w", err)
	}
	w.notifier.Copy("stage plot image")
	return nil
}

// CopyJSON places the configuration document on the clipboard.
func (w *Workspace) CopyJSON() error {
	var buf bytes.Buffer
	if err := w.WriteJSON(&buf); err != nil {
		return err
	}
	if err := w.clipboard.WriteText(buf.String()); err != nil {
		return fmt.Errorf("workspace: copy json: %w", err)
	}
	w.notifier.Copy("stage plot document")
	return nil
}

// ExportName derives a file name from the configuration name.
func (w *Workspace) ExportName(ext string) string {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r - 'A' + 'a'
		case r == ' ':
			return '-'
		}
		return -1
	}, w.Name())
	if base == "" {
		base = "stageplot"
	}
	return base + ext
}

// writeExport writes data to path. A directory or empty path gets a name
// derived from the configuration.
func (w *Workspace) writeExport(path, ext string, data []byte) (string, error) {
	if path == "" {
		path = "."
	}
	if st, err := os.Stat(path); err == nil && st.IsDir() {
		path = filepath.Join(path, w.ExportName(ext))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("workspace: export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("workspace: export: %w", err)
	}
	w.notifier.Export(path)
	return path, nil
}
