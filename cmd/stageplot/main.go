package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/stageplot/internal/config"
	"github.com/example/stageplot/internal/gesture"
	"github.com/example/stageplot/internal/notify"
	"github.com/example/stageplot/internal/palette"
	"github.com/example/stageplot/internal/store"
	"github.com/example/stageplot/internal/surface"
	"github.com/example/stageplot/internal/theme"
	"github.com/example/stageplot/internal/workspace"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	saveAlerts   bool
	exportAlerts bool
	copyAlerts   bool
	themeName    string
	activeTheme  *theme.Theme
	dbPath       string
	user         string
	out          io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) stdout() io.Writer {
	if r == nil || r.out == nil {
		return os.Stdout
	}
	return r.out
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("stageplot", flag.ExitOnError),
		program:  "stageplot",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a configuration")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting a file")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default. Empty flags fall through in resolve.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (light, dark, print)")
	r.fs.StringVar(&r.dbPath, "db", "", "path of the configuration database")
	r.fs.StringVar(&r.user, "user", "", "owner of the configurations")
	r.fs.Usage = usageFunc(r)
	return r
}

// resolve applies the environment and config fallbacks for flags left
// empty and loads the theme.
func (r *root) resolve() {
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	if r.config == nil {
		r.config = config.New()
	}
	r.dbPath = firstNonEmpty(r.dbPath, os.Getenv("STAGEPLOT_DB"), r.config.DBPath, config.DefaultDBPath())
	r.user = firstNonEmpty(r.user, os.Getenv("STAGEPLOT_USER"), r.config.User, os.Getenv("USER"), "local")

	themeName := firstNonEmpty(r.themeName, os.Getenv("STAGEPLOT_THEME"), r.config.Theme)
	if t, ok := r.config.Themes[themeName]; ok {
		r.activeTheme = t
		return
	}
	t, err := theme.NewLoader().Load(themeName)
	if err != nil {
		if themeName != "" && themeName != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", themeName, err)
		}
		t = theme.Default()
	}
	r.activeTheme = t
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return usageError(r, "no command given")
	}
	r.resolve()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "new":
		cmd, err = parseNewCmd(subArgs, r)
	case "list":
		cmd, err = parseListCmd(subArgs, r)
	case "place":
		cmd, err = parsePlaceCmd(subArgs, r)
	case "export":
		cmd, err = parseExportCmd(subArgs, r)
	case "import":
		cmd, err = parseImportCmd(subArgs, r)
	case "preset":
		cmd, err = parsePresetCmd(subArgs, r)
	case "templates":
		cmd, err = parseTemplatesCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = usageError(r, "unknown command %q", cmdName)
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func (r *root) openStore() (*store.Store, error) {
	st, err := store.Open(r.dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", r.dbPath, err)
	}
	return st, nil
}

// openWorkspace opens the configuration id, or the user's latest one when
// id is empty.
func (r *root) openWorkspace(ctx context.Context, st *store.Store, id string, opts ...workspace.Option) (*workspace.Workspace, error) {
	cfg := r.config
	if cfg == nil {
		cfg = config.New()
	}
	base := []workspace.Option{
		workspace.WithNotifier(r.notifier),
		workspace.WithTheme(r.activeTheme),
		workspace.WithSurfaceOptions(
			surface.WithStageSize(cfg.StageSize()),
			surface.WithHistory(cfg.HistoryMax),
		),
	}
	ws, err := workspace.Open(ctx, st, r.user, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	if id != "" && ws.ID() != id {
		if err := ws.Switch(ctx, id); err != nil {
			return nil, err
		}
	}
	return ws, nil
}

func (r *root) catalog(path string) (*palette.Catalog, error) {
	if path == "" && r.config != nil {
		path = r.config.Catalog
	}
	return palette.Load(path)
}

func (r *root) gestureOptions() gesture.Options {
	cfg := r.config
	if cfg == nil {
		cfg = config.New()
	}
	return gesture.Options{
		DeadZone:   cfg.Gesture.DeadZone,
		HandleSize: cfg.Gesture.HandleSize,
		MinSide:    cfg.Gesture.MinSize,
	}
}
