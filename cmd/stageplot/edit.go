package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/example/stageplot/internal/editor"
	"github.com/example/stageplot/internal/workspace"
)

// runEditor is replaced in tests.
var runEditor = func(e *editor.Editor) { e.Run() }

type editCmd struct {
	*root
	fs      *flag.FlagSet
	id      string
	catalog string
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	c := &editCmd{root: r, fs: fs}
	fs.StringVar(&c.id, "id", "", "configuration to open (default: the most recent)")
	fs.StringVar(&c.catalog, "catalog", "", "template catalog YAML (default: built in)")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *editCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *editCmd) Run() error {
	ctx := context.Background()
	cat, err := c.root.catalog(c.catalog)
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	st, err := c.openStore()
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	defer st.Close()

	var ed *editor.Editor
	ws, err := c.openWorkspace(ctx, st, c.id, workspace.WithChangeHook(func() {
		if ed != nil {
			ed.Invalidate()
		}
	}))
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	exportDir := ""
	if c.config != nil {
		exportDir = c.config.ExportDir
	}
	ed = editor.New(ws,
		editor.WithCatalog(cat),
		editor.WithTheme(c.activeTheme),
		editor.WithExportDir(exportDir),
		editor.WithGestureOptions(c.gestureOptions()),
	)
	runEditor(ed)

	if ws.Surface().Unsaved() {
		if err := ws.Save(ctx); err != nil {
			return fmt.Errorf("edit: save on close: %w", err)
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", ws.ID())
	}
	return nil
}
