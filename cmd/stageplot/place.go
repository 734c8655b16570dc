package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/example/stageplot/internal/stage"
)

// placeStep offsets each further template placed by one command.
const placeStep = 20

type placeCmd struct {
	*root
	fs      *flag.FlagSet
	id      string
	catalog string
	x, y    float64
}

func parsePlaceCmd(args []string, r *root) (*placeCmd, error) {
	fs := flag.NewFlagSet("place", flag.ExitOnError)
	c := &placeCmd{root: r, fs: fs}
	fs.StringVar(&c.id, "id", "", "configuration to change (default: the most recent)")
	fs.StringVar(&c.catalog, "catalog", "", "template catalog YAML (default: built in)")
	fs.Float64Var(&c.x, "x", -1, "left edge in stage pixels (default: centred)")
	fs.Float64Var(&c.y, "y", -1, "top edge in stage pixels (default: centred)")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 0 {
		return nil, usageError(c, "place needs at least one template key")
	}
	if (c.x < 0) != (c.y < 0) {
		return nil, usageError(c, "-x and -y must be given together")
	}
	return c, nil
}

func (c *placeCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *placeCmd) Run() error {
	cat, err := c.root.catalog(c.catalog)
	if err != nil {
		return fmt.Errorf("place: %w", err)
	}
	var templates []stage.Template
	for _, key := range c.fs.Args() {
		t, ok := cat.Lookup(key)
		if !ok {
			return fmt.Errorf("place: unknown template %q (see %s templates)", key, c.program)
		}
		templates = append(templates, t)
	}

	ctx := context.Background()
	st, err := c.openStore()
	if err != nil {
		return fmt.Errorf("place: %w", err)
	}
	defer st.Close()
	ws, err := c.openWorkspace(ctx, st, c.id)
	if err != nil {
		return fmt.Errorf("place: %w", err)
	}
	sf := ws.Surface()
	for i, t := range templates {
		var it stage.Item
		if c.x < 0 {
			it = sf.PlaceAtCenter(t)
		} else {
			step := float64(i * placeStep)
			it = sf.Place(t, stage.Pt(c.x+step, c.y+step))
		}
		fmt.Fprintf(c.stdout(), "%s %s at %g,%g\n", it.ID, it.Template.Key, it.Position.X, it.Position.Y)
	}
	if err := ws.Save(ctx); err != nil {
		return fmt.Errorf("place: %w", err)
	}
	return nil
}
