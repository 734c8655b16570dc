package main

import (
	"context"
	"flag"
	"fmt"
)

type presetCmd struct {
	*root
	fs *flag.FlagSet
	id string
}

func parsePresetCmd(args []string, r *root) (*presetCmd, error) {
	fs := flag.NewFlagSet("preset", flag.ExitOnError)
	c := &presetCmd{root: r, fs: fs}
	fs.StringVar(&c.id, "id", "", "configuration to save from or apply to (default: the most recent)")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, usageError(c, "preset needs list, save, delete or apply")
	}
	switch sub := fs.Arg(0); sub {
	case "list":
		if fs.NArg() != 1 {
			return nil, usageError(c, "preset list takes no arguments")
		}
	case "save", "delete", "apply":
		if fs.NArg() != 2 {
			return nil, usageError(c, "preset %s needs exactly one preset name", sub)
		}
	default:
		return nil, usageError(c, "unknown preset command %q", sub)
	}
	return c, nil
}

func (c *presetCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *presetCmd) Run() error {
	ctx := context.Background()
	st, err := c.openStore()
	if err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	defer st.Close()

	sub, arg := c.fs.Arg(0), c.fs.Arg(1)
	switch sub {
	case "list":
		presets, err := st.List(ctx, c.user, true)
		if err != nil {
			return fmt.Errorf("preset list: %w", err)
		}
		if len(presets) == 0 {
			fmt.Fprintf(c.stdout(), "no presets for %s\n", c.user)
			return nil
		}
		fmt.Fprintln(c.stdout(), configTable(presets))
	case "delete":
		p, err := st.FindPreset(ctx, c.user, arg)
		if err != nil {
			return fmt.Errorf("preset delete %s: %w", arg, err)
		}
		if err := st.Delete(ctx, p.ID); err != nil {
			return fmt.Errorf("preset delete %s: %w", arg, err)
		}
		fmt.Fprintf(c.stdout(), "deleted preset %s\n", p.Name)
	case "save":
		ws, err := c.openWorkspace(ctx, st, c.id)
		if err != nil {
			return fmt.Errorf("preset save: %w", err)
		}
		id, err := ws.SavePreset(ctx, arg)
		if err != nil {
			return fmt.Errorf("preset save: %w", err)
		}
		fmt.Fprintf(c.stdout(), "saved preset %s (%s)\n", arg, id)
	case "apply":
		ws, err := c.openWorkspace(ctx, st, c.id)
		if err != nil {
			return fmt.Errorf("preset apply: %w", err)
		}
		ids, err := ws.ApplyPreset(ctx, arg)
		if err != nil {
			return fmt.Errorf("preset apply: %w", err)
		}
		if err := ws.Save(ctx); err != nil {
			return fmt.Errorf("preset apply: %w", err)
		}
		fmt.Fprintf(c.stdout(), "added %d items to %s\n", len(ids), ws.ID())
	}
	return nil
}
