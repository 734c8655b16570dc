package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
)

type importCmd struct {
	*root
	fs *flag.FlagSet
	id string
}

func parseImportCmd(args []string, r *root) (*importCmd, error) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	c := &importCmd{root: r, fs: fs}
	fs.StringVar(&c.id, "id", "", "configuration to add to (default: the most recent)")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *importCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *importCmd) Run() error {
	file := c.fs.Arg(0)
	var in io.Reader = os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		defer f.Close()
		in = f
	}

	ctx := context.Background()
	st, err := c.openStore()
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	defer st.Close()
	ws, err := c.openWorkspace(ctx, st, c.id)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	ids, err := ws.Import(in)
	if err != nil {
		return fmt.Errorf("import %s: %w", file, err)
	}
	if err := ws.Save(ctx); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	fmt.Fprintf(c.stdout(), "imported %d items into %s\n", len(ids), ws.ID())
	return nil
}
