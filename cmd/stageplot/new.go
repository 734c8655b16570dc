package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/example/stageplot/internal/store"
)

type newCmd struct {
	*root
	fs   *flag.FlagSet
	name string
}

func parseNewCmd(args []string, r *root) (*newCmd, error) {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	c := &newCmd{root: r, fs: fs}
	fs.StringVar(&c.name, "name", "", "name of the configuration")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *newCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *newCmd) Run() error {
	st, err := c.openStore()
	if err != nil {
		return fmt.Errorf("new: %w", err)
	}
	defer st.Close()
	id, err := st.Create(context.Background(), store.Config{UserID: c.user, Name: c.name})
	if err != nil {
		return fmt.Errorf("new: %w", err)
	}
	fmt.Fprintln(c.stdout(), id)
	return nil
}
