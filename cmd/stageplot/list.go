package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/example/stageplot/internal/store"
)

type listCmd struct {
	*root
	fs      *flag.FlagSet
	presets bool
}

func parseListCmd(args []string, r *root) (*listCmd, error) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	c := &listCmd{root: r, fs: fs}
	fs.BoolVar(&c.presets, "presets", false, "list presets instead of configurations")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *listCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *listCmd) Run() error {
	st, err := c.openStore()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	defer st.Close()
	configs, err := st.List(context.Background(), c.user, c.presets)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	what := "configurations"
	if c.presets {
		what = "presets"
	}
	if len(configs) == 0 {
		fmt.Fprintf(c.stdout(), "no %s for %s\n", what, c.user)
		return nil
	}
	fmt.Fprintln(c.stdout(), configTable(configs))
	return nil
}

func configTable(configs []store.Config) *uitable.Table {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("NAME"), bold.Sprint("ITEMS"), bold.Sprint("UPDATED"))
	for _, cfg := range configs {
		name := cfg.Name
		if name == "" {
			name = color.New(color.Faint).Sprint("untitled")
		}
		tbl.AddRow(cfg.ID, name, strconv.Itoa(len(cfg.Items)), cfg.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	tbl.RightAlign(2)
	return tbl
}
