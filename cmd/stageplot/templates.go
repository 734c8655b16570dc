package main

import (
	"flag"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

type templatesCmd struct {
	*root
	fs      *flag.FlagSet
	catalog string
}

func parseTemplatesCmd(args []string, r *root) (*templatesCmd, error) {
	fs := flag.NewFlagSet("templates", flag.ExitOnError)
	c := &templatesCmd{root: r, fs: fs}
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

func (c *templatesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *templatesCmd) Run() error {
	cat, err := c.root.catalog(c.catalog)
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}
	if cat.Len() == 0 {
		fmt.Fprintln(c.stdout(), "no templates available")
		return nil
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("KEY"), bold.Sprint("NAME"), bold.Sprint("SIZE"), bold.Sprint("RESIZABLE"))
	for _, category := range cat.Categories() {
		tbl.AddRow(faint.Sprint(category), "", "", "")
		for _, t := range cat.InCategory(category) {
			resizable := ""
			if t.Resizable {
				resizable = "yes"
			}
			tbl.AddRow("  "+t.Key, t.Name, fmt.Sprintf("%gx%g", t.Width, t.Height), resizable)
		}
	}
	fmt.Fprintln(c.stdout(), tbl)
	return nil
}
