package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
)

type exportCmd struct {
	*root
	fs          *flag.FlagSet
	id          string
	output      string
	format      string
	toClipboard bool
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	c := &exportCmd{root: r, fs: fs}
	fs.StringVar(&c.id, "id", "", "configuration to export (default: the most recent)")
	fs.StringVar(&c.output, "o", "", "output file or directory (default: export_dir or .)")
	fs.StringVar(&c.format, "format", "", "png or json (default: from -o, else png)")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy to the clipboard instead of writing a file")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.format == "" {
		c.format = strings.TrimPrefix(strings.ToLower(filepath.Ext(c.output)), ".")
	}
	switch c.format {
	case "", "png":
		c.format = "png"
	case "json":
	default:
		return nil, usageError(c, "unsupported format %q, want png or json", c.format)
	}
	if c.toClipboard && c.output != "" {
		return nil, usageError(c, "-o cannot be used with -to-clipboard")
	}
	return c, nil
}

func (c *exportCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *exportCmd) Run() error {
	ctx := context.Background()
	st, err := c.openStore()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer st.Close()
	ws, err := c.openWorkspace(ctx, st, c.id)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if c.toClipboard {
		if c.format == "json" {
			err = ws.CopyJSON()
		} else {
			err = ws.CopyPNG()
		}
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Fprintf(c.stdout(), "copied %s to the clipboard\n", c.format)
		return nil
	}

	out := c.output
	if out == "" && c.config != nil {
		out = c.config.ExportDir
	}
	var path string
	if c.format == "json" {
		path, err = ws.ExportJSON(out)
	} else {
		path, err = ws.ExportPNG(out)
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Fprintln(c.stdout(), path)
	return nil
}
