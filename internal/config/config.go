// Package config reads and writes the stageplot rc file.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/stageplot/internal/history"
	"github.com/example/stageplot/internal/selection"
	"github.com/example/stageplot/internal/stage"
	"github.com/example/stageplot/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Export bool
	Copy   bool
}

// Gesture holds pointer recognition thresholds in stage pixels.
type Gesture struct {
	DeadZone   float64
	HandleSize float64
	MinSize    float64
}

// Config holds the application configuration.
type Config struct {
	Theme       string
	DBPath      string
	User        string
	ExportDir   string
	Catalog     string
	StageWidth  float64
	StageHeight float64
	HistoryMax  int
	Gesture     Gesture
	Notify      Notify
	Themes      map[string]*theme.Theme
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		StageWidth:  1200,
		StageHeight: 800,
		HistoryMax:  history.DefaultMaxEntries,
		Gesture: Gesture{
			DeadZone:   selection.DefaultDeadZone,
			HandleSize: 8,
			MinSize:    stage.MinSide,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// StageSize returns the configured stage dimensions.
func (c *Config) StageSize() stage.Size {
	return stage.Size{Width: c.StageWidth, Height: c.StageHeight}
}

// String returns the configuration in rc format.
func (c *Config) String() string {
	var sb strings.Builder

	root := []struct{ key, value string }{
		{"theme", c.Theme},
		{"db_path", c.DBPath},
		{"user", c.User},
		{"export_dir", c.ExportDir},
		{"catalog", c.Catalog},
	}
	for _, kv := range root {
		if kv.value != "" {
			fmt.Fprintf(&sb, "%s = %s\n", kv.key, kv.value)
		}
	}
	fmt.Fprintf(&sb, "stage_width = %g\n", c.StageWidth)
	fmt.Fprintf(&sb, "stage_height = %g\n", c.StageHeight)
	sb.WriteString("\n")

	sb.WriteString("[history]\n")
	fmt.Fprintf(&sb, "max_entries = %d\n\n", c.HistoryMax)

	sb.WriteString("[gesture]\n")
	fmt.Fprintf(&sb, "dead_zone = %g\n", c.Gesture.DeadZone)
	fmt.Fprintf(&sb, "handle_size = %g\n", c.Gesture.HandleSize)
	fmt.Fprintf(&sb, "min_size = %g\n\n", c.Gesture.MinSize)

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	var names []string
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = theme.Format(&sb, c.Themes[name])
		sb.WriteString("\n")
	}
	return sb.String()
}
