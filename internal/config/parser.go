package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/stageplot/internal/theme"
)

// Parse reads configuration in rc format: optional [section] headers,
// "key = value" or "Key: value" lines, and # or // comments.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			current = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				current = theme.Default()
				current.Name = name
				cfg.Themes[name] = current
			}
			continue
		}

		key, value, ok := splitLine(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case current != nil:
			err = theme.SetField(current, key, value)
		case section == "":
			err = setRootField(cfg, key, value)
		case section == "history":
			err = setHistoryField(cfg, key, value)
		case section == "gesture":
			err = setGestureField(&cfg.Gesture, key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			if section == "" {
				return nil, fmt.Errorf("line %d: root section: %w", lineNo, err)
			}
			return nil, fmt.Errorf("line %d: section [%s]: %w", lineNo, section, err)
		}
	}
	return cfg, scanner.Err()
}

func splitLine(line string) (string, string, bool) {
	sep := strings.IndexAny(line, "=:")
	if sep < 0 {
		return "", "", false
	}
	key := strings.TrimSpace(line[:sep])
	value := strings.TrimSpace(line[sep+1:])
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return key, value, key != ""
}

func setRootField(cfg *Config, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "db_path":
		cfg.DBPath = value
	case "user":
		cfg.User = value
	case "export_dir":
		cfg.ExportDir = value
	case "catalog":
		cfg.Catalog = value
	case "stage_width":
		cfg.StageWidth, err = positive(key, value)
	case "stage_height":
		cfg.StageHeight, err = positive(key, value)
	}
	return err
}

func setHistoryField(cfg *Config, key, value string) error {
	if strings.ToLower(key) != "max_entries" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 2 {
		return fmt.Errorf("invalid max_entries %q: want an integer of at least 2", value)
	}
	cfg.HistoryMax = n
	return nil
}

func setGestureField(g *Gesture, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "dead_zone":
		g.DeadZone, err = positive(key, value)
	case "handle_size":
		g.HandleSize, err = positive(key, value)
	case "min_size":
		g.MinSize, err = positive(key, value)
	}
	return err
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func positive(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s %q: want a positive number", key, value)
	}
	return v, nil
}
