package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader finds and reads the configuration file.
type Loader struct {
	Version      string // build version; "dev" enables ./.stageplotrc
	OverridePath string // set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the first configuration file found, or returns defaults when
// there is none.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// GetConfigPath returns the configuration file to use, or "" if none exists.
func (l *Loader) GetConfigPath() string {
	for _, path := range l.candidates() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// SavePath is where "config save" writes: the file in use, or the XDG
// location when there is none yet.
func (l *Loader) SavePath() string {
	if path := l.GetConfigPath(); path != "" {
		return path
	}
	return filepath.Join(configDir(), "config.rc")
}

// Save writes cfg to SavePath and returns the path written.
func (l *Loader) Save(cfg *Config) (string, error) {
	path := l.SavePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(cfg.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (l *Loader) candidates() []string {
	var out []string
	if l.OverridePath != "" {
		out = append(out, l.OverridePath)
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			out = append(out, filepath.Join(wd, ".stageplotrc"))
		}
	}
	dir := configDir()
	return append(out, filepath.Join(dir, "config.rc"), filepath.Join(dir, "stageplot.rc"))
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "stageplot")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "stageplot")
}

// DataDir is where the database lives by default.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "stageplot")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "stageplot")
}

// DefaultDBPath returns the database path used when none is configured.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "stageplot.db")
}
