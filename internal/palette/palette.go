// Package palette loads the catalog of templates items are placed from.
package palette

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/stageplot/assets"
	"github.com/example/stageplot/internal/stage"
)

// ErrDuplicateKey is returned when two templates share a key.
var ErrDuplicateKey = errors.New("duplicate template key")

// Catalog is an ordered set of templates.
type Catalog struct {
	templates []stage.Template
	byKey     map[string]int
}

type document struct {
	Templates []stage.Template `yaml:"templates"`
}

// Parse reads a YAML catalog. Templates without a name use their key, and
// templates without a category are filed under "Other".
func Parse(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("palette: decode: %w", err)
	}
	c := &Catalog{byKey: make(map[string]int, len(doc.Templates))}
	for i, t := range doc.Templates {
		t.Key = strings.TrimSpace(t.Key)
		if t.Key == "" {
			return nil, fmt.Errorf("palette: template %d has no key", i)
		}
		if _, ok := c.byKey[t.Key]; ok {
			return nil, fmt.Errorf("palette: %q: %w", t.Key, ErrDuplicateKey)
		}
		if t.Name == "" {
			t.Name = t.Key
		}
		if t.Category == "" {
			t.Category = "Other"
		}
		c.byKey[t.Key] = len(c.templates)
		c.templates = append(c.templates, t)
	}
	return c, nil
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(bytes.NewReader(assets.Catalog()))
}

// Load reads the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Templates returns the templates in catalog order.
func (c *Catalog) Templates() []stage.Template {
	return append([]stage.Template(nil), c.templates...)
}

// Len returns the number of templates.
func (c *Catalog) Len() int { return len(c.templates) }

// Lookup finds a template by key.
func (c *Catalog) Lookup(key string) (stage.Template, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return stage.Template{}, false
	}
	return c.templates[i], true
}

// Categories lists the distinct categories, sorted.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range c.templates {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Strings(out)
	return out
}

// InCategory returns the templates filed under category, in catalog order.
func (c *Catalog) InCategory(category string) []stage.Template {
	var out []stage.Template
	for _, t := range c.templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}
