// Package assets holds the data files compiled into stageplot.
package assets

import (
	_ "embed"
)

// The default palette of stage templates.
//
//go:embed catalog.yaml
var catalog []byte

// Catalog returns a copy of the embedded template catalog.
func Catalog() []byte {
	out := make([]byte, len(catalog))
	copy(out, catalog)
	return out
}
