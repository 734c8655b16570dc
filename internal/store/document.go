package store

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/example/stageplot/internal/stage"
)

// DocumentVersion is written into exported documents.
const DocumentVersion = 1

// Document is the portable JSON form of a configuration.
type Document struct {
	Version  int               `json:"version"`
	Name     string            `json:"name"`
	Items    []stage.Item      `json:"items"`
	IOTable  []stage.Channel   `json:"ioTable,omitempty"`
	TechInfo map[string]string `json:"techInfo,omitempty"`
}

// EncodeDocument writes items and meta as an indented JSON document.
func EncodeDocument(w io.Writer, items []stage.Item, meta stage.Metadata) error {
	if items == nil {
		items = []stage.Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	doc := Document{
		Version:  DocumentVersion,
		Name:     meta.Name,
		Items:    items,
		IOTable:  meta.IOTable,
		TechInfo: meta.TechInfo,
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("store: encode document: %w", err)
	}
	return nil
}

// DecodeDocument reads a document written by EncodeDocument. Items with
// duplicate ids are dropped, keeping the first.
func DecodeDocument(r io.Reader) ([]stage.Item, stage.Metadata, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, stage.Metadata{}, fmt.Errorf("store: decode document: %w", err)
	}
	if doc.Version > DocumentVersion {
		return nil, stage.Metadata{}, fmt.Errorf("store: document version %d is newer than %d", doc.Version, DocumentVersion)
	}
	items, _ := stage.Dedupe(doc.Items)
	return items, stage.Metadata{Name: doc.Name, IOTable: doc.IOTable, TechInfo: doc.TechInfo}, nil
}
