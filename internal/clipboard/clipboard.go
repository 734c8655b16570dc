// Package clipboard publishes exported stage plots on the system clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"
)

type backend interface {
	writePNG(data []byte) error
	writeText(data []byte) error
	readText() ([]byte, error)
}

var (
	initOnce sync.Once
	initErr  error
	active   backend

	errNoDisplay = errors.New("clipboard requires DISPLAY or WAYLAND_DISPLAY")
	errEmpty     = errors.New("clipboard holds no text")
)

func ensureInit() error {
	initOnce.Do(func() {
		active, initErr = openBackend()
	})
	return initErr
}

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// WriteImage publishes img as PNG.
func WriteImage(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("clipboard: encode png: %w", err)
	}
	return WritePNG(buf.Bytes())
}

// WritePNG publishes already encoded PNG data.
func WritePNG(data []byte) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return active.writePNG(data)
}

// WriteText publishes UTF-8 text, used for JSON documents.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return active.writeText([]byte(text))
}

// ReadText returns the clipboard text.
func ReadText() (string, error) {
	if err := ensureInit(); err != nil {
		return "", err
	}
	data, err := active.readText()
	if err != nil {
		return "", err
	}
	data = bytes.TrimRight(data, "\x00")
	if len(data) == 0 {
		return "", errEmpty
	}
	return string(data), nil
}
