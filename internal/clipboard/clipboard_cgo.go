//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import "golang.design/x/clipboard"

type designBackend struct{}

func openBackend() (backend, error) {
	if !hasDisplay() {
		return nil, errNoDisplay
	}
	if err := clipboard.Init(); err != nil {
		return nil, err
	}
	return designBackend{}, nil
}

func (designBackend) writePNG(data []byte) error {
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

func (designBackend) writeText(data []byte) error {
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

func (designBackend) readText() ([]byte, error) {
	return clipboard.Read(clipboard.FmtText), nil
}
