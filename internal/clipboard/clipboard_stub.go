//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "errors"

func openBackend() (backend, error) {
	return nil, errors.New("clipboard is not supported on this platform")
}
