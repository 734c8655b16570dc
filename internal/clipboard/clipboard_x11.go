//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// x11Backend owns the CLIPBOARD selection through a hidden window and
// answers conversion requests from other clients.
type x11Backend struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atoms

	mu    sync.RWMutex
	text  []byte
	image []byte
}

type atoms struct {
	clipboard, targets, utf8, textPlain, png, property xproto.Atom
}

func openBackend() (backend, error) {
	if !hasDisplay() {
		return nil, errNoDisplay
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("clipboard: connect: %w", err)
	}
	b := &x11Backend{conn: conn}
	if err := b.setup(); err != nil {
		conn.Close()
		return nil, err
	}
	go b.serve()
	return b, nil
}

func (b *x11Backend) setup() error {
	screen := xproto.Setup(b.conn).DefaultScreen(b.conn)
	win, err := xproto.NewWindowId(b.conn)
	if err != nil {
		return err
	}
	mask := []uint32{xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify}
	err = xproto.CreateWindowChecked(b.conn, screen.RootDepth, win, screen.Root,
		0, 0, 1, 1, 0, xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwEventMask, mask).Check()
	if err != nil {
		return fmt.Errorf("clipboard: create window: %w", err)
	}
	b.window = win
	names := []struct {
		dst  *xproto.Atom
		name string
	}{
		{&b.atoms.clipboard, "CLIPBOARD"},
		{&b.atoms.targets, "TARGETS"},
		{&b.atoms.utf8, "UTF8_STRING"},
		{&b.atoms.textPlain, "text/plain;charset=utf-8"},
		{&b.atoms.png, "image/png"},
		{&b.atoms.property, "STAGEPLOT_SELECTION"},
	}
	for _, n := range names {
		reply, err := xproto.InternAtom(b.conn, false, uint16(len(n.name)), n.name).Reply()
		if err != nil {
			xproto.DestroyWindow(b.conn, win)
			return fmt.Errorf("clipboard: intern %s: %w", n.name, err)
		}
		*n.dst = reply.Atom
	}
	return nil
}

func (b *x11Backend) writePNG(data []byte) error {
	b.mu.Lock()
	b.image, b.text = append([]byte(nil), data...), nil
	b.mu.Unlock()
	return b.own()
}

func (b *x11Backend) writeText(data []byte) error {
	b.mu.Lock()
	b.text, b.image = append([]byte(nil), data...), nil
	b.mu.Unlock()
	return b.own()
}

func (b *x11Backend) own() error {
	return xproto.SetSelectionOwnerChecked(b.conn, b.window, b.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (b *x11Backend) serve() {
	for {
		ev, err := b.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			b.answer(e)
		case xproto.SelectionClearEvent:
			b.mu.Lock()
			b.text, b.image = nil, nil
			b.mu.Unlock()
		}
	}
}

// answer replies to one conversion request. The owner stores the payload on
// the requestor's property and then sends SelectionNotify.
func (b *x11Backend) answer(e xproto.SelectionRequestEvent) {
	prop := e.Property
	if prop == xproto.AtomNone {
		prop = e.Target
	}
	b.mu.RLock()
	text, img := b.text, b.image
	b.mu.RUnlock()

	var (
		typ     xproto.Atom
		format  byte = 8
		payload []byte
	)
	switch e.Target {
	case b.atoms.targets:
		list := []xproto.Atom{b.atoms.targets}
		if len(text) > 0 {
			list = append(list, b.atoms.utf8, xproto.AtomString, b.atoms.textPlain)
		}
		if len(img) > 0 {
			list = append(list, b.atoms.png)
		}
		payload = make([]byte, 4*len(list))
		for i, a := range list {
			xgb.Put32(payload[4*i:], uint32(a))
		}
		typ, format = xproto.AtomAtom, 32
	case b.atoms.utf8, xproto.AtomString, b.atoms.textPlain:
		payload, typ = text, b.atoms.utf8
	case b.atoms.png:
		payload, typ = img, b.atoms.png
	}
	if len(payload) == 0 {
		prop = xproto.AtomNone
	} else {
		units := uint32(len(payload))
		if format == 32 {
			units /= 4
		}
		xproto.ChangeProperty(b.conn, xproto.PropModeReplace, e.Requestor, prop, typ, format, units, payload)
	}
	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  prop,
	}
	xproto.SendEvent(b.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// readText asks the current owner for UTF-8 text on a throwaway connection,
// so the serving loop never sees the reply.
func (b *x11Backend) readText() ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	screen := xproto.Setup(conn).DefaultScreen(conn)
	win, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	err = xproto.CreateWindowChecked(conn, 0, win, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, win)

	err = xproto.ConvertSelectionChecked(conn, win, b.atoms.clipboard, b.atoms.utf8, b.atoms.property, xproto.TimeCurrentTime).Check()
	if err != nil {
		return nil, err
	}
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		n, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if n.Property == xproto.AtomNone {
			return nil, errEmpty
		}
		reply, perr := xproto.GetProperty(conn, true, win, b.atoms.property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, perr
		}
		return append([]byte(nil), reply.Value...), nil
	}
}
