package gesture

import "golang.org/x/mobile/event/key"

// Input is the modifier state the controller acts on. It is rebuilt from
// every pointer event and adjusted by modifier key presses.
type Input struct {
	Shift bool
	// Duplicate is held Alt/Option or Meta.
	Duplicate bool
	Control   bool
}

const modMask = key.ModShift | key.ModControl | key.ModAlt | key.ModMeta

func inputFrom(m key.Modifiers) Input {
	return Input{
		Shift:     m&key.ModShift != 0,
		Duplicate: m&(key.ModAlt|key.ModMeta) != 0,
		Control:   m&key.ModControl != 0,
	}
}

// withKey folds a key event into the modifier state. Drivers differ on
// whether a modifier's own press is reflected in e.Modifiers, so the key
// code decides for modifier keys.
func (in Input) withKey(e key.Event) Input {
	next := inputFrom(e.Modifiers)
	down := e.Direction != key.DirRelease
	switch e.Code {
	case key.CodeLeftShift, key.CodeRightShift:
		next.Shift = down
	case key.CodeLeftAlt, key.CodeRightAlt, key.CodeLeftGUI, key.CodeRightGUI:
		next.Duplicate = down
	case key.CodeLeftControl, key.CodeRightControl:
		next.Control = down
	}
	return next
}
