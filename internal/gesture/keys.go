package gesture

import "golang.org/x/mobile/event/key"

// Action is a keyboard command understood by the controller.
type Action int

const (
	ActionNone Action = iota
	ActionUndo
	ActionRedo
	ActionDelete
	ActionFlip
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionUndo:
		return "undo"
	case ActionRedo:
		return "redo"
	case ActionDelete:
		return "delete"
	case ActionFlip:
		return "flip"
	case ActionCancel:
		return "cancel"
	}
	return "none"
}

// KeyShortcut describes a key combination.
type KeyShortcut struct {
	Code      key.Code
	Modifiers key.Modifiers
}

var shortcuts = map[KeyShortcut]Action{
	{Code: key.CodeZ, Modifiers: key.ModControl}:                ActionUndo,
	{Code: key.CodeZ, Modifiers: key.ModMeta}:                   ActionUndo,
	{Code: key.CodeZ, Modifiers: key.ModControl | key.ModShift}: ActionRedo,
	{Code: key.CodeZ, Modifiers: key.ModMeta | key.ModShift}:    ActionRedo,
	{Code: key.CodeY, Modifiers: key.ModControl}:                ActionRedo,
	{Code: key.CodeDeleteBackspace}:                             ActionDelete,
	{Code: key.CodeDeleteForward}:                               ActionDelete,
	{Code: key.CodeF}:                                           ActionFlip,
	{Code: key.CodeEscape}:                                      ActionCancel,
}

// Lookup returns the action bound to e, if any.
func Lookup(e key.Event) Action {
	return shortcuts[KeyShortcut{Code: e.Code, Modifiers: e.Modifiers & modMask}]
}

// Shortcuts returns a copy of the key bindings.
func Shortcuts() map[KeyShortcut]Action {
	out := make(map[KeyShortcut]Action, len(shortcuts))
	for k, v := range shortcuts {
		out[k] = v
	}
	return out
}
