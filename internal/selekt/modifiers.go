package selekt

import "selekt/internal/dispatch"

// Mode is the selection behaviour selected by the modifier keys
type Mode int

const (
	// ModeNone selects the pressed item alone
	ModeNone Mode = iota
	// ModeCtrl toggles the pressed item in or out of the selection
	ModeCtrl
	// ModeShift selects the range between the pivot and the pressed item
	ModeShift
)

func (m Mode) String() string {
	switch m {
	case ModeCtrl:
		return "ctrl"
	case ModeShift:
		return "shift"
	default:
		return "none"
	}
}

// Classify folds the event modifiers and the forced-ctrl flag into one mode.
// Shift wins over ctrl, so a forced-ctrl engine can still select ranges.
func Classify(mods dispatch.Modifiers, forceCtrl bool) Mode {
	if mods.Shift {
		return ModeShift
	}
	if forceCtrl || mods.Ctrl || mods.Meta {
		return ModeCtrl
	}
	return ModeNone
}
