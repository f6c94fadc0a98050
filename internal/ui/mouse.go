package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"selekt/internal/dispatch"
	"selekt/internal/tree"
)

// PointerEvent converts a left button press or release into a dispatch event
// targeted at the innermost element under the cursor. Other mouse messages
// report false.
//
// Terminals rarely pass ctrl+click through, so alt counts as meta.
func PointerEvent(root *tree.Element, msg tea.MouseMsg) (*dispatch.Event, bool) {
	var kind dispatch.Kind
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil, false
		}
		kind = dispatch.PointerDown
	case tea.MouseActionRelease:
		// X10 mouse mode does not report which button was released
		if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonNone {
			return nil, false
		}
		kind = dispatch.PointerUp
	default:
		return nil, false
	}

	ev := &dispatch.Event{
		Kind: kind,
		X:    msg.X,
		Y:    msg.Y,
		Mods: dispatch.Modifiers{
			Ctrl:  msg.Ctrl,
			Meta:  msg.Alt,
			Shift: msg.Shift,
			Alt:   msg.Alt,
		},
	}
	// Keep Target a nil interface when nothing was hit
	if hit := tree.HitTest(root, msg.X, msg.Y); hit != nil {
		ev.Target = hit
	}
	return ev, true
}
