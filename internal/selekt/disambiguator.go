package selekt

import "selekt/internal/tree"

// State is the press/release state of an engine
type State int

const (
	// StateIdle means no press is waiting for its release
	StateIdle State = iota
	// StatePendingRelease means a press on an already selected item is
	// waiting for the release on that same item
	StatePendingRelease
)

func (s State) String() string {
	if s == StatePendingRelease {
		return "pending-release"
	}
	return "idle"
}

// disambiguator decides whether a press is evaluated immediately or on the
// matching release, and owns the one-shot release listener while pending.
type disambiguator struct {
	state  State
	item   tree.Node
	cancel func()
}

// shouldDefer reports whether a press must wait for its release. Only ctrl
// re-evaluates an already selected item on press; anything else could be the
// start of a drag.
func (d *disambiguator) shouldDefer(selected bool, mode Mode) bool {
	return selected && mode != ModeCtrl
}

// arm enters PendingRelease for item. cancel removes the release listener.
func (d *disambiguator) arm(item tree.Node, cancel func()) {
	d.reset()
	d.state = StatePendingRelease
	d.item = item
	d.cancel = cancel
}

// fire consumes the pending release if it belongs to item.
func (d *disambiguator) fire(item tree.Node) bool {
	if d.state != StatePendingRelease || d.item != item {
		return false
	}
	d.reset()
	return true
}

// reset returns to Idle, removing a pending release listener.
func (d *disambiguator) reset() {
	if d.cancel != nil {
		d.cancel()
	}
	d.state = StateIdle
	d.item = nil
	d.cancel = nil
}
