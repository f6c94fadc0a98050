package dispatch

import (
	"selekt/internal/tree"
)

// Kind identifies a pointer interaction
type Kind int

const (
	PointerDown Kind = iota
	PointerUp
	TouchStart
)

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "pointerdown"
	case PointerUp:
		return "pointerup"
	case TouchStart:
		return "touchstart"
	default:
		return "unknown"
	}
}

// ParseKind maps a configuration string onto a press or release kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "", "press", "pointerdown":
		return PointerDown, true
	case "release", "pointerup":
		return PointerUp, true
	default:
		return PointerDown, false
	}
}

// Modifiers are the keyboard modifiers held during an interaction.
type Modifiers struct {
	Ctrl  bool
	Meta  bool
	Shift bool
	Alt   bool
}

// Event is one pointer interaction delivered to listeners.
type Event struct {
	Kind   Kind
	Target tree.Node // innermost node under the pointer, nil when outside the tree
	X, Y   int
	Mods   Modifiers

	defaultPrevented bool
}

// PreventDefault marks the event as consumed so the host skips its own
// handling (text selection, focus changes).
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Handler is a listener callback
type Handler func(*Event)

type listener struct {
	kind    Kind
	fn      Handler
	once    bool
	removed bool
}

// Dispatcher delivers events along the ancestor path of their target, then
// to window listeners. It is single threaded: listeners run synchronously
// inside Dispatch and must not call Dispatch re-entrantly.
type Dispatcher struct {
	nodes    map[tree.Node][]*listener
	window   []*listener
	deferred []func()
	active   bool
}

// New creates a dispatcher with no listeners
func New() *Dispatcher {
	return &Dispatcher{
		nodes: make(map[tree.Node][]*listener),
	}
}

// On registers fn for events of kind whose target is node or one of its
// descendants. The returned func removes the listener; calling it twice is safe.
func (d *Dispatcher) On(node tree.Node, kind Kind, fn Handler) func() {
	return d.add(node, &listener{kind: kind, fn: fn})
}

// Once is like On but the listener removes itself before its first call.
func (d *Dispatcher) Once(node tree.Node, kind Kind, fn Handler) func() {
	return d.add(node, &listener{kind: kind, fn: fn, once: true})
}

// OnWindow registers fn for every event of kind, after node listeners ran.
func (d *Dispatcher) OnWindow(kind Kind, fn Handler) func() {
	l := &listener{kind: kind, fn: fn}
	d.window = append(d.window, l)
	return func() {
		if l.removed {
			return
		}
		l.removed = true
		d.window = without(d.window, l)
	}
}

func (d *Dispatcher) add(node tree.Node, l *listener) func() {
	d.nodes[node] = append(d.nodes[node], l)
	return func() {
		d.remove(node, l)
	}
}

func (d *Dispatcher) remove(node tree.Node, l *listener) {
	if l.removed {
		return
	}
	l.removed = true
	rest := without(d.nodes[node], l)
	if len(rest) == 0 {
		delete(d.nodes, node)
		return
	}
	d.nodes[node] = rest
}

func without(ls []*listener, l *listener) []*listener {
	out := make([]*listener, 0, len(ls))
	for _, x := range ls {
		if x != l {
			out = append(out, x)
		}
	}
	return out
}

// Defer schedules fn to run once the current dispatch has finished.
// Outside of a dispatch fn runs immediately.
func (d *Dispatcher) Defer(fn func()) {
	if !d.active {
		fn()
		return
	}
	d.deferred = append(d.deferred, fn)
}

// Dispatching reports whether Dispatch is on the stack
func (d *Dispatcher) Dispatching() bool {
	return d.active
}

// Dispatch delivers ev to the listeners on the target's ancestor path,
// innermost first, then to window listeners, then runs deferred callbacks.
func (d *Dispatcher) Dispatch(ev *Event) {
	d.active = true
	for n := ev.Target; n != nil; n = n.Parent() {
		d.invoke(n, d.nodes[n], ev)
	}
	d.invoke(nil, d.window, ev)
	d.active = false

	for len(d.deferred) > 0 {
		fns := d.deferred
		d.deferred = nil
		for _, fn := range fns {
			fn()
		}
	}
}

func (d *Dispatcher) invoke(node tree.Node, ls []*listener, ev *Event) {
	if len(ls) == 0 {
		return
	}
	snapshot := append([]*listener(nil), ls...)
	for _, l := range snapshot {
		if l.removed || l.kind != ev.Kind {
			continue
		}
		if l.once {
			d.remove(node, l)
		}
		l.fn(ev)
	}
}

// Listeners returns the number of live listeners registered on node
func (d *Dispatcher) Listeners(node tree.Node) int {
	return len(d.nodes[node])
}

// WindowListeners returns the number of live window listeners
func (d *Dispatcher) WindowListeners() int {
	return len(d.window)
}
