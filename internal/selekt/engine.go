package selekt

import (
	"fmt"
	"log"

	"selekt/internal/dispatch"
	"selekt/internal/domain"
	"selekt/internal/tree"
)

// Engine selects children of one container in response to pointer events.
// It is not safe for concurrent use; drive it from the goroutine that calls
// Dispatch.
type Engine struct {
	name      string
	container tree.Node
	arb       *Arbiter
	opts      Options
	store     *Store
	dis       disambiguator

	enabled   bool
	forceCtrl bool
	touch     bool // a touch gesture is in progress
	destroyed bool

	last tree.Node
	offs []func()
}

// New binds an engine to container and registers it with arb.
func New(container tree.Node, arb *Arbiter, opts Options) (*Engine, error) {
	if container == nil {
		return nil, ErrNilContainer
	}
	if arb == nil {
		return nil, ErrNilArbiter
	}
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("engine %s: %w", opts.Name, err)
	}

	e := &Engine{
		name:      opts.Name,
		container: container,
		arb:       arb,
		opts:      opts,
		store:     NewStore(opts.SelectedMarker),
		enabled:   true,
		forceCtrl: opts.ForceCtrl,
	}

	d := arb.Dispatcher()
	e.offs = append(e.offs,
		d.On(container, dispatch.PointerDown, e.handlePress),
		d.On(container, dispatch.TouchStart, e.handleTouchStart),
	)
	arb.register(e)

	return e, nil
}

// Name returns the engine label
func (e *Engine) Name() string {
	return e.name
}

// Container returns the bound container
func (e *Engine) Container() tree.Node {
	return e.container
}

// State returns the press/release state
func (e *Engine) State() State {
	return e.dis.state
}

// Enabled reports whether presses are processed
func (e *Engine) Enabled() bool {
	return e.enabled
}

// Enable resumes press handling once the current dispatch has finished, so
// the release that ends a drag is not taken for a click.
func (e *Engine) Enable() {
	if e.destroyed {
		return
	}
	e.arb.Dispatcher().Defer(func() {
		e.setEnabled(true)
	})
}

// Disable stops press handling. The current selection is kept.
func (e *Engine) Disable() {
	if e.destroyed {
		return
	}
	e.setEnabled(false)
}

func (e *Engine) setEnabled(on bool) {
	if e.destroyed || e.enabled == on {
		return
	}
	e.enabled = on
	if !on {
		e.dis.reset()
	}
	e.logf("enabled=%t", on)
	e.arb.bus.Publish(domain.EngineToggledEvent{Engine: e.name, Enabled: on})
}

// ForceCtrl reports whether every press behaves as if ctrl were held
func (e *Engine) ForceCtrl() bool {
	return e.forceCtrl
}

// SetForceCtrl sets the forced-ctrl flag. A nil state flips it.
func (e *Engine) SetForceCtrl(state *bool) {
	if e.destroyed {
		return
	}
	next := !e.forceCtrl
	if state != nil {
		next = *state
	}
	if next == e.forceCtrl {
		return
	}
	e.forceCtrl = next
	e.arb.bus.Publish(domain.ForceCtrlChangedEvent{Engine: e.name, Enabled: next})
}

// ToggleForceCtrl flips the forced-ctrl flag
func (e *Engine) ToggleForceCtrl() {
	e.SetForceCtrl(nil)
}

// Selected returns the selection in container order
func (e *Engine) Selected() []tree.Node {
	return e.store.Ordered(Eligible(e.container, e.opts.Ignore))
}

// Pivot returns the range anchor, nil if none
func (e *Engine) Pivot() tree.Node {
	return e.store.Pivot()
}

// Last returns the item targeted by the last applied selection
func (e *Engine) Last() tree.Node {
	return e.last
}

// Clear empties the selection and pivot. OnSelect is not called; a
// SelectionClearedEvent is published if anything was selected.
func (e *Engine) Clear() {
	if e.destroyed {
		return
	}
	e.arb.release(e, domain.ClearExplicit)
}

// Destroy clears the selection and removes every listener the engine
// registered. Other engines are not affected. Later calls are no-ops.
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	e.reset(domain.ClearDestroyed)
	for _, off := range e.offs {
		off()
	}
	e.offs = nil
	e.arb.unregister(e)
	e.destroyed = true
	e.logf("destroyed")
}

// reset clears the selection and cancels a pending release.
func (e *Engine) reset(reason domain.ClearReason) {
	e.dis.reset()
	e.last = nil
	if n := e.store.Clear(); n > 0 {
		e.arb.bus.Publish(domain.SelectionClearedEvent{Engine: e.name, Reason: reason, Count: n})
	}
}

func (e *Engine) mode(mods dispatch.Modifiers) Mode {
	return Classify(mods, e.forceCtrl || e.touch)
}

func (e *Engine) handleTouchStart(*dispatch.Event) {
	if !e.enabled {
		return
	}
	e.touch = true
}

func (e *Engine) handlePress(ev *dispatch.Event) {
	if !e.enabled || e.arb.busyElsewhere(e) {
		return
	}

	item := Resolve(e.container, ev.Target, e.opts.Ignore)
	if item == nil {
		e.arb.clearActive(domain.ClearNoItem)
		return
	}

	e.arb.claim(e)
	e.arb.activate(e)

	mode := e.mode(ev.Mods)
	if mode != ModeNone {
		ev.PreventDefault()
	}

	e.dis.reset()
	if e.dis.shouldDefer(e.store.Has(item), mode) {
		off := e.arb.Dispatcher().Once(item, dispatch.PointerUp, func(rel *dispatch.Event) {
			e.handleDeferredRelease(item, rel)
		})
		e.dis.arm(item, off)
		return
	}

	e.apply(item, mode)
}

func (e *Engine) handleDeferredRelease(item tree.Node, ev *dispatch.Event) {
	if !e.dis.fire(item) || !e.enabled {
		return
	}
	// The item may have been moved out of the container since the press
	if Resolve(e.container, ev.Target, e.opts.Ignore) != item {
		return
	}

	mode := e.mode(ev.Mods)
	if mode != ModeNone {
		ev.PreventDefault()
	}
	e.apply(item, mode)
}

// apply runs one selection step on item and notifies.
func (e *Engine) apply(item tree.Node, mode Mode) {
	siblings := Eligible(e.container, e.opts.Ignore)
	e.store.Prune(siblings)

	res := Apply(e.store.Set(), e.store.Pivot(), siblings, item, mode, !e.opts.SingleSelect)
	e.store.Commit(res.Set, res.Pivot)
	e.last = item

	sel := Selection{
		Items: e.store.Ordered(siblings),
		Last:  item,
		Mode:  mode,
	}
	if e.opts.PreserveRangeDirection && mode == ModeShift && res.Upward {
		for i, j := 0, len(sel.Items)-1; i < j; i, j = i+1, j-1 {
			sel.Items[i], sel.Items[j] = sel.Items[j], sel.Items[i]
		}
	}

	e.arb.bus.Publish(domain.SelectionChangedEvent{
		Engine: e.name,
		Items:  labels(sel.Items),
		Last:   label(item),
		Mode:   mode.String(),
	})
	if e.opts.OnSelect != nil {
		e.opts.OnSelect(sel)
	}
}

func label(n tree.Node) string {
	if s, ok := n.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%p", n)
}

func labels(ns []tree.Node) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = label(n)
	}
	return out
}

func (e *Engine) logf(format string, args ...interface{}) {
	log.Printf("Engine %s: "+format, append([]interface{}{e.name}, args...)...)
}
