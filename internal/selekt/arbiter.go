package selekt

import (
	"log"

	"selekt/internal/dispatch"
	"selekt/internal/domain"
	"selekt/internal/eventbus"
	"selekt/internal/tree"
)

// ArbiterConfig configures the state shared by a group of engines
type ArbiterConfig struct {
	// ClearOn is the interaction that clears the active engine when it lands
	// outside its container: dispatch.PointerDown (default) or dispatch.PointerUp.
	ClearOn dispatch.Kind

	// Bus receives selection events. Defaults to a NullBus.
	Bus eventbus.EventBus
}

// Arbiter is the state shared by every engine of one application: which
// engine is active, which engine handled the press of the current dispatch,
// and the window listeners that clear selections on outside clicks.
type Arbiter struct {
	d       *dispatch.Dispatcher
	clearOn dispatch.Kind
	bus     eventbus.EventBus

	engines []*Engine
	active  *Engine
	busy    *Engine

	installed bool
	offs      []func()
}

// NewArbiter creates an arbiter on d. A nil d gets a fresh dispatcher.
func NewArbiter(d *dispatch.Dispatcher, cfg ArbiterConfig) *Arbiter {
	if d == nil {
		d = dispatch.New()
	}
	if cfg.ClearOn != dispatch.PointerUp {
		cfg.ClearOn = dispatch.PointerDown
	}
	if cfg.Bus == nil {
		cfg.Bus = eventbus.NullBus{}
	}
	return &Arbiter{
		d:       d,
		clearOn: cfg.ClearOn,
		bus:     cfg.Bus,
	}
}

// Dispatcher returns the dispatcher the engines listen on
func (a *Arbiter) Dispatcher() *dispatch.Dispatcher {
	return a.d
}

// Active returns the active engine, nil if none
func (a *Arbiter) Active() *Engine {
	return a.active
}

// Busy reports whether a press of the current dispatch has been claimed
func (a *Arbiter) Busy() bool {
	return a.busy != nil
}

// Engines returns the live engines in registration order
func (a *Arbiter) Engines() []*Engine {
	return append([]*Engine(nil), a.engines...)
}

func (a *Arbiter) register(e *Engine) {
	a.engines = append(a.engines, e)
	if !a.installed {
		a.install()
	}
}

func (a *Arbiter) unregister(e *Engine) {
	for i, x := range a.engines {
		if x == e {
			a.engines = append(a.engines[:i], a.engines[i+1:]...)
			break
		}
	}
	if a.active == e {
		a.active = nil
	}
	if a.busy == e {
		a.busy = nil
	}
	if len(a.engines) == 0 {
		a.uninstall()
	}
}

// install adds the window listeners once, however many engines register.
func (a *Arbiter) install() {
	a.offs = append(a.offs,
		a.d.OnWindow(a.clearOn, a.handleOutside),
		a.d.OnWindow(dispatch.PointerUp, a.settle),
	)
	a.installed = true
}

func (a *Arbiter) uninstall() {
	for _, off := range a.offs {
		off()
	}
	a.offs = nil
	a.installed = false
}

// busyElsewhere reports whether another engine already handled this press.
func (a *Arbiter) busyElsewhere(e *Engine) bool {
	return a.busy != nil && a.busy != e
}

// claim marks e as the handler of the current press until the dispatch ends.
func (a *Arbiter) claim(e *Engine) {
	if a.busy != nil {
		return
	}
	a.busy = e
	a.d.Defer(func() {
		a.busy = nil
	})
}

// activate makes e the active engine, clearing the previous one first.
func (a *Arbiter) activate(e *Engine) {
	if a.active == e {
		return
	}
	prev := a.active
	prevName := ""
	if prev != nil {
		prevName = prev.name
		prev.reset(domain.ClearDeactivated)
		log.Printf("Arbiter: engine %s deactivated by %s", prev.name, e.name)
	}
	a.active = e
	a.bus.Publish(domain.EngineActivatedEvent{Engine: e.name, Previous: prevName})
}

// release unsets e as active engine and clears it.
func (a *Arbiter) release(e *Engine, reason domain.ClearReason) {
	if a.active == e {
		a.active = nil
	}
	e.reset(reason)
}

// clearActive clears whichever engine is active.
func (a *Arbiter) clearActive(reason domain.ClearReason) {
	if a.active != nil {
		a.release(a.active, reason)
	}
}

// handleOutside clears the active engine when the interaction landed
// outside its container.
func (a *Arbiter) handleOutside(ev *dispatch.Event) {
	e := a.active
	if e == nil || e.store.Len() == 0 {
		return
	}
	if tree.Contains(e.container, ev.Target) {
		return
	}
	log.Printf("Arbiter: outside %s clears engine %s", ev.Kind, e.name)
	a.release(e, domain.ClearOutsideClick)
}

// settle runs after every release has reached its listeners. A press still
// waiting for its release at this point was dragged away from its item.
func (a *Arbiter) settle(*dispatch.Event) {
	for _, e := range a.engines {
		e.dis.reset()
		e.touch = false
	}
}
