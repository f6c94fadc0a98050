package selekt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"selekt/internal/dispatch"
	"selekt/internal/tree"
)

// fixture is a page with a root node and any number of lists
type fixture struct {
	t    *testing.T
	d    *dispatch.Dispatcher
	arb  *Arbiter
	root *tree.Element
}

func newFixture(t *testing.T, cfg ArbiterConfig) *fixture {
	d := dispatch.New()
	return &fixture{
		t:    t,
		d:    d,
		arb:  NewArbiter(d, cfg),
		root: tree.NewElement("root"),
	}
}

// list appends a container with one child per name. Names prefixed with "!"
// get the ignore marker.
func (f *fixture) list(name string, items ...string) (*tree.Element, map[string]*tree.Element) {
	list := tree.NewElement(name)
	byName := make(map[string]*tree.Element, len(items))
	for _, it := range items {
		var el *tree.Element
		if len(it) > 0 && it[0] == '!' {
			el = tree.NewElement(it[1:], DefaultIgnoreMarker)
			byName[it[1:]] = el
		} else {
			el = tree.NewElement(it)
			byName[it] = el
		}
		list.Append(el)
	}
	f.root.Append(list)
	return list, byName
}

func (f *fixture) engine(container tree.Node, opts Options) *Engine {
	f.t.Helper()
	e, err := New(container, f.arb, opts)
	require.NoError(f.t, err)
	return e
}

func (f *fixture) press(target tree.Node, mods dispatch.Modifiers) *dispatch.Event {
	ev := &dispatch.Event{Kind: dispatch.PointerDown, Target: target, Mods: mods}
	f.d.Dispatch(ev)
	return ev
}

func (f *fixture) release(target tree.Node, mods dispatch.Modifiers) *dispatch.Event {
	ev := &dispatch.Event{Kind: dispatch.PointerUp, Target: target, Mods: mods}
	f.d.Dispatch(ev)
	return ev
}

func (f *fixture) click(target tree.Node, mods dispatch.Modifiers) {
	f.press(target, mods)
	f.release(target, mods)
}

func (f *fixture) touch(target tree.Node) {
	f.d.Dispatch(&dispatch.Event{Kind: dispatch.TouchStart, Target: target})
}

var (
	none  = dispatch.Modifiers{}
	ctrl  = dispatch.Modifiers{Ctrl: true}
	meta  = dispatch.Modifiers{Meta: true}
	shift = dispatch.Modifiers{Shift: true}
)

func names(ns []tree.Node) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.(*tree.Element).Name)
	}
	return out
}

func nodes(els ...*tree.Element) []tree.Node {
	out := make([]tree.Node, len(els))
	for i, el := range els {
		out[i] = el
	}
	return out
}
