package selekt

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"selekt/internal/tree"
)

const (
	DefaultSelectedMarker = "is-selected"
	DefaultIgnoreMarker   = "ignore"
)

// Selection is the payload of an OnSelect notification
type Selection struct {
	// Items in container order, or reversed for an upward shift range when
	// Options.PreserveRangeDirection is set
	Items []tree.Node
	// Last is the item the interaction targeted
	Last tree.Node
	Mode Mode
}

// Options configures an Engine. The zero value is usable.
type Options struct {
	// Name labels the engine in logs and bus events. Defaults to a random UUID.
	Name string

	// Ignore excludes children from selection and ordering. When nil, children
	// carrying IgnoreMarker are ignored.
	Ignore       func(tree.Node) bool
	IgnoreMarker string

	// SelectedMarker is set on selected items. Defaults to DefaultSelectedMarker.
	SelectedMarker string

	// ForceCtrl makes every press behave as if ctrl were held
	ForceCtrl bool

	// SingleSelect disables ctrl and shift handling; every press selects
	// exactly the pressed item.
	SingleSelect bool

	// PreserveRangeDirection reports upward shift ranges bottom to top in
	// Selection.Items. Engine.Selected is unaffected.
	PreserveRangeDirection bool

	// OnSelect runs after every applied selection step
	OnSelect func(Selection)
}

func (o Options) withDefaults() Options {
	if o.Name == "" {
		o.Name = uuid.NewString()
	}
	if o.SelectedMarker == "" {
		o.SelectedMarker = DefaultSelectedMarker
	}
	if o.IgnoreMarker == "" {
		o.IgnoreMarker = DefaultIgnoreMarker
	}
	if o.Ignore == nil {
		marker := o.IgnoreMarker
		o.Ignore = func(n tree.Node) bool {
			return n.HasMarker(marker)
		}
	}
	return o
}

func (o Options) validate() error {
	for _, m := range []string{o.SelectedMarker, o.IgnoreMarker} {
		if strings.ContainsAny(m, " \t\r\n") {
			return fmt.Errorf("%w: %q", ErrInvalidMarker, m)
		}
	}
	if o.SelectedMarker == o.IgnoreMarker {
		return fmt.Errorf("%w: selected and ignore markers are both %q", ErrInvalidMarker, o.SelectedMarker)
	}
	return nil
}
