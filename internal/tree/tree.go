package tree

// Node is an element of the host widget tree.
//
// Implementations must be identity-comparable (pointer types) and must return
// a nil interface, not a typed nil, from Parent when there is no parent.
type Node interface {
	Parent() Node
	Children() []Node
	HasMarker(name string) bool
	SetMarker(name string, on bool)
}

// Rect is a cell rectangle on screen
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Element is the default Node implementation used by the terminal front-end
// and by tests.
type Element struct {
	Name    string
	Bounds  Rect
	parent  *Element
	kids    []*Element
	markers map[string]bool
}

// NewElement creates a detached element
func NewElement(name string, markers ...string) *Element {
	e := &Element{
		Name:    name,
		markers: make(map[string]bool),
	}
	for _, m := range markers {
		e.markers[m] = true
	}
	return e
}

// Parent returns the parent element or nil for a root
func (e *Element) Parent() Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// Children returns the element's children in order
func (e *Element) Children() []Node {
	out := make([]Node, len(e.kids))
	for i, k := range e.kids {
		out[i] = k
	}
	return out
}

// Elements returns the children as concrete elements
func (e *Element) Elements() []*Element {
	return append([]*Element(nil), e.kids...)
}

// HasMarker reports whether the marker is set
func (e *Element) HasMarker(name string) bool {
	return e.markers[name]
}

// SetMarker sets or clears a marker. Setting a marker to its current value is a no-op.
func (e *Element) SetMarker(name string, on bool) {
	if on {
		e.markers[name] = true
		return
	}
	delete(e.markers, name)
}

// Append attaches children at the end, detaching them from any previous parent.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = e
		e.kids = append(e.kids, c)
	}
	return e
}

// Insert attaches child at index i, clamped to the valid range.
func (e *Element) Insert(i int, child *Element) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	if i < 0 {
		i = 0
	}
	if i > len(e.kids) {
		i = len(e.kids)
	}
	child.parent = e
	e.kids = append(e.kids, nil)
	copy(e.kids[i+1:], e.kids[i:])
	e.kids[i] = child
}

// Remove detaches child. It reports false if child was not a child of e.
func (e *Element) Remove(child *Element) bool {
	for i, k := range e.kids {
		if k == child {
			e.kids = append(e.kids[:i], e.kids[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// String returns the element name
func (e *Element) String() string {
	return e.Name
}

// Contains reports whether node is ancestor or node itself.
func Contains(ancestor, node Node) bool {
	if ancestor == nil {
		return false
	}
	for n := node; n != nil; n = n.Parent() {
		if n == ancestor {
			return true
		}
	}
	return false
}

// IndexOf returns the position of n in nodes, or -1.
func IndexOf(nodes []Node, n Node) int {
	for i, c := range nodes {
		if c == n {
			return i
		}
	}
	return -1
}

// HitTest returns the innermost element under (x, y), searching depth first
// and preferring later siblings, which are drawn on top. Elements with empty
// bounds are transparent but their children are still searched.
func HitTest(root *Element, x, y int) *Element {
	if root == nil {
		return nil
	}
	for i := len(root.kids) - 1; i >= 0; i-- {
		if hit := HitTest(root.kids[i], x, y); hit != nil {
			return hit
		}
	}
	if !root.Bounds.Empty() && root.Bounds.Contains(x, y) {
		return root
	}
	return nil
}
