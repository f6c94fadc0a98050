package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementParentIsNilInterfaceForRoot(t *testing.T) {
	root := NewElement("root")
	assert.Nil(t, root.Parent())
	assert.True(t, root.Parent() == nil, "root parent must be an untyped nil")
}

func TestAppendMovesBetweenParents(t *testing.T) {
	a := NewElement("a")
	b := NewElement("b")
	child := NewElement("child")

	a.Append(child)
	require.Len(t, a.Children(), 1)

	b.Append(child)
	assert.Empty(t, a.Children())
	require.Len(t, b.Children(), 1)
	assert.Equal(t, Node(b), child.Parent())
}

func TestInsertAndRemove(t *testing.T) {
	list := NewElement("list")
	a, b, c := NewElement("a"), NewElement("b"), NewElement("c")
	list.Append(a, c)
	list.Insert(1, b)

	assert.Equal(t, []*Element{a, b, c}, list.Elements())

	assert.True(t, list.Remove(b))
	assert.False(t, list.Remove(b))
	assert.Nil(t, b.Parent())
	assert.Equal(t, []*Element{a, c}, list.Elements())

	list.Insert(-5, b)
	assert.Equal(t, []*Element{b, a, c}, list.Elements())
}

func TestMarkers(t *testing.T) {
	e := NewElement("e", "ignore")
	assert.True(t, e.HasMarker("ignore"))

	e.SetMarker("is-selected", true)
	e.SetMarker("is-selected", true)
	assert.True(t, e.HasMarker("is-selected"))

	e.SetMarker("is-selected", false)
	e.SetMarker("is-selected", false)
	assert.False(t, e.HasMarker("is-selected"))
}

func TestContains(t *testing.T) {
	root := NewElement("root")
	list := NewElement("list")
	item := NewElement("item")
	label := NewElement("label")
	root.Append(list.Append(item.Append(label)))

	assert.True(t, Contains(list, label))
	assert.True(t, Contains(list, list))
	assert.False(t, Contains(item, list))
	assert.False(t, Contains(nil, item))
	assert.False(t, Contains(list, NewElement("stray")))
}

func TestHitTestPrefersInnermost(t *testing.T) {
	root := NewElement("root")
	root.Bounds = Rect{X: 0, Y: 0, Width: 80, Height: 24}
	list := NewElement("list")
	list.Bounds = Rect{X: 2, Y: 2, Width: 20, Height: 5}
	item := NewElement("item")
	item.Bounds = Rect{X: 3, Y: 3, Width: 18, Height: 1}
	root.Append(list.Append(item))

	assert.Equal(t, item, HitTest(root, 5, 3))
	assert.Equal(t, list, HitTest(root, 5, 4))
	assert.Equal(t, root, HitTest(root, 50, 20))
	assert.Nil(t, HitTest(root, 100, 100))
}

func TestHitTestSearchesChildrenOfTransparentElements(t *testing.T) {
	group := NewElement("group")
	item := NewElement("item")
	item.Bounds = Rect{X: 1, Y: 1, Width: 1, Height: 1}
	group.Append(item)

	assert.Equal(t, item, HitTest(group, 1, 1))
	assert.Nil(t, HitTest(group, 0, 0))
}
