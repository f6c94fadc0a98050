package ui

import (
	"selekt/internal/domain"
	"selekt/internal/tree"
)

const (
	minColumnWidth = 14
	maxColumnWidth = 30
	columnGap      = 1
)

// Board is the element tree behind the screen: a transparent root holding
// one container per configured list, each holding one element per item.
type Board struct {
	Root  *tree.Element
	Lists []*tree.Element
	Specs []domain.ListSpec

	columnWidth int
}

// NewBoard builds the tree for specs. Ignored items carry ignoreMarker.
func NewBoard(specs []domain.ListSpec, ignoreMarker string) *Board {
	b := &Board{
		Root:  tree.NewElement("root"),
		Specs: specs,
	}
	for _, spec := range specs {
		list := tree.NewElement(spec.Name)
		for _, item := range spec.Items {
			if spec.IsIgnored(item) {
				list.Append(tree.NewElement(item, ignoreMarker))
			} else {
				list.Append(tree.NewElement(item))
			}
		}
		b.Root.Append(list)
		b.Lists = append(b.Lists, list)
	}
	return b
}

// ColumnWidth returns the outer width of one list box for a screen width
func (b *Board) ColumnWidth(width int) int {
	n := len(b.Lists)
	if n == 0 {
		return 0
	}
	w := (width - columnGap*(n-1)) / n
	if w > maxColumnWidth {
		w = maxColumnWidth
	}
	if w < minColumnWidth {
		w = minColumnWidth
	}
	return w
}

// Layout places the list boxes side by side starting at row top. A box is
// a border row, a title row, one row per item and a border row.
func (b *Board) Layout(top, width int) {
	b.columnWidth = b.ColumnWidth(width)
	x := 0
	for _, list := range b.Lists {
		items := list.Elements()
		list.Bounds = tree.Rect{X: x, Y: top, Width: b.columnWidth, Height: len(items) + 3}
		for i, item := range items {
			item.Bounds = tree.Rect{X: x + 1, Y: top + 2 + i, Width: b.columnWidth - 2, Height: 1}
		}
		x += b.columnWidth + columnGap
	}
}

// Width returns the column width of the last Layout
func (b *Board) Width() int {
	return b.columnWidth
}
