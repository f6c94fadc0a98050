package selekt

import "selekt/internal/tree"

// Resolve returns the direct child of container that contains target, or nil
// when target lies outside container, is container itself, or resolves to an
// ignorable child.
func Resolve(container, target tree.Node, ignore func(tree.Node) bool) tree.Node {
	if container == nil || target == nil || target == container {
		return nil
	}
	if !tree.Contains(container, target) {
		return nil
	}
	n := target
	for n.Parent() != container {
		n = n.Parent()
	}
	if ignore != nil && ignore(n) {
		return nil
	}
	return n
}

// Eligible returns the non-ignorable children of container in order.
func Eligible(container tree.Node, ignore func(tree.Node) bool) []tree.Node {
	children := container.Children()
	out := make([]tree.Node, 0, len(children))
	for _, c := range children {
		if ignore != nil && ignore(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}
