package selekt

import "selekt/internal/tree"

// Result is the outcome of one selection step
type Result struct {
	Set   Set
	Pivot tree.Node
	// Upward is set for shift ranges that end above the pivot
	Upward bool
}

// Apply computes the selection that results from interacting with target.
// It does not touch markers; Store.Commit does that.
func Apply(prev Set, pivot tree.Node, siblings []tree.Node, target tree.Node, mode Mode, allowMultiple bool) Result {
	if !allowMultiple {
		return Result{Set: NewSet(target), Pivot: target}
	}

	switch mode {
	case ModeCtrl:
		next := prev.Clone()
		if next.Has(target) {
			delete(next, target)
		} else {
			next[target] = struct{}{}
		}
		return Result{Set: next, Pivot: target}

	case ModeShift:
		if len(prev) == 0 {
			return Result{Set: NewSet(target), Pivot: target}
		}
		pi := tree.IndexOf(siblings, pivot)
		ti := tree.IndexOf(siblings, target)
		if pi < 0 || ti < 0 {
			// pivot went stale
			return Result{Set: NewSet(target), Pivot: target}
		}
		lo, hi := pi, ti
		if lo > hi {
			lo, hi = hi, lo
		}
		return Result{
			Set:    NewSet(siblings[lo : hi+1]...),
			Pivot:  pivot,
			Upward: ti < pi,
		}

	default:
		if prev.Has(target) && len(prev) == 1 {
			return Result{Set: make(Set), Pivot: target}
		}
		return Result{Set: NewSet(target), Pivot: target}
	}
}
