// Package selekt implements pointer-driven multi-selection over the children
// of a container node.
//
// An Engine binds to one container and listens for presses on it through a
// dispatch.Dispatcher. A plain press selects one item, ctrl (or meta, or the
// forced-ctrl flag) toggles an item, shift selects the contiguous range
// between the pivot and the pressed item. Presses on an already selected item
// are evaluated on release instead, so a drag started from a multi-item
// selection keeps that selection intact.
//
// Engines sharing an Arbiter are mutually exclusive: selecting in one
// container clears the others, and pressing outside the active container
// clears it.
package selekt
