package ui

import (
	"selekt/internal/eventbus"
)

// EventMsg carries a bus event into the Update loop
type EventMsg struct {
	Event eventbus.DomainEvent
}

// Mouse input is dropped between pagerOpenedMsg and pagerClosedMsg, while ov
// owns the terminal.
type (
	pagerOpenedMsg struct{}
	pagerClosedMsg struct{}
)

// historyPagerMsg reports how the history pager exited
type historyPagerMsg struct {
	err error
}
