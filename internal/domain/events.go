package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionChanged EventType = "SelectionChanged"
	EventSelectionCleared EventType = "SelectionCleared"
	EventEngineActivated  EventType = "EngineActivated"
	EventEngineToggled    EventType = "EngineToggled"
	EventForceCtrlChanged EventType = "ForceCtrlChanged"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventError            EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionChangedEvent is emitted after an engine applied a selection
type SelectionChangedEvent struct {
	Engine string
	Items  []string // labels in notification order
	Last   string   // item the user interacted with
	Mode   string
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// SelectionClearedEvent is emitted when a non-empty selection is emptied
// without going through the selection algorithm.
type SelectionClearedEvent struct {
	Engine string
	Reason ClearReason
	Count  int // number of items that were selected
}

func (e SelectionClearedEvent) Type() EventType { return EventSelectionCleared }

// ClearReason says why a selection was cleared
type ClearReason string

const (
	ClearExplicit     ClearReason = "explicit"
	ClearDeactivated  ClearReason = "deactivated"
	ClearOutsideClick ClearReason = "outside"
	ClearNoItem       ClearReason = "no-item"
	ClearDestroyed    ClearReason = "destroyed"
)

// EngineActivatedEvent is emitted when the active engine changes
type EngineActivatedEvent struct {
	Engine   string
	Previous string // "" when no engine was active
}

func (e EngineActivatedEvent) Type() EventType { return EventEngineActivated }

// EngineToggledEvent is emitted when an engine is enabled or disabled
type EngineToggledEvent struct {
	Engine  string
	Enabled bool
}

func (e EngineToggledEvent) Type() EventType { return EventEngineToggled }

// ForceCtrlChangedEvent is emitted when the forced-ctrl flag changes
type ForceCtrlChangedEvent struct {
	Engine  string
	Enabled bool
}

func (e ForceCtrlChangedEvent) Type() EventType { return EventForceCtrlChanged }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path  string
	Lists int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
