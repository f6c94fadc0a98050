package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"selekt/internal/domain"
)

const historyLimit = 500

// History keeps a bounded log of selection events, oldest first
type History struct {
	entries []string
	now     func() time.Time
}

// NewHistory creates an empty history
func NewHistory() *History {
	return &History{now: time.Now}
}

// Record appends a line for events worth keeping and reports whether it did.
func (h *History) Record(event domain.DomainEvent) bool {
	var line string
	switch e := event.(type) {
	case domain.SelectionChangedEvent:
		line = fmt.Sprintf("%s %-6s [%s] last=%s", e.Engine, e.Mode, strings.Join(e.Items, ", "), e.Last)
	case domain.SelectionClearedEvent:
		line = fmt.Sprintf("%s cleared %d (%s)", e.Engine, e.Count, e.Reason)
	case domain.EngineActivatedEvent:
		if e.Previous == "" {
			line = fmt.Sprintf("%s active", e.Engine)
		} else {
			line = fmt.Sprintf("%s active, was %s", e.Engine, e.Previous)
		}
	case domain.EngineToggledEvent:
		line = fmt.Sprintf("%s enabled=%t", e.Engine, e.Enabled)
	case domain.ForceCtrlChangedEvent:
		line = fmt.Sprintf("%s force-ctrl=%t", e.Engine, e.Enabled)
	case domain.ErrorEvent:
		line = "error: " + e.Message
		if e.Err != nil {
			line += ": " + e.Err.Error()
		}
	default:
		return false
	}

	h.entries = append(h.entries, h.now().Format("15:04:05.000")+"  "+line)
	if len(h.entries) > historyLimit {
		h.entries = h.entries[len(h.entries)-historyLimit:]
	}
	return true
}

// Len returns the number of recorded lines
func (h *History) Len() int {
	return len(h.entries)
}

// String renders the history for the pager
func (h *History) String() string {
	if len(h.entries) == 0 {
		return "No selections yet\n"
	}
	return strings.Join(h.entries, "\n") + "\n"
}

// PagerOps shows text in the ov pager while the program is suspended
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// Show runs ov on content until the user quits it
func (p *PagerOps) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
