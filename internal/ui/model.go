package ui

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"selekt/internal/config"
	"selekt/internal/dispatch"
	"selekt/internal/domain"
	"selekt/internal/eventbus"
	"selekt/internal/selekt"
	"selekt/internal/tree"
)

const title = "selekt"

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config

	board   *Board
	arb     *selekt.Arbiter
	engines []*selekt.Engine

	keys    keyMap
	help    help.Model
	styles  *Styles
	history *History

	width       int
	height      int
	status      string
	forceCtrl   bool
	disabled    bool
	e2e         bool // print the readiness marker for the pty test driver
	inPagerMode bool // tracks if we're currently in pager mode

	// Program reference for terminal management
	program *tea.Program
	pager   *PagerOps
}

// NewModel creates the UI model and one engine per configured list.
func NewModel(bus eventbus.EventBus, cfg *config.Config) (*Model, error) {
	if bus == nil {
		bus = eventbus.NullBus{}
	}

	m := &Model{
		bus:       bus,
		config:    cfg,
		board:     NewBoard(cfg.Lists, cfg.Engine.IgnoreMarker),
		keys:      newKeyMap(),
		help:      help.New(),
		styles:    NewStyles(),
		history:   NewHistory(),
		forceCtrl: cfg.Engine.ForceCtrl,
		e2e:       os.Getenv("SELEKT_E2E_TEST") == "1",
	}
	m.arb = selekt.NewArbiter(dispatch.New(), selekt.ArbiterConfig{
		ClearOn: cfg.Engine.ClearOnKind(),
		Bus:     bus,
	})

	for _, list := range m.board.Lists {
		e, err := selekt.New(list, m.arb, selekt.Options{
			Name:                   list.Name,
			IgnoreMarker:           cfg.Engine.IgnoreMarker,
			SelectedMarker:         cfg.Engine.SelectedMarker,
			ForceCtrl:              cfg.Engine.ForceCtrl,
			SingleSelect:           cfg.Engine.SingleSelect,
			PreserveRangeDirection: cfg.Engine.PreserveRangeDirection,
			OnSelect:               m.onSelect(list.Name),
		})
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("list %s: %w", list.Name, err)
		}
		m.engines = append(m.engines, e)
	}

	m.relayout()
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// Engines returns the engines in list order
func (m *Model) Engines() []*selekt.Engine {
	return m.engines
}

// Board returns the element tree the engines are bound to
func (m *Model) Board() *Board {
	return m.board
}

// Status returns the status line text
func (m *Model) Status() string {
	return m.status
}

// Close destroys every engine. Safe to call more than once.
func (m *Model) Close() {
	for _, e := range m.engines {
		e.Destroy()
	}
}

func (m *Model) onSelect(name string) func(selekt.Selection) {
	return func(sel selekt.Selection) {
		if len(sel.Items) == 0 {
			m.status = fmt.Sprintf("%s: nothing selected", name)
			return
		}
		m.status = fmt.Sprintf("%s: %s (%s, last %v)", name, strings.Join(itemNames(sel.Items), ", "), sel.Mode, sel.Last)
	}
}

func itemNames(ns []tree.Node) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = fmt.Sprint(n)
	}
	return out
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.relayout()

	case tea.MouseMsg:
		if m.inPagerMode {
			return m, nil
		}
		if ev, ok := PointerEvent(m.board.Root, msg); ok {
			m.arb.Dispatcher().Dispatch(ev)
		}

	case tea.KeyMsg:
		return m.handleKey(msg)

	case EventMsg:
		m.history.Record(msg.Event)
		switch e := msg.Event.(type) {
		case domain.SelectionClearedEvent:
			if e.Reason != domain.ClearDeactivated {
				m.status = fmt.Sprintf("%s: cleared (%s)", e.Engine, e.Reason)
			}
		case domain.ErrorEvent:
			m.status = "error: " + e.Message
		}

	case historyPagerMsg:
		if msg.err != nil {
			log.Printf("History pager failed: %v", msg.err)
			m.status = "history pager unavailable"
			m.bus.Publish(domain.ErrorEvent{Message: "history pager failed", Err: msg.err})
		}

	case pagerOpenedMsg:
		m.inPagerMode = true

	case pagerClosedMsg:
		m.inPagerMode = false
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.ForceCtrl):
		m.forceCtrl = !m.forceCtrl
		on := m.forceCtrl
		for _, e := range m.engines {
			e.SetForceCtrl(&on)
		}
		if on {
			m.status = "toggle mode: every click adds or removes"
		} else {
			m.status = "toggle mode off"
		}

	case key.Matches(msg, m.keys.Disable):
		m.disabled = !m.disabled
		for _, e := range m.engines {
			if m.disabled {
				e.Disable()
			} else {
				e.Enable()
			}
		}
		if m.disabled {
			m.status = "selection disabled"
		} else {
			m.status = "selection enabled"
		}

	case key.Matches(msg, m.keys.Clear):
		for _, e := range m.engines {
			e.Clear()
		}
		m.status = "selection cleared"

	case key.Matches(msg, m.keys.History):
		return m, m.showHistory()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// showHistory returns a command that pages the selection history with ov
func (m *Model) showHistory() tea.Cmd {
	if m.program == nil {
		m.status = "history pager unavailable"
		return nil
	}
	content := m.history.String()
	return func() tea.Msg {
		m.program.Send(pagerOpenedMsg{})
		err := m.pager.Show(content)
		m.program.Send(pagerClosedMsg{})
		return historyPagerMsg{err: err}
	}
}

func (m *Model) header() string {
	return m.styles.Title.Render(title)
}

// relayout recomputes element bounds so mouse hits match what View draws.
func (m *Model) relayout() {
	width := m.width
	if width == 0 {
		width = 80
	}
	m.board.Layout(lipgloss.Height(m.header()), width)
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")

	blocks := make([]string, 0, 2*len(m.engines))
	for i, e := range m.engines {
		if i > 0 {
			blocks = append(blocks, strings.Repeat(" ", columnGap))
		}
		blocks = append(blocks, m.renderList(m.board.Lists[i], e))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	b.WriteString("\n")

	b.WriteString(m.styles.Status.Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	if m.e2e {
		b.WriteString("\n__READY__")
	}
	return b.String()
}

func (m *Model) renderList(list *tree.Element, e *selekt.Engine) string {
	inner := m.board.Width() - 2

	name := list.Name
	if !e.Enabled() {
		name += " (off)"
	}
	lines := []string{m.styles.ListTitle.Render(truncate(name, inner))}

	for _, item := range list.Elements() {
		label := truncate(item.Name, inner-2)
		switch {
		case item.HasMarker(m.config.Engine.SelectedMarker):
			lines = append(lines, m.styles.Selected.Render("● "+label))
		case item.HasMarker(m.config.Engine.IgnoreMarker):
			lines = append(lines, m.styles.Ignored.Render("  "+label))
		default:
			lines = append(lines, m.styles.Item.Render("  "+label))
		}
	}

	box := m.styles.Box
	if m.arb.Active() == e {
		box = m.styles.ActiveBox
	}
	return box.Width(inner).Render(strings.Join(lines, "\n"))
}

func (m *Model) statusLine() string {
	mode := "normal"
	switch {
	case m.disabled:
		mode = "disabled"
	case m.forceCtrl:
		mode = "toggle"
	}
	status := m.status
	if status == "" {
		status = "click to select, shift+click for ranges, alt+click to toggle"
	}
	return m.styles.StatusMode.Render("["+mode+"]") + " " + status
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
