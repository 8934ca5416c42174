package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tbessa/spotlight/internal/spotlight"
	"github.com/tbessa/spotlight/internal/spotlight/service"
)

// EventMsg wraps a spotlight service event for bubbletea.
type EventMsg struct {
	Event spotlight.Event
}

// TickMsg drives periodic re-renders between service events.
type TickMsg time.Time

type eventsClosedMsg struct{}

// Model is the bubbletea model for the spotlight widget.
type Model struct {
	svc    *service.Service
	events <-chan spotlight.Event

	spotlightPanel *SpotlightPanel
	historyPanel   *HistoryPanel
	tapePanel      *TapePanel
	focusIndex     int

	termWidth  int
	termHeight int
}

// NewModel creates the widget model for a running spotlight service.
func NewModel(svc *service.Service) Model {
	m := Model{
		svc:            svc,
		events:         svc.Events(),
		spotlightPanel: NewSpotlightPanel(),
		historyPanel:   NewHistoryPanel(),
		tapePanel:      NewTapePanel(),
		termWidth:      80,
		termHeight:     24,
	}
	m.spotlightPanel.SetFocus(true)
	return m
}

// Init initializes the bubbletea model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.listenForEvents(),
		tickEvery(time.Second),
	)
}

func (m Model) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return eventsClosedMsg{}
		}
		return EventMsg{Event: ev}
	}
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update handles bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.cycleFocus(1)
			return m, nil
		case "shift+tab":
			m.cycleFocus(-1)
			return m, nil
		default:
			m.historyPanel.Update(msg)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		return m, nil

	case EventMsg:
		m.refresh()
		return m, m.listenForEvents()

	case TickMsg:
		m.refresh()
		return m, tickEvery(time.Second)

	case eventsClosedMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) refresh() {
	snap := m.svc.Snapshot()
	m.spotlightPanel.SetSnapshot(snap)
	m.historyPanel.SetRows(snap.Model.Rows)
	m.tapePanel.SetEvents(m.svc.Tape().Latest(50))
}

func (m *Model) cycleFocus(dir int) {
	panels := []interface{ SetFocus(bool) }{m.spotlightPanel, m.historyPanel, m.tapePanel}
	panels[m.focusIndex].SetFocus(false)
	m.focusIndex = (m.focusIndex + dir + len(panels)) % len(panels)
	panels[m.focusIndex].SetFocus(true)
}

// View renders the full widget.
func (m Model) View() string {
	topHeight := m.termHeight / 3
	if topHeight < 7 {
		topHeight = 7
	}
	bottomHeight := m.termHeight - topHeight - 1
	if bottomHeight < 7 {
		bottomHeight = 7
	}

	leftWidth := m.termWidth / 2
	rightWidth := m.termWidth - leftWidth

	m.spotlightPanel.SetSize(leftWidth, topHeight)
	m.tapePanel.SetSize(rightWidth, topHeight)
	m.historyPanel.SetSize(m.termWidth, bottomHeight)

	top := lipgloss.JoinHorizontal(lipgloss.Top, m.spotlightPanel.View(), m.tapePanel.View())
	help := MutedStyle.Render(" tab: focus · ↑/↓: scroll · q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, top, m.historyPanel.View(), help)
}

// Run starts the terminal UI and blocks until quit or context cancellation.
func Run(ctx context.Context, svc *service.Service) error {
	p := tea.NewProgram(NewModel(svc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
