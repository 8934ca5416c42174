package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tbessa/spotlight/internal/spotlight"
	"github.com/tbessa/spotlight/internal/spotlight/view"
)

// SpotlightPanel shows the active item and its derived prices.
type SpotlightPanel struct {
	snap    view.Snapshot
	focused bool
	width   int
	height  int
}

// NewSpotlightPanel creates the spotlight panel.
func NewSpotlightPanel() *SpotlightPanel {
	return &SpotlightPanel{}
}

// SetSnapshot replaces the displayed snapshot.
func (p *SpotlightPanel) SetSnapshot(snap view.Snapshot) {
	p.snap = snap
}

// View renders the panel.
func (p *SpotlightPanel) View() string {
	var content strings.Builder

	if !p.snap.HasActive {
		content.WriteString(MutedStyle.Render("waiting for inventory…"))
	} else {
		content.WriteString(RowStyle.Render(p.snap.Active.ProductName))
		content.WriteString(MutedStyle.Render(fmt.Sprintf("  #%d", p.snap.Active.ProductID)))
		content.WriteString("\n\n")

		m := p.snap.Model
		content.WriteString(HeaderStyle.Render("current "))
		content.WriteString(PriceStyle.Render(m.CurrentPrice.StringFixed(2)))
		content.WriteString("\n")
		content.WriteString(HeaderStyle.Render("base    "))
		content.WriteString(RowStyle.Render(m.BasePrice.StringFixed(2)))
		if m.UnitPrice.Valid {
			content.WriteString(MutedStyle.Render("  unit " + m.UnitPrice.Decimal.StringFixed(2)))
		}
	}

	panelStyle := PanelStyle
	if p.focused {
		panelStyle = FocusedPanelStyle
	}
	title := RenderTitle("Spotlight", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// SetFocus sets the focus state of the panel.
func (p *SpotlightPanel) SetFocus(focused bool) { p.focused = focused }

// SetSize sets the panel dimensions.
func (p *SpotlightPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// HistoryPanel shows the price-change rows of the active item.
type HistoryPanel struct {
	rows          []view.Row
	selectedIndex int
	focused       bool
	width         int
	height        int
}

// NewHistoryPanel creates the history panel.
func NewHistoryPanel() *HistoryPanel {
	return &HistoryPanel{}
}

// SetRows replaces the displayed rows (newest first).
func (p *HistoryPanel) SetRows(rows []view.Row) {
	p.rows = rows
	if p.selectedIndex >= len(rows) {
		p.selectedIndex = 0
	}
}

// Update handles messages for the panel.
func (p *HistoryPanel) Update(msg tea.Msg) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return
	}
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if p.selectedIndex > 0 {
			p.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if p.selectedIndex < len(p.rows)-1 {
			p.selectedIndex++
		}
	}
}

// View renders the panel.
func (p *HistoryPanel) View() string {
	var content strings.Builder

	header := fmt.Sprintf("%-17s %10s %10s %9s", "When", "Before", "After", "Delta")
	content.WriteString(HeaderStyle.Render(header))
	content.WriteString("\n")

	if len(p.rows) == 0 {
		content.WriteString(MutedStyle.Render("no price changes yet"))
	}

	maxRows := p.height - 5
	if maxRows < 1 {
		maxRows = 1
	}
	for i, row := range p.rows {
		if i >= maxRows {
			break
		}

		deltaStr := row.Delta().StringFixed(2)
		var deltaStyle lipgloss.Style
		switch row.Direction() {
		case view.Increase:
			deltaStyle = IncreaseStyle
			deltaStr = "▲ " + deltaStr
		case view.Decrease:
			deltaStyle = DecreaseStyle
			deltaStr = "▼ " + deltaStr
		default:
			deltaStyle = UnchangedStyle
			deltaStr = "= " + deltaStr
		}

		line := fmt.Sprintf("%-17s %10s %10s ",
			row.CreatedAt.Format("01-02 15:04:05"),
			row.PriceBefore.StringFixed(2),
			row.PriceAfter.StringFixed(2))

		style := RowStyle
		if i == p.selectedIndex && p.focused {
			style = SelectedRowStyle
		}
		content.WriteString(style.Render(line))
		content.WriteString(deltaStyle.Render(fmt.Sprintf("%9s", deltaStr)))
		if i < len(p.rows)-1 && i < maxRows-1 {
			content.WriteString("\n")
		}
	}

	panelStyle := PanelStyle
	if p.focused {
		panelStyle = FocusedPanelStyle
	}
	title := RenderTitle("Price History", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// SetFocus sets the focus state of the panel.
func (p *HistoryPanel) SetFocus(focused bool) { p.focused = focused }

// SetSize sets the panel dimensions.
func (p *HistoryPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// TapePanel shows recent rotation and fetch diagnostics.
type TapePanel struct {
	events  []spotlight.Event
	focused bool
	width   int
	height  int
}

// NewTapePanel creates the diagnostics panel.
func NewTapePanel() *TapePanel {
	return &TapePanel{}
}

// SetEvents replaces the displayed events (oldest first).
func (p *TapePanel) SetEvents(events []spotlight.Event) {
	p.events = events
}

// View renders the panel.
func (p *TapePanel) View() string {
	var content strings.Builder

	maxRows := p.height - 4
	if maxRows < 1 {
		maxRows = 1
	}
	start := len(p.events) - maxRows
	if start < 0 {
		start = 0
	}
	visible := p.events[start:]

	for i, ev := range visible {
		ts := time.Unix(0, ev.Time).Format("15:04:05")
		var line string
		switch ev.Type {
		case spotlight.EventRotated:
			line = MutedStyle.Render(ts+" ") + RowStyle.Render("→ "+ev.Item.ProductName)
		case spotlight.EventModelUpdated:
			line = MutedStyle.Render(ts+" ") + IncreaseStyle.Render("✓ "+ev.Item.ProductName)
		case spotlight.EventFetchFailed:
			line = MutedStyle.Render(ts+" ") + DecreaseStyle.Render("✗ "+ev.Item.ProductName+": "+ev.Err)
		}
		content.WriteString(line)
		if i < len(visible)-1 {
			content.WriteString("\n")
		}
	}
	if len(p.events) == 0 {
		content.WriteString(MutedStyle.Render("quiet"))
	}

	panelStyle := PanelStyle
	if p.focused {
		panelStyle = FocusedPanelStyle
	}
	title := RenderTitle("Activity", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())
	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// SetFocus sets the focus state of the panel.
func (p *TapePanel) SetFocus(focused bool) { p.focused = focused }

// SetSize sets the panel dimensions.
func (p *TapePanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
