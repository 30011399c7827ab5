// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/journaldb/internal/logging"
	"github.com/pdiddy/journaldb/pkg/types"
)

const (
	minCellWidth = 4
	maxCellWidth = 40
)

type focus int

const (
	focusTable focus = iota
	focusMin
	focusMax
)

// Model is the bubbletea model of the viewer.
type Model struct {
	source *types.Table
	cfg    types.Config
	logger logging.Logger

	state State
	view  View

	categories []string
	catIdx     int
	flags      []string
	flagIdx    int
	colCursor  int

	focus    focus
	minInput textinput.Model
	maxInput textinput.Model
	tbl      table.Model
	styles   Styles
	status   string
	errMsg   string
}

// NewModel builds the viewer for table. The table is treated as read-only.
func NewModel(tbl *types.Table, cfg types.Config, logger logging.Logger) *Model {
	m := &Model{
		source:     tbl,
		cfg:        cfg,
		logger:     logger,
		state:      NewState(tbl, cfg),
		categories: CategoryOptions(tbl, cfg),
		flags:      FlagOptions(tbl, cfg),
		styles:     NewStyles(cfg.Viewer.Theme != "light"),
		minInput:   newBoundInput("min"),
		maxInput:   newBoundInput("max"),
	}

	height := cfg.Viewer.Height
	if height <= 0 {
		height = 20
	}
	m.tbl = table.New(table.WithFocused(true), table.WithHeight(height))
	m.tbl.SetStyles(m.styles.Table)

	m.recompute()
	return m
}

func newBoundInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 16
	in.Width = 10
	in.Prompt = ""
	return in
}

// State returns the current control state.
func (m *Model) State() State {
	return m.state
}

// Current returns the currently displayed rows and columns.
func (m *Model) Current() View {
	return m.view
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.tbl.SetWidth(msg.Width)
		if h := msg.Height - 9; h > 3 {
			m.tbl.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		switch key {
		case "tab":
			return m, m.setFocus((m.focus + 1) % 3)
		case "shift+tab":
			return m, m.setFocus((m.focus + 2) % 3)
		}
		if m.focus != focusTable {
			return m.updateInput(msg)
		}
		return m.updateTable(msg)
	}
	return m, nil
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.minInput.Blur()
	m.maxInput.Blur()
	switch f {
	case focusMin:
		m.tbl.Blur()
		return m.minInput.Focus()
	case focusMax:
		m.tbl.Blur()
		return m.maxInput.Focus()
	default:
		m.tbl.Focus()
		return nil
	}
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		return m, m.setFocus(focusTable)
	}

	var cmd tea.Cmd
	if m.focus == focusMin {
		m.minInput, cmd = m.minInput.Update(msg)
	} else {
		m.maxInput, cmd = m.maxInput.Update(msg)
	}
	m.applyBounds()
	return m, cmd
}

// applyBounds parses both inputs. A bad value is reported and leaves the
// state unchanged.
func (m *Model) applyBounds() {
	lo, err := ParseBound(m.minInput.Value())
	if err != nil {
		m.errMsg = "Min points: " + err.Error()
		return
	}
	hi, err := ParseBound(m.maxInput.Value())
	if err != nil {
		m.errMsg = "Max points: " + err.Error()
		return
	}
	m.errMsg = ""
	if lo != m.state.Min || hi != m.state.Max {
		m.logger.Debug("points filter", "min", lo, "max", hi)
		m.state = m.state.WithMin(lo).WithMax(hi)
		m.recompute()
	}
}

func (m *Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := m.source.Columns
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "c":
		m.catIdx = (m.catIdx + 1) % len(m.categories)
		m.state = m.state.WithCategory(m.categories[m.catIdx])
	case "C":
		m.catIdx = (m.catIdx + len(m.categories) - 1) % len(m.categories)
		m.state = m.state.WithCategory(m.categories[m.catIdx])
	case "f":
		m.flagIdx = (m.flagIdx + 1) % len(m.flags)
		m.state = m.state.WithFlag(m.flags[m.flagIdx])
	case "F":
		m.flagIdx = (m.flagIdx + len(m.flags) - 1) % len(m.flags)
		m.state = m.state.WithFlag(m.flags[m.flagIdx])
	case "s":
		m.state = m.state.WithSort(!m.state.SortDesc)
	case "]", "right", "l":
		if len(cols) > 0 {
			m.colCursor = (m.colCursor + 1) % len(cols)
		}
		return m, nil
	case "[", "left", "h":
		if len(cols) > 0 {
			m.colCursor = (m.colCursor + len(cols) - 1) % len(cols)
		}
		return m, nil
	case " ", "space":
		if len(cols) == 0 {
			return m, nil
		}
		m.state = m.state.ToggleColumn(cols[m.colCursor])
	case "a":
		m.state = m.state.ShowAll()
	default:
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	m.recompute()
	return m, nil
}

// recompute derives the view from the current state and reloads the table
// widget.
func (m *Model) recompute() {
	m.view = Compute(m.source, m.cfg, m.state)

	rows := make([]table.Row, len(m.view.Rows))
	for i, r := range m.view.Rows {
		rows[i] = table.Row(r)
	}

	m.tbl.SetRows(nil)
	m.tbl.SetColumns(columnLayout(m.view))
	m.tbl.SetRows(rows)
	m.tbl.GotoTop()

	if len(m.view.Columns) == 0 {
		m.status = "No columns are selected."
	} else {
		m.status = fmt.Sprintf("%d of %d records", len(m.view.Rows), m.view.Total)
	}
	m.logger.Debug("view recomputed", "rows", len(m.view.Rows), "columns", len(m.view.Columns))
}

func columnLayout(v View) []table.Column {
	cols := make([]table.Column, len(v.Columns))
	for i, c := range v.Columns {
		w := lipgloss.Width(c)
		for _, r := range v.Rows {
			if cw := lipgloss.Width(r[i]); cw > w {
				w = cw
			}
		}
		w = max(w, minCellWidth)
		w = min(w, maxCellWidth)
		cols[i] = table.Column{Title: c, Width: w}
	}
	return cols
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	st := m.styles

	b.WriteString(st.Title.Render("Publication Database Viewer"))
	b.WriteString("\n\n")

	b.WriteString(m.label("Min points: ", focusMin) + m.minInput.View() + "  ")
	b.WriteString(m.label("Max points: ", focusMax) + m.maxInput.View() + "  ")
	category := m.state.Category
	if category == "" {
		category = AllOption
	}
	b.WriteString(st.Label.Render(m.cfg.Viewer.CategoryColumn+": ") + st.Column.Render(category) + "  ")
	flag := m.state.Flag
	if flag == "" {
		flag = AllOption
	}
	b.WriteString(st.Label.Render("Category: ") + st.Column.Render(flag))
	b.WriteString("\n")

	b.WriteString(st.Label.Render("Columns: "))
	for i, c := range m.source.Columns {
		style := st.Column
		if m.state.Hidden(c) {
			style = st.Hidden
		}
		if i == m.colCursor {
			style = style.Inherit(st.Cursor)
		}
		b.WriteString(style.Render(c))
		if i < len(m.source.Columns)-1 {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n\n")

	if len(m.view.Columns) > 0 {
		b.WriteString(m.tbl.View())
		b.WriteString("\n")
	}

	b.WriteString(st.Status.Render(m.status))
	if m.errMsg != "" {
		b.WriteString("  " + st.Error.Render(m.errMsg))
	}
	b.WriteString("\n")
	b.WriteString(st.Help.Render("tab: focus  c/C: exact " + m.cfg.Viewer.CategoryColumn + " value  f/F: category  [/]: column  space: show/hide  a: all columns  s: sort  q: quit"))
	return b.String()
}

func (m *Model) label(text string, f focus) string {
	if m.focus == f {
		return m.styles.Focused.Render(text)
	}
	return m.styles.Label.Render(text)
}

// Run starts the interactive viewer on the terminal.
func Run(tbl *types.Table, cfg types.Config, logger logging.Logger) error {
	p := tea.NewProgram(NewModel(tbl, cfg, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
