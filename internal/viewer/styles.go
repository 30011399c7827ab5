// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package viewer

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles for one theme.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Focused lipgloss.Style
	Column  lipgloss.Style
	Cursor  lipgloss.Style
	Hidden  lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
	Table   table.Styles
}

// NewStyles returns the palette for the dark or light theme.
func NewStyles(dark bool) Styles {
	accent := lipgloss.Color("63")
	muted := lipgloss.Color("241")
	text := lipgloss.Color("252")
	selectedBg := lipgloss.Color("57")
	if !dark {
		accent = lipgloss.Color("25")
		muted = lipgloss.Color("246")
		text = lipgloss.Color("235")
		selectedBg = lipgloss.Color("153")
	}

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(muted).
		BorderBottom(true)
	ts.Selected = ts.Selected.
		Foreground(text).
		Background(selectedBg).
		Bold(false)

	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Label:   lipgloss.NewStyle().Foreground(muted),
		Focused: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Column:  lipgloss.NewStyle().Foreground(text),
		Cursor:  lipgloss.NewStyle().Underline(true).Foreground(accent),
		Hidden:  lipgloss.NewStyle().Foreground(muted).Strikethrough(true),
		Status:  lipgloss.NewStyle().Foreground(muted),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Help:    lipgloss.NewStyle().Foreground(muted).Italic(true),
		Table:   ts,
	}
}
