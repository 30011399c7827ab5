// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package viewer browses a loaded snapshot. Filtering is a pure function of
// the table and an immutable State; the terminal UI only turns key presses
// into new States and renders the result of Compute.
package viewer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/journaldb/internal/catalog"
	"github.com/pdiddy/journaldb/pkg/types"
)

// AllOption is the selector value that disables a filter.
const AllOption = "All"

// Bound is an optional numeric limit.
type Bound struct {
	Value float64
	Set   bool
}

// Unbounded is a Bound that filters nothing.
var Unbounded = Bound{}

// At returns a set bound.
func At(v float64) Bound {
	return Bound{Value: v, Set: true}
}

// ParseBound reads a bound from user text. Blank text is Unbounded.
func ParseBound(text string) (Bound, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Unbounded, nil
	}
	v, ok := parseNumber(text)
	if !ok {
		return Unbounded, fmt.Errorf("%q is not a number", text)
	}
	return At(v), nil
}

// parseNumber accepts finite decimal numbers, with either '.' or ',' as the
// decimal separator.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// State is the full set of viewer controls. Methods never modify the
// receiver; each returns the changed copy.
type State struct {
	// Min and Max bound the points column, inclusive.
	Min, Max Bound

	// Category is the required exact value of the category column.
	// Empty or AllOption shows every row.
	Category string

	// Flag names a categorical column whose cell must carry the marker.
	// Empty shows every row.
	Flag string

	// SortDesc orders rows by points, highest first, non-numeric last.
	SortDesc bool

	hidden map[string]bool
}

// NewState returns the startup state: no filters, sorted by points, and
// only the configured columns plus every categorical column visible.
func NewState(table *types.Table, cfg types.Config) State {
	s := State{SortDesc: true, hidden: make(map[string]bool)}
	if len(cfg.Viewer.VisibleColumns) == 0 {
		return s
	}
	visible := make(map[string]bool)
	for _, c := range cfg.Viewer.VisibleColumns {
		visible[c] = true
	}
	for _, c := range catalog.Classify(table.Columns, cfg.MetadataColumns) {
		visible[c] = true
	}
	for _, c := range table.Columns {
		if !visible[c] {
			s.hidden[c] = true
		}
	}
	return s
}

// WithMin returns s with a new lower bound.
func (s State) WithMin(b Bound) State {
	s.Min = b
	return s
}

// WithMax returns s with a new upper bound.
func (s State) WithMax(b Bound) State {
	s.Max = b
	return s
}

// WithCategory returns s with a new category value.
func (s State) WithCategory(v string) State {
	s.Category = v
	return s
}

// WithFlag returns s with a new flag column.
func (s State) WithFlag(col string) State {
	s.Flag = col
	return s
}

// WithSort returns s with sorting switched on or off.
func (s State) WithSort(desc bool) State {
	s.SortDesc = desc
	return s
}

// Hidden reports whether col is hidden.
func (s State) Hidden(col string) bool {
	return s.hidden[col]
}

// ToggleColumn returns s with the visibility of col flipped.
func (s State) ToggleColumn(col string) State {
	hidden := s.copyHidden()
	if hidden[col] {
		delete(hidden, col)
	} else {
		hidden[col] = true
	}
	s.hidden = hidden
	return s
}

// ShowAll returns s with every column visible.
func (s State) ShowAll() State {
	s.hidden = make(map[string]bool)
	return s
}

func (s State) copyHidden() map[string]bool {
	out := make(map[string]bool, len(s.hidden)+1)
	for k, v := range s.hidden {
		out[k] = v
	}
	return out
}
