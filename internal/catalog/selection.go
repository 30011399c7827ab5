// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// SelectionErrorKind classifies a rejected selection string.
type SelectionErrorKind int

const (
	// SelectionEmpty means no index was given.
	SelectionEmpty SelectionErrorKind = iota + 1
	// SelectionNotNumber means a token is not an integer.
	SelectionNotNumber
	// SelectionOutOfRange means an index is below 1 or above the number of
	// categories.
	SelectionOutOfRange
)

func (k SelectionErrorKind) String() string {
	switch k {
	case SelectionEmpty:
		return "empty"
	case SelectionNotNumber:
		return "not a number"
	case SelectionOutOfRange:
		return "out of range"
	default:
		return "unknown"
	}
}

// SelectionError reports why a selection string was rejected.
type SelectionError struct {
	Kind SelectionErrorKind
	// Tokens holds the offending tokens, empty for SelectionEmpty.
	Tokens []string
	// Max is the highest valid index.
	Max int
}

func (e *SelectionError) Error() string {
	switch e.Kind {
	case SelectionEmpty:
		return "no column numbers given"
	case SelectionNotNumber:
		return fmt.Sprintf("invalid column numbers %v: not a number", e.Tokens)
	case SelectionOutOfRange:
		return fmt.Sprintf("invalid column numbers %v: must be between 1 and %d", e.Tokens, e.Max)
	default:
		return "invalid selection"
	}
}

// Selection is the ordered set of chosen categorical columns.
type Selection struct {
	// Indices are the 1-based numbers as entered, without duplicates.
	Indices []int
	// Columns are the matching column names, aligned with Indices.
	Columns []string
}

// Len returns the number of selected columns.
func (s Selection) Len() int {
	return len(s.Columns)
}

// ParseSelection parses a comma-separated list of 1-based indices into
// categories. Blank tokens are ignored and repeated indices keep their
// first position. All bad tokens of the first failing kind are reported.
func ParseSelection(input string, categories []string) (Selection, error) {
	var (
		tokens    []string
		notNumber []string
		outRange  []string
		indices   []int
	)
	for _, tok := range strings.Split(input, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)

		n, err := strconv.Atoi(tok)
		if err != nil {
			notNumber = append(notNumber, tok)
			continue
		}
		if n < 1 || n > len(categories) {
			outRange = append(outRange, tok)
			continue
		}
		indices = append(indices, n)
	}

	switch {
	case len(tokens) == 0:
		return Selection{}, &SelectionError{Kind: SelectionEmpty, Max: len(categories)}
	case len(notNumber) > 0:
		return Selection{}, &SelectionError{Kind: SelectionNotNumber, Tokens: notNumber, Max: len(categories)}
	case len(outRange) > 0:
		return Selection{}, &SelectionError{Kind: SelectionOutOfRange, Tokens: outRange, Max: len(categories)}
	}

	var sel Selection
	seen := make(map[int]bool, len(indices))
	for _, n := range indices {
		if seen[n] {
			continue
		}
		seen[n] = true
		sel.Indices = append(sel.Indices, n)
		sel.Columns = append(sel.Columns, categories[n-1])
	}
	return sel, nil
}
