// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog splits table columns into metadata and categorical
// columns, parses the user's category selection, and filters rows by the
// marker token.
package catalog

import (
	"fmt"
	"io"
)

// Classify returns the categorical columns: every column not listed in
// metadata, in table order.
func Classify(columns, metadata []string) []string {
	meta := make(map[string]bool, len(metadata))
	for _, m := range metadata {
		meta[m] = true
	}
	var out []string
	for _, c := range columns {
		if !meta[c] {
			out = append(out, c)
		}
	}
	return out
}

// MissingMetadata lists configured metadata columns the table does not have.
func MissingMetadata(columns, metadata []string) []string {
	have := make(map[string]bool, len(columns))
	for _, c := range columns {
		have[c] = true
	}
	var missing []string
	for _, m := range metadata {
		if !have[m] {
			missing = append(missing, m)
		}
	}
	return missing
}

// NumberedColumn is a categorical column with its 1-based selection number.
type NumberedColumn struct {
	Number int
	Name   string
}

// Numbered assigns stable 1-based numbers to categories in order.
func Numbered(categories []string) []NumberedColumn {
	out := make([]NumberedColumn, len(categories))
	for i, c := range categories {
		out[i] = NumberedColumn{Number: i + 1, Name: c}
	}
	return out
}

// WriteNumbered prints the numbered category list to w.
func WriteNumbered(w io.Writer, categories []string) {
	fmt.Fprintln(w, "Available categorical columns:")
	for _, nc := range Numbered(categories) {
		fmt.Fprintf(w, "%d. %s\n", nc.Number, nc.Name)
	}
}
