// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/journaldb/pkg/types"
)

func sampleTable() *types.Table {
	return &types.Table{
		Columns: []string{"Title", "Journal", "PointsCol", "FlagA", "FlagB"},
		Rows: [][]string{
			{"Alpha", "IEEE", "140", "", ""},
			{"Beta", "ACM", "70", "x", ""},
			{"Gamma", "IEEE", "20", "", "X "},
			{"Delta", "Springer", "100", "no", "xx"},
		},
	}
}

var sampleMetadata = []string{"Title", "Journal", "PointsCol"}

// --- classifier ---

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		columns  []string
		metadata []string
		want     []string
	}{
		{"journal list", sampleTable().Columns, sampleMetadata, []string{"FlagA", "FlagB"}},
		{"keeps order", []string{"B", "meta", "A", "C"}, []string{"meta"}, []string{"B", "A", "C"}},
		{"no metadata", []string{"A", "B"}, nil, []string{"A", "B"}},
		{"metadata not in table", []string{"A"}, []string{"Z"}, []string{"A"}},
		{"all metadata", []string{"A"}, []string{"A"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.columns, tt.metadata))
		})
	}
}

func TestMissingMetadata(t *testing.T) {
	got := MissingMetadata([]string{"Title", "FlagA"}, []string{"Title", "issn", "Punkty"})
	assert.Equal(t, []string{"issn", "Punkty"}, got)
	assert.Empty(t, MissingMetadata([]string{"Title"}, []string{"Title"}))
}

func TestWriteNumbered(t *testing.T) {
	var buf bytes.Buffer
	WriteNumbered(&buf, []string{"FlagA", "FlagB"})
	assert.Equal(t, "Available categorical columns:\n1. FlagA\n2. FlagB\n", buf.String())

	nums := Numbered([]string{"X", "Y", "Z"})
	require.Len(t, nums, 3)
	assert.Equal(t, NumberedColumn{Number: 3, Name: "Z"}, nums[2])
}

// --- selection ---

func TestParseSelection(t *testing.T) {
	cats := []string{"FlagA", "FlagB", "FlagC"}
	tests := []struct {
		name     string
		input    string
		wantCols []string
		wantIdx  []int
		wantKind SelectionErrorKind
		wantTok  []string
	}{
		{"single", "1", []string{"FlagA"}, []int{1}, 0, nil},
		{"several with spaces", " 3 , 1 ", []string{"FlagC", "FlagA"}, []int{3, 1}, 0, nil},
		{"duplicates collapse", "2,2,1,2", []string{"FlagB", "FlagA"}, []int{2, 1}, 0, nil},
		{"blank tokens ignored", "1,,3,", []string{"FlagA", "FlagC"}, []int{1, 3}, 0, nil},
		{"empty", "", nil, nil, SelectionEmpty, nil},
		{"only commas", " , ,", nil, nil, SelectionEmpty, nil},
		{"not a number", "1,a,b", nil, nil, SelectionNotNumber, []string{"a", "b"}},
		{"float", "1.5", nil, nil, SelectionNotNumber, []string{"1.5"}},
		{"zero", "0", nil, nil, SelectionOutOfRange, []string{"0"}},
		{"too large", "2,4,9", nil, nil, SelectionOutOfRange, []string{"4", "9"}},
		{"negative", "-1", nil, nil, SelectionOutOfRange, []string{"-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := ParseSelection(tt.input, cats)
			if tt.wantKind != 0 {
				var se *SelectionError
				require.True(t, errors.As(err, &se), "want *SelectionError, got %v", err)
				assert.Equal(t, tt.wantKind, se.Kind)
				assert.Equal(t, tt.wantTok, se.Tokens)
				assert.Equal(t, 3, se.Max)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCols, sel.Columns)
			assert.Equal(t, tt.wantIdx, sel.Indices)
		})
	}
}

func TestSelectionError_Message(t *testing.T) {
	_, err := ParseSelection("7", []string{"A"})
	require.Error(t, err)
	assert.Equal(t, "invalid column numbers [7]: must be between 1 and 1", err.Error())
}

// --- prompt ---

func TestPrompt(t *testing.T) {
	cats := []string{"FlagA", "FlagB"}
	tests := []struct {
		name      string
		input     string
		wantCols  []string
		wantErr   error
		wantKind  SelectionErrorKind
		wantPrint int
	}{
		{name: "first answer valid", input: "1,2\n", wantCols: []string{"FlagA", "FlagB"}, wantPrint: 0},
		{name: "re-prompts after bad input", input: "abc\n5\n2\n", wantCols: []string{"FlagB"}, wantPrint: 2},
		{name: "last line without newline", input: "2", wantCols: []string{"FlagB"}},
		{name: "gives up after attempts", input: "a\nb\nc\n1\n", wantErr: ErrTooManyAttempts, wantPrint: 3},
		{name: "eof before answer", input: "", wantErr: io.ErrUnexpectedEOF},
		{name: "eof after bad answer", input: "9\n", wantKind: SelectionOutOfRange, wantPrint: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			sel, err := Prompt(strings.NewReader(tt.input), &out, cats, 3)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantKind != 0:
				var se *SelectionError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, tt.wantKind, se.Kind)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantCols, sel.Columns)
			}
			assert.Equal(t, tt.wantPrint, strings.Count(out.String(), "Error:"))
		})
	}
}

// --- filter ---

func TestMarks(t *testing.T) {
	tests := []struct {
		cell   string
		marker string
		want   bool
	}{
		{"x", "x", true},
		{"X", "x", true},
		{" x ", "x", true},
		{"xx", "x", true},
		{"box", "x", true},
		{"", "x", false},
		{"y", "x", false},
		{"x", "", false},
		{"yes", "Y", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Marks(tt.cell, tt.marker), "Marks(%q, %q)", tt.cell, tt.marker)
	}
}

func TestFilter(t *testing.T) {
	table := sampleTable()
	original := table.Clone()

	sub, err := Filter(table, "FlagB", "x")
	require.NoError(t, err)

	assert.Equal(t, table.Columns, sub.Columns)
	require.Equal(t, 2, sub.Len())
	assert.Equal(t, table.Rows[2], sub.Rows[0], "kept rows are unchanged")
	assert.Equal(t, table.Rows[3], sub.Rows[1])
	assert.LessOrEqual(t, sub.Len(), table.Len())
	assert.True(t, table.Equal(original), "source table is not mutated")

	sub.Rows[0][0] = "changed"
	assert.Equal(t, "Gamma", table.Rows[2][0], "filtered rows are copies")
}

func TestFilter_ExactlyMarkedRows(t *testing.T) {
	table := sampleTable()
	for _, col := range []string{"FlagA", "FlagB"} {
		sub, err := Filter(table, col, "x")
		require.NoError(t, err)

		ci := table.ColumnIndex(col)
		var want [][]string
		for _, row := range table.Rows {
			if strings.Contains(strings.ToLower(row[ci]), "x") {
				want = append(want, row)
			}
		}
		assert.Equal(t, want, sub.Rows, col)
	}
}

func TestFilter_UnknownColumn(t *testing.T) {
	_, err := Filter(sampleTable(), "Nope", "x")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestFilterAll(t *testing.T) {
	table := sampleTable()
	sel, err := ParseSelection("2,1", Classify(table.Columns, sampleMetadata))
	require.NoError(t, err)

	slices, err := FilterAll(table, sel, "x")
	require.NoError(t, err)
	require.Len(t, slices, 2)
	assert.Equal(t, "FlagB", slices[0].Category)
	assert.Equal(t, 2, slices[0].Table.Len())
	assert.Equal(t, "FlagA", slices[1].Category)
	assert.Equal(t, 1, slices[1].Table.Len())
}

func TestAnyMatch(t *testing.T) {
	table := sampleTable()
	sel := Selection{Indices: []int{1, 2}, Columns: []string{"FlagA", "FlagB"}}

	got, err := AnyMatch(table, sel, "x")
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())
	assert.Equal(t, "Beta", got.Rows[0][0])
	assert.Equal(t, "Gamma", got.Rows[1][0])
	assert.Equal(t, "Delta", got.Rows[2][0])

	_, err = AnyMatch(table, Selection{Columns: []string{"Nope"}}, "x")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}
