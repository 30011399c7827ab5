// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package viewer

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/journaldb/internal/logging"
	"github.com/pdiddy/journaldb/pkg/types"
)

func testConfig() types.Config {
	cfg := types.DefaultConfig()
	cfg.MetadataColumns = []string{"Title", "Journal", "Points"}
	cfg.Viewer.PointsColumn = "Points"
	cfg.Viewer.CategoryColumn = "Journal"
	cfg.Viewer.VisibleColumns = []string{"Title", "Points"}
	return cfg
}

func testTable() *types.Table {
	return &types.Table{
		Columns: []string{"Title", "Journal", "Points", "FlagA"},
		Rows: [][]string{
			{"A", "IEEE", "3", ""},
			{"B", "ACM", "5", "x"},
			{"C", "IEEE", "7", ""},
			{"D", "IEEE Access", "10", "X"},
			{"E", "ACM", "12", ""},
			{"F", "IEEE", "n/a", "x"},
		},
	}
}

func titles(v View) []string {
	var out []string
	for _, r := range v.Rows {
		out = append(out, r[0])
	}
	return out
}

func allVisible(tbl *types.Table, cfg types.Config) State {
	return NewState(tbl, cfg).ShowAll().WithSort(false)
}

// --- ParseBound ---

func TestParseBound(t *testing.T) {
	tests := []struct {
		in      string
		want    Bound
		wantErr bool
	}{
		{"", Unbounded, false},
		{"   ", Unbounded, false},
		{"5", At(5), false},
		{" 7.5 ", At(7.5), false},
		{"7,5", At(7.5), false},
		{"-2", At(-2), false},
		{"abc", Unbounded, true},
		{"NaN", Unbounded, true},
		{"Inf", Unbounded, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBound(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// --- Compute ---

func TestCompute_InclusiveRange(t *testing.T) {
	tbl := testTable()
	cfg := testConfig()
	s := allVisible(tbl, cfg).WithMin(At(5)).WithMax(At(10))

	v := Compute(tbl, cfg, s)
	assert.Equal(t, []string{"B", "C", "D"}, titles(v))
	assert.Equal(t, 6, v.Total)
}

func TestCompute_NoFilters(t *testing.T) {
	tbl := testTable()
	cfg := testConfig()

	v := Compute(tbl, cfg, allVisible(tbl, cfg))
	assert.Len(t, v.Rows, 6)
	assert.Equal(t, tbl.Columns, v.Columns)
}

func TestCompute_NonNumericExcludedOnlyWhenBounded(t *testing.T) {
	tbl := testTable()
	cfg := testConfig()

	v := Compute(tbl, cfg, allVisible(tbl, cfg).WithMin(At(0)))
	assert.NotContains(t, titles(v), "F")

	v = Compute(tbl, cfg, allVisible(tbl, cfg))
	assert.Contains(t, titles(v), "F")
}

func TestCompute_CategoryExactMatch(t *testing.T) {
	tbl := testTable()
	cfg := testConfig()

	v := Compute(tbl, cfg, allVisible(tbl, cfg).WithCategory("IEEE"))
	assert.Equal(t, []string{"A", "C", "F"}, titles(v))

	v = Compute(tbl, cfg, allVisible(tbl, cfg).WithCategory(AllOption))
	assert.Len(t, v.Rows, 6)
}

func TestCompute_Flag(t *testing.T) {
	tbl := testTable()
	cfg := testConfig()

	v := Compute(tbl, cfg, allVisible(tbl, cfg).WithFlag("FlagA"))
	assert.Equal(t, []string{"B", "D", "F"}, titles(v))
}

func TestCompute_CombinedFilters(t *testing.T) {
	tbl := testTable()
	cfg := testConfig()
	s := allVisible(tbl, cfg).WithMin(At(4)).WithCategory("IEEE")

	v := Compute(tbl, cfg, s)
	assert.Equal(t, []string{"C"}, titles(v))
}

func TestCompute_SortDescending(t *testing.T) {
	tbl := testTable()
	cfg := testConfig()

	v := Compute(tbl, cfg, allVisible(tbl, cfg).WithSort(true))
	assert.Equal(t, []string{"E", "D", "C", "B", "A", "F"}, titles(v))
}

func TestCompute_MissingPointsColumn(t *testing.T) {
	tbl := testTable()
	cfg := testConfig()
	cfg.Viewer.PointsColumn = "Nope"

	v := Compute(tbl, cfg, allVisible(tbl, cfg).WithMin(At(1)))
	assert.Empty(t, v.Rows)

	v = Compute(tbl, cfg, allVisible(tbl, cfg).WithSort(true))
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F"}, titles(v))
}

func TestCompute_HidingDoesNotChangeRows(t *testing.T) {
	tbl := testTable()
	cfg := testConfig()
	s := allVisible(tbl, cfg).WithMin(At(5))

	before := Compute(tbl, cfg, s)
	after := Compute(tbl, cfg, s.ToggleColumn("Points").ToggleColumn("Journal"))

	require.Len(t, after.Rows, len(before.Rows))
	assert.Equal(t, []string{"Title", "FlagA"}, after.Columns)
	for i := range before.Rows {
		assert.Equal(t, before.Rows[i][0], after.Rows[i][0])
	}
}

func TestCompute_NoVisibleColumns(t *testing.T) {
	tbl := testTable()
	cfg := testConfig()
	s := allVisible(tbl, cfg)
	for _, c := range tbl.Columns {
		s = s.ToggleColumn(c)
	}

	v := Compute(tbl, cfg, s)
	assert.Empty(t, v.Columns)
	assert.Len(t, v.Rows, 6)
}

func TestCompute_LeavesTableUntouched(t *testing.T) {
	tbl := testTable()
	orig := tbl.Clone()
	cfg := testConfig()

	Compute(tbl, cfg, NewState(tbl, cfg).WithMin(At(5)).WithCategory("ACM"))
	assert.True(t, orig.Equal(tbl))
}

// --- State ---

func TestNewState_Visibility(t *testing.T) {
	tbl := testTable()
	cfg := testConfig()

	s := NewState(tbl, cfg)
	assert.False(t, s.Hidden("Title"))
	assert.False(t, s.Hidden("Points"))
	assert.False(t, s.Hidden("FlagA"), "categorical columns start visible")
	assert.True(t, s.Hidden("Journal"))
	assert.True(t, s.SortDesc)

	cfg.Viewer.VisibleColumns = nil
	assert.False(t, NewState(tbl, cfg).Hidden("Journal"))
}

func TestState_Immutable(t *testing.T) {
	tbl := testTable()
	cfg := testConfig()

	base := NewState(tbl, cfg)
	toggled := base.ToggleColumn("Title")
	_ = base.WithMin(At(3)).WithCategory("IEEE").WithFlag("FlagA")

	assert.False(t, base.Hidden("Title"))
	assert.True(t, toggled.Hidden("Title"))
	assert.False(t, base.Min.Set)
	assert.Empty(t, base.Category)
	assert.Empty(t, base.Flag)

	back := toggled.ToggleColumn("Title")
	assert.False(t, back.Hidden("Title"))
	assert.True(t, toggled.Hidden("Title"))
}

func TestOptions(t *testing.T) {
	tbl := testTable()
	cfg := testConfig()

	assert.Equal(t, []string{AllOption, "IEEE", "ACM", "IEEE Access"}, CategoryOptions(tbl, cfg))
	assert.Equal(t, []string{"", "FlagA"}, FlagOptions(tbl, cfg))

	cfg.Viewer.CategoryColumn = "Nope"
	assert.Equal(t, []string{AllOption}, CategoryOptions(tbl, cfg))
}

// --- TUI ---

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func TestModel_Startup(t *testing.T) {
	m := NewModel(testTable(), testConfig(), logging.Discard())

	v := m.Current()
	assert.Equal(t, []string{"Title", "Points", "FlagA"}, v.Columns)
	assert.Equal(t, "E", v.Rows[0][0])
	assert.Contains(t, m.View(), "6 of 6 records")
	assert.Contains(t, m.View(), "c/C: exact Journal value")
}

func TestModel_BoundInput(t *testing.T) {
	m := NewModel(testTable(), testConfig(), logging.Discard())

	press(m, tea.KeyMsg{Type: tea.KeyTab}, keyRunes("1"), keyRunes("0"))
	assert.Equal(t, At(10), m.State().Min)
	assert.Equal(t, []string{"E", "D"}, titles(m.Current()))

	press(m, tea.KeyMsg{Type: tea.KeyTab}, keyRunes("1"), keyRunes("1"))
	assert.Equal(t, At(11), m.State().Max)
	assert.Equal(t, []string{"D"}, titles(m.Current()))
}

func TestModel_InvalidBoundKeepsState(t *testing.T) {
	m := NewModel(testTable(), testConfig(), logging.Discard())

	press(m, tea.KeyMsg{Type: tea.KeyTab}, keyRunes("5"))
	require.Equal(t, At(5), m.State().Min)

	press(m, keyRunes("z"))
	assert.Equal(t, At(5), m.State().Min)
	assert.Contains(t, m.View(), "Min points")
	assert.Contains(t, m.View(), "is not a number")
}

func TestModel_CategoryAndFlagCycling(t *testing.T) {
	m := NewModel(testTable(), testConfig(), logging.Discard())

	press(m, keyRunes("c"))
	assert.Equal(t, "IEEE", m.State().Category)
	assert.Len(t, m.Current().Rows, 3)

	press(m, keyRunes("C"))
	assert.Equal(t, AllOption, m.State().Category)

	press(m, keyRunes("f"))
	assert.Equal(t, "FlagA", m.State().Flag)
	assert.Len(t, m.Current().Rows, 3)

	press(m, keyRunes("f"))
	assert.Empty(t, m.State().Flag)
}

func TestModel_ColumnToggle(t *testing.T) {
	m := NewModel(testTable(), testConfig(), logging.Discard())

	press(m, keyRunes(" "))
	assert.True(t, m.State().Hidden("Title"))
	assert.Equal(t, []string{"Points", "FlagA"}, m.Current().Columns)

	press(m, keyRunes("]"), keyRunes(" "))
	assert.False(t, m.State().Hidden("Journal"))

	press(m, keyRunes("a"))
	assert.Len(t, m.Current().Columns, 4)
}

func TestModel_NoColumnsMessage(t *testing.T) {
	cfg := testConfig()
	cfg.Viewer.VisibleColumns = []string{"Title"}
	tbl := &types.Table{
		Columns: []string{"Title", "Points"},
		Rows:    [][]string{{"A", "1"}},
	}
	cfg.MetadataColumns = []string{"Title", "Points"}
	m := NewModel(tbl, cfg, logging.Discard())

	press(m, keyRunes(" "))
	assert.Empty(t, m.Current().Columns)
	assert.Contains(t, m.View(), "No columns are selected.")
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(testTable(), testConfig(), logging.Discard())

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
