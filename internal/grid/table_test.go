package grid

import "testing"

func viewValues(m Model, colID string) []any {
	out := make([]any, len(m.view))
	for i := range m.view {
		out[i] = m.cellValue(i, colID)
	}
	return out
}

func TestSortByToggles(t *testing.T) {
	m := New(testColumns(), []Row{
		{"a": 3}, {"a": 1}, {"a": 2},
	}, DefaultOptions())

	m = m.SortBy("a")
	if got := viewValues(m, "a"); got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("ascending sort: got %v", got)
	}

	m = m.SortBy("a")
	if got := viewValues(m, "a"); got[0] != 3 || got[2] != 1 {
		t.Fatalf("descending sort: got %v", got)
	}

	// third toggle drops the sort and restores data order
	m = m.SortBy("a")
	if got := viewValues(m, "a"); got[0] != 3 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("unsorted: got %v", got)
	}
}

func TestSortIsNumericWhenValuesParse(t *testing.T) {
	m := New(testColumns(), []Row{
		{"a": "10"}, {"a": "9"}, {"a": "100"},
	}, DefaultOptions())

	m = m.SortBy("a")
	got := viewValues(m, "a")
	if got[0] != "9" || got[1] != "10" || got[2] != "100" {
		t.Fatalf("expected numeric order 9,10,100, got %v", got)
	}
}

func TestSortNilFirst(t *testing.T) {
	m := New(testColumns(), []Row{
		{"a": "x"}, {"a": nil}, {"a": "b"},
	}, DefaultOptions())

	m = m.SortBy("a")
	got := viewValues(m, "a")
	if got[0] != nil {
		t.Fatalf("nil must sort first, got %v", got)
	}
}

func TestFilterNarrowsView(t *testing.T) {
	m := New(testColumns(), []Row{
		{"a": "graph paper"}, {"a": "index cards"}, {"a": "Paper clips"},
	}, DefaultOptions())

	m = m.SetFilter("a", "paper")
	if len(m.view) != 2 {
		t.Fatalf("expected 2 matching rows, got %d", len(m.view))
	}
	// filtering is case-insensitive substring match
	if got := m.cellValue(1, "a"); got != "Paper clips" {
		t.Fatalf("expected case-insensitive match, got %v", got)
	}

	m = m.SetFilter("a", "")
	if len(m.view) != 3 {
		t.Fatalf("empty query must remove the filter, got %d rows", len(m.view))
	}
}

func TestReorderClearsSelectionAndFocus(t *testing.T) {
	m := newTestGrid(t, 5)
	m = focusAt(m, 2, "b")
	m = m.ToggleRowSelected(1)

	m = m.SortBy("a")
	if m.focused != nil || len(m.selected) != 0 || len(m.selectedRows) != 0 {
		t.Fatal("sort change must clear focus, cell selection and row selection")
	}

	m = focusAt(m, 0, "a")
	m = m.SetFilter("a", "1")
	if m.focused != nil || len(m.selected) != 0 {
		t.Fatal("filter change must clear focus and selection")
	}
}

func TestEditDoesNotResort(t *testing.T) {
	m := New(testColumns(), []Row{
		{"a": 1}, {"a": 2}, {"a": 3},
	}, DefaultOptions())
	m = m.SortBy("a")

	// editing the first row to a value that would sort last must not
	// teleport the row; the view keeps its order until the next reorder
	m = m.setCell(0, "a", "99")
	if got := m.cellValue(0, "a"); got != "99" {
		t.Fatalf("expected edited value at row 0, got %v", got)
	}
}

func TestAppendRowVisibleUnderFilter(t *testing.T) {
	m := New(testColumns(), []Row{
		{"a": "keep"}, {"a": "drop"},
	}, DefaultOptions())
	m = m.SetFilter("a", "keep")
	if len(m.view) != 1 {
		t.Fatalf("expected 1 row after filter, got %d", len(m.view))
	}

	m = m.AppendRow()
	if len(m.view) != 2 {
		t.Fatalf("new empty row must be visible despite the filter, got %d rows", len(m.view))
	}
	if m.focused == nil || m.focused.Row != 1 {
		t.Fatal("focus must land on the new row")
	}
	if !m.CanUndo() {
		t.Fatal("append must record a history entry")
	}
}

func TestDeleteRowThroughViewMapping(t *testing.T) {
	m := New(testColumns(), []Row{
		{"a": 3}, {"a": 1}, {"a": 2},
	}, DefaultOptions())
	m = m.SortBy("a") // view order 1, 2, 3

	m = m.DeleteRow(0) // deletes the data row holding 1
	if len(m.data) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(m.data))
	}
	for i := range m.view {
		if got := m.cellValue(i, "a"); got == 1 {
			t.Fatal("deleted row still present")
		}
	}

	m = m.Undo()
	if len(m.data) != 3 {
		t.Fatalf("undo must restore the deleted row, got %d rows", len(m.data))
	}
}

func TestDeleteRowOutOfRangeIsNoop(t *testing.T) {
	m := newTestGrid(t, 2)
	m = m.DeleteRow(5)
	m = m.DeleteRow(-1)
	if len(m.data) != 2 {
		t.Fatal("out-of-range delete must not change the table")
	}
}

func TestToggleRowSelected(t *testing.T) {
	m := newTestGrid(t, 4)

	m = m.ToggleRowSelected(1)
	m = m.ToggleRowSelected(3)
	if got := m.SelectedRows(); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("expected rows [1 3], got %v", got)
	}

	m = m.ToggleRowSelected(1)
	if got := m.SelectedRows(); len(got) != 1 || got[0] != 3 {
		t.Fatalf("expected rows [3] after toggle off, got %v", got)
	}
}

func TestRowSelectionDisabledByFlag(t *testing.T) {
	opts := DefaultOptions()
	opts.RowSelection = false
	m := New(testColumns(), testRows(3), opts)
	m = m.ToggleRowSelected(0)
	if len(m.SelectedRows()) != 0 {
		t.Fatal("row selection must be inert when the feature is off")
	}
}

func TestAppendColumnGeneratesFreshID(t *testing.T) {
	m := newTestGrid(t, 2)
	m = m.AppendColumn()
	if len(m.cols) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(m.cols))
	}
	id := m.cols[3].ID
	if columnIndex(m.cols[:3], id) >= 0 {
		t.Fatalf("generated ID %q collides with an existing column", id)
	}
	if !m.Dirty() {
		t.Fatal("adding a column must mark the grid dirty")
	}
}

func TestResizeColumnClampsAtMinimum(t *testing.T) {
	m := newTestGrid(t, 2)
	m = m.ResizeColumn("a", -100)
	if m.cols[0].Width != minColumnWidth {
		t.Fatalf("expected width clamped to %d, got %d", minColumnWidth, m.cols[0].Width)
	}
	m = m.ResizeColumn("a", 5)
	if m.cols[0].Width != minColumnWidth+5 {
		t.Fatalf("expected width %d, got %d", minColumnWidth+5, m.cols[0].Width)
	}
}

func TestTogglePinCycles(t *testing.T) {
	m := newTestGrid(t, 2)

	m = m.TogglePin("b")
	if m.cols[columnIndex(m.cols, "b")].Pin != PinLeft {
		t.Fatal("first toggle must pin left")
	}
	m = m.TogglePin("b")
	if m.cols[columnIndex(m.cols, "b")].Pin != PinRight {
		t.Fatal("second toggle must pin right")
	}
	m = m.TogglePin("b")
	if m.cols[columnIndex(m.cols, "b")].Pin != PinNone {
		t.Fatal("third toggle must unpin")
	}
}

func TestHideColumnRemovesFromNavigation(t *testing.T) {
	m := newTestGrid(t, 2)
	m = m.SetColumnHidden("b", true)
	nav := navigableColumns(m.cols)
	if len(nav) != 2 {
		t.Fatalf("expected 2 navigable columns, got %d", len(nav))
	}
	if columnIndex(nav, "b") >= 0 {
		t.Fatal("hidden column must not be navigable")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"s", "s"},
		{42, "42"},
		{3.0, "3"},
		{3.25, "3.25"},
		{true, "true"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
