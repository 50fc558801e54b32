package grid

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func testColumns() []Column {
	return []Column{
		{ID: "a", Title: "A", Width: 6},
		{ID: "b", Title: "B", Width: 6},
		{ID: "c", Title: "C", Width: 6},
	}
}

// testRows builds n rows with distinct values per cell: r0 {a:1 b:2 c:3},
// r1 {a:4 b:5 c:6}, ...
func testRows(n int) []Row {
	rows := make([]Row, n)
	for i := 0; i < n; i++ {
		rows[i] = Row{"a": i*3 + 1, "b": i*3 + 2, "c": i*3 + 3}
	}
	return rows
}

func newTestGrid(t *testing.T, n int) Model {
	t.Helper()
	m := New(testColumns(), testRows(n), DefaultOptions())
	return m.SetSize(80, 24)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func keyType(kt tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: kt}
}

func pressKey(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	m, _ = m.Update(msg)
	return m
}

func focusAt(m Model, row int, colID string) Model {
	pos := CellPosition{Row: row, ColID: colID}
	return m.focusCell(pos, false)
}

func cellAt(t *testing.T, m Model, row int, colID string) any {
	t.Helper()
	return m.cellValue(row, colID)
}

// ---------------------------------------------------------------------------
// construction
// ---------------------------------------------------------------------------

func TestNewClonesRows(t *testing.T) {
	rows := testRows(2)
	m := New(testColumns(), rows, DefaultOptions())

	rows[0]["a"] = "mutated"
	if got := m.cellValue(0, "a"); got == "mutated" {
		t.Fatal("grid aliased the caller's rows")
	}
}

func TestNewDefaultsColumnWidth(t *testing.T) {
	m := New([]Column{{ID: "x", Title: "X"}}, nil, DefaultOptions())
	if m.cols[0].Width != defaultColumnWidth {
		t.Fatalf("expected default width %d, got %d", defaultColumnWidth, m.cols[0].Width)
	}
}

func TestSetDataDeepEqualIsNoop(t *testing.T) {
	m := newTestGrid(t, 3)
	m = m.setCell(0, "a", "edited")
	if !m.CanUndo() {
		t.Fatal("expected undo history after edit")
	}

	// Same contents: history must survive.
	m2 := m.SetData(m.Data())
	if !m2.CanUndo() {
		t.Fatal("deep-equal SetData must not reset history")
	}

	// Different contents: history resets to a single entry.
	m3 := m.SetData(testRows(5))
	if m3.CanUndo() {
		t.Fatal("SetData with new rows must reset history")
	}
	if len(m3.view) != 5 {
		t.Fatalf("expected 5 view rows, got %d", len(m3.view))
	}
}

func TestOnDataChangeFiresOncePerEdit(t *testing.T) {
	calls := 0
	opts := DefaultOptions()
	opts.OnDataChange = func([]Row) { calls++ }
	m := New(testColumns(), testRows(3), opts)

	m = m.setCell(0, "a", "x")
	m = m.setCell(1, "b", "y")
	if calls != 2 {
		t.Fatalf("expected 2 notifications, got %d", calls)
	}

	m = m.Undo()
	if calls != 3 {
		t.Fatalf("expected undo to notify, got %d calls", calls)
	}
	_ = m
}

func TestStatusLineShowsMode(t *testing.T) {
	m := newTestGrid(t, 3)
	if got := m.statusLine(); !strings.Contains(got, "IDLE") {
		t.Fatalf("expected IDLE in status, got %q", got)
	}
	m = focusAt(m, 1, "b")
	if got := m.statusLine(); !strings.Contains(got, "CELL") {
		t.Fatalf("expected CELL in status, got %q", got)
	}
	m = m.beginEdit("", false)
	if got := m.statusLine(); !strings.Contains(got, "EDIT") {
		t.Fatalf("expected EDIT in status, got %q", got)
	}
}

func TestViewRendersWithoutFocus(t *testing.T) {
	m := newTestGrid(t, 50)
	out := m.View()
	if out == "" {
		t.Fatal("expected non-empty view")
	}
}

func ExampleModel_Data() {
	m := New([]Column{{ID: "n", Title: "N"}}, []Row{{"n": 1}}, DefaultOptions())
	fmt.Println(len(m.Data()))
	// Output: 1
}
