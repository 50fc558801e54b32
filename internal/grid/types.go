package grid

import "fmt"

// PinSide fixes a column to one edge of the grid. Pinned columns are always
// visible and sit outside the horizontal scroll window.
type PinSide int

const (
	PinNone PinSide = iota
	PinLeft
	PinRight
)

// Row is one record of the grid, keyed by column ID. Cell values are opaque
// to the engine; they are coerced to strings only at the clipboard boundary
// and when seeding an edit buffer.
type Row map[string]any

// Column describes one leaf column of the grid.
type Column struct {
	ID     string
	Title  string
	Width  int
	Hidden bool
	Pin    PinSide

	// RightAlign right-aligns cell content (numbers, money).
	RightAlign bool

	// BeginEdit seeds the edit buffer when this column's cell enters edit
	// mode. When nil the current value is formatted with formatValue.
	BeginEdit func(value any) string

	// Parse converts a committed edit buffer into a cell value. When nil
	// the raw string is stored unchanged. Pasted values always bypass
	// Parse and are stored as raw strings.
	Parse func(input string) any
}

// CellPosition addresses a cell by view-relative row index and column ID.
// Row indices are not stable across sort or filter changes.
type CellPosition struct {
	Row   int
	ColID string
}

// CellRange is a selection anchor and a moving endpoint. The materialized
// selection is the rectangle between the two row indices and the two
// columns' positions in the navigable column order.
type CellRange struct {
	Start CellPosition
	End   CellPosition
}

// ClickModifiers carries the modifier keys held during a mouse gesture.
type ClickModifiers struct {
	Shift bool
	Ctrl  bool
}

func cellKey(row int, colID string) string {
	return fmt.Sprintf("%d:%s", row, colID)
}
