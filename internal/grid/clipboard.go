package grid

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"tabula/internal/logger"
)

// Clipboard bridge: the selected rectangle serializes to tab-separated text
// with one line per row. Paste splits clipboard text the same way and writes
// raw strings into the table starting at the selection's top-left anchor,
// clipping anything that falls outside the current bounds.

// Indirection over the system clipboard so tests can swap in a fake.
var (
	writeClipboard = clipboard.WriteAll
	readClipboard  = clipboard.ReadAll
)

// serializeSelection renders the selection as TSV. Rows are emitted in
// ascending index order; the involved columns in navigable order. Cells the
// rectangle covers but the selection lacks (ctrl-toggle mode) serialize like
// empty cells.
func serializeSelection(sel map[string]CellPosition, cols []Column, value func(row int, colID string) any) string {
	if len(sel) == 0 {
		return ""
	}
	nav := navigableColumns(cols)

	rowSet := map[int]bool{}
	colSet := map[string]bool{}
	for _, pos := range sel {
		rowSet[pos.Row] = true
		colSet[pos.ColID] = true
	}

	rows := make([]int, 0, len(rowSet))
	for r := range rowSet {
		rows = append(rows, r)
	}
	sort.Ints(rows)

	colIDs := make([]string, 0, len(colSet))
	for id := range colSet {
		colIDs = append(colIDs, id)
	}
	sort.Slice(colIDs, func(i, j int) bool {
		return columnIndex(nav, colIDs[i]) < columnIndex(nav, colIDs[j])
	})

	var b strings.Builder
	for ri, r := range rows {
		if ri > 0 {
			b.WriteByte('\n')
		}
		for ci, id := range colIDs {
			if ci > 0 {
				b.WriteByte('\t')
			}
			if !sel[cellKey(r, id)].eq(r, id) {
				continue
			}
			b.WriteString(coerceString(value(r, id)))
		}
	}
	return b.String()
}

func (p CellPosition) eq(row int, colID string) bool {
	return p.Row == row && p.ColID == colID
}

// coerceString is the single point where cell values become text.
// nil renders as the empty string.
func coerceString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// parseClipboard splits clipboard text into a 2-D grid of strings. CRLF
// line endings are normalized; a trailing newline does not produce a
// phantom empty row.
func parseClipboard(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	out := make([][]string, len(lines))
	for i, line := range lines {
		out[i] = strings.Split(line, "\t")
	}
	return out
}

// selectionAnchor finds the top-left corner of the selection: the minimum
// row index and the minimum column position in the navigable order, scanned
// over the selected cells.
func selectionAnchor(sel map[string]CellPosition, cols []Column) (CellPosition, bool) {
	if len(sel) == 0 {
		return CellPosition{}, false
	}
	nav := navigableColumns(cols)
	minRow := -1
	minCol := -1
	for _, pos := range sel {
		ci := columnIndex(nav, pos.ColID)
		if ci < 0 {
			continue
		}
		if minRow < 0 || pos.Row < minRow {
			minRow = pos.Row
		}
		if minCol < 0 || ci < minCol {
			minCol = ci
		}
	}
	if minRow < 0 || minCol < 0 {
		return CellPosition{}, false
	}
	return CellPosition{Row: minRow, ColID: nav[minCol].ID}, true
}

// Copy writes the selected rectangle to the system clipboard as TSV. An
// empty selection is a no-op. Clipboard failures are logged and returned;
// the grid state is never corrupted by them.
func (m Model) Copy() (Model, error) {
	if !m.opts.Clipboard || len(m.selected) == 0 {
		return m, nil
	}
	text := serializeSelection(m.selected, m.cols, m.cellValue)
	if err := writeClipboard(text); err != nil {
		logger.Error("clipboard write failed: %v", err)
		return m, fmt.Errorf("clipboard write: %w", err)
	}
	m.status = fmt.Sprintf("copied %d cells", len(m.selected))
	return m, nil
}

// Paste reads TSV from the system clipboard and writes it into the table
// starting at the selection anchor, row-major. Targets beyond the current
// row count or navigable column count are clipped; short clipboard rows
// leave the remaining cells unmodified. Every pasted value is stored as a
// raw string. A successful paste records exactly one history entry.
func (m Model) Paste() (Model, error) {
	if !m.opts.Clipboard || len(m.selected) == 0 {
		return m, nil
	}
	anchor, ok := selectionAnchor(m.selected, m.cols)
	if !ok {
		return m, nil
	}
	text, err := readClipboard()
	if err != nil {
		logger.Error("clipboard read failed: %v", err)
		return m, fmt.Errorf("clipboard read: %w", err)
	}
	cells := parseClipboard(text)
	if len(cells) == 0 {
		return m, nil
	}

	nav := navigableColumns(m.cols)
	anchorCol := columnIndex(nav, anchor.ColID)
	if anchorCol < 0 {
		return m, nil
	}

	data := cloneRows(m.data)
	written := 0
	for i, line := range cells {
		viewRow := anchor.Row + i
		if viewRow >= len(m.view) {
			break
		}
		dataRow := m.view[viewRow]
		for j, val := range line {
			ci := anchorCol + j
			if ci >= len(nav) {
				break
			}
			data[dataRow][nav[ci].ID] = val
			written++
		}
	}
	if written == 0 {
		return m, nil
	}
	m.data = data
	m.history.record(m.data)
	m.dirty = true
	m.status = fmt.Sprintf("pasted %d cells", written)
	m.notifyChange()
	return m, nil
}
