package grid

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"tabula/internal/logger"
)

// Tabular state core: the engine owns a deep copy of the consumer's rows
// plus a view mapping (view row index -> data row index) produced by the
// current filter and sort state. Cell selection and focus always address
// view rows; changing the view order invalidates them, so sort and filter
// changes clear both.

// buildView applies per-column filters then the sort order, producing the
// view mapping. The sort is stable so equal keys keep their data order.
func (m Model) buildView() []int {
	idxs := make([]int, 0, len(m.data))
	for i, r := range m.data {
		if m.matchesFilters(r) {
			idxs = append(idxs, i)
		}
	}
	if m.sortCol != "" {
		sort.SliceStable(idxs, func(a, b int) bool {
			c := compareValues(m.data[idxs[a]][m.sortCol], m.data[idxs[b]][m.sortCol])
			if m.sortDesc {
				return c > 0
			}
			return c < 0
		})
	}
	return idxs
}

func (m Model) matchesFilters(r Row) bool {
	for colID, q := range m.filters {
		if q == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(coerceString(r[colID])), strings.ToLower(q)) {
			return false
		}
	}
	return true
}

// compareValues orders two cell values, numerically when both parse as
// numbers, case-insensitively otherwise. nil sorts first.
func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	as, bs := coerceString(a), coerceString(b)
	af, aerr := strconv.ParseFloat(strings.TrimSpace(as), 64)
	bf, berr := strconv.ParseFloat(strings.TrimSpace(bs), 64)
	if aerr == nil && berr == nil {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(strings.ToLower(as), strings.ToLower(bs))
}

// formatValue renders a cell value for display and edit seeding.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if x == math.Trunc(x) {
			return strconv.Itoa(int(x))
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// refreshView recomputes the view mapping after a wholesale data change
// (undo, redo, SetData) and clamps focus to the new bounds.
func (m Model) refreshView() Model {
	m.view = m.buildView()
	m.vp.setTotal(len(m.view))
	m = m.clampFocus()
	return m
}

// reorderView is refreshView for explicit sort/filter changes: the meaning
// of every view-relative row index changes, so selection and focus are
// cleared rather than carried over.
func (m Model) reorderView() Model {
	m.view = m.buildView()
	m.vp.setTotal(len(m.view))
	m = m.clearSelection()
	m.focused = nil
	m.editing = false
	m.selectedRows = nil
	return m
}

func (m Model) clampFocus() Model {
	if m.focused == nil {
		return m
	}
	if len(m.view) == 0 {
		m.focused = nil
		m.editing = false
		return m
	}
	if m.focused.Row >= len(m.view) {
		f := *m.focused
		f.Row = len(m.view) - 1
		m.focused = &f
	}
	return m
}

// SortBy toggles sorting on a column: ascending, then descending, then off.
func (m Model) SortBy(colID string) Model {
	switch {
	case m.sortCol != colID:
		m.sortCol = colID
		m.sortDesc = false
	case !m.sortDesc:
		m.sortDesc = true
	default:
		m.sortCol = ""
		m.sortDesc = false
	}
	logger.Debug("sort: col=%q desc=%v", m.sortCol, m.sortDesc)
	return m.reorderView()
}

// SetFilter installs a substring filter on a column; an empty query removes
// it.
func (m Model) SetFilter(colID, query string) Model {
	filters := make(map[string]string, len(m.filters)+1)
	for k, v := range m.filters {
		filters[k] = v
	}
	if query == "" {
		delete(filters, colID)
	} else {
		filters[colID] = query
	}
	m.filters = filters
	return m.reorderView()
}

// cellValue reads the value at a view row and column ID.
func (m Model) cellValue(viewRow int, colID string) any {
	if viewRow < 0 || viewRow >= len(m.view) {
		return nil
	}
	return m.data[m.view[viewRow]][colID]
}

// setCell writes one cell through the view mapping, records a history
// entry and notifies the consumer. The view order is deliberately not
// recomputed: re-sorting under an active edit would teleport the row.
func (m Model) setCell(viewRow int, colID string, val any) Model {
	if viewRow < 0 || viewRow >= len(m.view) {
		return m
	}
	data := cloneRows(m.data)
	data[m.view[viewRow]][colID] = val
	m.data = data
	m.history.record(m.data)
	m.dirty = true
	m.notifyChange()
	return m
}

// AppendRow adds an empty row at the end of the table and moves focus to
// it. The new row is visible regardless of active filters until the next
// reorder.
func (m Model) AppendRow() Model {
	row := make(Row, len(m.cols))
	for _, c := range m.cols {
		row[c.ID] = nil
	}
	data := append(cloneRows(m.data), row)
	m.data = data
	m.view = append(append([]int(nil), m.view...), len(data)-1)
	m.vp.setTotal(len(m.view))
	m.history.record(m.data)
	m.dirty = true
	m.notifyChange()
	if len(m.cols) > 0 {
		nav := navigableColumns(m.cols)
		if len(nav) > 0 {
			f := CellPosition{Row: len(m.view) - 1, ColID: nav[0].ID}
			m.focused = &f
			m.vp.scrollToIndex(f.Row, alignAuto)
		}
	}
	return m
}

// AppendColumn adds a text column with a generated ID after the existing
// columns.
func (m Model) AppendColumn() Model {
	id := fmt.Sprintf("col%d", len(m.cols)+1)
	for columnIndex(m.cols, id) >= 0 {
		id += "x"
	}
	cols := append(append([]Column(nil), m.cols...), Column{ID: id, Title: id, Width: defaultColumnWidth})
	m.cols = cols
	m.dirty = true
	return m
}

// DeleteRow removes the focused row, recording a history entry.
func (m Model) DeleteRow(viewRow int) Model {
	if viewRow < 0 || viewRow >= len(m.view) {
		return m
	}
	dataRow := m.view[viewRow]
	data := cloneRows(m.data)
	data = append(data[:dataRow], data[dataRow+1:]...)
	m.data = data
	m.history.record(m.data)
	m.dirty = true
	m.notifyChange()
	m = m.clearSelection()
	return m.refreshView()
}

// ToggleRowSelected flips row selection (distinct from cell selection) for
// a view row.
func (m Model) ToggleRowSelected(viewRow int) Model {
	if !m.opts.RowSelection || viewRow < 0 || viewRow >= len(m.view) {
		return m
	}
	sel := make(map[int]struct{}, len(m.selectedRows)+1)
	for k := range m.selectedRows {
		sel[k] = struct{}{}
	}
	if _, ok := sel[viewRow]; ok {
		delete(sel, viewRow)
	} else {
		sel[viewRow] = struct{}{}
	}
	m.selectedRows = sel
	return m
}

// SelectedRows returns the selected view row indices in ascending order.
func (m Model) SelectedRows() []int {
	out := make([]int, 0, len(m.selectedRows))
	for r := range m.selectedRows {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}
