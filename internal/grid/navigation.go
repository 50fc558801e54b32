package grid

// Keyboard navigation: focus moves are clamped to the grid bounds (no
// wrapping), except Tab and Shift+Tab which wrap to the adjacent row.
// Shift+arrow extends the rectangular selection from the anchor instead of
// collapsing it.

const pageRows = 10

// moveFocus shifts the focused cell by a row and column delta, clamped to
// the grid. When extend is true the selection rectangle grows from the
// anchor to the new focus; otherwise the selection collapses to it.
func (m Model) moveFocus(dRow, dCol int, extend bool) Model {
	if len(m.view) == 0 {
		return m
	}
	nav := navigableColumns(m.cols)
	if len(nav) == 0 {
		return m
	}
	cur := m.focusOrOrigin(nav)

	row := clampInt(cur.Row+dRow, 0, len(m.view)-1)
	ci := columnIndex(nav, cur.ColID)
	if ci < 0 {
		ci = 0
	}
	ci = clampInt(ci+dCol, 0, len(nav)-1)

	pos := CellPosition{Row: row, ColID: nav[ci].ID}
	return m.focusCell(pos, extend)
}

// tabMove moves one cell right or left, wrapping to the next or previous
// row at the row boundary.
func (m Model) tabMove(forward bool) Model {
	if len(m.view) == 0 {
		return m
	}
	nav := navigableColumns(m.cols)
	if len(nav) == 0 {
		return m
	}
	cur := m.focusOrOrigin(nav)
	ci := columnIndex(nav, cur.ColID)
	if ci < 0 {
		ci = 0
	}
	row := cur.Row

	if forward {
		ci++
		if ci >= len(nav) {
			ci = 0
			row++
			if row >= len(m.view) {
				row = len(m.view) - 1
				ci = len(nav) - 1
			}
		}
	} else {
		ci--
		if ci < 0 {
			ci = len(nav) - 1
			row--
			if row < 0 {
				row = 0
				ci = 0
			}
		}
	}
	return m.focusCell(CellPosition{Row: row, ColID: nav[ci].ID}, false)
}

// homeEnd moves to the first or last cell of the row, or of the whole grid
// when wholeGrid is set.
func (m Model) homeEnd(toEnd, wholeGrid bool) Model {
	if len(m.view) == 0 {
		return m
	}
	nav := navigableColumns(m.cols)
	if len(nav) == 0 {
		return m
	}
	cur := m.focusOrOrigin(nav)

	row := cur.Row
	if wholeGrid {
		if toEnd {
			row = len(m.view) - 1
		} else {
			row = 0
		}
	}
	ci := 0
	if toEnd {
		ci = len(nav) - 1
	}
	return m.focusCell(CellPosition{Row: row, ColID: nav[ci].ID}, false)
}

func (m Model) pageMove(down bool) Model {
	if down {
		return m.moveFocus(pageRows, 0, false)
	}
	return m.moveFocus(-pageRows, 0, false)
}

// focusCell sets the focused cell, updates the selection accordingly and
// scrolls the target row and column into view.
func (m Model) focusCell(pos CellPosition, extend bool) Model {
	p := pos
	m.focused = &p
	if extend {
		m = m.extendSelectionTo(pos)
	} else if m.opts.CellSelection {
		anchor := pos
		m.selStart = &anchor
		m.selected = map[string]CellPosition{cellKey(pos.Row, pos.ColID): pos}
	}
	m.vp.scrollToIndex(pos.Row, alignAuto)
	m = m.ensureColumnVisible(pos.ColID)
	return m
}

// focusOrOrigin returns the focused cell, or the top-left cell when
// nothing has focus yet.
func (m Model) focusOrOrigin(nav []Column) CellPosition {
	if m.focused != nil {
		return *m.focused
	}
	return CellPosition{Row: 0, ColID: nav[0].ID}
}

// ensureColumnVisible adjusts the horizontal scroll window so an unpinned
// focused column is rendered. Pinned columns are always visible.
func (m Model) ensureColumnVisible(colID string) Model {
	col, ok := m.columnByID(colID)
	if !ok || col.Pin != PinNone {
		return m
	}
	center := m.centerColumns()
	idx := columnIndex(center, colID)
	if idx < 0 {
		return m
	}
	if idx < m.scrollX {
		m.scrollX = idx
		return m
	}
	for m.scrollX < idx {
		if m.centerColumnFits(idx) {
			break
		}
		m.scrollX++
	}
	return m
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
