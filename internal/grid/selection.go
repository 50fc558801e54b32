package grid

// Cell selection: a rectangular row x column selection anchored at a start
// cell, computed from click, drag, shift and ctrl gestures. The selection
// rectangle is the Cartesian product of a closed row-index interval and a
// closed navigable-column-index interval.

// cellsInRange materializes the rectangle between start and end. The column
// interval is taken over positions in the navigable column order, never by
// comparing column ID strings.
func cellsInRange(start, end CellPosition, cols []Column) map[string]CellPosition {
	nav := navigableColumns(cols)
	si := columnIndex(nav, start.ColID)
	ei := columnIndex(nav, end.ColID)
	if si < 0 || ei < 0 {
		return map[string]CellPosition{cellKey(start.Row, start.ColID): start}
	}
	r0, r1 := min(start.Row, end.Row), max(start.Row, end.Row)
	c0, c1 := min(si, ei), max(si, ei)
	out := make(map[string]CellPosition, (r1-r0+1)*(c1-c0+1))
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			out[cellKey(r, nav[c].ID)] = CellPosition{Row: r, ColID: nav[c].ID}
		}
	}
	return out
}

// BeginSelection starts a drag selection at pos: the anchor moves to pos,
// the selection collapses to pos, and the grid enters dragging mode.
func (m Model) BeginSelection(pos CellPosition) Model {
	if !m.opts.CellSelection {
		return m
	}
	anchor := pos
	m.selStart = &anchor
	m.selected = map[string]CellPosition{cellKey(pos.Row, pos.ColID): pos}
	m.dragging = true
	return m
}

// ExtendSelection recomputes the rectangle from the anchor to pos while a
// drag is in progress, overwriting the selection.
func (m Model) ExtendSelection(pos CellPosition) Model {
	if !m.dragging || m.selStart == nil {
		return m
	}
	m.selected = cellsInRange(*m.selStart, pos, m.cols)
	return m
}

// EndSelection exits dragging mode without changing the selection.
func (m Model) EndSelection() Model {
	m.dragging = false
	return m
}

// ClickCell applies click semantics: plain click selects a single cell and
// resets the anchor, shift-click selects the rectangle from the existing
// anchor, ctrl-click toggles membership of pos and moves the anchor to it.
func (m Model) ClickCell(pos CellPosition, mods ClickModifiers) Model {
	if !m.opts.CellSelection {
		return m
	}
	switch {
	case mods.Ctrl:
		key := cellKey(pos.Row, pos.ColID)
		if m.selected == nil {
			m.selected = map[string]CellPosition{}
		} else {
			m.selected = cloneSelection(m.selected)
		}
		if _, ok := m.selected[key]; ok {
			delete(m.selected, key)
		} else {
			m.selected[key] = pos
		}
		anchor := pos
		m.selStart = &anchor
	case mods.Shift && m.selStart != nil:
		m.selected = cellsInRange(*m.selStart, pos, m.cols)
	default:
		anchor := pos
		m.selStart = &anchor
		m.selected = map[string]CellPosition{cellKey(pos.Row, pos.ColID): pos}
	}
	return m
}

func (m Model) clearSelection() Model {
	m.selected = nil
	m.selStart = nil
	m.dragging = false
	return m
}

// extendSelectionTo grows the rectangle from the anchor toward pos during
// shift+arrow navigation, creating the anchor at the focused cell if the
// selection was empty.
func (m Model) extendSelectionTo(pos CellPosition) Model {
	if !m.opts.CellSelection {
		return m
	}
	if m.selStart == nil {
		if m.focused == nil {
			return m
		}
		anchor := *m.focused
		m.selStart = &anchor
	}
	m.selected = cellsInRange(*m.selStart, pos, m.cols)
	return m
}

func cloneSelection(sel map[string]CellPosition) map[string]CellPosition {
	out := make(map[string]CellPosition, len(sel))
	for k, v := range sel {
		out[k] = v
	}
	return out
}

// SelectedCells returns a copy of the current selection.
func (m Model) SelectedCells() map[string]CellPosition {
	return cloneSelection(m.selected)
}
