package grid

// navigableColumns returns the visible leaf columns in navigable order:
// left-pinned, then center, then right-pinned. All index-based column
// comparisons use this order, never the column ID strings.
func navigableColumns(cols []Column) []Column {
	var left, center, right []Column
	for _, c := range cols {
		if c.Hidden {
			continue
		}
		switch c.Pin {
		case PinLeft:
			left = append(left, c)
		case PinRight:
			right = append(right, c)
		default:
			center = append(center, c)
		}
	}
	out := make([]Column, 0, len(left)+len(center)+len(right))
	out = append(out, left...)
	out = append(out, center...)
	out = append(out, right...)
	return out
}

// columnIndex returns the position of a column in cols, or -1.
func columnIndex(cols []Column, id string) int {
	for i, c := range cols {
		if c.ID == id {
			return i
		}
	}
	return -1
}

const (
	defaultColumnWidth = 12
	minColumnWidth     = 3
)

func (m Model) columnByID(id string) (Column, bool) {
	for _, c := range m.cols {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// ResizeColumn grows or shrinks a column by delta cells, clamped to the
// minimum width.
func (m Model) ResizeColumn(id string, delta int) Model {
	if !m.opts.Resizing {
		return m
	}
	cols := make([]Column, len(m.cols))
	copy(cols, m.cols)
	for i := range cols {
		if cols[i].ID != id {
			continue
		}
		w := cols[i].Width + delta
		if w < minColumnWidth {
			w = minColumnWidth
		}
		cols[i].Width = w
	}
	m.cols = cols
	return m
}

// TogglePin cycles a column through none -> left -> right -> none. Pinning
// changes the navigable column order, so selection and focus are cleared.
func (m Model) TogglePin(id string) Model {
	if !m.opts.ColumnPinning {
		return m
	}
	cols := make([]Column, len(m.cols))
	copy(cols, m.cols)
	for i := range cols {
		if cols[i].ID != id {
			continue
		}
		switch cols[i].Pin {
		case PinNone:
			cols[i].Pin = PinLeft
		case PinLeft:
			cols[i].Pin = PinRight
		default:
			cols[i].Pin = PinNone
		}
	}
	m.cols = cols
	m = m.clearSelection()
	m.focused = nil
	return m
}

// SetColumnHidden shows or hides a column. Hiding changes the navigable
// order, so selection and focus are cleared.
func (m Model) SetColumnHidden(id string, hidden bool) Model {
	cols := make([]Column, len(m.cols))
	copy(cols, m.cols)
	for i := range cols {
		if cols[i].ID == id {
			cols[i].Hidden = hidden
		}
	}
	m.cols = cols
	m = m.clearSelection()
	m.focused = nil
	return m
}

func applyPinning(cols []Column, left, right []string) []Column {
	out := make([]Column, len(cols))
	copy(out, cols)
	for _, id := range left {
		if i := columnIndex(out, id); i >= 0 {
			out[i].Pin = PinLeft
		}
	}
	for _, id := range right {
		if i := columnIndex(out, id); i >= 0 {
			out[i].Pin = PinRight
		}
	}
	return out
}
