package grid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// styles
var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	focusedStyle  = lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("6")).Foreground(lipgloss.Color("0"))
	editStyle     = lipgloss.NewStyle().Background(lipgloss.Color("3")).Foreground(lipgloss.Color("0"))
	rowSelStyle   = lipgloss.NewStyle().Background(lipgloss.Color("5")).Foreground(lipgloss.Color("15"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// rowClassStyles maps RowStyle class names to terminal styles.
var rowClassStyles = map[string]lipgloss.Style{
	"dim":  dimStyle,
	"warn": warnStyle,
}

// chromeHeight is the number of non-body lines the grid renders: header,
// separator, status bar and help line.
const chromeHeight = 4

const bodyTop = 2

type colSpan struct {
	col Column
	x   int
	w   int
}

// visibleSpans computes the rendered columns and their x positions:
// left-pinned columns first, then the center window starting at scrollX,
// then right-pinned columns. Pinned columns are always present.
func (m Model) visibleSpans() []colSpan {
	width := m.width
	if width <= 0 {
		width = 80
	}
	var left, right []Column
	for _, c := range m.cols {
		if c.Hidden {
			continue
		}
		switch c.Pin {
		case PinLeft:
			left = append(left, c)
		case PinRight:
			right = append(right, c)
		}
	}
	center := m.centerColumns()

	rightW := 0
	for _, c := range right {
		rightW += c.Width + 1
	}

	var spans []colSpan
	x := 0
	for _, c := range left {
		spans = append(spans, colSpan{col: c, x: x, w: c.Width})
		x += c.Width + 1
	}
	avail := width - rightW
	start := m.scrollX
	if start > len(center) {
		start = len(center)
	}
	if start < 0 {
		start = 0
	}
	for i := start; i < len(center); i++ {
		c := center[i]
		if x+c.Width+1 > avail && i > start {
			break
		}
		spans = append(spans, colSpan{col: c, x: x, w: c.Width})
		x += c.Width + 1
	}
	for _, c := range right {
		spans = append(spans, colSpan{col: c, x: x, w: c.Width})
		x += c.Width + 1
	}
	return spans
}

func (m Model) centerColumns() []Column {
	var out []Column
	for _, c := range m.cols {
		if !c.Hidden && c.Pin == PinNone {
			out = append(out, c)
		}
	}
	return out
}

// centerColumnFits reports whether the center column at idx is inside the
// current horizontal window.
func (m Model) centerColumnFits(idx int) bool {
	center := m.centerColumns()
	if idx < 0 || idx >= len(center) {
		return false
	}
	id := center[idx].ID
	for _, s := range m.visibleSpans() {
		if s.col.ID == id {
			return true
		}
	}
	return false
}

// hitTest maps terminal coordinates to the cell under them.
func (m Model) hitTest(x, y int) (CellPosition, bool) {
	if y < bodyTop || y >= bodyTop+m.vp.height {
		return CellPosition{}, false
	}
	viewRow := m.vp.offset + (y-bodyTop)/m.vp.rowHeight
	if viewRow >= len(m.view) {
		return CellPosition{}, false
	}
	for _, s := range m.visibleSpans() {
		if x >= s.x && x < s.x+s.w+1 {
			return CellPosition{Row: viewRow, ColID: s.col.ID}, true
		}
	}
	return CellPosition{}, false
}

// hitTestHeader maps a click on the header line to its column.
func (m Model) hitTestHeader(x, y int) (string, bool) {
	if y != 0 {
		return "", false
	}
	for _, s := range m.visibleSpans() {
		if x >= s.x && x < s.x+s.w+1 {
			return s.col.ID, true
		}
	}
	return "", false
}

// View renders the grid: header, separator, the virtualized row window,
// status bar and help line.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}
	spans := m.visibleSpans()
	var b strings.Builder

	// header
	for i, s := range spans {
		title := s.col.Title
		if m.sortCol == s.col.ID {
			if m.sortDesc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		if m.filters[s.col.ID] != "" {
			title += " ≈"
		}
		b.WriteString(headerStyle.Render(padCell(title, s.w, false)))
		if i < len(spans)-1 {
			b.WriteString(dimStyle.Render("│"))
		}
	}
	b.WriteString("\n")

	// separator
	for i, s := range spans {
		b.WriteString(dimStyle.Render(strings.Repeat("─", s.w)))
		if i < len(spans)-1 {
			b.WriteString(dimStyle.Render("┼"))
		}
	}
	b.WriteString("\n")

	// body: the windowing adapter yields the window plus overscan; rows
	// outside the page itself are clipped, not rendered.
	page := m.vp.rowsPerPage()
	rendered := 0
	for _, it := range m.vp.virtualItems() {
		if it.index < m.vp.offset || it.index >= m.vp.offset+page {
			continue
		}
		if it.index >= len(m.view) {
			break
		}
		b.WriteString(m.renderRow(it.index, spans))
		b.WriteString("\n")
		rendered++
	}
	for ; rendered < m.vp.height; rendered++ {
		b.WriteString("\n")
	}

	// status bar
	b.WriteString(statusStyle.Render(m.statusLine()))
	b.WriteString("\n")

	// help / prompt line
	if m.filterPrompt {
		b.WriteString("/" + m.filterBuf + "_")
	} else {
		b.WriteString(dimStyle.Render(" arrows move  enter edit  ctrl+c/v copy/paste  ctrl+z undo  alt+s sort  alt+f filter"))
	}
	return b.String()
}

func (m Model) renderRow(viewRow int, spans []colSpan) string {
	var b strings.Builder
	row := m.data[m.view[viewRow]]
	_, rowSelected := m.selectedRows[viewRow]

	var rowStyle *lipgloss.Style
	if m.opts.RowStyle != nil {
		if st, ok := rowClassStyles[m.opts.RowStyle(row)]; ok {
			rowStyle = &st
		}
	}

	for i, s := range spans {
		focusedHere := m.focused != nil && m.focused.Row == viewRow && m.focused.ColID == s.col.ID

		var display string
		if m.editing && focusedHere {
			display = m.editBuf + "_"
		} else {
			display = formatValue(row[s.col.ID])
		}
		cell := padCell(display, s.w, s.col.RightAlign)

		_, selectedHere := m.selected[cellKey(viewRow, s.col.ID)]
		switch {
		case m.editing && focusedHere:
			b.WriteString(editStyle.Render(cell))
		case focusedHere:
			b.WriteString(focusedStyle.Render(cell))
		case selectedHere:
			b.WriteString(selectedStyle.Render(cell))
		case rowSelected:
			b.WriteString(rowSelStyle.Render(cell))
		case rowStyle != nil:
			b.WriteString(rowStyle.Render(cell))
		default:
			b.WriteString(cell)
		}
		if i < len(spans)-1 {
			b.WriteString(dimStyle.Render("│"))
		}
	}
	return b.String()
}

func (m Model) statusLine() string {
	mode := "IDLE"
	switch {
	case m.editing:
		mode = "EDIT"
	case m.focused != nil:
		mode = "CELL"
	}
	pos := ""
	if m.focused != nil {
		pos = fmt.Sprintf("[%d,%s] ", m.focused.Row, m.focused.ColID)
	}
	s := fmt.Sprintf(" %s%s  %dx%d", pos, mode, len(m.view), len(navigableColumns(m.cols)))
	if n := len(m.selected); n > 1 {
		s += fmt.Sprintf("  sel:%d", n)
	}
	if n := len(m.selectedRows); n > 0 {
		s += fmt.Sprintf("  rows:%d", n)
	}
	if m.dirty {
		s += " *"
	}
	if m.status != "" {
		s += "  " + m.status
	}
	return s
}

func padCell(s string, w int, rightAlign bool) string {
	s = runewidth.Truncate(s, w, "…")
	if rightAlign {
		return runewidth.FillLeft(s, w)
	}
	return runewidth.FillRight(s, w)
}
