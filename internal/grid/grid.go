// Package grid implements an interactive, virtualized, editable data grid
// for Bubble Tea programs: rectangular cell selection, TSV clipboard
// copy/paste, a bounded linear undo history and spreadsheet-style keyboard
// navigation over large row sets.
package grid

import (
	"maps"
	"reflect"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tabula/internal/logger"
)

// Options configures a grid. The zero value of each feature flag disables
// the feature; DefaultOptions enables everything.
type Options struct {
	Resizing           bool
	RowSelection       bool
	CellSelection      bool
	ColumnPinning      bool
	Clipboard          bool
	UndoRedo           bool
	KeyboardNavigation bool

	MaxUndoHistory int
	RowHeight      int
	Overscan       int

	PinnedLeft  []string
	PinnedRight []string

	// OnRowClick fires when a row is clicked.
	OnRowClick func(Row)
	// OnDataChange fires once per logical edit (cell commit, paste, row
	// add/delete, undo, redo) with a copy of the full table.
	OnDataChange func([]Row)
	// RowStyle returns an extra style class for a row, or "".
	RowStyle func(Row) string
}

// DefaultOptions enables every feature with a 50-entry undo history.
func DefaultOptions() Options {
	return Options{
		Resizing:           true,
		RowSelection:       true,
		CellSelection:      true,
		ColumnPinning:      true,
		Clipboard:          true,
		UndoRedo:           true,
		KeyboardNavigation: true,
		MaxUndoHistory:     defaultMaxUndoHistory,
		RowHeight:          1,
		Overscan:           3,
	}
}

// Model is the grid component. It follows the Bubble Tea model convention:
// value semantics, Update returns the successor model.
type Model struct {
	opts Options
	keys keyMap

	cols []Column
	data []Row // engine-owned deep copy of the consumer's rows
	view []int // view row index -> data row index

	sortCol  string
	sortDesc bool
	filters  map[string]string

	selStart     *CellPosition
	selected     map[string]CellPosition
	dragging     bool
	selectedRows map[int]struct{}

	focused *CellPosition
	editing bool
	editBuf string

	filterPrompt bool
	filterBuf    string

	history historyLedger
	vp      viewport

	width   int
	height  int
	scrollX int // index of first visible center column
	dirty   bool
	status  string
}

// New builds a grid over the given columns and rows. The rows are cloned;
// the caller's slice is never mutated.
func New(cols []Column, rows []Row, opts Options) Model {
	if opts.MaxUndoHistory < 1 {
		opts.MaxUndoHistory = defaultMaxUndoHistory
	}
	if opts.RowHeight < 1 {
		opts.RowHeight = 1
	}
	cs := make([]Column, len(cols))
	copy(cs, cols)
	for i := range cs {
		if cs[i].Width < 1 {
			cs[i].Width = defaultColumnWidth
		}
	}
	if opts.ColumnPinning {
		cs = applyPinning(cs, opts.PinnedLeft, opts.PinnedRight)
	}

	m := Model{
		opts:    opts,
		keys:    defaultKeyMap(),
		cols:    cs,
		data:    cloneRows(rows),
		history: newHistoryLedger(opts.MaxUndoHistory, rows),
		vp:      newViewport(opts.RowHeight, opts.Overscan),
	}
	m.view = m.buildView()
	m.vp.setTotal(len(m.view))
	return m
}

// SetData replaces the table contents from outside the grid. A deep-equal
// payload is ignored; otherwise the history resets to a single entry and
// selection and focus are dropped with the rows they referenced.
func (m Model) SetData(rows []Row) Model {
	if reflect.DeepEqual(rows, m.data) {
		return m
	}
	m.data = cloneRows(rows)
	m.history.reset(m.data)
	m.dirty = false
	return m.reorderView()
}

// Data returns a copy of the current table contents.
func (m Model) Data() []Row {
	return cloneRows(m.data)
}

// Columns returns the column descriptors in definition order.
func (m Model) Columns() []Column {
	out := make([]Column, len(m.cols))
	copy(out, m.cols)
	return out
}

// Focused returns the focused cell, or nil.
func (m Model) Focused() *CellPosition {
	if m.focused == nil {
		return nil
	}
	f := *m.focused
	return &f
}

// Editing reports whether a cell edit is in progress.
func (m Model) Editing() bool { return m.editing }

// Dirty reports whether the table changed since the last SetData or
// ClearDirty.
func (m Model) Dirty() bool { return m.dirty }

// ClearDirty is called by the host after persisting the data.
func (m Model) ClearDirty() Model {
	m.dirty = false
	return m
}

func (m Model) CanUndo() bool { return m.opts.UndoRedo && m.history.canUndo() }
func (m Model) CanRedo() bool { return m.opts.UndoRedo && m.history.canRedo() }

// SetSize gives the grid its render area. Four lines are reserved for
// header, separator, status and help.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	body := height - chromeHeight
	m.vp.setHeight(body)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Update handles key, mouse and resize messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// Undo restores the previous snapshot; a no-op at the history boundary.
func (m Model) Undo() Model {
	if !m.opts.UndoRedo {
		return m
	}
	rows, ok := m.history.undo()
	if !ok {
		logger.Debug("undo: at history start")
		return m
	}
	m.data = rows
	m.dirty = true
	m.editing = false
	m.notifyChange()
	return m.refreshView()
}

// Redo restores the next snapshot; a no-op when no future exists.
func (m Model) Redo() Model {
	if !m.opts.UndoRedo {
		return m
	}
	rows, ok := m.history.redo()
	if !ok {
		logger.Debug("redo: at history end")
		return m
	}
	m.data = rows
	m.dirty = true
	m.editing = false
	m.notifyChange()
	return m.refreshView()
}

func (m Model) notifyChange() {
	if m.opts.OnDataChange != nil {
		m.opts.OnDataChange(cloneRows(m.data))
	}
}

// --- keyboard dispatch ---

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.filterPrompt {
		return m.handleFilterKey(msg)
	}
	if m.editing {
		return m.handleEditKey(msg)
	}
	return m.handleNavKey(msg)
}

func (m Model) handleNavKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Undo):
		return m.Undo(), nil
	case key.Matches(msg, m.keys.Redo):
		return m.Redo(), nil
	case key.Matches(msg, m.keys.Copy):
		m, _ = m.Copy()
		return m, nil
	case key.Matches(msg, m.keys.Paste):
		m, _ = m.Paste()
		return m, nil
	}

	if !m.opts.KeyboardNavigation {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m = m.clearSelection()
		m.focused = nil
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		if m.focused != nil {
			return m.beginEdit("", false), nil
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		return m.moveFocus(-1, 0, false), nil
	case key.Matches(msg, m.keys.Down):
		return m.moveFocus(1, 0, false), nil
	case key.Matches(msg, m.keys.Left):
		return m.moveFocus(0, -1, false), nil
	case key.Matches(msg, m.keys.Right):
		return m.moveFocus(0, 1, false), nil

	case key.Matches(msg, m.keys.ExtendUp):
		return m.moveFocus(-1, 0, true), nil
	case key.Matches(msg, m.keys.ExtendDown):
		return m.moveFocus(1, 0, true), nil
	case key.Matches(msg, m.keys.ExtendLeft):
		return m.moveFocus(0, -1, true), nil
	case key.Matches(msg, m.keys.ExtendRight):
		return m.moveFocus(0, 1, true), nil

	case key.Matches(msg, m.keys.NextCell):
		if m.focused != nil {
			return m.tabMove(true), nil
		}
		return m, nil
	case key.Matches(msg, m.keys.PrevCell):
		if m.focused != nil {
			return m.tabMove(false), nil
		}
		return m, nil

	case key.Matches(msg, m.keys.RowStart):
		return m.homeEnd(false, false), nil
	case key.Matches(msg, m.keys.RowEnd):
		return m.homeEnd(true, false), nil
	case key.Matches(msg, m.keys.GridStart):
		return m.homeEnd(false, true), nil
	case key.Matches(msg, m.keys.GridEnd):
		return m.homeEnd(true, true), nil
	case key.Matches(msg, m.keys.PageUp):
		return m.pageMove(false), nil
	case key.Matches(msg, m.keys.PageDown):
		return m.pageMove(true), nil

	case key.Matches(msg, m.keys.SortColumn):
		if m.focused != nil {
			return m.SortBy(m.focused.ColID), nil
		}
		return m, nil
	case key.Matches(msg, m.keys.FilterColumn):
		if m.focused != nil {
			m.filterPrompt = true
			m.filterBuf = m.filters[m.focused.ColID]
		}
		return m, nil
	case key.Matches(msg, m.keys.PinColumn):
		if m.focused != nil {
			return m.TogglePin(m.focused.ColID), nil
		}
		return m, nil
	case key.Matches(msg, m.keys.HideColumn):
		if m.focused != nil {
			return m.SetColumnHidden(m.focused.ColID, true), nil
		}
		return m, nil
	case key.Matches(msg, m.keys.GrowColumn):
		if m.focused != nil {
			return m.ResizeColumn(m.focused.ColID, 2), nil
		}
		return m, nil
	case key.Matches(msg, m.keys.ShrinkColumn):
		if m.focused != nil {
			return m.ResizeColumn(m.focused.ColID, -2), nil
		}
		return m, nil
	case key.Matches(msg, m.keys.ToggleRow):
		if m.focused != nil {
			return m.ToggleRowSelected(m.focused.Row), nil
		}
		return m, nil
	case key.Matches(msg, m.keys.AddRow):
		return m.AppendRow(), nil
	case key.Matches(msg, m.keys.AddColumn):
		return m.AppendColumn(), nil
	case key.Matches(msg, m.keys.DeleteRow):
		if m.focused != nil {
			return m.DeleteRow(m.focused.Row), nil
		}
		return m, nil
	}

	// Any single printable character begins a type-to-edit session that
	// replaces the cell content.
	if m.focused != nil && msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && !msg.Alt {
		return m.beginEdit(string(msg.Runes), true), nil
	}
	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Undo and redo are not gated on edit mode: the in-progress buffer is
	// dropped and the table steps through history (Undo exits edit mode).
	// Boundary no-ops leave the edit session untouched.
	switch {
	case key.Matches(msg, m.keys.Undo):
		if m.CanUndo() {
			m.editBuf = ""
			m = m.Undo()
		}
		return m, nil
	case key.Matches(msg, m.keys.Redo):
		if m.CanRedo() {
			m.editBuf = ""
			m = m.Redo()
		}
		return m, nil
	}

	switch msg.String() {
	case "enter":
		// Confirming an edit moves focus one row down, spreadsheet style,
		// unless already on the last row.
		m = m.commitEdit()
		if m.focused != nil && m.focused.Row < len(m.view)-1 {
			m = m.moveFocus(1, 0, false)
		}
		return m, nil
	case "esc":
		m.editing = false
		m.editBuf = ""
		return m, nil
	case "tab":
		m = m.commitEdit()
		return m.tabMove(true), nil
	case "shift+tab":
		m = m.commitEdit()
		return m.tabMove(false), nil
	case "backspace":
		if len(m.editBuf) > 0 {
			r := []rune(m.editBuf)
			m.editBuf = string(r[:len(r)-1])
		}
		return m, nil
	}
	if msg.Type == tea.KeyRunes && !msg.Alt {
		m.editBuf += string(msg.Runes)
	} else if msg.Type == tea.KeySpace {
		m.editBuf += " "
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filterPrompt = false
		if m.focused != nil {
			return m.SetFilter(m.focused.ColID, m.filterBuf), nil
		}
		return m, nil
	case "esc":
		m.filterPrompt = false
		m.filterBuf = ""
		return m, nil
	case "backspace":
		if len(m.filterBuf) > 0 {
			r := []rune(m.filterBuf)
			m.filterBuf = string(r[:len(r)-1])
		}
		return m, nil
	}
	if msg.Type == tea.KeyRunes && !msg.Alt {
		m.filterBuf += string(msg.Runes)
	} else if msg.Type == tea.KeySpace {
		m.filterBuf += " "
	}
	return m, nil
}

// --- edit mode ---

// beginEdit enters edit mode on the focused cell. The column's BeginEdit
// hook seeds the buffer; a type-to-edit seed replaces it outright.
func (m Model) beginEdit(seed string, replace bool) Model {
	if m.focused == nil {
		return m
	}
	col, ok := m.columnByID(m.focused.ColID)
	if !ok {
		return m
	}
	m.editing = true
	if replace {
		m.editBuf = seed
		return m
	}
	val := m.cellValue(m.focused.Row, m.focused.ColID)
	if col.BeginEdit != nil {
		m.editBuf = col.BeginEdit(val)
	} else {
		m.editBuf = formatValue(val)
	}
	return m
}

// commitEdit stores the edit buffer into the focused cell, through the
// column's Parse hook when one is set.
func (m Model) commitEdit() Model {
	if !m.editing || m.focused == nil {
		m.editing = false
		return m
	}
	col, _ := m.columnByID(m.focused.ColID)
	var val any = m.editBuf
	if col.Parse != nil {
		val = col.Parse(m.editBuf)
	}
	m = m.setCell(m.focused.Row, m.focused.ColID, val)
	m.editing = false
	m.editBuf = ""
	return m
}

// --- mouse dispatch ---

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if colID, ok := m.hitTestHeader(msg.X, msg.Y); ok {
			return m.SortBy(colID), nil
		}
		pos, ok := m.hitTest(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		if m.editing {
			m = m.commitEdit()
		}
		mods := ClickModifiers{Shift: msg.Shift, Ctrl: msg.Ctrl}
		if !mods.Shift && !mods.Ctrl {
			m = m.BeginSelection(pos)
		} else {
			m = m.ClickCell(pos, mods)
		}
		p := pos
		m.focused = &p
		m.vp.scrollToIndex(pos.Row, alignAuto)
		if m.opts.OnRowClick != nil && pos.Row < len(m.view) {
			m.opts.OnRowClick(maps.Clone(m.data[m.view[pos.Row]]))
		}
		return m, nil
	case tea.MouseActionMotion:
		if m.dragging {
			if pos, ok := m.hitTest(msg.X, msg.Y); ok {
				m = m.ExtendSelection(pos)
			}
		}
		return m, nil
	case tea.MouseActionRelease:
		return m.EndSelection(), nil
	}
	return m, nil
}
