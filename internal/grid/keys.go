package grid

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Undo  key.Binding
	Redo  key.Binding
	Copy  key.Binding
	Paste key.Binding

	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	ExtendUp    key.Binding
	ExtendDown  key.Binding
	ExtendLeft  key.Binding
	ExtendRight key.Binding

	NextCell key.Binding
	PrevCell key.Binding

	RowStart  key.Binding
	RowEnd    key.Binding
	GridStart key.Binding
	GridEnd   key.Binding
	PageUp    key.Binding
	PageDown  key.Binding

	Edit   key.Binding
	Cancel key.Binding

	SortColumn   key.Binding
	FilterColumn key.Binding
	PinColumn    key.Binding
	HideColumn   key.Binding
	GrowColumn   key.Binding
	ShrinkColumn key.Binding
	ToggleRow    key.Binding
	AddRow       key.Binding
	AddColumn    key.Binding
	DeleteRow    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Undo:  key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo:  key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "redo")),
		Copy:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Paste: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),

		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "move up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "move down")),
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "move left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "move right")),

		ExtendUp:    key.NewBinding(key.WithKeys("shift+up")),
		ExtendDown:  key.NewBinding(key.WithKeys("shift+down")),
		ExtendLeft:  key.NewBinding(key.WithKeys("shift+left")),
		ExtendRight: key.NewBinding(key.WithKeys("shift+right")),

		NextCell: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next cell")),
		PrevCell: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous cell")),

		RowStart:  key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "row start")),
		RowEnd:    key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "row end")),
		GridStart: key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "grid start")),
		GridEnd:   key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("ctrl+end", "grid end")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),

		Edit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit cell")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		SortColumn:   key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "sort column")),
		FilterColumn: key.NewBinding(key.WithKeys("alt+f"), key.WithHelp("alt+f", "filter column")),
		PinColumn:    key.NewBinding(key.WithKeys("alt+p"), key.WithHelp("alt+p", "pin column")),
		HideColumn:   key.NewBinding(key.WithKeys("alt+h"), key.WithHelp("alt+h", "hide column")),
		GrowColumn:   key.NewBinding(key.WithKeys("alt+right"), key.WithHelp("alt+→", "grow column")),
		ShrinkColumn: key.NewBinding(key.WithKeys("alt+left"), key.WithHelp("alt+←", "shrink column")),
		ToggleRow:    key.NewBinding(key.WithKeys("alt+r"), key.WithHelp("alt+r", "select row")),
		AddRow:       key.NewBinding(key.WithKeys("alt+n"), key.WithHelp("alt+n", "add row")),
		AddColumn:    key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "add column")),
		DeleteRow:    key.NewBinding(key.WithKeys("alt+d"), key.WithHelp("alt+d", "delete row")),
	}
}
