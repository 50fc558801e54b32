package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tabula/internal/grid"
	"tabula/internal/logger"
	"tabula/internal/sheet"
)

// app embeds the grid and owns persistence: ctrl+s writes the current table
// back to the sheet store, ctrl+q quits.
type app struct {
	grid  grid.Model
	store *sheet.Store
	sh    *sheet.Sheet
}

func (a app) Init() tea.Cmd { return nil }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+q":
			return a, tea.Quit
		case "ctrl+s":
			return a.save(), nil
		}
	}
	var cmd tea.Cmd
	a.grid, cmd = a.grid.Update(msg)
	return a, cmd
}

func (a app) View() string { return a.grid.View() }

func (a app) save() app {
	rows := a.grid.Data()
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		out[i] = map[string]any(r)
	}
	a.sh.Rows = out
	if err := a.store.Save(a.sh); err != nil {
		logger.Error("save failed: %v", err)
		return a
	}
	a.grid = a.grid.ClearDirty()
	return a
}

// gridColumns maps stored column descriptors to grid columns. Numeric
// columns get right alignment and a Parse hook so committed edits are
// stored as numbers.
func gridColumns(defs []sheet.ColumnDef) []grid.Column {
	cols := make([]grid.Column, len(defs))
	for i, d := range defs {
		c := grid.Column{ID: d.ID, Title: d.Title, Width: d.Width}
		if d.Type == "num" {
			c.RightAlign = true
			c.Parse = parseNum
		}
		cols[i] = c
	}
	return cols
}

func parseNum(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return v
	}
	return s
}

func main() {
	if err := logger.Init(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()
	logger.Debug("Starting tabula...")

	dbPath := "tabula.db"
	sheetName := "inventory"
	args := os.Args[1:]
	if len(args) > 0 {
		dbPath = args[0]
	}
	if len(args) > 1 {
		sheetName = args[1]
	}

	store, err := sheet.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open sheet store: %v", err)
	}
	defer store.Close()

	sh, err := store.Load(sheetName)
	if err != nil {
		log.Fatalf("Failed to load sheet %q: %v", sheetName, err)
	}
	if sh == nil {
		sh, err = store.Seed(sheetName)
		if err != nil {
			log.Fatalf("Failed to seed sheet %q: %v", sheetName, err)
		}
		logger.Info("seeded demo sheet %q", sheetName)
	}

	rows := make([]grid.Row, len(sh.Rows))
	for i, r := range sh.Rows {
		rows[i] = grid.Row(r)
	}

	opts := grid.DefaultOptions()
	if len(sh.Columns) > 0 {
		opts.PinnedLeft = []string{sh.Columns[0].ID}
	}
	opts.OnDataChange = func(rows []grid.Row) {
		logger.Debug("data changed: %d rows", len(rows))
	}
	opts.OnRowClick = func(r grid.Row) {
		logger.Debug("row clicked: %v", r)
	}

	g := grid.New(gridColumns(sh.Columns), rows, opts)

	p := tea.NewProgram(app{grid: g, store: store, sh: sh}, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
