// Package sheet persists named sheets (column descriptors plus rows) in a
// SQLite database. Rows are stored as JSON cell maps keyed by column ID.
package sheet

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"tabula/internal/logger"
)

// ColumnDef describes one column of a stored sheet.
type ColumnDef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"` // "text" or "num"
	Width int    `json:"width"`
}

// Sheet is a named table of rows.
type Sheet struct {
	ID      string
	Name    string
	Columns []ColumnDef
	Rows    []map[string]any
}

// Store wraps the SQLite database holding sheets.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sheets (
			id      TEXT PRIMARY KEY,
			name    TEXT NOT NULL UNIQUE,
			columns TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS sheet_rows (
			sheet_id TEXT NOT NULL,
			row_id   TEXT NOT NULL,
			pos      INTEGER NOT NULL,
			cells    TEXT NOT NULL,
			PRIMARY KEY (sheet_id, row_id)
		);
		CREATE INDEX IF NOT EXISTS idx_sheet_rows_pos ON sheet_rows (sheet_id, pos);
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	logger.Info("sheet store opened: %s", path)
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads a sheet by name. A missing sheet returns (nil, nil).
func (s *Store) Load(name string) (*Sheet, error) {
	var id, colsJSON string
	err := s.db.QueryRow(`SELECT id, columns FROM sheets WHERE name = ?`, name).Scan(&id, &colsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load sheet %q: %w", name, err)
	}

	var cols []ColumnDef
	if err := json.Unmarshal([]byte(colsJSON), &cols); err != nil {
		return nil, fmt.Errorf("decode columns for %q: %w", name, err)
	}

	rows, err := s.db.Query(`SELECT cells FROM sheet_rows WHERE sheet_id = ? ORDER BY pos`, id)
	if err != nil {
		return nil, fmt.Errorf("load rows for %q: %w", name, err)
	}
	defer rows.Close()

	var data []map[string]any
	for rows.Next() {
		var cellsJSON string
		if err := rows.Scan(&cellsJSON); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		cells := map[string]any{}
		if err := json.Unmarshal([]byte(cellsJSON), &cells); err != nil {
			logger.Error("skipping undecodable row in sheet %q: %v", name, err)
			continue
		}
		data = append(data, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return &Sheet{ID: id, Name: name, Columns: cols, Rows: data}, nil
}

// Save writes a sheet atomically: the sheet record is upserted and all its
// rows replaced inside one transaction.
func (s *Store) Save(sh *Sheet) error {
	if sh.ID == "" {
		sh.ID = uuid.NewString()
	}
	colsJSON, err := json.Marshal(sh.Columns)
	if err != nil {
		return fmt.Errorf("encode columns: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO sheets (id, name, columns) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET columns = excluded.columns
	`, sh.ID, sh.Name, string(colsJSON)); err != nil {
		return fmt.Errorf("upsert sheet %q: %w", sh.Name, err)
	}
	if _, err := tx.Exec(`DELETE FROM sheet_rows WHERE sheet_id = ?`, sh.ID); err != nil {
		return fmt.Errorf("clear rows for %q: %w", sh.Name, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO sheet_rows (sheet_id, row_id, pos, cells) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare row insert: %w", err)
	}
	defer stmt.Close()

	for pos, cells := range sh.Rows {
		cellsJSON, err := json.Marshal(cells)
		if err != nil {
			return fmt.Errorf("encode row %d: %w", pos, err)
		}
		if _, err := stmt.Exec(sh.ID, uuid.NewString(), pos, string(cellsJSON)); err != nil {
			return fmt.Errorf("insert row %d: %w", pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	logger.Info("saved sheet %q: %d rows", sh.Name, len(sh.Rows))
	return nil
}

// Seed creates and persists a small demo sheet under the given name.
func (s *Store) Seed(name string) (*Sheet, error) {
	sh := &Sheet{
		Name: name,
		Columns: []ColumnDef{
			{ID: "item", Title: "Item", Type: "text", Width: 18},
			{ID: "qty", Title: "Qty", Type: "num", Width: 6},
			{ID: "price", Title: "Price", Type: "num", Width: 10},
			{ID: "vendor", Title: "Vendor", Type: "text", Width: 16},
			{ID: "notes", Title: "Notes", Type: "text", Width: 24},
		},
	}
	items := [][]any{
		{"graph paper", 12.0, 3.5, "Dunder Mifflin", "A4, 90gsm"},
		{"index cards", 500.0, 0.02, "Dunder Mifflin", ""},
		{"fountain pen", 2.0, 24.0, "Goulet", "fine nib"},
		{"ink bottle", 3.0, 11.25, "Goulet", "blue-black"},
		{"stapler", 1.0, 8.99, "Sabre", "red"},
		{"binder clips", 60.0, 0.15, "Sabre", "medium"},
		{"label maker", 1.0, 32.0, "Brother", ""},
		{"whiteboard", 1.0, 45.0, "Quartet", "48x36"},
		{"dry erase set", 4.0, 6.75, "Quartet", "assorted"},
	}
	for _, it := range items {
		sh.Rows = append(sh.Rows, map[string]any{
			"item": it[0], "qty": it[1], "price": it[2], "vendor": it[3], "notes": it[4],
		})
	}
	if err := s.Save(sh); err != nil {
		return nil, err
	}
	return sh, nil
}
