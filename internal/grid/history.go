package grid

import (
	"maps"
	"time"

	"tabula/internal/logger"
)

const defaultMaxUndoHistory = 50

// historyEntry is one full-table snapshot, the unit of undo/redo
// granularity.
type historyEntry struct {
	rows []Row
	at   time.Time
}

// historyLedger is a bounded linear undo history. entries[0] is always the
// snapshot the ledger was last reset with, and index points at the entry
// matching the current table state. Recording after an undo discards the
// redo-able future; the history never branches.
type historyLedger struct {
	entries []historyEntry
	index   int
	maxSize int
}

func newHistoryLedger(maxSize int, initial []Row) historyLedger {
	if maxSize < 1 {
		maxSize = defaultMaxUndoHistory
	}
	h := historyLedger{maxSize: maxSize}
	h.reset(initial)
	return h
}

// reset drops all history and re-seeds it with a single snapshot. Used on
// construction and whenever the consumer replaces the data wholesale.
func (h *historyLedger) reset(rows []Row) {
	h.entries = []historyEntry{{rows: cloneRows(rows), at: time.Now()}}
	h.index = 0
}

// record appends a snapshot after the current position, discarding any
// previously undone future and evicting the oldest entry past the cap.
func (h *historyLedger) record(rows []Row) {
	if h.index < len(h.entries)-1 {
		logger.Debug("history: truncating %d redo entries", len(h.entries)-1-h.index)
		h.entries = h.entries[:h.index+1]
	}
	h.entries = append(h.entries, historyEntry{rows: cloneRows(rows), at: time.Now()})
	h.index++
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[1:]
		h.index--
	}
}

func (h historyLedger) canUndo() bool {
	return h.index > 0
}

func (h historyLedger) canRedo() bool {
	return h.index < len(h.entries)-1
}

// undo steps the cursor back and returns the snapshot to restore. The
// boolean is false at the history boundary; boundary calls never error.
func (h *historyLedger) undo() ([]Row, bool) {
	if !h.canUndo() {
		return nil, false
	}
	h.index--
	return cloneRows(h.entries[h.index].rows), true
}

func (h *historyLedger) redo() ([]Row, bool) {
	if !h.canRedo() {
		return nil, false
	}
	h.index++
	return cloneRows(h.entries[h.index].rows), true
}

// cloneRows deep-copies a row slice so snapshots never alias live data.
func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = maps.Clone(r)
	}
	return out
}
