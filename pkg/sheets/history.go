package sheets

import "github.com/dhruv-33/google-sheets/pkg/sheets/models"

// history holds the undo and redo snapshots of one sheet.
type history struct {
	undo  []models.SheetData
	redo  []models.SheetData
	limit int
}

func newHistory(limit int) *history {
	return &history{limit: limit}
}

// record pushes the state before an edit and forgets anything undone.
func (h *history) record(prev models.SheetData) {
	h.undo = h.push(h.undo, prev)
	h.redo = nil
}

// back pops the latest undo snapshot, parking cur on the redo stack.
func (h *history) back(cur models.SheetData) (models.SheetData, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cur)
	return prev, true
}

// forward pops the latest redo snapshot, parking cur on the undo stack.
func (h *history) forward(cur models.SheetData) (models.SheetData, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = h.push(h.undo, cur)
	return next, true
}

func (h *history) push(stack []models.SheetData, snap models.SheetData) []models.SheetData {
	stack = append(stack, snap)
	if h.limit > 0 && len(stack) > h.limit {
		stack = append(stack[:0:0], stack[len(stack)-h.limit:]...)
	}
	return stack
}
