package sheets

import (
	"fmt"
	"strings"

	"github.com/dhruv-33/google-sheets/pkg/sheets/cellref"
	"github.com/dhruv-33/google-sheets/pkg/sheets/formula"
	"github.com/dhruv-33/google-sheets/pkg/sheets/models"
)

// Toggleable style attributes.
const (
	AttrBold          = "bold"
	AttrItalic        = "italic"
	AttrStrikethrough = "strikethrough"
)

// SetCell stores raw input at key. Input starting with "=" becomes the cell's
// formula and its value is computed; anything else is stored as a literal and
// clears a previous formula. Styling is kept.
func (wb *Workbook) SetCell(name, key, raw string) error {
	name, s, err := wb.lookup(name)
	if err != nil {
		return err
	}
	if !cellref.Valid(key) {
		return invalidKey(key)
	}
	prev := s.data.Clone()
	cell := s.data[key]
	if formula.IsFormula(raw) {
		cell.Formula = raw
		cell.Value = ""
	} else {
		cell.Value = raw
		cell.Formula = ""
	}
	s.data[key] = cell
	wb.commit(name, s, prev)
	return nil
}

// SetCellFormat merges patch into the style of the cell at key, creating the
// cell if needed. Value and formula are kept.
func (wb *Workbook) SetCellFormat(name, key string, patch models.FormatPatch) error {
	name, s, err := wb.lookup(name)
	if err != nil {
		return err
	}
	if !cellref.Valid(key) {
		return invalidKey(key)
	}
	if patch.Align != nil && !patch.Align.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAlign, *patch.Align)
	}
	prev := s.data.Clone()
	s.data[key] = patch.Apply(s.data[key])
	wb.commit(name, s, prev)
	return nil
}

// ToggleFormat flips a boolean style attribute (bold, italic or strikethrough).
func (wb *Workbook) ToggleFormat(name, key, attr string) error {
	_, s, err := wb.lookup(name)
	if err != nil {
		return err
	}
	cell := s.data[key]
	var patch models.FormatPatch
	switch attr {
	case AttrBold:
		v := !cell.Bold
		patch.Bold = &v
	case AttrItalic:
		v := !cell.Italic
		patch.Italic = &v
	case AttrStrikethrough:
		v := !cell.Strikethrough
		patch.Strikethrough = &v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, attr)
	}
	return wb.SetCellFormat(name, key, patch)
}

// Undo restores the named sheet to the state before its latest edit. It
// reports false, changing nothing, when there is nothing to undo.
func (wb *Workbook) Undo(name string) (bool, error) {
	name, s, err := wb.lookup(name)
	if err != nil {
		return false, err
	}
	prev, ok := s.history.back(s.data)
	if !ok {
		return false, nil
	}
	s.data = prev
	wb.saveSheet(name, s)
	return true, nil
}

// Redo reapplies the latest undone edit of the named sheet. It reports false,
// changing nothing, when there is nothing to redo.
func (wb *Workbook) Redo(name string) (bool, error) {
	name, s, err := wb.lookup(name)
	if err != nil {
		return false, err
	}
	next, ok := s.history.forward(s.data)
	if !ok {
		return false, nil
	}
	s.data = next
	wb.saveSheet(name, s)
	return true, nil
}

// commit finishes a content or style edit: recalculate, record prev for undo, persist.
func (wb *Workbook) commit(name string, s *sheet, prev models.SheetData) {
	wb.recalculate(s.data)
	s.history.record(prev)
	wb.saveSheet(name, s)
}

// recalculate refreshes the value of every formula cell in data in row-major
// order. Values are written back as they are computed, so a formula sees the
// new value of an earlier formula but the old value of a later one unless
// fixed-point recalculation is enabled.
func (wb *Workbook) recalculate(data models.SheetData) {
	var keys []string
	for key, cell := range data {
		if formula.IsFormula(cell.Formula) {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return
	}
	cellref.SortKeys(keys)

	passes := 1
	if wb.opts.ShouldRecalcToFixedPoint() {
		passes = len(keys) + 1
	}
	for pass := 0; pass < passes; pass++ {
		changed := false
		for _, key := range keys {
			cell := data[key]
			value := formula.Evaluate(strings.TrimPrefix(cell.Formula, formula.Prefix), data)
			if value != cell.Value {
				cell.Value = value
				data[key] = cell
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	if passes > 1 {
		wb.log.WithField("formulas", len(keys)).Debug("recalculated to fixed point")
	}
}
