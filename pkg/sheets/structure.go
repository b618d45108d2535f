package sheets

import "github.com/dhruv-33/google-sheets/pkg/sheets/cellref"

// Structural edits change a sheet's extent. They are not recorded in the
// undo history and do not trigger recalculation.

// AddRows grows the row extent of the named sheet by n. Cells are untouched.
func (wb *Workbook) AddRows(name string, n int) error {
	_, s, err := wb.lookup(name)
	if err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	s.extent.Rows += n
	wb.saveLayout()
	return nil
}

// AddColumns grows the column extent of the named sheet by n. Cells are untouched.
func (wb *Workbook) AddColumns(name string, n int) error {
	_, s, err := wb.lookup(name)
	if err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	s.extent.Cols += n
	wb.saveLayout()
	return nil
}

// RemoveRows shrinks the row extent of the named sheet by n and deletes the
// cells of the removed rows. It is a no-op if fewer than one row would remain.
func (wb *Workbook) RemoveRows(name string, n int) error {
	name, s, err := wb.lookup(name)
	if err != nil {
		return err
	}
	if n <= 0 || s.extent.Rows-n < 1 {
		return nil
	}
	from, to := s.extent.Rows-n, s.extent.Rows
	s.extent.Rows = from
	for key := range s.data {
		if row, _, ok := cellref.Indices(key); ok && row >= from && row < to {
			delete(s.data, key)
		}
	}
	wb.saveLayout()
	wb.saveSheet(name, s)
	return nil
}

// RemoveColumns shrinks the column extent of the named sheet by n and deletes
// the cells of the removed columns. It is a no-op if fewer than one column
// would remain.
func (wb *Workbook) RemoveColumns(name string, n int) error {
	name, s, err := wb.lookup(name)
	if err != nil {
		return err
	}
	if n <= 0 || s.extent.Cols-n < 1 {
		return nil
	}
	from, to := s.extent.Cols-n, s.extent.Cols
	s.extent.Cols = from
	for key := range s.data {
		if _, col, ok := cellref.Indices(key); ok && col >= from && col < to {
			delete(s.data, key)
		}
	}
	wb.saveLayout()
	wb.saveSheet(name, s)
	return nil
}
