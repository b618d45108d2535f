// Package xlsx converts workbooks to and from Excel files.
package xlsx

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dhruv-33/google-sheets/pkg/sheets/cellref"
	"github.com/dhruv-33/google-sheets/pkg/sheets/models"
)

// Write encodes wb as an Excel workbook: one worksheet per sheet in tab order
// holding values, formulas and styles. The active sheet is selected.
func Write(w io.Writer, wb *models.WorkbookData) error {
	f, err := build(wb)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// WriteFile saves wb to path.
func WriteFile(path string, wb *models.WorkbookData) error {
	f, err := build(wb)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func build(wb *models.WorkbookData) (*excelize.File, error) {
	f := excelize.NewFile()
	styles := make(map[cellStyle]int)
	for i, name := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				f.Close()
				return nil, fmt.Errorf("sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		if err := writeSheet(f, name, wb.Data[name], styles); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		if name == wb.Active {
			f.SetActiveSheet(i)
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, name string, data models.SheetData, styles map[cellStyle]int) error {
	keys := make([]string, 0, len(data))
	for key := range data {
		if row, col, ok := cellref.Indices(key); ok && row < excelize.TotalRows && col < excelize.MaxColumns {
			keys = append(keys, key)
		}
	}
	cellref.SortKeys(keys)
	if len(keys) > 0 {
		if err := f.SetSheetDimension(name, dimension(keys)); err != nil {
			return err
		}
	}

	for _, key := range keys {
		cell := data[key]
		if cell.Value != "" {
			if err := f.SetCellValue(name, key, cellValue(cell.Value)); err != nil {
				return err
			}
		}
		if cell.HasFormula() {
			if err := f.SetCellFormula(name, key, strings.TrimPrefix(cell.Formula, "=")); err != nil {
				return err
			}
		}
		style := styleOf(cell)
		if style.isDefault() {
			continue
		}
		id, ok := styles[style]
		if !ok {
			var err error
			if id, err = f.NewStyle(style.excelize()); err != nil {
				return err
			}
			styles[style] = id
		}
		if err := f.SetCellStyle(name, key, key, id); err != nil {
			return err
		}
	}
	return nil
}

// dimension returns the range reference bounding keys.
func dimension(keys []string) string {
	used := make(models.SheetData, len(keys))
	for _, key := range keys {
		used[key] = models.CellFormat{}
	}
	rect, _ := DataBounds(used)
	return cellref.Key(rect.R1-1, rect.C1-1) + ":" + cellref.Key(rect.R2-1, rect.C2-1)
}

// cellValue stores numbers as numbers when they print back unchanged.
func cellValue(v string) any {
	if n, err := strconv.ParseFloat(v, 64); err == nil && strconv.FormatFloat(n, 'f', -1, 64) == v {
		return n
	}
	return v
}
