package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dhruv-33/google-sheets/pkg/sheets/cellref"
	"github.com/dhruv-33/google-sheets/pkg/sheets/models"
)

// Read decodes an Excel workbook. Every worksheet becomes a sheet whose extent
// is base grown to cover its data. Formulas get their leading "=" back.
func Read(r io.Reader, base models.Extent) (*models.WorkbookData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return extract(f, base)
}

// ReadFile decodes the Excel workbook at path.
func ReadFile(path string, base models.Extent) (*models.WorkbookData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return extract(f, base)
}

func extract(f *excelize.File, base models.Extent) (*models.WorkbookData, error) {
	out := models.NewWorkbookData()
	styles := make(map[int]*excelize.Style)
	for _, name := range f.GetSheetList() {
		data, err := readSheet(f, name, styles)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		out.AddSheet(name, data, grow(base, data))
	}
	if len(out.Sheets) == 0 {
		return out, nil
	}
	out.Active = out.Sheets[0]
	if active := f.GetSheetName(f.GetActiveSheetIndex()); active != "" {
		if _, ok := out.Data[active]; ok {
			out.Active = active
		}
	}
	return out, nil
}

// maxScanCells caps the declared used range walked for value-less cells.
const maxScanCells = 1 << 20

func readSheet(f *excelize.File, name string, styles map[int]*excelize.Style) (models.SheetData, error) {
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	rect, err := usedRange(f, name, rows)
	if err != nil {
		return nil, err
	}

	data := make(models.SheetData)
	for rowIdx := rect.R1 - 1; rowIdx < rect.R2; rowIdx++ {
		for colIdx := rect.C1 - 1; colIdx < rect.C2; colIdx++ {
			key := cellref.Key(rowIdx, colIdx)
			cell := models.CellFormat{}
			if rowIdx < len(rows) && colIdx < len(rows[rowIdx]) {
				cell.Value = rows[rowIdx][colIdx]
			}

			formula, err := f.GetCellFormula(name, key)
			if err != nil {
				return nil, err
			}
			if formula != "" {
				cell.Formula = "=" + formula
			}

			id, err := f.GetCellStyle(name, key)
			if err != nil {
				return nil, err
			}
			if id != 0 {
				style, ok := styles[id]
				if !ok {
					if style, err = f.GetStyle(id); err != nil {
						return nil, err
					}
					styles[id] = style
				}
				cell = apply(cell, style)
			}

			if cell != (models.CellFormat{}) {
				data[key] = cell
			}
		}
	}
	return data, nil
}

// usedRange returns the 1-based box to scan: the cells GetRows returned plus
// the worksheet's declared dimension, which also covers cells that hold only a
// style. Oversized dimensions are ignored.
func usedRange(f *excelize.File, name string, rows [][]string) (models.Rect, error) {
	rect := models.Rect{R1: 1, C1: 1, R2: len(rows)}
	for _, row := range rows {
		rect.C2 = max(rect.C2, len(row))
	}

	ref, err := f.GetSheetDimension(name)
	if err != nil {
		return models.Rect{}, err
	}
	if ref != "" && !strings.Contains(ref, ":") {
		ref += ":" + ref
	}
	if dim, ok := cellref.ParseRange(strings.ToUpper(ref)); ok && dim.Rows()*dim.Cols() <= maxScanCells {
		if rect.R2 == 0 || rect.C2 == 0 {
			return dim, nil
		}
		rect.R1 = min(rect.R1, dim.R1)
		rect.C1 = min(rect.C1, dim.C1)
		rect.R2 = max(rect.R2, dim.R2)
		rect.C2 = max(rect.C2, dim.C2)
	}
	return rect, nil
}
