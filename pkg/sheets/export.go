package sheets

import (
	"bufio"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/dhruv-33/google-sheets/pkg/sheets/cellref"
	"github.com/dhruv-33/google-sheets/pkg/sheets/models"
	"github.com/dhruv-33/google-sheets/pkg/sheets/xlsx"
)

// ExportCSV writes the named sheet as CSV: one line per row of the extent and
// one field per column. Fields containing a comma or a double quote are quoted.
func (wb *Workbook) ExportCSV(w io.Writer, name string) error {
	_, s, err := wb.lookup(name)
	if err != nil {
		return err
	}
	cols := make([]string, s.extent.Cols)
	for c := range cols {
		cols[c] = cellref.ColumnName(c)
	}

	bw := bufio.NewWriter(w)
	for r := 1; r <= s.extent.Rows; r++ {
		row := strconv.Itoa(r)
		for c, col := range cols {
			if c > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(csvField(s.data[col+row].Value))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func csvField(v string) string {
	if !strings.ContainsAny(v, `,"`) {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// ExportJSON writes the cells of the named sheet that lie inside its extent as
// indented JSON keyed by cell.
func (wb *Workbook) ExportJSON(w io.Writer, name string) error {
	_, s, err := wb.lookup(name)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(visible(s))
}

// ExportXLSX writes the whole workbook as an Excel file.
func (wb *Workbook) ExportXLSX(w io.Writer) error {
	snap := wb.Snapshot()
	for _, name := range snap.Sheets {
		snap.Data[name] = visible(wb.sheets[name])
	}
	return xlsx.Write(w, snap)
}

// visible returns the cells of s inside its extent.
func visible(s *sheet) models.SheetData {
	out := make(models.SheetData, len(s.data))
	for key, cell := range s.data {
		if row, col, ok := cellref.Indices(key); ok && s.extent.Contains(row, col) {
			out[key] = cell
		}
	}
	return out
}

// ImportXLSX replaces the workbook with the contents of an Excel file. Sheet
// extents are the configured defaults grown to cover the imported data.
func (wb *Workbook) ImportXLSX(r io.Reader) error {
	data, err := xlsx.Read(r, models.Extent{Rows: wb.opts.Rows, Cols: wb.opts.Cols})
	if err != nil {
		return err
	}
	return wb.Load(data)
}
