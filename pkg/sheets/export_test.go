package sheets

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhruv-33/google-sheets/pkg/sheets/models"
	"github.com/dhruv-33/google-sheets/pkg/sheets/storage"
)

func smallWorkbook(t *testing.T) *Workbook {
	t.Helper()
	opts := quietOptions()
	opts.Rows, opts.Cols = 3, 3
	return Open(storage.NewMemory(), opts)
}

func TestExportCSV(t *testing.T) {
	wb := smallWorkbook(t)
	mustSet(t, wb, "A1", "a,b")
	mustSet(t, wb, "B1", `say "hi"`)
	mustSet(t, wb, "C1", "plain text")
	mustSet(t, wb, "C2", "=SUM(C3:C3)")
	mustSet(t, wb, "C3", "4")
	mustSet(t, wb, "Z9", "outside")

	var buf bytes.Buffer
	if err := wb.ExportCSV(&buf, ""); err != nil {
		t.Fatal(err)
	}
	want := `"a,b","say ""hi""",plain text` + "\n" + ",,4\n" + ",,4\n"
	if buf.String() != want {
		t.Errorf("ExportCSV() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestExportJSON(t *testing.T) {
	wb := smallWorkbook(t)
	mustSet(t, wb, "A1", "<1>")
	bold := true
	wb.SetCellFormat("", "B2", models.FormatPatch{Bold: &bold})
	mustSet(t, wb, "D1", "outside")

	var buf bytes.Buffer
	if err := wb.ExportJSON(&buf, ""); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\n  \"A1\": {\n    \"value\": \"<1>\"") {
		t.Errorf("ExportJSON() not two-space indented or HTML-escaped:\n%s", out)
	}

	var got models.SheetData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != 2 || !got["B2"].Bold {
		t.Errorf("ExportJSON() = %v, want A1 and B2 only", got)
	}
}

func TestExportImportXLSX(t *testing.T) {
	wb := newTestWorkbook(t)
	mustSet(t, wb, "A1", "2")
	mustSet(t, wb, "A2", "3")
	mustSet(t, wb, "B1", "=SUM(A1:A2)")
	italic := true
	wb.SetCellFormat("", "A2", models.FormatPatch{Italic: &italic})
	wb.AddSheet()
	mustSet(t, wb, "C3", "second")

	var buf bytes.Buffer
	if err := wb.ExportXLSX(&buf); err != nil {
		t.Fatalf("ExportXLSX failed: %v", err)
	}

	other := newTestWorkbook(t)
	if err := other.ImportXLSX(&buf); err != nil {
		t.Fatalf("ImportXLSX failed: %v", err)
	}
	if got := other.Sheets(); len(got) != 2 || got[1] != "Sheet2" {
		t.Fatalf("Sheets() = %v", got)
	}
	if other.Active() != "Sheet2" {
		t.Errorf("Active() = %q, want Sheet2", other.Active())
	}
	d, _ := other.Data("Sheet1")
	if c := d["B1"]; c.Formula != "=SUM(A1:A2)" || c.Value != "5" {
		t.Errorf("B1 = %+v", c)
	}
	if c := d["A2"]; c.Value != "3" || !c.Italic {
		t.Errorf("A2 = %+v", c)
	}
	d2, _ := other.Data("Sheet2")
	if d2["C3"].Value != "second" {
		t.Errorf("Sheet2!C3 = %+v", d2["C3"])
	}
}
