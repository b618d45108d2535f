package main

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/dhruv-33/google-sheets/pkg/sheets"
	"github.com/dhruv-33/google-sheets/pkg/sheets/models"
	"github.com/dhruv-33/google-sheets/pkg/sheets/storage"
)

func ptr[T any](v T) *T {
	return &v
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line     string
		expected action
	}{
		{"", action{}},
		{"  # comment", action{}},
		{"set a1 =SUM(B1:B3)", command(sheets.Command{Type: sheets.CmdSetCell, Cell: "A1", Value: "=SUM(B1:B3)"})},
		{"set B2   hello world ", command(sheets.Command{Type: sheets.CmdSetCell, Cell: "B2", Value: "hello world"})},
		{"set C3", command(sheets.Command{Type: sheets.CmdSetCell, Cell: "C3"})},
		{"format A1 bold=true align=Center color=#ff0000 bg=#eee", command(sheets.Command{
			Type: sheets.CmdFormatCell,
			Cell: "A1",
			Format: &models.FormatPatch{
				Bold:            ptr(true),
				Align:           ptr(models.AlignCenter),
				TextColor:       ptr("#ff0000"),
				BackgroundColor: ptr("#eee"),
			},
		})},
		{"format italic=false", command(sheets.Command{Type: sheets.CmdFormatCell, Format: &models.FormatPatch{Italic: ptr(false)}})},
		{"toggle strike b4", command(sheets.Command{Type: sheets.CmdToggleFormat, Attr: sheets.AttrStrikethrough, Cell: "B4"})},
		{"toggle bold", command(sheets.Command{Type: sheets.CmdToggleFormat, Attr: sheets.AttrBold})},
		{"UNDO", command(sheets.Command{Type: sheets.CmdUndo})},
		{"redo", command(sheets.Command{Type: sheets.CmdRedo})},
		{"rows add", command(sheets.Command{Type: sheets.CmdAddRows})},
		{"rows remove 10", command(sheets.Command{Type: sheets.CmdRemoveRows, Count: 10})},
		{"cols add 3", command(sheets.Command{Type: sheets.CmdAddColumns, Count: 3})},
		{"cols remove", command(sheets.Command{Type: sheets.CmdRemoveColumns})},
		{"sheet add", command(sheets.Command{Type: sheets.CmdAddSheet})},
		{"sheet switch My Sheet", command(sheets.Command{Type: sheets.CmdSwitchSheet, Sheet: "My Sheet"})},
		{"sheet delete Sheet2", command(sheets.Command{Type: sheets.CmdDeleteSheet, Sheet: "Sheet2"})},
		{"sheet list", action{kind: actList}},
		{"select c7", command(sheets.Command{Type: sheets.CmdSelectCell, Cell: "C7"})},
		{"zoom 1.25", command(sheets.Command{Type: sheets.CmdSetZoom, Zoom: 1.25})},
		{"zoom 75%", command(sheets.Command{Type: sheets.CmdSetZoom, Zoom: 0.75})},
		{"theme Dark", command(sheets.Command{Type: sheets.CmdSetTheme, Theme: models.ThemeDark})},
		{"show a1", action{kind: actShow, key: "A1"}},
		{"show", action{kind: actShow}},
		{"help", action{kind: actHelp}},
		{"exit", action{kind: actQuit}},
	}
	for _, tt := range tests {
		got, err := parseLine(tt.line)
		if err != nil {
			t.Errorf("parseLine(%q) failed: %v", tt.line, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("parseLine(%q) = %+v, expected %+v", tt.line, got, tt.expected)
		}
	}
}

func TestParseLineErrors(t *testing.T) {
	for _, line := range []string{
		"set",
		"format A1",
		"format A1 B1 bold=true",
		"format bold=maybe",
		"format underline=true",
		"toggle",
		"rows",
		"rows add zero",
		"cols remove -2",
		"sheet delete",
		"sheet rename x",
		"select",
		"zoom big",
		"frobnicate",
	} {
		if _, err := parseLine(line); err == nil {
			t.Errorf("parseLine(%q) succeeded, expected an error", line)
		}
	}
}

func TestRunShell(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	opts := sheets.DefaultOptions()
	opts.Logger = logger
	wb := sheets.Open(storage.NewMemory(), opts)

	script := strings.Join([]string{
		"set A1 2",
		"set A2 3",
		"set A3 =sum(a1:a2)",
		"format A3 bold=true",
		"zoom 3",
		"help",
		"sheet add",
		"sheet list",
		"sheet switch Sheet1",
		"show",
		"quit",
		"set A4 never",
	}, "\n")
	var out bytes.Buffer
	if err := runShell(strings.NewReader(script), &out, wb); err != nil {
		t.Fatalf("runShell failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		`A3 = "5"  (=sum(a1:a2))`,
		"error: command set_zoom: invalid zoom: 3",
		"50% 75% 90% 100% 125% 150% 200%",
		"added Sheet2",
		"* Sheet2",
		"Sheet1!A3> ",
		`"5"  (=sum(a1:a2)) [bold]`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if c, _ := wb.Cell("Sheet1", "A4"); c.Value != "" {
		t.Error("shell kept reading after quit")
	}
}
