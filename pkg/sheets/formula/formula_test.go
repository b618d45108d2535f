package formula

import (
	"math"
	"slices"
	"testing"

	"github.com/dhruv-33/google-sheets/pkg/sheets/models"
)

func values(kv ...string) models.SheetData {
	data := make(models.SheetData)
	for i := 0; i+1 < len(kv); i += 2 {
		data[kv[i]] = models.CellFormat{Value: kv[i+1]}
	}
	return data
}

func TestEvaluate(t *testing.T) {
	sheet := values(
		"A1", "1",
		"A2", "2",
		"A3", "x",
		"B1", "10",
		"B2", "-4.5",
		"B3", "",
		"C1", "12px",
		"C2", " 3",
		"D1", "0.1",
		"D2", "0.2",
	)

	tests := []struct {
		body     string
		expected string
	}{
		{"SUM(A1:A3)", "3"},
		{"sum(a1:a3)", "3"},
		{"  SUM(A1:A3)  ", "3"},
		{"SUM(A3:A1)", "3"},
		{"SUM(A1:B3)", "8.5"},
		{"AVERAGE(A1:A3)", "1.50"},
		{"AVERAGE(A1:B2)", "2.13"},
		{"COUNT(A1:B3)", "4"},
		{"MAX(A1:B3)", "10"},
		{"MIN(A1:B3)", "-4.5"},
		{"SUM(C1:C2)", "15"},
		{"SUM(D1:D2)", "0.30000000000000004"},
		{"AVERAGE(E1:E9)", "0"},
		{"MAX(E1:E9)", "0"},
		{"MIN(A3:A3)", "0"},
		{"COUNT(A3:A3)", "0"},
		{"SUM(A1)", "0"},
		{"SUM( A1:A3 )", "0"},
		{"FOO(A1:A2)", "ERR"},
		{"SUM(A1:A2)+1", "ERR"},
		{"SUM(SUM(A1:A2))", "ERR"},
		{"A1", "ERR"},
		{"1+2", "ERR"},
		{"SUM()", "ERR"},
		{"", "ERR"},
	}

	for _, tt := range tests {
		result := Evaluate(tt.body, sheet)
		if result != tt.expected {
			t.Errorf("Evaluate(%q) = %q, expected %q", tt.body, result, tt.expected)
		}
	}
}

func TestEvaluateEmptySheet(t *testing.T) {
	for _, fn := range Functions() {
		if got := Evaluate(fn+"(A1:A2)", models.SheetData{}); got != "0" {
			t.Errorf("Evaluate(%s(A1:A2)) on empty sheet = %q, expected \"0\"", fn, got)
		}
	}
	if got := Evaluate("AVERAGE(A1:A2)", nil); got != "0" {
		t.Errorf("Evaluate on nil sheet = %q, expected \"0\"", got)
	}
}

func TestEvaluateHugeRange(t *testing.T) {
	sheet := values("A1", "2", "ZZZ999999", "3", "B2", "word")
	if got := Evaluate("SUM(A1:ZZZZ9999999)", sheet); got != "5" {
		t.Errorf("SUM over huge range = %q, expected \"5\"", got)
	}
	if got := Evaluate("COUNT(A1:ZZZZ9999999)", sheet); got != "2" {
		t.Errorf("COUNT over huge range = %q, expected \"2\"", got)
	}
}

func TestEvaluateReadsValueNotFormula(t *testing.T) {
	sheet := models.SheetData{
		"A1": {Value: "7", Formula: "=SUM(B1:B1)"},
		"A2": {Value: "", Formula: "=SUM(B1:B1)"},
	}
	if got := Evaluate("SUM(A1:A2)", sheet); got != "7" {
		t.Errorf("Evaluate = %q, expected \"7\"", got)
	}
}

func TestFunctions(t *testing.T) {
	expected := []string{"AVERAGE", "COUNT", "MAX", "MIN", "SUM"}
	if got := Functions(); !slices.Equal(got, expected) {
		t.Errorf("Functions() = %v, expected %v", got, expected)
	}
}

func TestIsFormula(t *testing.T) {
	tests := []struct {
		raw      string
		expected bool
	}{
		{"=SUM(A1:A2)", true},
		{"=", true},
		{" =SUM(A1:A2)", false},
		{"12", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsFormula(tt.raw); got != tt.expected {
			t.Errorf("IsFormula(%q) = %v, expected %v", tt.raw, got, tt.expected)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"123", 123, true},
		{"-1.5", -1.5, true},
		{"+2", 2, true},
		{".5", 0.5, true},
		{"5.", 5, true},
		{"1e3", 1000, true},
		{"1e", 1, true},
		{"12px", 12, true},
		{"  7", 7, true},
		{"\t\n8", 8, true},
		{"Infinity", math.Inf(1), true},
		{"-Infinity", math.Inf(-1), true},
		{"1e999", math.Inf(1), true},
		{"infinity", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{".", 0, false},
		{"NaN", 0, false},
		{"0x10", 0, true},
	}

	for _, tt := range tests {
		v, ok := ParseNumber(tt.input)
		if ok != tt.ok || v != tt.expected {
			t.Errorf("ParseNumber(%q) = (%v, %v), expected (%v, %v)", tt.input, v, ok, tt.expected, tt.ok)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{3, "3"},
		{-4.5, "-4.5"},
		{0.30000000000000004, "0.30000000000000004"},
		{123456789012, "123456789012"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
		{0.000001, "0.000001"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		if got := formatNumber(tt.input); got != tt.expected {
			t.Errorf("formatNumber(%v) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatFixed(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{1.5, "1.50"},
		{2, "2.00"},
		{-0.001, "-0.00"},
		{1.005, "1.00"},
		{2.125, "2.13"},
		{-2.125, "-2.13"},
		{0.995, "0.99"},
		{9.995, "9.99"},
		{99.999, "100.00"},
		{math.Copysign(0, -1), "0.00"},
		{1e21, "1e+21"},
		{math.Inf(1), "Infinity"},
	}

	for _, tt := range tests {
		if got := formatFixed(tt.input, 2); got != tt.expected {
			t.Errorf("formatFixed(%v, 2) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
