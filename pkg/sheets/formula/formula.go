// Package formula evaluates the aggregate formulas supported in cells.
//
// The grammar is a single call NAME(RANGE) where NAME is one of SUM, AVERAGE,
// COUNT, MAX or MIN (case-insensitive) and RANGE is an A1-style range such as
// "A1:B3". Anything else evaluates to ErrorValue.
package formula

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/dhruv-33/google-sheets/pkg/sheets/cellref"
	"github.com/dhruv-33/google-sheets/pkg/sheets/models"
)

// ErrorValue is displayed by cells whose formula cannot be evaluated.
const ErrorValue = "ERR"

// Prefix marks cell input as a formula.
const Prefix = "="

var callPattern = regexp.MustCompile(`^(SUM|AVERAGE|COUNT|MAX|MIN)\(([^)]+)\)$`)

type aggregate func(values []float64) string

var functions = map[string]aggregate{
	"SUM": func(values []float64) string {
		return formatNumber(sum(values))
	},
	"AVERAGE": func(values []float64) string {
		return formatFixed(sum(values)/float64(len(values)), 2)
	},
	"COUNT": func(values []float64) string {
		return strconv.Itoa(len(values))
	},
	"MAX": func(values []float64) string {
		return formatNumber(slices.Max(values))
	},
	"MIN": func(values []float64) string {
		return formatNumber(slices.Min(values))
	},
}

// IsFormula reports whether raw cell input is a formula.
func IsFormula(raw string) bool {
	return strings.HasPrefix(raw, Prefix)
}

// Functions returns the supported function names in alphabetical order.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Evaluate computes a formula body (without the leading "=") against sheet.
// Referenced cells whose value is not numeric are skipped. An empty operand
// set yields "0" for every function.
func Evaluate(body string, sheet models.SheetData) string {
	m := callPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(body)))
	if m == nil {
		return ErrorValue
	}
	fn, ok := functions[m[1]]
	if !ok {
		return ErrorValue
	}
	values := operands(m[2], sheet)
	if len(values) == 0 {
		return "0"
	}
	return fn(values)
}

// operands returns the numeric values of the cells covered by rng in row-major order.
func operands(rng string, sheet models.SheetData) []float64 {
	rect, ok := cellref.ParseRange(rng)
	if !ok {
		return nil
	}
	var keys []string
	if rect.Rows() <= len(sheet) && rect.Cols() <= len(sheet)/rect.Rows() {
		keys = cellref.RangeKeys(rng)
	} else {
		// The range is larger than the sheet: walk the populated cells instead.
		for key := range sheet {
			if cellref.InRect(key, rect) {
				keys = append(keys, key)
			}
		}
		cellref.SortKeys(keys)
	}

	values := make([]float64, 0, len(keys))
	for _, key := range keys {
		cell, ok := sheet[key]
		if !ok {
			continue
		}
		if v, ok := ParseNumber(cell.Value); ok {
			values = append(values, v)
		}
	}
	return values
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
