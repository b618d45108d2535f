// Package sheets provides the workbook model of the spreadsheet editor: cell
// editing with formula recalculation, per-sheet undo/redo, sheet management
// and persistence through a pluggable Store.
package sheets

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// RecalcMode selects how formulas are refreshed after an edit.
type RecalcMode string

const (
	// RecalcSinglePass evaluates every formula once in row-major order. A formula
	// whose range covers a later formula cell sees that cell's previous value.
	RecalcSinglePass RecalcMode = "single-pass"
	// RecalcFixedPoint repeats passes until no value changes.
	RecalcFixedPoint RecalcMode = "fixed-point"
)

// Defaults for new sheets and structural edits.
const (
	DefaultRows    = 500
	DefaultCols    = 26
	DefaultRowStep = 50
	DefaultColStep = 50
)

// Options configures workbook behavior.
type Options struct {
	// Rows is the row extent given to new sheets.
	Rows int `yaml:"rows"`
	// Cols is the column extent given to new sheets.
	Cols int `yaml:"cols"`
	// RowStep is the number of rows added or removed by a structural edit without an explicit count.
	RowStep int `yaml:"row_step"`
	// ColStep is the number of columns added or removed by a structural edit without an explicit count.
	ColStep int `yaml:"col_step"`
	// Recalc selects the recalculation strategy. Empty means single-pass.
	Recalc RecalcMode `yaml:"recalc"`
	// HistoryLimit caps the undo stack of each sheet. Zero means unbounded.
	HistoryLimit int `yaml:"history_limit"`
	// Logger receives persistence warnings. If nil, logrus.StandardLogger() is used.
	Logger logrus.FieldLogger `yaml:"-"`
}

// DefaultOptions returns default workbook options.
func DefaultOptions() Options {
	return Options{
		Rows:    DefaultRows,
		Cols:    DefaultCols,
		RowStep: DefaultRowStep,
		ColStep: DefaultColStep,
		Recalc:  RecalcSinglePass,
	}
}

// LoadOptions reads options from a YAML file. Fields missing from the file keep their defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	raw, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}
	if err := yaml.Unmarshal(raw, &opts); err != nil {
		return opts, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("config %s: %w", path, err)
	}
	return opts, nil
}

// Validate reports option values that cannot be used.
func (o Options) Validate() error {
	switch o.Recalc {
	case "", RecalcSinglePass, RecalcFixedPoint:
	default:
		return fmt.Errorf("unknown recalc mode %q", o.Recalc)
	}
	if o.Rows < 0 || o.Cols < 0 || o.RowStep < 0 || o.ColStep < 0 {
		return fmt.Errorf("extents and steps must not be negative")
	}
	if o.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative")
	}
	return nil
}

// ShouldRecalcToFixedPoint returns whether recalculation iterates until stable.
func (o Options) ShouldRecalcToFixedPoint() bool {
	return o.Recalc == RecalcFixedPoint
}

// withDefaults fills zero values with their defaults.
func (o Options) withDefaults() Options {
	if o.Rows <= 0 {
		o.Rows = DefaultRows
	}
	if o.Cols <= 0 {
		o.Cols = DefaultCols
	}
	if o.RowStep <= 0 {
		o.RowStep = DefaultRowStep
	}
	if o.ColStep <= 0 {
		o.ColStep = DefaultColStep
	}
	if o.Recalc == "" {
		o.Recalc = RecalcSinglePass
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}
