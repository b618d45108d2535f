package sheets

import (
	"errors"
	"fmt"
)

// ErrSheetNotFound indicates the named sheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrInvalidCellKey indicates a cell key that is not of the form A1.
var ErrInvalidCellKey = errors.New("invalid cell key")

// ErrInvalidAlign indicates an alignment other than left, center or right.
var ErrInvalidAlign = errors.New("invalid alignment")

// ErrInvalidZoom indicates a zoom factor outside the supported choices.
var ErrInvalidZoom = errors.New("invalid zoom")

// ErrInvalidTheme indicates a theme other than light or dark.
var ErrInvalidTheme = errors.New("invalid theme")

// ErrUnknownAttribute indicates a toggle on a style attribute that is not boolean.
var ErrUnknownAttribute = errors.New("unknown format attribute")

// ErrUnknownCommand indicates a command type Apply does not handle.
var ErrUnknownCommand = errors.New("unknown command")

// ErrNoSelection indicates a command needed the selected cell but none is selected.
var ErrNoSelection = errors.New("no cell selected")

// ErrEmptyWorkbook indicates an attempt to load a workbook without sheets.
var ErrEmptyWorkbook = errors.New("workbook has no sheets")

// CommandError represents a failure while applying a command.
type CommandError struct {
	Type string
	Err  error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s: %v", e.Type, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError.
func NewCommandError(cmdType string, err error) *CommandError {
	return &CommandError{
		Type: cmdType,
		Err:  err,
	}
}

func sheetNotFound(name string) error {
	return fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}

func invalidKey(key string) error {
	return fmt.Errorf("%w: %q", ErrInvalidCellKey, key)
}
