package sheets

import "github.com/dhruv-33/google-sheets/pkg/sheets/models"

// Command types accepted by Apply.
const (
	CmdSetCell       = "set_cell"
	CmdFormatCell    = "format_cell"
	CmdToggleFormat  = "toggle_format"
	CmdUndo          = "undo"
	CmdRedo          = "redo"
	CmdAddRows       = "add_rows"
	CmdAddColumns    = "add_columns"
	CmdRemoveRows    = "remove_rows"
	CmdRemoveColumns = "remove_columns"
	CmdAddSheet      = "add_sheet"
	CmdDeleteSheet   = "delete_sheet"
	CmdSwitchSheet   = "switch_sheet"
	CmdSelectCell    = "select_cell"
	CmdSetZoom       = "set_zoom"
	CmdSetTheme      = "set_theme"
)

// Command is a user intent forwarded by a front-end.
type Command struct {
	// Type is one of the Cmd constants.
	Type string `json:"type"`
	// Sheet names the target sheet. Empty means the active sheet.
	Sheet string `json:"sheet,omitempty"`
	// Cell is the target cell key. Empty means the sheet's selected cell.
	Cell string `json:"cell,omitempty"`
	// Value is the raw input for set_cell.
	Value string `json:"value,omitempty"`
	// Format is the style update for format_cell.
	Format *models.FormatPatch `json:"format,omitempty"`
	// Attr is the attribute flipped by toggle_format.
	Attr string `json:"attr,omitempty"`
	// Count is the number of rows or columns. Zero means the configured step.
	Count int `json:"count,omitempty"`
	// Zoom is the factor for set_zoom.
	Zoom float64 `json:"zoom,omitempty"`
	// Theme is the scheme for set_theme.
	Theme models.Theme `json:"theme,omitempty"`
}

// Apply executes cmd. Failures are returned as *CommandError and leave the
// workbook unchanged.
func (wb *Workbook) Apply(cmd Command) error {
	if err := wb.apply(cmd); err != nil {
		return NewCommandError(cmd.Type, err)
	}
	return nil
}

func (wb *Workbook) apply(cmd Command) error {
	switch cmd.Type {
	case CmdSetCell:
		name, key, err := wb.target(cmd)
		if err != nil {
			return err
		}
		if err := wb.SetCell(name, key, cmd.Value); err != nil {
			return err
		}
		if name == wb.active {
			return wb.SelectCell(key)
		}
		return nil
	case CmdFormatCell:
		name, key, err := wb.target(cmd)
		if err != nil {
			return err
		}
		var patch models.FormatPatch
		if cmd.Format != nil {
			patch = *cmd.Format
		}
		return wb.SetCellFormat(name, key, patch)
	case CmdToggleFormat:
		name, key, err := wb.target(cmd)
		if err != nil {
			return err
		}
		return wb.ToggleFormat(name, key, cmd.Attr)
	case CmdUndo:
		_, err := wb.Undo(cmd.Sheet)
		return err
	case CmdRedo:
		_, err := wb.Redo(cmd.Sheet)
		return err
	case CmdAddRows:
		return wb.AddRows(cmd.Sheet, wb.count(cmd.Count, wb.opts.RowStep))
	case CmdAddColumns:
		return wb.AddColumns(cmd.Sheet, wb.count(cmd.Count, wb.opts.ColStep))
	case CmdRemoveRows:
		return wb.RemoveRows(cmd.Sheet, wb.count(cmd.Count, wb.opts.RowStep))
	case CmdRemoveColumns:
		return wb.RemoveColumns(cmd.Sheet, wb.count(cmd.Count, wb.opts.ColStep))
	case CmdAddSheet:
		wb.AddSheet()
		return nil
	case CmdDeleteSheet:
		return wb.DeleteSheet(cmd.Sheet)
	case CmdSwitchSheet:
		return wb.SwitchSheet(cmd.Sheet)
	case CmdSelectCell:
		return wb.SelectCell(cmd.Cell)
	case CmdSetZoom:
		return wb.SetZoom(cmd.Zoom)
	case CmdSetTheme:
		return wb.SetTheme(cmd.Theme)
	}
	return ErrUnknownCommand
}

// target resolves the sheet and cell a cell command applies to.
func (wb *Workbook) target(cmd Command) (string, string, error) {
	name, s, err := wb.lookup(cmd.Sheet)
	if err != nil {
		return "", "", err
	}
	key := cmd.Cell
	if key == "" {
		key = s.selected
	}
	if key == "" {
		return "", "", ErrNoSelection
	}
	return name, key, nil
}

func (wb *Workbook) count(n, step int) int {
	if n == 0 {
		return step
	}
	return n
}
