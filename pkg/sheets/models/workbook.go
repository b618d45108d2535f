package models

// Theme is the presentation color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// WorkbookData is the structural dump of a whole workbook.
type WorkbookData struct {
	// Sheets lists sheet names in tab order.
	Sheets []string `json:"sheets"`
	// Active is the name of the active sheet.
	Active string `json:"active"`
	// Data maps sheet name to its cells.
	Data map[string]SheetData `json:"data"`
	// Extents maps sheet name to its row/column counts.
	Extents map[string]Extent `json:"extents"`
	// Selected maps sheet name to its selected cell key (optional).
	Selected map[string]string `json:"selected,omitempty"`
	// Zoom is the grid zoom factor (1 = 100%).
	Zoom float64 `json:"zoom,omitempty"`
	// Theme is the color scheme.
	Theme Theme `json:"theme,omitempty"`
}

// NewWorkbookData returns an empty WorkbookData with initialized maps.
func NewWorkbookData() *WorkbookData {
	return &WorkbookData{
		Data:     make(map[string]SheetData),
		Extents:  make(map[string]Extent),
		Selected: make(map[string]string),
	}
}

// AddSheet appends a sheet with the given data and extent.
func (w *WorkbookData) AddSheet(name string, data SheetData, ext Extent) {
	w.Sheets = append(w.Sheets, name)
	w.Data[name] = data
	w.Extents[name] = ext
}

// Selection is the active sheet and the selected cell within it.
type Selection struct {
	// Sheet is the active sheet name.
	Sheet string `json:"sheet"`
	// Cell is the selected cell key, empty if nothing is selected.
	Cell string `json:"cell,omitempty"`
}
