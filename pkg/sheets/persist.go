package sheets

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"github.com/dhruv-33/google-sheets/pkg/sheets/cellref"
	"github.com/dhruv-33/google-sheets/pkg/sheets/models"
)

// Store keys. Values are JSON except selections, zoom and theme, which are plain strings.
const (
	KeySheets          = "sheets"
	KeyRowCounts       = "row-counts"
	KeyColCounts       = "col-counts"
	KeyZoom            = "zoom"
	KeyTheme           = "theme"
	SheetDataPrefix    = "sheet-data-"
	SelectedCellPrefix = "selected-cell-"
)

// SheetDataKey returns the store key holding the cells of the named sheet.
func SheetDataKey(name string) string {
	return SheetDataPrefix + name
}

// SelectedCellKey returns the store key holding the selection of the named sheet.
func SelectedCellKey(name string) string {
	return SelectedCellPrefix + name
}

func (wb *Workbook) write(key string, value []byte) {
	if err := wb.store.Save(key, value); err != nil {
		wb.log.WithError(err).WithField("key", key).Warn("Error saving workbook state")
	}
}

func (wb *Workbook) writeJSON(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		wb.log.WithError(err).WithField("key", key).Warn("Error encoding workbook state")
		return
	}
	wb.write(key, raw)
}

func (wb *Workbook) remove(key string) {
	if err := wb.store.Delete(key); err != nil {
		wb.log.WithError(err).WithField("key", key).Warn("Error deleting workbook state")
	}
}

func (wb *Workbook) read(key string) ([]byte, bool) {
	raw, ok, err := wb.store.Load(key)
	if err != nil {
		wb.log.WithError(err).WithField("key", key).Warn("Error loading workbook state")
		return nil, false
	}
	return raw, ok
}

func (wb *Workbook) readJSON(key string, v any) bool {
	raw, ok := wb.read(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		wb.log.WithError(err).WithField("key", key).Warn("Error decoding workbook state")
		return false
	}
	return true
}

// saveLayout writes the sheet list and the extents of every sheet.
func (wb *Workbook) saveLayout() {
	rows := make(map[string]int, len(wb.order))
	cols := make(map[string]int, len(wb.order))
	for _, name := range wb.order {
		ext := wb.sheets[name].extent
		rows[name] = ext.Rows
		cols[name] = ext.Cols
	}
	wb.writeJSON(KeySheets, wb.order)
	wb.writeJSON(KeyRowCounts, rows)
	wb.writeJSON(KeyColCounts, cols)
}

func (wb *Workbook) saveSheet(name string, s *sheet) {
	wb.writeJSON(SheetDataKey(name), s.data)
}

func (wb *Workbook) saveSelection(name string, s *sheet) {
	if s.selected == "" {
		wb.remove(SelectedCellKey(name))
		return
	}
	wb.write(SelectedCellKey(name), []byte(s.selected))
}

func (wb *Workbook) savePrefs() {
	wb.write(KeyZoom, []byte(strconv.FormatFloat(wb.zoom, 'f', -1, 64)))
	wb.write(KeyTheme, []byte(wb.theme))
}

func (wb *Workbook) saveAll() {
	wb.saveLayout()
	for _, name := range wb.order {
		s := wb.sheets[name]
		wb.saveSheet(name, s)
		wb.saveSelection(name, s)
	}
	wb.savePrefs()
}

// forget deletes the stored state of a removed sheet.
func (wb *Workbook) forget(name string) {
	wb.remove(SheetDataKey(name))
	wb.remove(SelectedCellKey(name))
}

// load restores the workbook from the store. It reports false when the store
// holds no usable sheet list.
func (wb *Workbook) load() bool {
	var names []string
	if !wb.readJSON(KeySheets, &names) {
		return false
	}
	var rows, cols map[string]int
	wb.readJSON(KeyRowCounts, &rows)
	wb.readJSON(KeyColCounts, &cols)

	wb.reset()
	for _, name := range names {
		if _, dup := wb.sheets[name]; dup {
			continue
		}
		s := wb.addSheet(name)
		var data models.SheetData
		if wb.readJSON(SheetDataKey(name), &data) {
			for key, cell := range data {
				if cellref.Valid(key) {
					s.data[key] = cell
				}
			}
		}
		if n := rows[name]; n >= 1 {
			s.extent.Rows = n
		}
		if n := cols[name]; n >= 1 {
			s.extent.Cols = n
		}
		if raw, ok := wb.read(SelectedCellKey(name)); ok {
			if key := strings.TrimSpace(string(raw)); cellref.Valid(key) {
				s.selected = key
			}
		}
	}
	if len(wb.order) == 0 {
		return false
	}
	wb.active = wb.order[0]

	if raw, ok := wb.read(KeyZoom); ok {
		if z, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64); err == nil && slices.Contains(supportedZooms, z) {
			wb.zoom = z
		}
	}
	if raw, ok := wb.read(KeyTheme); ok {
		if t := models.Theme(strings.TrimSpace(string(raw))); t == models.ThemeLight || t == models.ThemeDark {
			wb.theme = t
		}
	}
	wb.log.WithField("sheets", len(wb.order)).Debug("Loaded workbook from store")
	return true
}
