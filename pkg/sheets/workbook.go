package sheets

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/dhruv-33/google-sheets/pkg/sheets/cellref"
	"github.com/dhruv-33/google-sheets/pkg/sheets/models"
	"github.com/dhruv-33/google-sheets/pkg/sheets/storage"
)

// DefaultSelection is the cell selected when a sheet is first shown.
const DefaultSelection = "A1"

// sheet is the state of one tab.
type sheet struct {
	data     models.SheetData
	extent   models.Extent
	selected string
	history  *history
}

// Workbook is the in-memory model of a set of sheets.
//
// Every mutation leaves the affected sheet recalculated and is written through
// to the Store. Store failures are logged and do not affect the in-memory
// state. A Workbook is not safe for concurrent use.
type Workbook struct {
	opts   Options
	store  Store
	log    logrus.FieldLogger
	order  []string
	sheets map[string]*sheet
	active string
	zoom   float64
	theme  models.Theme
}

// New returns a workbook with a single empty sheet backed by memory.
func New(opts Options) *Workbook {
	return Open(storage.NewMemory(), opts)
}

// Open restores a workbook from store, or starts a fresh one with a single
// sheet when the store holds none.
func Open(store Store, opts Options) *Workbook {
	opts = opts.withDefaults()
	wb := &Workbook{
		opts:   opts,
		store:  store,
		log:    opts.Logger,
		sheets: make(map[string]*sheet),
		zoom:   1,
		theme:  models.ThemeLight,
	}
	if !wb.load() {
		wb.reset()
		wb.addSheet("Sheet1")
		wb.saveLayout()
	}
	return wb
}

func (wb *Workbook) reset() {
	wb.order = nil
	wb.sheets = make(map[string]*sheet)
	wb.active = ""
}

func (wb *Workbook) newSheet() *sheet {
	return &sheet{
		data:     make(models.SheetData),
		extent:   models.Extent{Rows: wb.opts.Rows, Cols: wb.opts.Cols},
		selected: DefaultSelection,
		history:  newHistory(wb.opts.HistoryLimit),
	}
}

func (wb *Workbook) addSheet(name string) *sheet {
	s := wb.newSheet()
	wb.order = append(wb.order, name)
	wb.sheets[name] = s
	wb.active = name
	return s
}

// lookup resolves a sheet by name; the empty name means the active sheet.
func (wb *Workbook) lookup(name string) (string, *sheet, error) {
	if name == "" {
		name = wb.active
	}
	s, ok := wb.sheets[name]
	if !ok {
		return name, nil, sheetNotFound(name)
	}
	return name, s, nil
}

// Options returns the options the workbook was opened with.
func (wb *Workbook) Options() Options {
	return wb.opts
}

// Sheets returns the sheet names in tab order.
func (wb *Workbook) Sheets() []string {
	return slices.Clone(wb.order)
}

// Active returns the name of the active sheet.
func (wb *Workbook) Active() string {
	return wb.active
}

// Selection returns the active sheet and its selected cell.
func (wb *Workbook) Selection() models.Selection {
	return models.Selection{Sheet: wb.active, Cell: wb.sheets[wb.active].selected}
}

// Data returns a copy of the cells of the named sheet.
func (wb *Workbook) Data(name string) (models.SheetData, error) {
	_, s, err := wb.lookup(name)
	if err != nil {
		return nil, err
	}
	return s.data.Clone(), nil
}

// Cell returns the cell at key on the named sheet. Absent cells are returned as
// the zero CellFormat.
func (wb *Workbook) Cell(name, key string) (models.CellFormat, error) {
	_, s, err := wb.lookup(name)
	if err != nil {
		return models.CellFormat{}, err
	}
	if !cellref.Valid(key) {
		return models.CellFormat{}, invalidKey(key)
	}
	return s.data[key], nil
}

// Extent returns the row and column counts of the named sheet.
func (wb *Workbook) Extent(name string) (models.Extent, error) {
	_, s, err := wb.lookup(name)
	if err != nil {
		return models.Extent{}, err
	}
	return s.extent, nil
}

// CanUndo reports whether the named sheet has edits to undo.
func (wb *Workbook) CanUndo(name string) bool {
	_, s, err := wb.lookup(name)
	return err == nil && len(s.history.undo) > 0
}

// CanRedo reports whether the named sheet has undone edits to reapply.
func (wb *Workbook) CanRedo(name string) bool {
	_, s, err := wb.lookup(name)
	return err == nil && len(s.history.redo) > 0
}

// Zoom returns the grid zoom factor.
func (wb *Workbook) Zoom() float64 {
	return wb.zoom
}

// Theme returns the color scheme.
func (wb *Workbook) Theme() models.Theme {
	return wb.theme
}

// AddSheet creates a sheet named after the lowest unused "Sheet<N>", makes it
// active and returns its name.
func (wb *Workbook) AddSheet() string {
	name := ""
	for i := 1; ; i++ {
		name = fmt.Sprintf("Sheet%d", i)
		if _, exists := wb.sheets[name]; !exists {
			break
		}
	}
	s := wb.addSheet(name)
	wb.saveLayout()
	wb.saveSheet(name, s)
	wb.saveSelection(name, s)
	return name
}

// DeleteSheet removes the named sheet and all of its state. Deleting the only
// sheet is a no-op. If the active sheet is deleted, the first remaining sheet
// becomes active with A1 selected.
func (wb *Workbook) DeleteSheet(name string) error {
	name, _, err := wb.lookup(name)
	if err != nil {
		return err
	}
	if len(wb.order) <= 1 {
		return nil
	}
	wb.order = slices.DeleteFunc(wb.order, func(n string) bool { return n == name })
	delete(wb.sheets, name)
	wb.forget(name)
	if wb.active == name {
		wb.active = wb.order[0]
		next := wb.sheets[wb.active]
		next.selected = DefaultSelection
		wb.saveSelection(wb.active, next)
	}
	wb.saveLayout()
	return nil
}

// SwitchSheet makes the named sheet active. Its last selection is restored.
func (wb *Workbook) SwitchSheet(name string) error {
	name, _, err := wb.lookup(name)
	if err != nil {
		return err
	}
	wb.active = name
	return nil
}

// SelectCell selects key on the active sheet. The empty key clears the selection.
func (wb *Workbook) SelectCell(key string) error {
	if key != "" && !cellref.Valid(key) {
		return invalidKey(key)
	}
	s := wb.sheets[wb.active]
	s.selected = key
	wb.saveSelection(wb.active, s)
	return nil
}

// supportedZooms are the zoom factors offered by the toolbar.
var supportedZooms = []float64{0.5, 0.75, 0.9, 1, 1.25, 1.5, 2}

// SupportedZooms returns the accepted zoom factors in ascending order.
func SupportedZooms() []float64 {
	return slices.Clone(supportedZooms)
}

// SetZoom sets the grid zoom factor.
func (wb *Workbook) SetZoom(zoom float64) error {
	if !slices.Contains(supportedZooms, zoom) {
		return fmt.Errorf("%w: %v", ErrInvalidZoom, zoom)
	}
	wb.zoom = zoom
	wb.savePrefs()
	return nil
}

// SetTheme sets the color scheme.
func (wb *Workbook) SetTheme(theme models.Theme) error {
	if theme != models.ThemeLight && theme != models.ThemeDark {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}
	wb.theme = theme
	wb.savePrefs()
	return nil
}

// Snapshot returns a deep copy of the whole workbook.
func (wb *Workbook) Snapshot() *models.WorkbookData {
	out := models.NewWorkbookData()
	for _, name := range wb.order {
		s := wb.sheets[name]
		out.AddSheet(name, s.data.Clone(), s.extent)
		if s.selected != "" {
			out.Selected[name] = s.selected
		}
	}
	out.Active = wb.active
	out.Zoom = wb.zoom
	out.Theme = wb.theme
	return out
}

// Load replaces the whole workbook with data, for example an imported file.
// Histories are reset, every sheet is recalculated and the result is persisted.
func (wb *Workbook) Load(data *models.WorkbookData) error {
	if data == nil || len(data.Sheets) == 0 {
		return ErrEmptyWorkbook
	}
	old := wb.order
	wb.reset()
	for _, name := range data.Sheets {
		if _, dup := wb.sheets[name]; dup || name == "" {
			continue
		}
		s := wb.addSheet(name)
		for key, cell := range data.Data[name] {
			if cellref.Valid(key) {
				s.data[key] = cell
			}
		}
		if ext, ok := data.Extents[name]; ok && ext.Rows >= 1 && ext.Cols >= 1 {
			s.extent = ext
		}
		if sel, ok := data.Selected[name]; ok && (sel == "" || cellref.Valid(sel)) {
			s.selected = sel
		}
		wb.recalculate(s.data)
	}
	if len(wb.order) == 0 {
		wb.addSheet("Sheet1")
	}
	wb.active = wb.order[0]
	if _, ok := wb.sheets[data.Active]; ok {
		wb.active = data.Active
	}
	if slices.Contains(supportedZooms, data.Zoom) {
		wb.zoom = data.Zoom
	}
	if data.Theme == models.ThemeLight || data.Theme == models.ThemeDark {
		wb.theme = data.Theme
	}

	for _, name := range old {
		if _, kept := wb.sheets[name]; !kept {
			wb.forget(name)
		}
	}
	wb.saveAll()
	return nil
}
