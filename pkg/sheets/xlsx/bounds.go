package xlsx

import (
	"github.com/dhruv-33/google-sheets/pkg/sheets/cellref"
	"github.com/dhruv-33/google-sheets/pkg/sheets/models"
)

// DataBounds returns the 1-based bounding box of the cells in data.
// It reports false if data holds no well-formed key.
func DataBounds(data models.SheetData) (models.Rect, bool) {
	minRow, maxRow := -1, -1
	minCol, maxCol := -1, -1

	for key := range data {
		row, col, ok := cellref.Indices(key)
		if !ok {
			continue
		}
		if minRow < 0 || row < minRow {
			minRow = row
		}
		if row > maxRow {
			maxRow = row
		}
		if minCol < 0 || col < minCol {
			minCol = col
		}
		if col > maxCol {
			maxCol = col
		}
	}
	if minRow < 0 {
		return models.Rect{}, false
	}
	return models.Rect{R1: minRow + 1, C1: minCol + 1, R2: maxRow + 1, C2: maxCol + 1}, true
}

// grow returns base enlarged to cover the cells in data.
func grow(base models.Extent, data models.SheetData) models.Extent {
	base.Rows = max(base.Rows, 1)
	base.Cols = max(base.Cols, 1)
	if rect, ok := DataBounds(data); ok {
		base.Rows = max(base.Rows, rect.R2)
		base.Cols = max(base.Cols, rect.C2)
	}
	return base
}
