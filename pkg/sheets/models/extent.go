package models

// Extent is the visible size of a sheet in rows and columns.
type Extent struct {
	// Rows is the number of rows (at least 1).
	Rows int `json:"rows"`
	// Cols is the number of columns (at least 1).
	Cols int `json:"cols"`
}

// Contains reports whether the 0-based (row, col) lies inside the extent.
func (e Extent) Contains(row, col int) bool {
	return row >= 0 && col >= 0 && row < e.Rows && col < e.Cols
}

// Rect represents inclusive cell coordinate bounds.
type Rect struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Rows returns the number of rows covered by r.
func (r Rect) Rows() int {
	return r.R2 - r.R1 + 1
}

// Cols returns the number of columns covered by r.
func (r Rect) Cols() int {
	return r.C2 - r.C1 + 1
}
