package models

// SheetData maps a cell key (e.g. "B12") to its content and style.
// Keys absent from the map are empty cells with default formatting.
type SheetData map[string]CellFormat

// Clone returns an independent copy of d. A nil map clones to an empty one.
func (d SheetData) Clone() SheetData {
	out := make(SheetData, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Equal reports whether d and other hold the same entries.
func (d SheetData) Equal(other SheetData) bool {
	if len(d) != len(other) {
		return false
	}
	for k, v := range d {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
