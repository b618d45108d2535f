// Package cellref converts between A1-style cell keys, 0-based coordinates and ranges.
package cellref

import (
	"cmp"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/dhruv-33/google-sheets/pkg/sheets/models"
)

var keyPattern = regexp.MustCompile(`^([A-Z]+)([0-9]+)$`)

// maxPrealloc bounds the per-axis size for which RangeKeys sizes its result up front.
const maxPrealloc = 1 << 10

// ColumnName converts a 0-based column index to its letters (0 -> "A", 26 -> "AA").
// Negative indices yield "".
func ColumnName(index int) string {
	if index < 0 {
		return ""
	}
	var buf []byte
	for index >= 0 {
		buf = append(buf, byte('A'+index%26))
		index = index/26 - 1
	}
	slices.Reverse(buf)
	return string(buf)
}

// ColumnIndex converts column letters back to a 0-based index.
func ColumnIndex(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	acc := 0
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if ch < 'A' || ch > 'Z' {
			return 0, false
		}
		if acc > (math.MaxInt-26)/26 {
			return 0, false
		}
		acc = acc*26 + int(ch-'A'+1)
	}
	return acc - 1, true
}

// Key builds the cell key for a 0-based row and column.
func Key(row, col int) string {
	if row < 0 || col < 0 {
		return ""
	}
	return ColumnName(col) + strconv.Itoa(row+1)
}

// Indices decodes a cell key into 0-based row and column.
// ok is false when the key is not of the form [A-Z]+[0-9]+, names row 0 or
// carries leading zeros, so every accepted key re-encodes to itself.
func Indices(key string) (row, col int, ok bool) {
	m := keyPattern.FindStringSubmatch(key)
	if m == nil {
		return 0, 0, false
	}
	col, ok = ColumnIndex(m[1])
	if !ok {
		return 0, 0, false
	}
	if m[2][0] == '0' {
		return 0, 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < 1 {
		return 0, 0, false
	}
	return n - 1, col, true
}

// Valid reports whether key is a well-formed cell key.
func Valid(key string) bool {
	_, _, ok := Indices(key)
	return ok
}

// ParseRange parses "A1:B3" into 1-based inclusive bounds. The corners may be
// given in any order; each axis is normalized independently.
func ParseRange(rng string) (models.Rect, bool) {
	parts := strings.Split(rng, ":")
	if len(parts) != 2 {
		return models.Rect{}, false
	}
	r1, c1, ok := Indices(parts[0])
	if !ok {
		return models.Rect{}, false
	}
	r2, c2, ok := Indices(parts[1])
	if !ok {
		return models.Rect{}, false
	}
	return models.Rect{
		R1: min(r1, r2) + 1,
		C1: min(c1, c2) + 1,
		R2: max(r1, r2) + 1,
		C2: max(c1, c2) + 1,
	}, true
}

// RangeKeys enumerates every key covered by rng in row-major order
// (rows outer, columns inner). A malformed range yields an empty slice.
func RangeKeys(rng string) []string {
	rect, ok := ParseRange(rng)
	if !ok {
		return []string{}
	}
	var keys []string
	if rect.Rows() <= maxPrealloc && rect.Cols() <= maxPrealloc {
		keys = make([]string, 0, rect.Rows()*rect.Cols())
	}
	for r := rect.R1 - 1; r < rect.R2; r++ {
		for c := rect.C1 - 1; c < rect.C2; c++ {
			keys = append(keys, Key(r, c))
		}
	}
	return keys
}

// InRect reports whether key lies within rect.
func InRect(key string, rect models.Rect) bool {
	row, col, ok := Indices(key)
	if !ok {
		return false
	}
	return row+1 >= rect.R1 && row+1 <= rect.R2 && col+1 >= rect.C1 && col+1 <= rect.C2
}

// Compare orders keys row-major. Malformed keys sort after well-formed ones, lexically.
func Compare(a, b string) int {
	ra, ca, oka := Indices(a)
	rb, cb, okb := Indices(b)
	switch {
	case oka && okb:
		if ra != rb {
			return cmp.Compare(ra, rb)
		}
		return cmp.Compare(ca, cb)
	case oka:
		return -1
	case okb:
		return 1
	}
	return strings.Compare(a, b)
}

// SortKeys sorts keys in place row-major and returns them.
func SortKeys(keys []string) []string {
	slices.SortFunc(keys, Compare)
	return keys
}
