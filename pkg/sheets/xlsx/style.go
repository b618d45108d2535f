package xlsx

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dhruv-33/google-sheets/pkg/sheets/models"
)

// cellStyle is the styling part of a CellFormat.
type cellStyle struct {
	bold, italic, strike bool
	align                models.Align
	color, fill          string
}

func styleOf(c models.CellFormat) cellStyle {
	return cellStyle{
		bold:   c.Bold,
		italic: c.Italic,
		strike: c.Strikethrough,
		align:  c.Align,
		color:  hexColor(c.TextColor),
		fill:   hexColor(c.BackgroundColor),
	}
}

func (s cellStyle) isDefault() bool {
	return s == cellStyle{}
}

// excelize converts s into an excelize style definition.
func (s cellStyle) excelize() *excelize.Style {
	style := &excelize.Style{
		Font: &excelize.Font{
			Bold:   s.bold,
			Italic: s.italic,
			Strike: s.strike,
			Color:  s.color,
		},
	}
	if s.fill != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{s.fill}}
	}
	if s.align != "" {
		style.Alignment = &excelize.Alignment{Horizontal: string(s.align)}
	}
	return style
}

// apply copies the styling of an excelize style onto c.
func apply(c models.CellFormat, style *excelize.Style) models.CellFormat {
	if style.Font != nil {
		c.Bold = style.Font.Bold
		c.Italic = style.Font.Italic
		c.Strikethrough = style.Font.Strike
		c.TextColor = cssColor(style.Font.Color)
	}
	if style.Fill.Type == "pattern" && style.Fill.Pattern == 1 && len(style.Fill.Color) > 0 {
		c.BackgroundColor = cssColor(style.Fill.Color[0])
	}
	if style.Alignment != nil {
		if a := models.Align(style.Alignment.Horizontal); a.Valid() {
			c.Align = a
		}
	}
	return c
}

// hexColor turns a CSS hex color ("#f00", "#ff0000") into the RRGGBB form
// excelize expects. Other notations are dropped.
func hexColor(css string) string {
	h := strings.TrimPrefix(strings.TrimSpace(css), "#")
	for _, r := range h {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return ""
		}
	}
	switch len(h) {
	case 3:
		return strings.ToUpper(string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}))
	case 6:
		return strings.ToUpper(h)
	}
	return ""
}

// cssColor turns an excelize RGB or ARGB color into "#rrggbb".
func cssColor(c string) string {
	c = strings.TrimPrefix(c, "#")
	if len(c) == 8 {
		c = c[2:]
	}
	if hexColor(c) == "" || len(c) != 6 {
		return ""
	}
	return "#" + strings.ToLower(c)
}
