// Package models defines the data structures shared by the spreadsheet packages.
package models

// Align is the horizontal alignment of a cell.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Valid reports whether a is one of the known alignments.
func (a Align) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	}
	return false
}

// CellFormat is the content and styling stored at one cell key.
type CellFormat struct {
	// Value is the displayed string. For formula cells it holds the last computed result.
	Value string `json:"value"`
	// Formula is the raw formula text including the leading "=" (empty if none).
	Formula string `json:"formula,omitempty"`
	// Bold renders the value in bold.
	Bold bool `json:"bold,omitempty"`
	// Italic renders the value in italics.
	Italic bool `json:"italic,omitempty"`
	// Strikethrough draws a line through the value.
	Strikethrough bool `json:"strikethrough,omitempty"`
	// Align is the horizontal alignment (empty means left).
	Align Align `json:"align,omitempty"`
	// TextColor is the font color, e.g. "#ff0000".
	TextColor string `json:"textColor,omitempty"`
	// BackgroundColor is the fill color, e.g. "#ffff00".
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// HasFormula reports whether the cell carries a formula.
func (c CellFormat) HasFormula() bool {
	return c.Formula != ""
}

// FormatPatch is a partial style update. Nil fields are left untouched.
type FormatPatch struct {
	Bold            *bool   `json:"bold,omitempty"`
	Italic          *bool   `json:"italic,omitempty"`
	Strikethrough   *bool   `json:"strikethrough,omitempty"`
	Align           *Align  `json:"align,omitempty"`
	TextColor       *string `json:"textColor,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p FormatPatch) Empty() bool {
	return p.Bold == nil && p.Italic == nil && p.Strikethrough == nil &&
		p.Align == nil && p.TextColor == nil && p.BackgroundColor == nil
}

// Apply returns c with the non-nil fields of p merged in. Value and Formula are preserved.
func (p FormatPatch) Apply(c CellFormat) CellFormat {
	if p.Bold != nil {
		c.Bold = *p.Bold
	}
	if p.Italic != nil {
		c.Italic = *p.Italic
	}
	if p.Strikethrough != nil {
		c.Strikethrough = *p.Strikethrough
	}
	if p.Align != nil {
		c.Align = *p.Align
	}
	if p.TextColor != nil {
		c.TextColor = *p.TextColor
	}
	if p.BackgroundColor != nil {
		c.BackgroundColor = *p.BackgroundColor
	}
	return c
}
