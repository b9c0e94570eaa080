// Package subtotal sorts and subtotals headerless xlsx sheets: consecutive
// rows sharing a first-column key form a block, each block is sorted by the
// second column and followed by a highlighted subtotal row, and a single
// grand-total row closes the sheet. Cell formatting, row/column dimensions,
// and merged ranges are carried over from the source.
package subtotal

import "github.com/rs/zerolog"

// DefaultHighlightColor is the solid fill applied to subtotal rows.
const DefaultHighlightColor = "FFFF00"

// DefaultTotalLabel is written into the key column of the grand-total row so
// the row stays visible when the key column is filtered to non-blanks.
const DefaultTotalLabel = "合计"

// Options configures a processing pass.
type Options struct {
	// SheetName selects the sheet to process. Empty means the workbook's
	// first sheet.
	SheetName string
	// HighlightColor is the RGB hex fill for synthesized rows.
	// Empty means DefaultHighlightColor.
	HighlightColor string
	// TotalLabel is the grand-total row's key-column label.
	// Empty means DefaultTotalLabel.
	TotalLabel string
	// Logger receives progress events. Nil disables logging.
	Logger *zerolog.Logger
}

// DefaultOptions returns default processing options.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) highlightColor() string {
	if o.HighlightColor == "" {
		return DefaultHighlightColor
	}
	return o.HighlightColor
}

func (o Options) totalLabel() string {
	if o.TotalLabel == "" {
		return DefaultTotalLabel
	}
	return o.TotalLabel
}

func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}
