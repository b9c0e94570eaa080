package models

import (
	"github.com/tiendc/go-deepcopy"
	"github.com/xuri/excelize/v2"
)

// StyleBundle carries one cell's full formatting as an opaque, cloneable
// blob: the resolved excelize style plus an optional comment. SourceID keeps
// the style index in the source workbook so unmodified bundles can be
// re-registered once per distinct source style instead of once per cell.
type StyleBundle struct {
	// SourceID is the style index in the source file, or -1 once the
	// bundle has been mutated and no longer matches any source style.
	SourceID int
	Style    *excelize.Style
	Comment  *excelize.Comment
}

// Clone returns a deep copy sharing no mutable state with the receiver.
// Mutating the clone's fill must never reach the original.
func (b StyleBundle) Clone() StyleBundle {
	out := StyleBundle{SourceID: b.SourceID}
	if b.Style != nil {
		s := &excelize.Style{}
		if err := deepcopy.Copy(s, b.Style); err == nil {
			out.Style = s
		}
	}
	if b.Comment != nil {
		c := &excelize.Comment{}
		if err := deepcopy.Copy(c, b.Comment); err == nil {
			out.Comment = c
		}
	}
	return out
}

// SetFill replaces the bundle's fill with the given one, cloning the style
// first so the source workbook's style stays untouched.
func (b *StyleBundle) SetFill(fill excelize.Fill) {
	clone := b.Clone()
	if clone.Style == nil {
		clone.Style = &excelize.Style{}
	}
	clone.Style.Fill = fill
	clone.SourceID = -1
	*b = clone
}

// CellRecord is one column's slot in a row snapshot.
type CellRecord struct {
	Value Value
	Style StyleBundle
}

// RowSnapshot is a captured row: one record per column, index i holding
// 1-based column i+1. Its length always equals the sheet's column count at
// capture time.
type RowSnapshot []CellRecord

// Clone deep-copies the snapshot, styles included.
func (s RowSnapshot) Clone() RowSnapshot {
	out := make(RowSnapshot, len(s))
	for i, rec := range s {
		out[i] = CellRecord{Value: rec.Value, Style: rec.Style.Clone()}
	}
	return out
}

// IsBlank reports whether every cell is absent or whitespace-only text.
func (s RowSnapshot) IsBlank() bool {
	for _, rec := range s {
		if !rec.Value.IsBlank() {
			return false
		}
	}
	return true
}

// ValueAt returns the value of 1-based column col, Absent when the snapshot
// is narrower than col.
func (s RowSnapshot) ValueAt(col int) Value {
	if col < 1 || col > len(s) {
		return Absent()
	}
	return s[col-1].Value
}

// SetValueAt assigns 1-based column col; out-of-range columns are ignored.
func (s RowSnapshot) SetValueAt(col int, v Value) {
	if col >= 1 && col <= len(s) {
		s[col-1].Value = v
	}
}

// BlankValues clears every value while keeping formatting, turning the row
// into a style template for synthesized rows.
func (s RowSnapshot) BlankValues() {
	for i := range s {
		s[i].Value = Absent()
	}
}

// BlankRow returns an all-absent snapshot of the given width with default
// formatting. Used when a template row is needed but the sheet has none.
func BlankRow(width int) RowSnapshot {
	out := make(RowSnapshot, width)
	for i := range out {
		out[i] = CellRecord{Value: Absent(), Style: StyleBundle{SourceID: -1}}
	}
	return out
}
