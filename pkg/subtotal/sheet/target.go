package sheet

import (
	"github.com/ukaji3/subtotal-go/pkg/subtotal/models"
	"github.com/xuri/excelize/v2"
)

// Target is the writable output sheet. Rows are written sequentially and
// never revisited; styles carried over from the source are registered once
// per distinct source style index.
type Target struct {
	f     *excelize.File
	sheet string

	// styleIDs maps source style index -> output style index.
	styleIDs map[int]int
}

// NewTarget wraps an output workbook around the named sheet.
func NewTarget(f *excelize.File, sheetName string) *Target {
	return &Target{f: f, sheet: sheetName, styleIDs: make(map[int]int)}
}

// Sheet returns the wrapped sheet name.
func (t *Target) Sheet() string { return t.sheet }

// WriteRow restores a snapshot into the given output row: value first, then
// style (so excelize's implicit date styling cannot stick), then comment.
func (t *Target) WriteRow(row int, snap models.RowSnapshot) error {
	for i, rec := range snap {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if !rec.Value.IsAbsent() {
			if err := t.f.SetCellValue(t.sheet, cell, rec.Value.Native()); err != nil {
				return err
			}
		}
		styleID, ok, err := t.styleID(rec.Style)
		if err != nil {
			return err
		}
		if ok {
			if err := t.f.SetCellStyle(t.sheet, cell, cell, styleID); err != nil {
				return err
			}
		}
		if rec.Style.Comment != nil {
			comment := *rec.Style.Comment
			comment.Cell = cell
			if err := t.f.AddComment(t.sheet, comment); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetRowDim applies row height/visibility metadata to an output row.
func (t *Target) SetRowDim(row int, dim models.RowDim) error {
	if err := t.f.SetRowHeight(t.sheet, row, dim.Height); err != nil {
		return err
	}
	if err := t.f.SetRowVisible(t.sheet, row, !dim.Hidden); err != nil {
		return err
	}
	return t.f.SetRowOutlineLevel(t.sheet, row, dim.OutlineLevel)
}

// SetColDim applies column width/visibility metadata.
func (t *Target) SetColDim(dim models.ColDim) error {
	if err := t.f.SetColWidth(t.sheet, dim.Letter, dim.Letter, dim.Width); err != nil {
		return err
	}
	if err := t.f.SetColVisible(t.sheet, dim.Letter, !dim.Hidden); err != nil {
		return err
	}
	return t.f.SetColOutlineLevel(t.sheet, dim.Letter, dim.OutlineLevel)
}

// Merge replicates a merged-cell range given in "A1:B2" notation.
func (t *Target) Merge(ref string) error {
	start, end, ok := splitRange(ref)
	if !ok {
		return nil
	}
	return t.f.MergeCell(t.sheet, start, end)
}

func (t *Target) styleID(b models.StyleBundle) (int, bool, error) {
	if b.Style == nil {
		return 0, false, nil
	}
	if b.SourceID >= 0 {
		if id, ok := t.styleIDs[b.SourceID]; ok {
			return id, true, nil
		}
	}
	id, err := t.f.NewStyle(b.Style)
	if err != nil {
		return 0, false, err
	}
	if b.SourceID >= 0 {
		t.styleIDs[b.SourceID] = id
	}
	return id, true, nil
}

func splitRange(ref string) (start, end string, ok bool) {
	for i := 0; i < len(ref); i++ {
		if ref[i] == ':' {
			return ref[:i], ref[i+1:], true
		}
	}
	return "", "", false
}
