// Package sheet adapts excelize workbooks to the narrow read/write surface
// the pipeline consumes: a dual-view reader over the source sheet and a
// sequential writer over the output sheet.
package sheet

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/subtotal-go/pkg/subtotal/models"
	"github.com/xuri/excelize/v2"
)

// DualView reads one worksheet through two views at once: the cached
// computed value of each cell and, as a fallback, its raw formula text. The
// computed view always wins so formula source text never leaks into values
// unless no computed result exists.
type DualView struct {
	f     *excelize.File
	sheet string

	maxRow int
	maxCol int

	styles    map[int]*excelize.Style
	dateStyle map[int]bool
	comments  map[string]*excelize.Comment
}

// OpenDualView wraps an already-open workbook around the named sheet and
// scans its used range and comments.
func OpenDualView(f *excelize.File, sheetName string) (*DualView, error) {
	v := &DualView{
		f:         f,
		sheet:     sheetName,
		styles:    make(map[int]*excelize.Style),
		dateStyle: make(map[int]bool),
		comments:  make(map[string]*excelize.Comment),
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	v.maxRow = len(rows)
	for _, row := range rows {
		if len(row) > v.maxCol {
			v.maxCol = len(row)
		}
	}

	comments, err := f.GetComments(sheetName)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		c := comments[i]
		v.comments[c.Cell] = &c
	}

	return v, nil
}

// Sheet returns the wrapped sheet name.
func (v *DualView) Sheet() string { return v.sheet }

// MaxRow returns the last row of the used range.
func (v *DualView) MaxRow() int { return v.maxRow }

// MaxCol returns the width of the used range.
func (v *DualView) MaxCol() int { return v.maxCol }

// Value resolves the typed value of a cell. Cached computed results are
// classified into text, integer, real, or date/date-time (driven by the
// cell's number format); a formula cell with no cached result falls back to
// its formula text.
func (v *DualView) Value(row, col int) (models.Value, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return models.Absent(), err
	}

	raw, err := v.f.GetCellValue(v.sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Absent(), err
	}
	if raw == "" {
		// No computed value; fall back to the formula text when there is one.
		formula, err := v.f.GetCellFormula(v.sheet, cell)
		if err == nil && formula != "" {
			return models.Text("=" + formula), nil
		}
		return models.Absent(), nil
	}

	ct, err := v.f.GetCellType(v.sheet, cell)
	if err != nil {
		return models.Absent(), err
	}
	switch ct {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeBool, excelize.CellTypeError:
		return models.Text(raw), nil
	case excelize.CellTypeDate:
		return parseISODate(raw), nil
	}

	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.Text(raw), nil
	}

	isDate, err := v.cellHasDateFormat(cell)
	if err != nil {
		return models.Absent(), err
	}
	if isDate {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			if serial != math.Trunc(serial) {
				return models.DateTime(t), nil
			}
			return models.Date(t), nil
		}
	}

	if !strings.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return models.Integer(i), nil
		}
	}
	return models.Real(serial), nil
}

// Capture snapshots one full row: typed values plus each cell's resolved
// style and comment, one record per column of the used range.
func (v *DualView) Capture(row int) (models.RowSnapshot, error) {
	snap := make(models.RowSnapshot, v.maxCol)
	for col := 1; col <= v.maxCol; col++ {
		val, err := v.Value(row, col)
		if err != nil {
			return nil, err
		}
		bundle, err := v.styleBundle(row, col)
		if err != nil {
			return nil, err
		}
		snap[col-1] = models.CellRecord{Value: val, Style: bundle}
	}
	return snap, nil
}

// RowDim reads the height/visibility metadata of a source row.
func (v *DualView) RowDim(row int) (models.RowDim, error) {
	height, err := v.f.GetRowHeight(v.sheet, row)
	if err != nil {
		return models.RowDim{}, err
	}
	visible, err := v.f.GetRowVisible(v.sheet, row)
	if err != nil {
		return models.RowDim{}, err
	}
	level, err := v.f.GetRowOutlineLevel(v.sheet, row)
	if err != nil {
		return models.RowDim{}, err
	}
	return models.RowDim{Height: height, Hidden: !visible, OutlineLevel: level}, nil
}

// ColDims reads the width/visibility metadata of every column in the used
// range.
func (v *DualView) ColDims() ([]models.ColDim, error) {
	dims := make([]models.ColDim, 0, v.maxCol)
	for col := 1; col <= v.maxCol; col++ {
		letter, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return nil, err
		}
		width, err := v.f.GetColWidth(v.sheet, letter)
		if err != nil {
			return nil, err
		}
		visible, err := v.f.GetColVisible(v.sheet, letter)
		if err != nil {
			return nil, err
		}
		level, err := v.f.GetColOutlineLevel(v.sheet, letter)
		if err != nil {
			return nil, err
		}
		dims = append(dims, models.ColDim{
			Letter:       letter,
			Width:        width,
			Hidden:       !visible,
			OutlineLevel: level,
		})
	}
	return dims, nil
}

// MergedRanges lists the sheet's merged-cell ranges in A1 notation.
func (v *DualView) MergedRanges() ([]string, error) {
	merged, err := v.f.GetMergeCells(v.sheet)
	if err != nil {
		return nil, err
	}
	refs := make([]string, 0, len(merged))
	for _, mc := range merged {
		refs = append(refs, mc.GetStartAxis()+":"+mc.GetEndAxis())
	}
	return refs, nil
}

func (v *DualView) styleBundle(row, col int) (models.StyleBundle, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return models.StyleBundle{}, err
	}
	styleID, err := v.f.GetCellStyle(v.sheet, cell)
	if err != nil {
		return models.StyleBundle{}, err
	}
	style, err := v.resolveStyle(styleID)
	if err != nil {
		return models.StyleBundle{}, err
	}
	return models.StyleBundle{
		SourceID: styleID,
		Style:    style,
		Comment:  v.comments[cell],
	}, nil
}

// resolveStyle caches style lookups by source style index. GetStyle returns
// a freshly built Style each call, so cached pointers are already detached
// from the workbook's internals.
func (v *DualView) resolveStyle(styleID int) (*excelize.Style, error) {
	if s, ok := v.styles[styleID]; ok {
		return s, nil
	}
	s, err := v.f.GetStyle(styleID)
	if err != nil {
		return nil, err
	}
	v.styles[styleID] = s
	return s, nil
}

func (v *DualView) cellHasDateFormat(cell string) (bool, error) {
	styleID, err := v.f.GetCellStyle(v.sheet, cell)
	if err != nil {
		return false, err
	}
	if isDate, ok := v.dateStyle[styleID]; ok {
		return isDate, nil
	}
	style, err := v.resolveStyle(styleID)
	if err != nil {
		return false, err
	}
	custom := ""
	if style.CustomNumFmt != nil {
		custom = *style.CustomNumFmt
	}
	isDate := isDateStyle(style.NumFmt, custom)
	v.dateStyle[styleID] = isDate
	return isDate, nil
}

func parseISODate(raw string) models.Value {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
				return models.Date(t)
			}
			return models.DateTime(t)
		}
	}
	return models.Text(raw)
}
