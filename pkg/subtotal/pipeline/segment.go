package pipeline

import (
	"github.com/ukaji3/subtotal-go/pkg/subtotal/models"
)

// Source is the read side the pipeline consumes: a dual-view sheet exposing
// typed cell values, whole-row capture, dimension metadata, and merged
// ranges.
type Source interface {
	MaxRow() int
	MaxCol() int
	Value(row, col int) (models.Value, error)
	Capture(row int) (models.RowSnapshot, error)
	RowDim(row int) (models.RowDim, error)
	ColDims() ([]models.ColDim, error)
	MergedRanges() ([]string, error)
}

// Sink is the write side: a sequential output sheet.
type Sink interface {
	WriteRow(row int, snap models.RowSnapshot) error
	SetRowDim(row int, dim models.RowDim) error
	SetColDim(dim models.ColDim) error
	Merge(ref string) error
}

// Segmenter walks the used range and finds block boundaries: maximal runs of
// consecutive rows whose key-column value compares strictly equal. Blank key
// rows never open or extend a block.
type Segmenter struct {
	src  Source
	last int
}

// NewSegmenter trims fully-blank trailing rows and remembers the effective
// last row.
func NewSegmenter(src Source) (*Segmenter, error) {
	last := src.MaxRow()
	for last >= 1 {
		blank, err := rowIsBlank(src, last)
		if err != nil {
			return nil, err
		}
		if !blank {
			break
		}
		last--
	}
	return &Segmenter{src: src, last: last}, nil
}

// Last returns the last used row after trailing-blank trimming (0 for an
// entirely blank sheet).
func (s *Segmenter) Last() int { return s.last }

// RowIsBlank reports whether every cell in the row is absent or
// whitespace-only text.
func (s *Segmenter) RowIsBlank(row int) (bool, error) {
	return rowIsBlank(s.src, row)
}

// BlockEnd scans forward from start and returns the last row whose
// key-column value equals start's. Equality is strict (tag and payload), so
// a numeric 1 and a text "1" never share a block.
func (s *Segmenter) BlockEnd(start int) (int, error) {
	key, err := s.src.Value(start, keyCol)
	if err != nil {
		return 0, err
	}
	end := start
	for end+1 <= s.last {
		next, err := s.src.Value(end+1, keyCol)
		if err != nil {
			return 0, err
		}
		if !next.Equal(key) {
			break
		}
		end++
	}
	return end, nil
}

func rowIsBlank(src Source, row int) (bool, error) {
	for col := 1; col <= src.MaxCol(); col++ {
		v, err := src.Value(row, col)
		if err != nil {
			return false, err
		}
		if !v.IsBlank() {
			return false, nil
		}
	}
	return true, nil
}
