package pipeline

import (
	"github.com/ukaji3/subtotal-go/pkg/subtotal/models"
)

// fakeSource is an in-memory Source for pipeline tests.
type fakeSource struct {
	rows    []models.RowSnapshot
	maxCol  int
	rowDims map[int]models.RowDim
	colDims []models.ColDim
	merges  []string
}

func newFakeSource(rows ...models.RowSnapshot) *fakeSource {
	s := &fakeSource{rows: rows, rowDims: make(map[int]models.RowDim)}
	for _, r := range rows {
		if len(r) > s.maxCol {
			s.maxCol = len(r)
		}
	}
	return s
}

func (s *fakeSource) MaxRow() int { return len(s.rows) }
func (s *fakeSource) MaxCol() int { return s.maxCol }

func (s *fakeSource) Value(row, col int) (models.Value, error) {
	if row < 1 || row > len(s.rows) {
		return models.Absent(), nil
	}
	return s.rows[row-1].ValueAt(col), nil
}

func (s *fakeSource) Capture(row int) (models.RowSnapshot, error) {
	snap := make(models.RowSnapshot, s.maxCol)
	src := s.rows[row-1]
	for i := range snap {
		if i < len(src) {
			snap[i] = models.CellRecord{Value: src[i].Value, Style: src[i].Style.Clone()}
		} else {
			snap[i] = models.CellRecord{Value: models.Absent(), Style: models.StyleBundle{SourceID: -1}}
		}
	}
	return snap, nil
}

func (s *fakeSource) RowDim(row int) (models.RowDim, error) {
	return s.rowDims[row], nil
}

func (s *fakeSource) ColDims() ([]models.ColDim, error) {
	return s.colDims, nil
}

func (s *fakeSource) MergedRanges() ([]string, error) {
	return s.merges, nil
}

// fakeSink records everything written to it.
type fakeSink struct {
	rows    map[int]models.RowSnapshot
	rowDims map[int]models.RowDim
	colDims []models.ColDim
	merges  []string
}

func newFakeSink() *fakeSink {
	return &fakeSink{
		rows:    make(map[int]models.RowSnapshot),
		rowDims: make(map[int]models.RowDim),
	}
}

func (s *fakeSink) WriteRow(row int, snap models.RowSnapshot) error {
	s.rows[row] = snap
	return nil
}

func (s *fakeSink) SetRowDim(row int, dim models.RowDim) error {
	s.rowDims[row] = dim
	return nil
}

func (s *fakeSink) SetColDim(dim models.ColDim) error {
	s.colDims = append(s.colDims, dim)
	return nil
}

func (s *fakeSink) Merge(ref string) error {
	s.merges = append(s.merges, ref)
	return nil
}

// row builds a snapshot from values, one per column.
func row(vals ...models.Value) models.RowSnapshot {
	snap := make(models.RowSnapshot, len(vals))
	for i, v := range vals {
		snap[i] = models.CellRecord{Value: v, Style: models.StyleBundle{SourceID: -1}}
	}
	return snap
}
