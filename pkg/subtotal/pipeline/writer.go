package pipeline

import (
	"github.com/rs/zerolog"
	"github.com/ukaji3/subtotal-go/pkg/subtotal/models"
)

// Config tunes the synthesized rows.
type Config struct {
	// HighlightColor is the RGB hex fill for subtotal and grand-total rows.
	HighlightColor string
	// TotalLabel is written into the key column of the grand-total row.
	TotalLabel string
	// Logger receives per-block progress; use zerolog.Nop() to silence.
	Logger zerolog.Logger
}

// Writer drives the whole pass: blank rows copy through, non-blank rows are
// segmented into key-column blocks that are repaired, sorted, written, and
// subtotaled, and a single grand-total row closes the sheet. Output rows are
// written strictly in order and never revisited.
type Writer struct {
	src Source
	dst Sink
	cfg Config
	agg *Aggregator
}

// NewWriter wires a source sheet to an output sink.
func NewWriter(src Source, dst Sink, cfg Config) *Writer {
	return &Writer{
		src: src,
		dst: dst,
		cfg: cfg,
		agg: NewAggregator(src.MaxCol(), cfg.HighlightColor),
	}
}

// Run executes the single sequential pass. The source is never mutated, so
// running twice over the same input yields structurally identical output.
func (w *Writer) Run() error {
	seg, err := NewSegmenter(w.src)
	if err != nil {
		return err
	}
	last := seg.Last()

	if err := w.copyColumnDims(); err != nil {
		return err
	}

	outRow := 1
	row := 1
	for row <= last {
		key, err := w.src.Value(row, keyCol)
		if err != nil {
			return err
		}

		if key.IsBlank() {
			if err := w.passThrough(row, outRow); err != nil {
				return err
			}
			outRow++
			row++
			continue
		}

		end, err := seg.BlockEnd(row)
		if err != nil {
			return err
		}
		written, err := w.writeBlock(row, end, outRow)
		if err != nil {
			return err
		}
		outRow += written
		row = end + 1
	}

	// Merged ranges are replicated by literal address before the grand-total
	// row is placed. Merges inside a sorted block may therefore misalign
	// with their content; the source tool behaves the same way.
	refs, err := w.src.MergedRanges()
	if err != nil {
		return err
	}
	for _, ref := range refs {
		if err := w.dst.Merge(ref); err != nil {
			return err
		}
	}

	if err := w.writeGrandTotal(last, outRow); err != nil {
		return err
	}

	qty, amount := w.agg.GrandTotals()
	w.cfg.Logger.Info().
		Int("rows", last).
		Int("blocks", w.agg.Blocks()).
		Float64("grand_qty", qty).
		Float64("grand_amount", amount).
		Msg("pass complete")
	return nil
}

// passThrough copies a blank-keyed row unchanged.
func (w *Writer) passThrough(srcRow, outRow int) error {
	snap, err := w.src.Capture(srcRow)
	if err != nil {
		return err
	}
	if err := w.dst.WriteRow(outRow, snap); err != nil {
		return err
	}
	return w.copyRowDim(srcRow, outRow)
}

// writeBlock captures rows start..end, repairs the amount column, sorts by
// the sort column, writes the members followed by their subtotal row, and
// returns how many output rows were produced.
func (w *Writer) writeBlock(start, end, outRow int) (int, error) {
	rows := make([]blockRow, 0, end-start+1)
	for r := start; r <= end; r++ {
		snap, err := w.src.Capture(r)
		if err != nil {
			return 0, err
		}
		repairRow(snap)
		rows = append(rows, blockRow{snap: snap, srcRow: r})
	}

	sortBlock(rows)

	for i, br := range rows {
		if err := w.dst.WriteRow(outRow+i, br.snap); err != nil {
			return 0, err
		}
		// Dimension metadata follows the row to its new position.
		if err := w.copyRowDim(br.srcRow, outRow+i); err != nil {
			return 0, err
		}
	}

	sumQty, sumAmount := w.agg.BlockSums(rows)
	template, err := w.src.Capture(end)
	if err != nil {
		return 0, err
	}
	subtotal := w.agg.SubtotalRow(template, sumQty, sumAmount)
	subtotalRow := outRow + len(rows)
	if err := w.dst.WriteRow(subtotalRow, subtotal); err != nil {
		return 0, err
	}
	if err := w.copyRowDim(end, subtotalRow); err != nil {
		return 0, err
	}

	w.cfg.Logger.Debug().
		Int("start", start).
		Int("end", end).
		Float64("sum_qty", sumQty).
		Float64("sum_amount", sumAmount).
		Msg("block written")
	return len(rows) + 1, nil
}

func (w *Writer) writeGrandTotal(last, outRow int) error {
	var template models.RowSnapshot
	if last >= 1 {
		var err error
		template, err = w.src.Capture(last)
		if err != nil {
			return err
		}
	} else {
		// Entirely blank sheet: no template row exists, synthesize an
		// unformatted one wide enough for the label and total columns.
		width := w.src.MaxCol()
		if width < amountCol {
			width = amountCol
		}
		template = models.BlankRow(width)
	}

	total := w.agg.GrandTotalRow(template, w.cfg.TotalLabel)
	if err := w.dst.WriteRow(outRow, total); err != nil {
		return err
	}
	if last >= 1 {
		return w.copyRowDim(last, outRow)
	}
	return nil
}

func (w *Writer) copyRowDim(srcRow, outRow int) error {
	dim, err := w.src.RowDim(srcRow)
	if err != nil {
		return err
	}
	return w.dst.SetRowDim(outRow, dim)
}

func (w *Writer) copyColumnDims() error {
	dims, err := w.src.ColDims()
	if err != nil {
		return err
	}
	for _, dim := range dims {
		if err := w.dst.SetColDim(dim); err != nil {
			return err
		}
	}
	return nil
}
