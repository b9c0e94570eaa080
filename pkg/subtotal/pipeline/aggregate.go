package pipeline

import (
	"github.com/ukaji3/subtotal-go/pkg/subtotal/models"
	"github.com/xuri/excelize/v2"
)

// Aggregator sums the quantity and amount columns per block, keeps the
// running grand totals, and synthesizes the highlighted subtotal and
// grand-total rows from style-template snapshots.
type Aggregator struct {
	maxCol int
	fill   excelize.Fill

	grandQty    float64
	grandAmount float64
	blocks      int
}

// NewAggregator builds an aggregator for a sheet of the given width. Color
// is an RGB hex string for the solid highlight fill on synthesized rows.
func NewAggregator(maxCol int, color string) *Aggregator {
	return &Aggregator{
		maxCol: maxCol,
		fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
	}
}

// BlockSums sums the coerced quantity and amount columns across the given
// (post-repair, post-sort) rows. Columns beyond the sheet's width sum to 0.
func (a *Aggregator) BlockSums(rows []blockRow) (sumQty, sumAmount float64) {
	for _, br := range rows {
		if a.maxCol >= qtyCol {
			sumQty += ToNumber(br.snap.ValueAt(qtyCol))
		}
		if a.maxCol >= amountCol {
			sumAmount += ToNumber(br.snap.ValueAt(amountCol))
		}
	}
	return sumQty, sumAmount
}

// SubtotalRow builds a block's subtotal row from its last member as the
// formatting template: all values blanked, quantity column set to the block
// sum, amount column to the rounded block sum, highlight fill on columns
// 2..5 (clipped to the sheet width). The sums are added to the running grand
// totals.
func (a *Aggregator) SubtotalRow(template models.RowSnapshot, sumQty, sumAmount float64) models.RowSnapshot {
	a.grandQty += sumQty
	a.grandAmount += sumAmount
	a.blocks++

	row := template.Clone()
	row.BlankValues()
	row.SetValueAt(qtyCol, models.Real(sumQty))
	row.SetValueAt(amountCol, models.Real(Round2(sumAmount)))
	a.highlight(row)
	return row
}

// GrandTotalRow builds the single trailing total row: values blanked, the
// key column set to the label so the row stays visible under a key-column
// filter, quantity and amount columns set to the accumulated grand totals.
func (a *Aggregator) GrandTotalRow(template models.RowSnapshot, label string) models.RowSnapshot {
	row := template.Clone()
	row.BlankValues()
	row.SetValueAt(keyCol, models.Text(label))
	row.SetValueAt(qtyCol, models.Real(a.grandQty))
	row.SetValueAt(amountCol, models.Real(Round2(a.grandAmount)))
	a.highlight(row)
	return row
}

// Blocks returns how many subtotal rows have been synthesized.
func (a *Aggregator) Blocks() int { return a.blocks }

// GrandTotals returns the running sheet-wide sums.
func (a *Aggregator) GrandTotals() (qty, amount float64) {
	return a.grandQty, a.grandAmount
}

func (a *Aggregator) highlight(row models.RowSnapshot) {
	limit := amountCol
	if a.maxCol < limit {
		limit = a.maxCol
	}
	for col := sortCol; col <= limit; col++ {
		row[col-1].Style.SetFill(a.fill)
	}
}
