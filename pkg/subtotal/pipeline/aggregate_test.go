package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukaji3/subtotal-go/pkg/subtotal/models"
	"github.com/xuri/excelize/v2"
)

func blockOf(snaps ...models.RowSnapshot) []blockRow {
	rows := make([]blockRow, len(snaps))
	for i, s := range snaps {
		rows[i] = blockRow{snap: s, srcRow: i + 1}
	}
	return rows
}

func TestBlockSums(t *testing.T) {
	agg := NewAggregator(5, "FFFF00")
	rows := blockOf(
		row(models.Text("X"), models.Integer(1), models.Text("10"), models.Integer(2), models.Real(20)),
		row(models.Text("X"), models.Integer(2), models.Text("1,000"), models.Integer(1), models.Real(1000)),
	)

	qty, amount := agg.BlockSums(rows)
	assert.Equal(t, 1010.0, qty)
	assert.Equal(t, 1020.0, amount)
}

func TestBlockSumsNarrowSheet(t *testing.T) {
	agg := NewAggregator(2, "FFFF00")
	rows := blockOf(row(models.Text("X"), models.Integer(1)))

	qty, amount := agg.BlockSums(rows)
	assert.Zero(t, qty)
	assert.Zero(t, amount)
}

func TestSubtotalRow(t *testing.T) {
	agg := NewAggregator(5, "FFFF00")
	template := row(models.Text("X"), models.Integer(2), models.Real(30), models.Integer(1), models.Real(30))

	sub := agg.SubtotalRow(template, 30, 30.456)

	assert.True(t, sub.ValueAt(1).IsAbsent(), "key column must be blanked")
	assert.True(t, sub.ValueAt(2).IsAbsent(), "sort column must be blanked")
	assert.Equal(t, 30.0, sub.ValueAt(3).Float())
	assert.True(t, sub.ValueAt(4).IsAbsent())
	assert.Equal(t, 30.46, sub.ValueAt(5).Float(), "amount subtotal is rounded to 2 decimals")

	for col := 2; col <= 5; col++ {
		fill := sub[col-1].Style.Style.Fill
		assert.Equal(t, []string{"FFFF00"}, fill.Color, "column %d should be highlighted", col)
		assert.Equal(t, 1, fill.Pattern)
	}
	assert.Nil(t, sub[0].Style.Style, "key column keeps its template style untouched")
}

func TestSubtotalHighlightClipsToSheetWidth(t *testing.T) {
	agg := NewAggregator(3, "FFFF00")
	template := row(models.Text("X"), models.Integer(1), models.Real(5))

	sub := agg.SubtotalRow(template, 5, 0)

	assert.Len(t, sub, 3)
	for col := 2; col <= 3; col++ {
		assert.NotNil(t, sub[col-1].Style.Style, "column %d should carry a highlight style", col)
	}
}

func TestSubtotalDoesNotMutateTemplate(t *testing.T) {
	agg := NewAggregator(5, "FFFF00")
	template := row(models.Text("X"), models.Integer(2), models.Real(30), models.Integer(1), models.Real(30))
	template[1].Style = models.StyleBundle{
		SourceID: 7,
		Style:    &excelize.Style{Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"C0C0C0"}}},
	}

	agg.SubtotalRow(template, 30, 30)

	assert.Equal(t, "C0C0C0", template[1].Style.Style.Fill.Color[0], "template style must stay untouched")
	assert.False(t, template.ValueAt(1).IsAbsent(), "template values must stay untouched")
}

func TestGrandTotalsAccumulateBlockSums(t *testing.T) {
	agg := NewAggregator(5, "FFFF00")
	template := row(models.Absent(), models.Absent(), models.Absent(), models.Absent(), models.Absent())

	agg.SubtotalRow(template, 30, 10.004)
	agg.SubtotalRow(template, 5, 10.004)

	total := agg.GrandTotalRow(template, "合计")
	assert.Equal(t, "合计", total.ValueAt(1).Str())
	assert.Equal(t, 35.0, total.ValueAt(3).Float())
	// Grand total sums the unrounded block sums, rounding only at the end.
	assert.Equal(t, 20.01, total.ValueAt(5).Float())
	assert.Equal(t, 2, agg.Blocks())
}
