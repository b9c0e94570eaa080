package pipeline

import (
	"sort"

	"github.com/ukaji3/subtotal-go/pkg/subtotal/models"
)

// sortRank orders value tags for the block sort: date-times first, then
// date-only values, then numbers, then text; absent always sorts last.
func sortRank(v models.Value) int {
	switch v.Kind() {
	case models.KindDateTime:
		return 0
	case models.KindDate:
		return 1
	case models.KindInteger, models.KindReal:
		return 2
	case models.KindText:
		return 3
	default:
		return 4
	}
}

// SortKeyLess compares two sort-column values: rank first, then the native
// order within a rank (chronological, numeric, or lexicographic).
func SortKeyLess(a, b models.Value) bool {
	ra, rb := sortRank(a), sortRank(b)
	if ra != rb {
		return ra < rb
	}
	switch ra {
	case 0, 1:
		return a.Time().Before(b.Time())
	case 2:
		return a.Float() < b.Float()
	case 3:
		return a.Str() < b.Str()
	default:
		return false
	}
}

// blockRow pairs a captured snapshot with its originating source row so
// dimension copy can follow the row through the sort.
type blockRow struct {
	snap   models.RowSnapshot
	srcRow int
}

// sortBlock stably sorts block members ascending by the sort column. Ties
// keep their original relative order.
func sortBlock(rows []blockRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return SortKeyLess(rows[i].snap.ValueAt(sortCol), rows[j].snap.ValueAt(sortCol))
	})
}
