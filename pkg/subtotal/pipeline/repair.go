// Package pipeline implements the row transformation pass: numeric repair of
// the derived amount column, block segmentation on the key column, the
// type-aware sort, subtotal/grand-total synthesis, and the sheet writer that
// drives them.
package pipeline

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/subtotal-go/pkg/subtotal/models"
)

// Column roles within a row. The tool operates on the first five columns:
// A groups, B orders, and E is expected to hold C×D.
const (
	keyCol    = 1
	sortCol   = 2
	qtyCol    = 3
	priceCol  = 4
	amountCol = 5
)

// ToNumber coerces a cell value to float64 and never fails: absent is 0,
// numbers are themselves, text is parsed after stripping commas and
// surrounding whitespace (0 on any parse failure), and dates are 0.
func ToNumber(v models.Value) float64 {
	switch v.Kind() {
	case models.KindInteger, models.KindReal:
		return v.Float()
	case models.KindText:
		s := strings.TrimSpace(strings.ReplaceAll(v.Str(), ",", ""))
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Round2 rounds to two decimal places.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// FixedEValue repairs the derived amount column: when c and d both coerce to
// non-zero and e is absent, numerically zero, or one of the zero-like text
// tokens "0", "0.0", "0.00", the result is round(c*d, 2). Any other e passes
// through unchanged.
func FixedEValue(c, d, e models.Value) models.Value {
	cn := ToNumber(c)
	dn := ToNumber(d)
	if cn == 0 || dn == 0 {
		return e
	}

	repaired := models.Real(Round2(cn * dn))
	switch {
	case e.IsAbsent():
		return repaired
	case e.IsNumeric() && math.Abs(e.Float()) < 1e-9:
		return repaired
	case e.Kind() == models.KindText:
		switch strings.TrimSpace(e.Str()) {
		case "0", "0.0", "0.00":
			return repaired
		}
	}
	return e
}

// repairRow applies FixedEValue to a captured snapshot in place. Rows
// narrower than the amount column are left alone.
func repairRow(snap models.RowSnapshot) {
	if len(snap) < amountCol {
		return
	}
	snap.SetValueAt(amountCol, FixedEValue(
		snap.ValueAt(qtyCol),
		snap.ValueAt(priceCol),
		snap.ValueAt(amountCol),
	))
}
