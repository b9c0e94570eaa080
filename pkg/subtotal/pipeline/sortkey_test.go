package pipeline

import (
	"testing"
	"time"

	"github.com/ukaji3/subtotal-go/pkg/subtotal/models"
)

func TestSortKeyTagOrder(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	stamp := time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)

	// datetime < date < numeric < text < absent, even when the datetime is
	// chronologically after the date.
	ordered := []models.Value{
		models.DateTime(stamp),
		models.Date(day),
		models.Integer(5),
		models.Text("a"),
		models.Absent(),
	}

	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if !SortKeyLess(ordered[i], ordered[j]) {
				t.Errorf("expected %v < %v", ordered[i], ordered[j])
			}
			if SortKeyLess(ordered[j], ordered[i]) {
				t.Errorf("expected !(%v < %v)", ordered[j], ordered[i])
			}
		}
	}
}

func TestSortKeyWithinTag(t *testing.T) {
	early := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	late := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	if !SortKeyLess(models.DateTime(early), models.DateTime(late)) {
		t.Error("datetimes should order chronologically")
	}
	if !SortKeyLess(models.Integer(1), models.Real(2.5)) {
		t.Error("integer and real should compare numerically")
	}
	if !SortKeyLess(models.Text("abc"), models.Text("abd")) {
		t.Error("text should order lexicographically")
	}
	if SortKeyLess(models.Absent(), models.Absent()) {
		t.Error("absent values must not compare less than each other")
	}
}

func TestSortBlockIsStable(t *testing.T) {
	mk := func(b models.Value, tag string) blockRow {
		return blockRow{snap: models.RowSnapshot{
			{Value: models.Text("K")},
			{Value: b},
			{Value: models.Text(tag)},
		}}
	}

	rows := []blockRow{
		mk(models.Integer(2), "first-2"),
		mk(models.Integer(1), "first-1"),
		mk(models.Integer(2), "second-2"),
		mk(models.Integer(1), "second-1"),
	}
	sortBlock(rows)

	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.snap.ValueAt(3).Str()
	}
	want := []string{"first-1", "second-1", "first-2", "second-2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSortBlockAbsentLast(t *testing.T) {
	rows := []blockRow{
		{snap: models.RowSnapshot{{Value: models.Text("K")}, {Value: models.Absent()}}},
		{snap: models.RowSnapshot{{Value: models.Text("K")}, {Value: models.Integer(9)}}},
		{snap: models.RowSnapshot{{Value: models.Text("K")}, {Value: models.Text("z")}}},
	}
	sortBlock(rows)

	if !rows[len(rows)-1].snap.ValueAt(2).IsAbsent() {
		t.Errorf("absent sort key should land last, got %v", rows[len(rows)-1].snap.ValueAt(2))
	}
}
