package models

// RowDim holds the height/visibility metadata copied for one source row.
// Dimension copy is keyed by the originating source row number even when the
// row lands at a different output position after sorting.
type RowDim struct {
	Height       float64
	Hidden       bool
	OutlineLevel uint8
}

// ColDim holds the width/visibility metadata for one column.
type ColDim struct {
	// Letter is the column name in A1 notation ("A", "B", ...).
	Letter       string
	Width        float64
	Hidden       bool
	OutlineLevel uint8
}
