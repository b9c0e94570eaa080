// Package models defines the data structures moved through the subtotal
// pipeline: tagged cell values, row snapshots with their formatting, and
// row/column dimension records.
package models

import (
	"strconv"
	"strings"
	"time"
)

// Kind tags the dynamic type of a cell value.
type Kind uint8

const (
	// KindAbsent marks a cell with no stored value.
	KindAbsent Kind = iota
	// KindText marks a string value.
	KindText
	// KindInteger marks a whole-number value.
	KindInteger
	// KindReal marks a floating-point value.
	KindReal
	// KindDate marks a date without a time-of-day component.
	KindDate
	// KindDateTime marks a date with a time-of-day component.
	KindDateTime
)

// Value is a tagged cell value. A sheet column may freely mix text, numbers,
// dates and blanks, so every cell read out of a workbook is normalized into
// one of the six kinds before the pipeline touches it.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	t    time.Time
}

// Absent returns the value of an empty cell.
func Absent() Value { return Value{kind: KindAbsent} }

// Text returns a string value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Integer returns a whole-number value.
func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

// Real returns a floating-point value.
func Real(f float64) Value { return Value{kind: KindReal, f: f} }

// Date returns a date-only value.
func Date(t time.Time) Value { return Value{kind: KindDate, t: t} }

// DateTime returns a date-and-time value.
func DateTime(t time.Time) Value { return Value{kind: KindDateTime, t: t} }

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the cell holds no value at all.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsBlank reports whether the cell is absent or holds whitespace-only text.
// Blank cells never open a block and never count toward row content.
func (v Value) IsBlank() bool {
	if v.kind == KindAbsent {
		return true
	}
	return v.kind == KindText && strings.TrimSpace(v.s) == ""
}

// Str returns the string payload of a text value ("" for other kinds).
func (v Value) Str() string { return v.s }

// Time returns the time payload of a date or date-time value.
func (v Value) Time() time.Time { return v.t }

// Float returns the numeric payload of an integer or real value.
func (v Value) Float() float64 {
	if v.kind == KindInteger {
		return float64(v.i)
	}
	return v.f
}

// IsNumeric reports whether the value is an integer or a real.
func (v Value) IsNumeric() bool {
	return v.kind == KindInteger || v.kind == KindReal
}

// Equal reports strict equality: same tag and same payload. No coercion is
// performed, so Integer(1) and Text("1") are distinct keys.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindAbsent:
		return true
	case KindText:
		return v.s == o.s
	case KindInteger:
		return v.i == o.i
	case KindReal:
		return v.f == o.f
	default:
		return v.t.Equal(o.t)
	}
}

// Native returns the representation handed to excelize's SetCellValue.
// Absent values return nil; callers skip the write for those.
func (v Value) Native() interface{} {
	switch v.kind {
	case KindText:
		return v.s
	case KindInteger:
		return v.i
	case KindReal:
		return v.f
	case KindDate, KindDateTime:
		return v.t
	default:
		return nil
	}
}

// String renders the value for logs and error messages.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return ""
	case KindText:
		return v.s
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindReal:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindDate:
		return v.t.Format("2006-01-02")
	default:
		return v.t.Format("2006-01-02 15:04:05")
	}
}
