package sheet

// isBuiltInDateID reports whether id is a built-in Excel numFmtId describing
// a date, datetime, or time format (ECMA-376 §18.8.30):
//
//	14–22   date and time formats (18–21 are time-only)
//	27–36   locale-specific CJK date formats
//	45–47   elapsed-time / seconds formats
//	50–58   locale-specific CJK date formats (variant set)
func isBuiltInDateID(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// hasDateToken scans the unquoted portion of a custom number-format string
// for date/time token characters (y, m, d, h, s in either case). Characters
// inside double-quoted literals or square-bracket sections do not count.
func hasDateToken(formatStr string) bool {
	inQuote := false
	inBracket := false
	for _, ch := range formatStr {
		switch {
		case inQuote:
			if ch == '"' {
				inQuote = false
			}
		case inBracket:
			if ch == ']' {
				inBracket = false
			}
		case ch == '"':
			inQuote = true
		case ch == '[':
			inBracket = true
		case ch == 'y' || ch == 'Y' ||
			ch == 'm' || ch == 'M' ||
			ch == 'd' || ch == 'D' ||
			ch == 'h' || ch == 'H' ||
			ch == 's' || ch == 'S':
			return true
		}
	}
	return false
}

// isDateStyle reports whether a resolved style renders numeric serials as
// dates or times.
func isDateStyle(numFmtID int, customFmt string) bool {
	if customFmt != "" {
		return hasDateToken(customFmt)
	}
	return isBuiltInDateID(numFmtID)
}
