package expiry

import (
	"regexp"
	"strconv"
)

// The format grammars, in priority order. Separators are any run of
// slash, dash, dot or space. Purely numeric dates are always read
// day-before-month; see the package doc for the locale assumption.
var (
	dayMonthYearPattern = regexp.MustCompile(`\b(\d{1,2})[\s/.\-]+(\d{1,2}|[a-z]{3,})[\s/.\-]+(\d{2,4})\b`)
	yearMonthDayPattern = regexp.MustCompile(`\b(\d{4})[\s/.\-]+(\d{1,2})[\s/.\-]+(\d{1,2})\b`)
	monthYearPattern    = regexp.MustCompile(`\b(?:(\d{1,2})[\s/.\-]+)?(\d{1,2}|[a-z]{3,})[\s/.\-]+(\d{4})\b`)
	digits8Pattern      = regexp.MustCompile(`\b\d{8}\b`)
	digits6Pattern      = regexp.MustCompile(`\b\d{6}\b`)
	digits4Pattern      = regexp.MustCompile(`\b\d{4}\b`)
)

// Format labels reported on recognized candidates.
const (
	FormatDayMonthYear   = "DD/MM/YYYY"
	FormatDayNamedMonth  = "DD MMM YYYY"
	FormatYearMonthDay   = "YYYY-MM-DD"
	FormatNamedMonthYear = "MMM YYYY (end-month)"
	FormatMonthYear      = "MM/YYYY (end-month)"
	FormatDigits8        = "DDMMYYYY"
	FormatDigits6        = "DDMMYY"
	FormatDigits4        = "MMYY (end-month)"
	FormatFragmented     = "fragmented"
)

// rawCandidate is a recognizer hit before validation. A zero day marks a
// month-only form that resolves to the last day of the month.
type rawCandidate struct {
	day    int
	month  int
	year   int
	format string
}

// recognize runs every format grammar over one normalized text fragment and
// returns the raw hits in grammar-priority order. A fragment with no
// recognizable date yields nil; that is a normal outcome, not an error.
func recognize(text string) []rawCandidate {
	var out []rawCandidate

	// DD/MM/YYYY, DD-MM-YY, "19 NOV 2024", ...
	for _, m := range dayMonthYearPattern.FindAllStringSubmatch(text, -1) {
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		if month, err := strconv.Atoi(m[2]); err == nil {
			out = append(out, rawCandidate{day, month, year, FormatDayMonthYear})
		} else if month, ok := monthNumber(m[2]); ok {
			out = append(out, rawCandidate{day, month, year, FormatDayNamedMonth})
		}
	}

	// 2026-03-12
	for _, m := range yearMonthDayPattern.FindAllStringSubmatch(text, -1) {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		out = append(out, rawCandidate{day, month, year, FormatYearMonthDay})
	}

	// "10/2022", "OCT 2022": no day, resolves to the last day of the month.
	for _, m := range monthYearPattern.FindAllStringSubmatch(text, -1) {
		year, _ := strconv.Atoi(m[3])
		var month int
		var format string
		if v, err := strconv.Atoi(m[2]); err == nil {
			month, format = v, FormatMonthYear
		} else if v, ok := monthNumber(m[2]); ok {
			month, format = v, FormatNamedMonthYear
		} else {
			continue
		}
		// A leading number turns the span into a full day-month-year date
		// only when it names a real day of that month; then the grammars
		// above already own it. A stray lot or batch number does not.
		if m[1] != "" {
			day, _ := strconv.Atoi(m[1])
			if _, ok := canonicalDate(day, month, year); ok {
				continue
			}
		}
		out = append(out, rawCandidate{0, month, year, format})
	}

	// Compact digit runs: 19112024, 191124, 1124.
	for _, m := range digits8Pattern.FindAllString(text, -1) {
		day, _ := strconv.Atoi(m[0:2])
		month, _ := strconv.Atoi(m[2:4])
		year, _ := strconv.Atoi(m[4:8])
		out = append(out, rawCandidate{day, month, year, FormatDigits8})
	}
	for _, m := range digits6Pattern.FindAllString(text, -1) {
		day, _ := strconv.Atoi(m[0:2])
		month, _ := strconv.Atoi(m[2:4])
		year, _ := strconv.Atoi(m[4:6])
		out = append(out, rawCandidate{day, month, year, FormatDigits6})
	}
	for _, m := range digits4Pattern.FindAllString(text, -1) {
		month, _ := strconv.Atoi(m[0:2])
		year, _ := strconv.Atoi(m[2:4])
		out = append(out, rawCandidate{0, month, year, FormatDigits4})
	}

	return out
}
