package expiry

import "time"

const (
	minYear = 2000
	maxYear = 2100

	// Two-digit years below the pivot expand into the 2000s, the rest into
	// the 1900s (which the year range check then rejects).
	twoDigitYearPivot = 50
)

// expandYear expands a two-digit year: 30 -> 2030, 75 -> 1975.
func expandYear(year int) int {
	if year >= 100 {
		return year
	}
	if year < twoDigitYearPivot {
		return 2000 + year
	}
	return 1900 + year
}

// canonicalDate validates a (day, month, year) triple and returns the
// calendar date. Triples outside the supported ranges or naming a day that
// does not exist (e.g. 31 April) return false rather than being clamped.
func canonicalDate(day, month, year int) (time.Time, bool) {
	year = expandYear(year)
	if day < 1 || day > 31 || month < 1 || month > 12 || year < minYear || year > maxYear {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 becomes Mar 1); reject instead.
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}

// monthEndDate returns the last calendar day of a (month, year) pair,
// accounting for leap years on February.
func monthEndDate(month, year int) (time.Time, bool) {
	year = expandYear(year)
	if month < 1 || month > 12 || year < minYear || year > maxYear {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC), true
}
