package expiry

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	anchorYearPattern  = regexp.MustCompile(`\b20[23]\d\b`)
	smallNumberPattern = regexp.MustCompile(`\b\d{1,2}\b`)
	wordPattern        = regexp.MustCompile(`[a-z]{3,}`)
)

// fragments reconstructs a date from day, month and year tokens scattered
// across separate OCR lines. It is the last-resort strategy: the first line
// carrying a plausible 4-digit year anchors the search, the remaining lines
// are scanned for a standalone day number and a month token. A month is
// required; a missing day resolves to the last day of the month.
func (e *Engine) fragments(lines []string) []Candidate {
	if len(lines) < 2 {
		return nil
	}

	normalized := make([]string, len(lines))
	for i, l := range lines {
		normalized[i] = Normalize(l)
	}

	year, yearIdx := 0, -1
	for i, n := range normalized {
		if tok := anchorYearPattern.FindString(n); tok != "" {
			year, _ = strconv.Atoi(tok)
			yearIdx = i
			break
		}
	}
	if yearIdx < 0 {
		return nil
	}

	day, dayIdx := 0, -1
	month, monthIdx := 0, -1
	for i, n := range normalized {
		if i == yearIdx {
			continue
		}
		if dayIdx < 0 {
			for _, tok := range smallNumberPattern.FindAllString(n, -1) {
				if v, _ := strconv.Atoi(tok); v >= 1 && v <= 31 {
					day, dayIdx = v, i
					break
				}
			}
		}
		if monthIdx < 0 {
			for _, tok := range wordPattern.FindAllString(n, -1) {
				if m, ok := monthNumber(tok); ok {
					month, monthIdx = m, i
					break
				}
			}
		}
	}
	if monthIdx < 0 {
		return nil
	}

	var date time.Time
	var ok bool
	if dayIdx < 0 {
		date, ok = monthEndDate(month, year)
	} else {
		date, ok = canonicalDate(day, month, year)
	}
	if !ok || !e.plausible(date) {
		return nil
	}

	// Provenance: the contributing lines, in input order.
	contributing := map[int]bool{yearIdx: true, monthIdx: true}
	if dayIdx >= 0 {
		contributing[dayIdx] = true
	}
	indices := make([]int, 0, len(contributing))
	for i := range contributing {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	parts := make([]string, 0, len(indices))
	for _, i := range indices {
		parts = append(parts, lines[i])
	}

	hasKeyword := ContainsExpiryKeyword(strings.Join(lines, " "))
	return []Candidate{{
		Day:        date.Day(),
		Month:      int(date.Month()),
		Year:       date.Year(),
		ISODate:    date.Format("2006-01-02"),
		Format:     FormatFragmented,
		HasKeyword: hasKeyword,
		SourceText: strings.Join(parts, " "),
		Score:      scoreFor(multiLineBaseConfidence, hasKeyword),
	}}
}
