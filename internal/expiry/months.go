package expiry

// monthNames maps normalized month names and common abbreviations in the
// supported languages (French, English, German, Spanish, Italian, Portuguese,
// Dutch) to month numbers. Accented spellings collapse onto these entries via
// Normalize before lookup.
var monthNames = map[string]int{
	// French
	"janvier": 1, "janv": 1, "jan": 1,
	"fevrier": 2, "fev": 2,
	"mars": 3, "mar": 3,
	"avril": 4, "avr": 4,
	"mai": 5,
	"juin": 6, "jun": 6,
	"juillet": 7, "juil": 7, "jul": 7,
	"aout": 8, "aou": 8,
	"septembre": 9, "sept": 9, "sep": 9,
	"octobre": 10, "oct": 10,
	"novembre": 11, "nov": 11,
	"decembre": 12, "dec": 12,
	// English
	"january": 1,
	"february": 2, "feb": 2,
	"march": 3,
	"april": 4, "apr": 4,
	"may": 5,
	"june":   6,
	"july":   7,
	"august": 8, "aug": 8,
	"september": 9,
	"october":   10,
	"november":  11,
	"december":  12,
	// German
	"januar":  1,
	"februar": 2,
	"marz":    3,
	"juni":    6,
	"juli":    7,
	"oktober": 10, "okt": 10,
	"dezember": 12, "dez": 12,
	// Spanish
	"enero": 1, "ene": 1,
	"febrero": 2,
	"marzo":   3,
	"abril":   4, "abr": 4,
	"mayo":  5,
	"junio": 6,
	"julio": 7,
	"agosto": 8, "ago": 8,
	"septiembre": 9,
	"octubre":    10,
	"noviembre":  11,
	"diciembre":  12, "dic": 12,
	// Italian
	"gennaio": 1, "gen": 1,
	"febbraio": 2,
	"aprile":   4,
	"maggio":   5, "mag": 5,
	"giugno": 6, "giu": 6,
	"luglio": 7, "lug": 7,
	"settembre": 9, "set": 9,
	"ottobre": 10, "ott": 10,
	"dicembre": 12,
	// Portuguese
	"janeiro":   1,
	"fevereiro": 2,
	"marco":     3,
	"maio":      5,
	"junho":     6,
	"julho":     7,
	"setembro":  9,
	"outubro":   10, "out": 10,
	"dezembro": 12,
	// Dutch
	"januari":  1,
	"februari": 2,
	"maart":    3, "mrt": 3,
	"mei":      5,
	"augustus": 8,
}

// monthNumber resolves a normalized token to a month number, trying exact
// equality first and then the three-letter prefix, so full names and
// abbreviations collapse onto the same entry ("novembre", "november" and
// "nov" all resolve to 11).
func monthNumber(token string) (int, bool) {
	if m, ok := monthNames[token]; ok {
		return m, true
	}
	if len(token) > 3 {
		if m, ok := monthNames[token[:3]]; ok {
			return m, true
		}
	}
	return 0, false
}
