package expiry

import (
	"github.com/cloudflare/ahocorasick"
)

// expiryKeywords lists the expiry-related phrases found on food packaging,
// already in normalized form. A keyword match only boosts confidence; a date
// is never required to sit next to one.
var expiryKeywords = []string{
	// French
	"a consommer de preference avant",
	"a consommer avant",
	"date limite de consommation",
	"date limite",
	"dlc",
	"ddm",
	"peremption",
	"valable jusqu",
	// English
	"best before",
	"best by",
	"use by",
	"use before",
	"sell by",
	"expiry date",
	"expiry",
	"exp date",
	"exp",
	"expires",
	"bbe",
	"bb",
	// German
	"mindestens haltbar bis",
	"mhd",
	"verbrauchsdatum",
	"haltbar bis",
	// Spanish
	"consumir preferentemente antes",
	"fecha de caducidad",
	"caducidad",
	"consumir antes",
	// Italian
	"da consumarsi preferibilmente entro",
	"da consumare entro",
	"scadenza",
	"scad",
	// Portuguese
	"consumir de preferencia antes",
	"validade",
	"val",
	// Dutch
	"ten minste houdbaar tot",
	"tht",
	"te gebruiken tot",
	"tgt",
}

// keywordMatcher matches all keywords in a single pass.
var keywordMatcher = ahocorasick.NewStringMatcher(expiryKeywords)

// ContainsExpiryKeyword reports whether the text mentions an expiry phrase in
// any supported language. The input may be raw or already normalized; matching
// checks every language every time.
func ContainsExpiryKeyword(text string) bool {
	return len(keywordMatcher.Match([]byte(Normalize(text)))) > 0
}
