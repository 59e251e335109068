// Package toto recovers market and outcome structure from the flat text of
// the Toto Formule 1 outrights page and drives one ingestion cycle into the
// odds store. The page carries no schema contract, so everything here is a
// best-effort heuristic tuned for precision over recall: blocks that fail
// the heuristics are dropped, never partially recorded.
package toto

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Vodeneev/totobet/internal/pkg/models"
	"github.com/Vodeneev/totobet/internal/pkg/normalize"
)

const maxTitleRunes = 120

// titleMarkers are the strong substrings that qualify a line as a market
// title. The page mixes Dutch and English wording, so both are listed.
// Kept as a table so the classification policy is testable apart from the
// scan loop.
var titleMarkers = []string{
	"winnaar", "winning", "top ", "constructor",
	"kwalificatie", "qualification", "race", "sprint",
	"championship", "marge", "margin", "nationality",
	"classified", "first ", "any driver", "number of", "auto ",
}

// numericRangeRe rejects lines like "0.10 - 0.20 Seconds": those are
// selections of a winning-margin market, not titles, despite containing the
// "margin" market's range wording.
var numericRangeRe = regexp.MustCompile(`^[0-9., ]+\s*-\s*[0-9., ]+`)

// IsMarketTitle reports whether a line looks like a market title: short
// enough, not a pure numeric range, and carrying at least one strong
// marker. A strongly-worded selection line can misfire here; that loss of
// recall is accepted.
func IsMarketTitle(line string) bool {
	l := normalize.Whitespace(line)
	if utf8.RuneCountInString(l) > maxTitleRunes {
		return false
	}
	k := strings.ToLower(l)
	if numericRangeRe.MatchString(k) {
		return false
	}
	for _, m := range titleMarkers {
		if strings.Contains(k, m) {
			return true
		}
	}
	return false
}

// teamMarkers identify constructor entries in selection text. Driver
// selections are printed comma-ordered ("Verstappen, Max"); teams are not.
var teamMarkers = []string{
	"racing", "amg", "team", "williams", "mclaren", "red bull",
	"ferrari", "mercedes", "aston martin", "sauber", "alpine", "rb",
}

// GuessEntityType guesses a driver/team tag from a selection's surface
// text. Returns "" when neither rule applies.
func GuessEntityType(selection string) string {
	if strings.Contains(selection, ",") {
		return models.EntityTypeDriver
	}
	l := strings.ToLower(selection)
	for _, m := range teamMarkers {
		if strings.Contains(l, m) {
			return models.EntityTypeTeam
		}
	}
	return ""
}
