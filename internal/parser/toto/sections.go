package toto

import (
	"regexp"
	"strings"
)

// tabSentinel is the combined-view tab; tab names only start after it.
const tabSentinel = "alles"

// eventKeywordRe recognizes tab titles naming a competition event or
// season: grand prix names, the series itself, session types, or a year.
var eventKeywordRe = regexp.MustCompile(`(grand prix|formula|formule|qualification|kwalificatie|sprint|race|20\d{2})`)

// seasonSectionRe matches season-wide section titles like "Formule 1 2024".
var seasonSectionRe = regexp.MustCompile(`(formula|formule)\s*1\s*20\d{2}`)

// propositionWords appear in market titles but never in tab names: a line
// carrying one means the tab strip has ended and market content has begun.
// This is the session-word-free remainder of the title-marker table; tabs
// legitimately contain race/sprint/qualification words, so those cannot
// serve as the stop signal.
var propositionWords = []string{
	"winnaar", "winning", "winner", "top ", "constructor",
	"championship", "marge", "margin", "nationality",
	"classified", "first ", "any driver", "number of", "auto ",
}

// sessionMarketWords mark a market title as session-scoped (race,
// qualifying, sprint) rather than season-scoped.
var sessionMarketWords = []string{"race", "kwalificatie", "qualifying", "sprint", "shootout"}

// sessionSectionWords mark a section title as covering a session.
var sessionSectionWords = []string{"race", "qualification", "kwalificatie", "sprint"}

// ExtractSections recovers the ordered tab names from the line sequence.
// Capture begins after the "Alles" sentinel. A hyphen-separated range line
// is evidence the tab strip has ended: it stops capture once at least three
// tabs exist, and is ignored as noise before that. A line carrying a market
// proposition word ends capture immediately (markets follow the tab strip),
// as does any non-matching line once three tabs exist.
func ExtractSections(lines []string) []string {
	var tabs []string
	capture := false
	for _, s := range lines {
		sl := strings.TrimSpace(s)
		if strings.EqualFold(sl, tabSentinel) {
			capture = true
			continue
		}
		if !capture {
			continue
		}
		low := strings.ToLower(sl)
		if strings.Contains(sl, " - ") {
			if len(tabs) >= 3 {
				break
			}
			continue
		}
		if containsAny(low, propositionWords) {
			break
		}
		if eventKeywordRe.MatchString(low) {
			if !containsString(tabs, sl) {
				tabs = append(tabs, sl)
			}
		} else if len(tabs) >= 3 {
			break
		}
	}
	return tabs
}

// MatchSectionForMarket heuristically maps a market title to one of the
// captured sections: session-scoped markets go to the first session
// section, everything else falls back to the first "Formule 1 <year>"
// season section. Returns "" when no association can be made.
func MatchSectionForMarket(marketTitle string, sections []string) string {
	mt := strings.ToLower(marketTitle)
	if containsAny(mt, sessionMarketWords) {
		for _, s := range sections {
			if containsAny(strings.ToLower(s), sessionSectionWords) {
				return s
			}
		}
	}
	for _, s := range sections {
		if seasonSectionRe.MatchString(strings.ToLower(s)) {
			return s
		}
	}
	return ""
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
