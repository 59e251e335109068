// Package normalize holds the pure text and odds normalization helpers
// shared by the page parser and the store: Dutch decimal-odds parsing,
// implied probability, and canonical identity keys.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// dutchOddsRe matches Dutch-locale decimal odds as printed on the page:
// digit groups separated by "." as thousands separator, "," as decimal
// separator, always two decimals (e.g. "12,50", "1.234,56").
var dutchOddsRe = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})*,\d{2}$`)

// IsDutchOdds reports whether s is a well-formed Dutch decimal-odds token.
// The block extractor uses this to delimit (selection, odds) pairs, so a
// non-match is expected input, not an error condition.
func IsDutchOdds(s string) bool {
	return dutchOddsRe.MatchString(s)
}

// ParseDutchOdds converts a Dutch decimal-odds token to its float value.
// Input that does not match the odds pattern is rejected, never coerced.
func ParseDutchOdds(s string) (float64, error) {
	if !dutchOddsRe.MatchString(s) {
		return 0, fmt.Errorf("not a dutch decimal odds token: %q", s)
	}
	v := strings.ReplaceAll(s, ".", "")
	v = strings.ReplaceAll(v, ",", ".")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse odds %q: %w", s, err)
	}
	return f, nil
}

// ImpliedProbability returns the probability consistent with decimal odds,
// 1/odds, or 0 for a zero odds value.
func ImpliedProbability(odds float64) float64 {
	if odds == 0 {
		return 0
	}
	return 1.0 / odds
}
