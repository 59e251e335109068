package normalize

import (
	"regexp"
	"strings"
)

// accentMap transliterates the accented Latin letters seen in driver names
// to their unaccented base letter. Applied before the non-alphanumeric
// strip so "Pérez" and "Perez" produce the same key.
var accentMap = map[rune]rune{
	'á': 'a', 'à': 'a', 'ä': 'a', 'â': 'a',
	'é': 'e', 'è': 'e', 'ë': 'e', 'ê': 'e',
	'í': 'i', 'ì': 'i', 'ï': 'i', 'î': 'i',
	'ó': 'o', 'ò': 'o', 'ö': 'o', 'ô': 'o',
	'ú': 'u', 'ù': 'u', 'ü': 'u', 'û': 'u',
	'ñ': 'n', 'ç': 'c',
}

var nonKeyRe = regexp.MustCompile(`[^a-z0-9 ]+`)

// Whitespace collapses internal runs of spaces, tabs and NBSP to a single
// space and trims the ends. Page text arrives with NBSP padding.
func Whitespace(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == ' '
	}), " ")
}

// CanonicalKey reduces free text to a stable identity key: whitespace
// collapsed, lower-cased, accents transliterated, everything outside
// [a-z0-9 ] removed. Two display strings with the same key are treated as
// the same real-world identity. Idempotent.
func CanonicalKey(s string) string {
	k := strings.ToLower(Whitespace(s))
	k = strings.Map(func(r rune) rune {
		if t, ok := accentMap[r]; ok {
			return t
		}
		return r
	}, k)
	k = nonKeyRe.ReplaceAllString(k, "")
	return strings.Join(strings.Fields(k), " ")
}
