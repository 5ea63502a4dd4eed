package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransform decomposes to NFKD, drops combining marks and
// recomposes, turning e.g. "metodología" into "metodologia".
var foldTransform = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldText normalises text for lexical matching: diacritics are
// stripped and the result is lowercased. Both the keyword query
// preprocessing and the stores' lexical scoring use this fold so the
// two sides agree on token identity.
func FoldText(text string) string {
	folded, _, err := transform.String(foldTransform, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(folded)
}
