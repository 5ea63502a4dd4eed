package services

import (
	"regexp"
	"strings"

	"github.com/relato-labs/relato-cli/internal/core/domain"
)

var wordRe = regexp.MustCompile(`\p{L}[\p{L}\p{N}]*`)

// stopwords lists function words dropped from keyword queries. The
// corpus is Spanish-language project documentation, so the list covers
// Spanish function words plus the English ones that show up in mixed
// queries.
var stopwords = map[string]struct{}{
	// Spanish
	"a": {}, "al": {}, "algunos": {}, "aqui": {}, "aquel": {}, "bien": {},
	"como": {}, "con": {}, "cual": {}, "cuando": {}, "de": {}, "del": {},
	"donde": {}, "el": {}, "ella": {}, "en": {}, "entre": {}, "es": {},
	"ese": {}, "esto": {}, "este": {}, "hacer": {}, "hasta": {}, "la": {},
	"las": {}, "le": {}, "lo": {}, "los": {}, "mas": {}, "me": {},
	"muy": {}, "no": {}, "o": {}, "para": {}, "pero": {}, "por": {},
	"que": {}, "se": {}, "ser": {}, "si": {}, "sin": {}, "sobre": {},
	"solo": {}, "su": {}, "sus": {}, "tambien": {}, "todo": {}, "un": {},
	"una": {}, "y": {}, "ya": {},
	// English
	"the": {}, "in": {}, "of": {}, "and": {}, "did": {}, "do": {},
	"what": {}, "which": {}, "was": {}, "were": {}, "is": {}, "are": {},
	"use": {}, "used": {},
}

// ExtractKeywords returns the content-bearing tokens of query: the
// text is folded (diacritics stripped, lowercased), tokenised, and
// stop-words are removed. Token order is preserved.
func ExtractKeywords(query string) []string {
	folded := domain.FoldText(query)
	words := wordRe.FindAllString(folded, -1)

	keywords := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := stopwords[w]; stop {
			continue
		}
		keywords = append(keywords, w)
	}
	return keywords
}

// KeywordQuery renders the lexical form of query fed to
// ChunkStore.KeywordSearch. The resolved project name is removed from
// the keyword string: it is already applied as a filter predicate, and
// keeping it would skew lexical scores toward chunks that merely
// mention the project.
func KeywordQuery(query, project string) string {
	keywords := ExtractKeywords(query)
	projectToken := domain.FoldText(project)

	kept := keywords[:0]
	for _, k := range keywords {
		if k == projectToken {
			continue
		}
		kept = append(kept, k)
	}
	return strings.Join(kept, " ")
}
