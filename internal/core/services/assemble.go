package services

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/relato-labs/relato-cli/internal/core/domain"
)

var titleCaser = cases.Title(language.Und)

// MergeResults concatenates vector results followed by keyword results.
// Vector results take priority in context ordering. Later occurrences
// of a content hash are dropped so the same chunk never grounds the
// answer twice, regardless of which modality found it first.
func MergeResults(vector, keyword []domain.Chunk) []domain.Chunk {
	merged := make([]domain.Chunk, 0, len(vector)+len(keyword))
	seen := make(map[string]struct{}, len(vector)+len(keyword))

	for _, c := range append(append([]domain.Chunk{}, vector...), keyword...) {
		if c.ContentHash != "" {
			if _, dup := seen[c.ContentHash]; dup {
				continue
			}
			seen[c.ContentHash] = struct{}{}
		}
		merged = append(merged, c)
	}
	return merged
}

// BuildContext joins the merged chunks' contents with a blank-line
// separator, in merge order. The result is the grounding context handed
// to the prompt template.
func BuildContext(chunks []domain.Chunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if c.Content == "" {
			continue
		}
		parts = append(parts, c.Content)
	}
	return strings.Join(parts, "\n\n")
}

// BuildCitations groups the merged chunks by normalised title and emits
// one citation per distinct title, in first-appearance order. Each
// citation collects the distinct page numbers ascending and keeps one
// representative author (title-cased), link and year. Chunks without a
// title (chat-derived ones) produce no citation.
func BuildCitations(chunks []domain.Chunk) []domain.Citation {
	var order []string
	byTitle := make(map[string]*domain.Citation)
	pages := make(map[string]map[int]struct{})

	for _, c := range chunks {
		title := titleCaser.String(strings.TrimSpace(c.Title()))
		if title == "" {
			continue
		}

		cit, ok := byTitle[title]
		if !ok {
			cit = &domain.Citation{
				Title:  title,
				Author: titleCaser.String(strings.TrimSpace(c.Author())),
				Link:   c.Link(),
				Year:   c.Year(),
			}
			byTitle[title] = cit
			pages[title] = make(map[int]struct{})
			order = append(order, title)
		}

		if page, ok := c.Page(); ok {
			pages[title][page] = struct{}{}
		}
	}

	citations := make([]domain.Citation, 0, len(order))
	for _, title := range order {
		cit := byTitle[title]
		for page := range pages[title] {
			cit.Pages = append(cit.Pages, page)
		}
		sort.Ints(cit.Pages)
		citations = append(citations, *cit)
	}
	return citations
}
