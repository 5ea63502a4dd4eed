package domain

import "strings"

// Query is a transient question against the corpus.
type Query struct {
	// Text is the natural-language question. It must name a known
	// project for retrieval to proceed.
	Text string

	// SearchK is the number of chunks requested from the vector path.
	SearchK int
}

// Validate checks the query fields.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return ErrInvalidInput
	}
	if q.SearchK <= 0 {
		return ErrInvalidInput
	}
	return nil
}

// Citation is a derived grouping of retrieved chunks by source
// document. Citations are ephemeral: built per answer, never persisted.
type Citation struct {
	// Title is the normalised document title.
	Title string `json:"title"`

	// Author is the title-cased representative author.
	Author string `json:"author"`

	// Pages holds the distinct page numbers cited, ascending.
	Pages []int `json:"pages"`

	// Link is the canonical document link, if known.
	Link string `json:"link,omitempty"`

	// Year is the publication year.
	Year string `json:"year"`
}

// Answer is the final response for a question: the model output plus
// the citations grounding it. Sources is nil when no project was
// identified or nothing was retrieved.
type Answer struct {
	ModelResponse string     `json:"model_response"`
	Sources       []Citation `json:"sources"`
}
