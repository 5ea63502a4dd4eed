package domain

// SourceDocument is an extracted source file prior to chunking.
// Its provenance fields are copied onto every chunk it produces.
type SourceDocument struct {
	// Project is the corpus partition this document belongs to,
	// derived from its parent directory name.
	Project string

	// Author and Year are parsed from the file name.
	Author string
	Year   string

	// Title is the canonical title, backfilled from the sidecar
	// manifest when a match exists, otherwise derived from the
	// file name.
	Title string

	// Link is the canonical document link from the manifest, if any.
	Link string

	// Source is the path of the file the document was loaded from.
	Source string

	// Pages holds the extracted text, one entry per page.
	Pages []PageText
}

// PageText is the extracted text of one page of a source document.
type PageText struct {
	Number int
	Text   string
}

// Message is a single chat-log entry used for conversational ingestion.
type Message struct {
	ChatID    string `json:"chat_id"`
	MessageID string `json:"message_id"`
	Subject   string `json:"subject"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}
