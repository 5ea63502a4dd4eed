package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the
// binary, or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Implementations should fall back to a sensible default when the
	// prompt has no user override.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next
	// access. Useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptAnswer grounds the model answer on retrieved context.
	// The template expects two %s placeholders: the context text and
	// the user question, in that order.
	PromptAnswer = "answer"
)
