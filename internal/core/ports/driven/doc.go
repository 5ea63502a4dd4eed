// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): persistence, embeddings, language models,
// prompt templates and corpus loading.
package driven
