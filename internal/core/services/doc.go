// Package services implements the core ingestion and retrieval logic:
// deduplication, hybrid search orchestration, and context and citation
// assembly.
package services
