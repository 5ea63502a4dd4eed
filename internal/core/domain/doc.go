// Package domain contains the core types of the relato retrieval
// pipeline: chunks, citations, queries, answers and the errors shared
// between services and adapters.
package domain
