// Package storage provides ranking helpers shared by the chunk store
// backends. Both the embedded and the in-memory stores score candidates
// in process; the remote store falls back to these for its lexical path.
package storage

import (
	"math"
	"sort"
	"strings"

	"github.com/relato-labs/relato-cli/internal/core/domain"
)

// Cosine returns the cosine similarity of two vectors, or 0 when the
// lengths differ or either vector is zero.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// TopByCosine returns up to topK chunks ordered by descending cosine
// similarity to query. Zero-similarity chunks are dropped.
func TopByCosine(chunks []domain.Chunk, query []float32, topK int) []domain.Chunk {
	type scored struct {
		chunk domain.Chunk
		score float64
	}

	candidates := make([]scored, 0, len(chunks))
	for _, c := range chunks {
		if score := Cosine(query, c.Embedding); score > 0 {
			candidates = append(candidates, scored{chunk: c, score: score})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if topK > 0 && topK < len(candidates) {
		candidates = candidates[:topK]
	}
	out := make([]domain.Chunk, len(candidates))
	for i, c := range candidates {
		out[i] = c.chunk
	}
	return out
}

// TopByKeywords scores chunks by the number of distinct query tokens
// their folded content contains and returns up to topK matches ordered
// by descending score. Chunks matching no token are dropped.
func TopByKeywords(chunks []domain.Chunk, keywords string, topK int) []domain.Chunk {
	tokens := strings.Fields(domain.FoldText(keywords))
	if len(tokens) == 0 {
		return nil
	}

	type scored struct {
		chunk domain.Chunk
		score int
	}

	candidates := make([]scored, 0, len(chunks))
	for _, c := range chunks {
		folded := domain.FoldText(c.Content)
		score := 0
		for _, t := range tokens {
			if strings.Contains(folded, t) {
				score++
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{chunk: c, score: score})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if topK > 0 && topK < len(candidates) {
		candidates = candidates[:topK]
	}
	out := make([]domain.Chunk, len(candidates))
	for i, c := range candidates {
		out[i] = c.chunk
	}
	return out
}
