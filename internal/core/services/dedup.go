package services

import (
	"github.com/relato-labs/relato-cli/internal/core/domain"
	"github.com/relato-labs/relato-cli/internal/logger"
)

// DedupStats summarises one run of the deduplication filter.
type DedupStats struct {
	New        int
	Duplicates int
	Malformed  int
}

// FilterNew returns the candidates whose content hash is not in
// existing, preserving input order. Candidates without a content hash
// are malformed input: they are reported through the logger and
// counted, never loaded and never treated as duplicates.
//
// Running ingestion twice over an unchanged corpus yields an empty
// result the second time, which is what makes manual re-runs safe.
func FilterNew(candidates []domain.Chunk, existing map[string]struct{}) ([]domain.Chunk, DedupStats) {
	fresh := make([]domain.Chunk, 0, len(candidates))
	var stats DedupStats

	for _, c := range candidates {
		if c.ContentHash == "" {
			stats.Malformed++
			logger.Error("dedup: skipping chunk %s: %v", c.ID, domain.ErrMalformedChunk)
			continue
		}
		if _, dup := existing[c.ContentHash]; dup {
			stats.Duplicates++
			continue
		}
		stats.New++
		fresh = append(fresh, c)
	}

	logger.Info("dedup: %d new, %d duplicate, %d malformed", stats.New, stats.Duplicates, stats.Malformed)
	return fresh, stats
}
