package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/relato-labs/relato-cli/internal/core/domain"
)

// ChunkMessages renders each chat message plus its surrounding context
// into one retrievable chunk. Messages are sorted by (chat_id,
// timestamp); for each message the window of up to ±window neighbours
// within the same chat is concatenated in chronological order, each
// line prefixed with the sender identity. The central message's
// identity is preserved in the chunk metadata.
func ChunkMessages(messages []domain.Message, window int) []domain.Chunk {
	sorted := make([]domain.Message, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ChatID != sorted[j].ChatID {
			return sorted[i].ChatID < sorted[j].ChatID
		}
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	// Group into per-chat runs; sorting made each chat contiguous.
	byChat := make(map[string][]domain.Message)
	var chatOrder []string
	for _, m := range sorted {
		if _, ok := byChat[m.ChatID]; !ok {
			chatOrder = append(chatOrder, m.ChatID)
		}
		byChat[m.ChatID] = append(byChat[m.ChatID], m)
	}

	chunks := make([]domain.Chunk, 0, len(sorted))
	for _, chatID := range chatOrder {
		chat := byChat[chatID]
		for i, central := range chat {
			start := i - window
			if start < 0 {
				start = 0
			}
			end := i + window + 1
			if end > len(chat) {
				end = len(chat)
			}

			var b strings.Builder
			for _, m := range chat[start:end] {
				fmt.Fprintf(&b, "%s: %s\n", m.Sender, m.Text)
			}
			content := strings.TrimSpace(b.String())
			if content == "" {
				continue
			}

			chunks = append(chunks, domain.Chunk{
				ID:          uuid.New().String(),
				Content:     content,
				ContentHash: domain.HashContent(content),
				Metadata: map[string]any{
					domain.MetaChatID:      central.ChatID,
					domain.MetaSubject:     central.Subject,
					domain.MetaTimestamp:   central.Timestamp,
					domain.MetaCentralText: central.Text,
				},
			})
		}
	}
	return chunks
}
