// Package chatlog loads chat-log messages from JSON export files.
package chatlog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/relato-labs/relato-cli/internal/core/domain"
	"github.com/relato-labs/relato-cli/internal/core/ports/driven"
	"github.com/relato-labs/relato-cli/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.MessageLoader = (*Loader)(nil)

// Loader reads a JSON array of messages from a file.
type Loader struct{}

// NewLoader creates a chat-log loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads messages from path. Entries without text are dropped with
// a debug log; an unparseable file is an error.
func (l *Loader) Load(_ context.Context, path string) ([]domain.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chat log: %w", err)
	}

	var raw []domain.Message
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse chat log: %w", err)
	}

	messages := make([]domain.Message, 0, len(raw))
	for _, m := range raw {
		if m.Text == "" {
			logger.Debug("Skipping empty message %s in chat %s", m.MessageID, m.ChatID)
			continue
		}
		messages = append(messages, m)
	}
	return messages, nil
}
