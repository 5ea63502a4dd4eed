package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relato-labs/relato-cli/internal/core/ports/driven"
)

func TestLoad_CreatesDefaultOnFirstAccess(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptAnswer)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Eres un asistente")

	// The default was materialised for the user to edit.
	_, err = os.Stat(filepath.Join(dir, driven.PromptAnswer+".txt"))
	assert.NoError(t, err)
}

func TestLoad_UserFileWins(t *testing.T) {
	dir := t.TempDir()
	custom := "Contexto: %s Pregunta: %s"
	require.NoError(t, os.WriteFile(filepath.Join(dir, driven.PromptAnswer+".txt"), []byte(custom+"\n"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptAnswer)
	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

func TestReload_PicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptAnswer)
	require.NoError(t, err)

	edited := "Editado: %s / %s"
	require.NoError(t, os.WriteFile(filepath.Join(dir, driven.PromptAnswer+".txt"), []byte(edited), 0600))

	// Cached until reload.
	prompt, err := store.Load(driven.PromptAnswer)
	require.NoError(t, err)
	assert.NotEqual(t, edited, prompt)

	store.Reload()
	prompt, err = store.Load(driven.PromptAnswer)
	require.NoError(t, err)
	assert.Equal(t, edited, prompt)
}

func TestLoad_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("nonexistent")
	assert.Error(t, err)
}
