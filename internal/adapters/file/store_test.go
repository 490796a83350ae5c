package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/internal/adapters/file"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// Ensure Store implements DocumentStore
var _ ports.DocumentStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunDocumentStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_WritesReadableJSON(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ws := &domain.Workspace{
		Name:        "faq",
		DialogNodes: []*domain.Node{{ID: "a", Output: domain.PlainText("Hi<br/>there")}},
	}

	require.NoError(t, store.Save(context.Background(), "nested/out.json", ws))

	data, err := os.ReadFile(filepath.Join(dir, "nested", "out.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hi<br/>there")
	assert.Contains(t, string(data), "\n  \"dialog_nodes\"")

	leftovers, err := filepath.Glob(filepath.Join(dir, "nested", "tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileStore_InvalidDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("[]"), 0o644))

	_, err := file.New(dir).Load(context.Background(), "bad.json")
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestFileStore_EmptyBasePathUsesKeyAsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.json")
	store := file.New("")

	require.NoError(t, store.Save(context.Background(), path, &domain.Workspace{Name: "direct"}))
	ws, err := store.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "direct", ws.Name)
}
