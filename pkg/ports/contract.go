package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/domain"
)

const contractDocument = `{
  "name": "contract",
  "language": "en",
  "intents": [],
  "dialog_nodes": [
    {"dialog_node": "welcome", "conditions": "welcome", "output": {"text": "Hi <b>there</b>"}, "parent": null},
    {"dialog_node": "node_300_1", "conditions": "#Z.hours", "parent": null, "previous_sibling": "welcome", "context": {"count": 42}}
  ],
  "system_settings": {"tooling": {"store_generic_responses": true}}
}`

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore
// implementation adheres to the defined interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	key := "contract-" + time.Now().Format("20060102150405") + ".json"

	newDoc := func(t *testing.T) *domain.Workspace {
		ws, err := domain.ParseWorkspace([]byte(contractDocument))
		require.NoError(t, err)
		return ws
	}

	t.Run("Save and Load", func(t *testing.T) {
		ws := newDoc(t)
		require.NoError(t, store.Save(ctx, key, ws), "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "contract", loaded.Name)
		require.Len(t, loaded.DialogNodes, 2)
		assert.Equal(t, "welcome", loaded.DialogNodes[1].PreviousSibling)

		want, err := domain.EncodeBytes(ws)
		require.NoError(t, err)
		got, err := domain.EncodeBytes(loaded)
		require.NoError(t, err)
		assert.JSONEq(t, string(want), string(got), "documents must survive storage unchanged")
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		loaded.Name = "mutated"

		again, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "contract", again.Name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("List", func(t *testing.T) {
		other := "other-" + key
		require.NoError(t, store.Save(ctx, other, newDoc(t)))
		defer func() { _ = store.Delete(ctx, other) }()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, key)
		assert.Contains(t, keys, other)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, key), "Delete should not return error")

		_, err := store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")

		assert.NoError(t, store.Delete(ctx, key), "Deleting twice is not an error")
	})
}
