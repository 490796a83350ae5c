package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
)

// DocumentStore persists workspace documents under string keys.
type DocumentStore interface {
	// Save writes the document under key, replacing any previous version.
	Save(ctx context.Context, key string, ws *domain.Workspace) error

	// Load reads the document under key.
	// Returns domain.ErrDocumentNotFound if there is none.
	Load(ctx context.Context, key string) (*domain.Workspace, error)

	// Delete removes the document under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the stored keys.
	List(ctx context.Context) ([]string, error)
}
