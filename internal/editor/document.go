package editor

import (
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

var now = time.Now

// Document pairs a workspace with the store that owns its dialog nodes while
// it is being edited. Workspace.DialogNodes is stale until Commit.
type Document struct {
	Workspace *domain.Workspace
	Tree      *tree.Store
}

// Open builds the tree store for a workspace.
func Open(ws *domain.Workspace) (*Document, error) {
	s, err := tree.New(ws.DialogNodes)
	if err != nil {
		return nil, err
	}
	return &Document{Workspace: ws, Tree: s}, nil
}

// Commit writes the store's nodes back into the workspace, in arena order.
func (d *Document) Commit() *domain.Workspace {
	nodes := d.Tree.Nodes()
	if d.Workspace.DialogNodes == nil && len(nodes) == 0 {
		return d.Workspace
	}
	d.Workspace.DialogNodes = nodes
	return d.Workspace
}
