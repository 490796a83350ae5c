package editor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

func mk(id, parent, prev, cond string) *domain.Node {
	return &domain.Node{ID: id, Parent: parent, PreviousSibling: prev, Conditions: cond}
}

func build(t *testing.T, nodes ...*domain.Node) *tree.Store {
	t.Helper()
	s, err := tree.New(nodes)
	require.NoError(t, err)
	return s
}

func testOptions() Options {
	o := DefaultOptions()
	o.IDs = tree.SequenceIDs{Prefix: 9}
	return o
}

func get(t *testing.T, s *tree.Store, id string) *domain.Node {
	t.Helper()
	n, ok := s.Get(id)
	require.True(t, ok, "node %q not in store", id)
	return n
}

func snapshot(t *testing.T, s *tree.Store) string {
	t.Helper()
	b, err := json.Marshal(s.Nodes())
	require.NoError(t, err)
	return string(b)
}
