package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	old, err := ParseWorkspace(loadFixture(t))
	require.NoError(t, err)
	cur, err := old.Clone()
	require.NoError(t, err)

	assert.True(t, Diff(old, cur).IsEmpty())

	cur.DialogNodes[1].Conditions = "#Z.other"
	cur.DialogNodes = append(cur.DialogNodes[:2], cur.DialogNodes[3:]...)
	cur.DialogNodes = append(cur.DialogNodes, &Node{ID: "new"})

	d := Diff(old, cur)
	assert.Equal(t, []string{"new"}, d.AddedNodes)
	assert.Equal(t, []string{"node_300_1"}, d.RemovedNodes)
	assert.Equal(t, []string{"node_300_0"}, d.ModifiedNodes)
	assert.False(t, d.IsEmpty())
}

func TestDiff_InitialLoad(t *testing.T) {
	ws := &Workspace{DialogNodes: []*Node{{ID: "a"}, {ID: "b"}}}
	d := Diff(nil, ws)
	assert.Equal(t, []string{"a", "b"}, d.AddedNodes)
	assert.Nil(t, Diff(nil, nil))
}

func TestEditorHooks_Chain(t *testing.T) {
	var calls []string
	h := EditorHooks{OnCluster: func(*ClusterEvent) { calls = append(calls, "first") }}
	h = h.Chain(EditorHooks{OnCluster: func(*ClusterEvent) { calls = append(calls, "second") }})

	h.OnCluster(&ClusterEvent{})
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Nil(t, h.OnApplied)
}
