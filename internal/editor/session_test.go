package editor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/domain"
)

func sessionWorkspace() *domain.Workspace {
	return &domain.Workspace{
		Name: "ws",
		DialogNodes: []*domain.Node{
			mk("welcome", "", "", "welcome"),
			mk("topic", "", "welcome", "#topic"),
			mk("t1", "topic", "", "true"),
		},
	}
}

func encode(t *testing.T, ws *domain.Workspace) string {
	t.Helper()
	b, err := json.Marshal(ws)
	require.NoError(t, err)
	return string(b)
}

func TestSession_RollsBackOnFaults(t *testing.T) {
	var rejected *domain.OperationEvent
	opts := testOptions()
	opts.Hooks.OnRejected = func(e *domain.OperationEvent) { rejected = e }

	sess, err := NewSession(sessionWorkspace(), opts)
	require.NoError(t, err)
	before := encode(t, sess.Workspace())

	err = sess.Apply("break", func(d *Document) error {
		d.Tree.SetParent("t1", "ghost")
		return nil
	})
	require.ErrorIs(t, err, domain.ErrIntegrity)

	var fe *domain.FaultError
	require.ErrorAs(t, err, &fe)
	require.Len(t, fe.Faults, 1)
	assert.Equal(t, "t1", fe.Faults[0].NodeID)

	assert.Equal(t, before, encode(t, sess.Workspace()))
	assert.Equal(t, "topic", get(t, sess.Tree(), "t1").Parent)

	require.NotNil(t, rejected)
	assert.Equal(t, "break", rejected.Op)
	assert.Equal(t, sess.ID, rejected.SessionID)
}

func TestSession_RollsBackOnError(t *testing.T) {
	sess, err := NewSession(sessionWorkspace(), testOptions())
	require.NoError(t, err)
	before := encode(t, sess.Workspace())

	err = sess.ReplaceSubtree("nowhere", replacement())
	assert.ErrorIs(t, err, domain.ErrAttachmentPointNotFound)
	assert.Equal(t, before, encode(t, sess.Workspace()))
}

func TestSession_AppliesAndReports(t *testing.T) {
	var applied *domain.OperationEvent
	opts := testOptions()
	opts.Collapse = false
	opts.Hooks.OnApplied = func(e *domain.OperationEvent) { applied = e }

	sess, err := NewSession(sessionWorkspace(), opts)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	require.NoError(t, sess.ReplaceSubtree("topic", replacement()))

	ws := sess.Workspace()
	assert.Len(t, ws.DialogNodes, 6)
	require.NotNil(t, applied)
	assert.Equal(t, "replace-subtree", applied.Op)
	assert.Equal(t, []string{"node_300_1", "node_300_2", "node_300_3"}, applied.Diff.AddedNodes)
	assert.ElementsMatch(t, []string{"topic", "t1"}, applied.Diff.ModifiedNodes)
}

func TestSession_MergeAndCollapse(t *testing.T) {
	sess, err := NewSession(mergeTarget(), testOptions())
	require.NoError(t, err)

	require.NoError(t, sess.Merge(mergeSource()))
	assert.True(t, sess.Verify().OK())

	created, err := sess.CollapseAll()
	require.NoError(t, err)
	assert.Empty(t, created)

	removed, err := sess.Prune("node_9_0")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, removed)
}
