package editor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/domain"
)

func TestAddNodeTitles(t *testing.T) {
	var cleared domain.Node
	require.NoError(t, json.Unmarshal([]byte(`{
		"dialog_node": "cleared", "title": null, "parent": null, "previous_sibling": "faq"
	}`), &cleared))
	faq := mk("faq", "", "welcome", "#faq")
	faq.Title = "FAQ"
	s := build(t,
		mk("welcome", "", "", "welcome"),
		faq,
		&cleared,
		mk("node_300_1", "faq", "", "#Z.hours"),
	)

	titled := AddNodeTitles(s)

	assert.Equal(t, []string{"welcome"}, titled)
	assert.Equal(t, "welcome", get(t, s, "welcome").Title)
	assert.Equal(t, "FAQ", get(t, s, "faq").Title)
	assert.Empty(t, get(t, s, "cleared").Title)
	assert.Empty(t, get(t, s, "node_300_1").Title)

	n, err := s.Resolve("welcome")
	require.NoError(t, err)
	assert.Equal(t, "welcome", n.ID)
	assert.Empty(t, AddNodeTitles(s), "second pass finds nothing to title")
}

func TestSession_AddNodeTitles(t *testing.T) {
	sess, err := NewSession(sessionWorkspace(), testOptions())
	require.NoError(t, err)

	titled, err := sess.AddNodeTitles()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"welcome", "topic", "t1"}, titled)
	assert.Contains(t, encode(t, sess.Workspace()), `"title":"topic"`)
}

func TestSession_ReplaceDialog(t *testing.T) {
	sess, err := NewSession(sessionWorkspace(), testOptions())
	require.NoError(t, err)

	require.NoError(t, sess.ReplaceDialog([]*domain.Node{
		mk("node_0", "", "", "conversation_start"),
		mk("node_300_0", "", "node_0", "#Z"),
		mk("node_300_1", "node_300_0", "", "#Z.hours"),
	}))
	assert.Equal(t, []string{"node_0", "node_300_0"}, sess.Tree().Children(""))
	assert.False(t, sess.Tree().Has("welcome"))
	assert.Len(t, sess.Workspace().DialogNodes, 3)

	before := encode(t, sess.Workspace())
	err = sess.ReplaceDialog([]*domain.Node{
		mk("a", "", "", "welcome"),
		mk("b", "ghost", "", "#x"),
	})
	require.ErrorIs(t, err, domain.ErrIntegrity)
	assert.Equal(t, before, encode(t, sess.Workspace()))

	err = sess.ReplaceDialog([]*domain.Node{mk("a", "", "", ""), mk("a", "", "", "")})
	require.ErrorIs(t, err, domain.ErrDuplicateNodeID)
	assert.Equal(t, before, encode(t, sess.Workspace()))
}
