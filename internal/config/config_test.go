package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/internal/editor"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

const yamlConfig = `
workspace: workspace.json
output: out/workspace.json
collapseDialogByIntent: false
breakTag: "<br/>"
yesNoTag: " <yesno/>"
stitch:
  - topic: faq
    node: FAQ
topics:
  faq:
    file: faq.xlsx
    sheet: Sheet1
    answers: Answer
    intent: Intent
    nodeCode: 301
    fuzzyMatch: "true"
  other:
    document: nodes.json
`

func TestParse_YAMLDefaultsAndWeakTyping(t *testing.T) {
	cfg, err := Parse([]byte(yamlConfig), ".yaml")
	require.NoError(t, err)

	assert.False(t, cfg.CollapseDialogByIntent)
	assert.True(t, cfg.FormatHTML)
	assert.Equal(t, "irrelevant", cfg.SameIntentCondition)
	assert.Empty(t, cfg.YesCondition)
	assert.Empty(t, cfg.NoCondition)
	assert.Equal(t, DefaultLongAnswerQuestion, cfg.LongAnswerQuestion)
	assert.Equal(t, []Stitch{{Topic: "faq", Node: "FAQ"}}, cfg.Stitch)

	faq := cfg.Topics["faq"]
	assert.Equal(t, "301", faq.NodeCode)
	assert.True(t, faq.FuzzyMatch)
	assert.Equal(t, DefaultIntentPrefix, faq.IntentPrefix)
	assert.Equal(t, ".*", faq.FilterRegex)

	assert.Equal(t, DefaultNodeCode, cfg.Topics["other"].NodeCode)
}

func TestParse_JSON(t *testing.T) {
	cfg, err := Parse([]byte(`{"workspace":"ws.json","formatHTML":false,"intents":["faq"]}`), ".json")
	require.NoError(t, err)
	assert.Equal(t, "ws.json", cfg.Workspace)
	assert.False(t, cfg.FormatHTML)
	assert.Equal(t, []string{"faq"}, cfg.Intents)
}

func TestParse_DialogAssembly(t *testing.T) {
	cfg, err := Parse([]byte("dialogs: [faq, other]\nremoveWorkspaceId: true\n"), ".yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"faq", "other"}, cfg.Dialogs)
	assert.True(t, cfg.RemoveWorkspaceID)
	assert.Equal(t, DefaultGreeting, cfg.Greeting)

	cfg, err = Parse([]byte(`{"greeting": "Hi there"}`), ".json")
	require.NoError(t, err)
	assert.Equal(t, "Hi there", cfg.Greeting)
	assert.False(t, cfg.RemoveWorkspaceID)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("workspce: typo.json\n"), ".yml")
	assert.Error(t, err)
}

func TestLoad_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arbor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "workspace.json"), cfg.Workspace)
	assert.Equal(t, filepath.Join(dir, "faq.xlsx"), cfg.Topics["faq"].File)
	assert.Equal(t, filepath.Join(dir, "nodes.json"), cfg.Topics["other"].Document)
}

func TestTopic(t *testing.T) {
	cfg, err := Parse([]byte(yamlConfig), ".yaml")
	require.NoError(t, err)

	_, err = cfg.Topic("faq")
	assert.NoError(t, err)
	_, err = cfg.Topic("missing")
	assert.ErrorIs(t, err, domain.ErrTopicNotFound)
}

func TestEditorOptions(t *testing.T) {
	cfg := Default()
	cfg.ResponseToNo = "Anything else?"
	opts := cfg.EditorOptions()
	assert.Empty(t, opts.YesCondition)
	assert.Empty(t, opts.NoCondition)
	assert.Equal(t, "Anything else?", opts.ResponseToNo)

	cfg.YesCondition = "#C.Yes"
	assert.Equal(t, "#C.Yes", cfg.EditorOptions().YesCondition)
	assert.True(t, opts.Collapse)
	assert.NotNil(t, opts.IDs)
}

func TestEditorOptions_CollapseWithoutConfirmation(t *testing.T) {
	cfg, err := Parse([]byte(`{"workspace": "w.json"}`), ".json")
	require.NoError(t, err)
	opts := cfg.EditorOptions()
	opts.IDs = tree.SequenceIDs{Prefix: 9}

	s, err := tree.New([]*domain.Node{
		{ID: "root", Conditions: "welcome"},
		{ID: "a1", Parent: "root", Conditions: "#A && @x:one"},
		{ID: "a2", Parent: "root", PreviousSibling: "a1", Conditions: "#A && @x:two"},
	})
	require.NoError(t, err)

	created, err := editor.CollapseByIntent(s, []string{"a1"}, opts)
	require.NoError(t, err)
	require.Equal(t, []string{"node_9_0"}, created)

	var conds []string
	for _, id := range s.Children("node_9_0") {
		n, _ := s.Get(id)
		conds = append(conds, n.ID+" "+n.Conditions)
	}
	assert.Equal(t, []string{
		"node_9_1 irrelevant && @x",
		"node_9_2 true",
		`a1 @x:one || $x == "one"`,
		`a2 @x:two || $x == "two"`,
	}, conds)
}

func TestEditorOptions_UnconfiguredPairBreaksRun(t *testing.T) {
	opts := Default().EditorOptions()
	opts.IDs = tree.SequenceIDs{Prefix: 9}

	s, err := tree.New([]*domain.Node{
		{ID: "root", Conditions: "welcome"},
		{ID: "a1", Parent: "root", Conditions: "#A && @x:one"},
		{ID: "yes", Parent: "a1", Conditions: "#C.Yes"},
		{ID: "no", Parent: "a1", PreviousSibling: "yes", Conditions: "#C.No"},
		{ID: "a2", Parent: "root", PreviousSibling: "a1", Conditions: "#A && @x:two"},
	})
	require.NoError(t, err)

	created, err := editor.CollapseByIntent(s, []string{"a1"}, opts)
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.True(t, s.Has("yes"))
	assert.True(t, s.Has("no"))
}
