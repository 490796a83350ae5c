package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/domain"
)

func TestCollapse_DisjointKeysLeaveChainUnchanged(t *testing.T) {
	s := build(t,
		mk("root", "", "", "welcome"),
		mk("a", "root", "", "#A && @x:1"),
		mk("b", "root", "a", "#B"),
		mk("c", "root", "b", "#C && @y"),
	)
	before := snapshot(t, s)

	created, err := CollapseByIntent(s, []string{"a"}, testOptions())
	require.NoError(t, err)

	assert.Empty(t, created)
	assert.Equal(t, before, snapshot(t, s))
}

func TestCollapse_GroupsOnlyContiguousRuns(t *testing.T) {
	s := build(t,
		mk("root", "", "", "welcome"),
		mk("n1", "root", "", "#A && @x:one"),
		mk("n2", "root", "n1", "#A && @x:two"),
		mk("n3", "root", "n2", "#B"),
		mk("n4", "root", "n3", "#A"),
	)

	created, err := CollapseByIntent(s, []string{"n1"}, testOptions())
	require.NoError(t, err)
	require.Equal(t, []string{"node_9_0"}, created)

	assert.Equal(t, []string{"node_9_0", "n3", "n4"}, s.Children("root"))
	assert.Equal(t, []string{"node_9_1", "node_9_2", "n1", "n2"}, s.Children("node_9_0"))
	assert.True(t, VerifyStrict(s).OK(), VerifyStrict(s).Faults)

	mcr := get(t, s, "node_9_0")
	assert.Equal(t, "#A", mcr.Conditions)
	assert.Empty(t, mcr.Output.Responses())

	n1 := get(t, s, "n1")
	assert.Equal(t, `@x:one || $x == "one"`, n1.Conditions)
	assert.Equal(t, domain.TypeResponseCondition, n1.Type)
	assert.Equal(t, "@x", n1.Context["x"])

	priming := get(t, s, "node_9_1")
	assert.Equal(t, "irrelevant && @x", priming.Conditions)
	assert.Equal(t, map[string]any{"x": nil}, priming.Context)
	assert.Equal(t, "node_9_0", priming.JumpTarget())
	assert.Equal(t, domain.SelectorBody, priming.NextStep.Selector)

	fallback := get(t, s, "node_9_2")
	assert.Equal(t, domain.ConditionTrue, fallback.Conditions)
	assert.Equal(t, "root", fallback.JumpTarget())
	assert.Equal(t, domain.SelectorCondition, fallback.NextStep.Selector)

	assert.Equal(t, "#B", get(t, s, "n3").Conditions)
	assert.Equal(t, "#A", get(t, s, "n4").Conditions)
}

func TestCollapse_LongAnswerPair(t *testing.T) {
	n1 := mk("n1", "root", "", "#A && @x:one")
	n1.Output = domain.PlainText("short")
	yes := mk("yes", "n1", "", "#C.Yes")
	yes.Output = domain.PlainText("long text")
	s := build(t,
		mk("root", "", "", "welcome"),
		n1,
		yes,
		mk("no", "n1", "yes", "#C.No"),
		mk("n2", "root", "n1", "#A && @x:two && @y"),
	)
	opts := testOptions()
	opts.YesCondition = "#C.Yes"
	opts.NoCondition = "#C.No"

	_, err := CollapseByIntent(s, []string{"n1"}, opts)
	require.NoError(t, err)

	assert.False(t, s.Has("yes"))
	assert.False(t, s.Has("no"))
	assert.Equal(t, []string{"short", "long text"}, get(t, s, "n1").Output.Responses())

	kids := s.Children("node_9_0")
	require.Equal(t, []string{"node_9_1", "node_9_2", "node_9_3", "node_9_4", "n1", "n2"}, kids)
	assert.Equal(t, "irrelevant && (@x || @y)", get(t, s, "node_9_1").Conditions)
	assert.Equal(t, "#C.Yes", get(t, s, "node_9_2").Conditions)
	no := get(t, s, "node_9_3")
	assert.Equal(t, "#C.No", no.Conditions)
	assert.Equal(t, []string{DefaultResponseToNo}, no.Output.Responses())
	assert.Nil(t, no.NextStep)

	n2 := get(t, s, "n2")
	assert.Equal(t, `( @x:two && @y ) || ( $x == "two" && $y )`, n2.Conditions)
	assert.True(t, VerifyStrict(s).OK())
}

func TestCollapse_ChildrenForceRestart(t *testing.T) {
	s := build(t,
		mk("root", "", "", "welcome"),
		mk("n1", "root", "", "#A"),
		mk("n1c", "n1", "", "#other"),
		mk("n2", "root", "n1", "#A && @x"),
		mk("n3", "root", "n2", "#A && @y"),
	)

	created, err := CollapseByIntent(s, []string{"n1"}, testOptions())
	require.NoError(t, err)
	require.Len(t, created, 1)

	assert.Equal(t, "root", get(t, s, "n1").Parent)
	assert.Equal(t, created[0], get(t, s, "n2").Parent)
	assert.Equal(t, []string{"n1", created[0]}, s.Children("root"))
	assert.True(t, VerifyStrict(s).OK())
}

func TestCollapse_EmptyConditionDoesNotBreakRun(t *testing.T) {
	s := build(t,
		mk("root", "", "", "welcome"),
		mk("n1", "root", "", "#A && @x"),
		mk("gap", "root", "n1", ""),
		mk("n2", "root", "gap", "#A && @y"),
		mk("after", "root", "n2", "#B"),
	)

	created, err := CollapseByIntent(s, []string{"n1"}, testOptions())
	require.NoError(t, err)
	require.Len(t, created, 1)

	assert.Equal(t, []string{created[0], "gap", "after"}, s.Children("root"))
	assert.Equal(t, []string{"n1", "n2"}, s.Children(created[0])[2:])
	assert.True(t, VerifyStrict(s).OK())
}

func TestCollapse_RepointsJumpsAndMovesTitle(t *testing.T) {
	n1 := mk("n1", "", "root", "#A && @x")
	n1.Title = "Account"
	jumper := mk("jumper", "", "n2", "#C")
	jumper.NextStep = domain.JumpTo("n1", domain.SelectorCondition)
	s := build(t,
		mk("root", "", "", "welcome"),
		n1,
		mk("n2", "", "n1", "#A && @y"),
		jumper,
	)

	created, err := CollapseAll(s, testOptions())
	require.NoError(t, err)
	require.Len(t, created, 1)

	mcr := get(t, s, created[0])
	assert.Equal(t, "Account", mcr.Title)
	assert.Empty(t, get(t, s, "n1").Title)
	assert.Equal(t, mcr.ID, get(t, s, "jumper").JumpTarget())
	assert.Equal(t, []string{"root", mcr.ID, "jumper"}, s.Children(""))
}

func TestCollapse_IntentlessConditionBreaksRun(t *testing.T) {
	s := build(t,
		mk("root", "", "", "welcome"),
		mk("n1", "root", "", "#A"),
		mk("n2", "root", "n1", "$flag"),
		mk("n3", "root", "n2", "#A"),
	)
	before := snapshot(t, s)

	created, err := CollapseByIntent(s, []string{"n1"}, testOptions())
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Equal(t, before, snapshot(t, s))
}

func TestCollapse_IntentOnlyMemberMatchesAnything(t *testing.T) {
	s := build(t,
		mk("root", "", "", "welcome"),
		mk("n1", "root", "", "#A"),
		mk("n2", "root", "n1", "#A && @x"),
	)

	created, err := CollapseByIntent(s, []string{"n1"}, testOptions())
	require.NoError(t, err)
	require.Len(t, created, 1)

	n1 := get(t, s, "n1")
	assert.Equal(t, domain.ConditionTrue, n1.Conditions)
	assert.Equal(t, domain.TypeResponseCondition, n1.Type)
	assert.Nil(t, n1.Context)
	assert.Equal(t, "@x || $x", get(t, s, "n2").Conditions)
	assert.Equal(t, []string{"node_9_1", "node_9_2", "n1", "n2"}, s.Children(created[0]))
}
