package tree

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/domain"
)

func node(id, parent, prev string) *domain.Node {
	return &domain.Node{ID: id, Parent: parent, PreviousSibling: prev}
}

// sample:
//
//	root -> a -> b
//	        a: a1 -> a2
func sample(t *testing.T) *Store {
	t.Helper()
	s, err := New([]*domain.Node{
		node("b", "", "a"),
		node("a2", "a", "a1"),
		node("root", "", ""),
		node("a", "", "root"),
		node("a1", "a", ""),
	})
	require.NoError(t, err)
	return s
}

func TestStore_ChildrenOf(t *testing.T) {
	s := sample(t)

	assert.Equal(t, []string{"root", "a", "b"}, s.Children(""))
	assert.Equal(t, []string{"a1", "a2"}, s.Children("a"))
	assert.Empty(t, s.Children("b"))

	seq := s.ChildrenOf("a")
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second, "sequence is restartable")
}

func TestStore_ChildrenOf_SeesMutations(t *testing.T) {
	s := sample(t)
	seq := s.ChildrenOf("a")

	require.NoError(t, s.Insert(node("a3", "a", "a2")))
	assert.Equal(t, []string{"a1", "a2", "a3"}, slices.Collect(seq))
}

func TestStore_ChildrenOf_StopsOnCycle(t *testing.T) {
	s, err := New([]*domain.Node{
		node("p", "", ""),
		node("x", "p", ""),
		node("y", "p", "z"),
		node("z", "p", "y"),
	})
	require.NoError(t, err)

	s.SetPreviousSibling("y", "x")
	s.SetPreviousSibling("x", "z")
	// x -> y -> z -> x, and no head.
	assert.Empty(t, s.Children("p"))
	assert.Equal(t, []string{"y", "z", "x"}, slices.Collect(s.Chain("y")))
}

func TestStore_Insert_Duplicate(t *testing.T) {
	s := sample(t)
	err := s.Insert(node("a", "", ""))
	assert.ErrorIs(t, err, domain.ErrDuplicateNodeID)
}

func TestStore_Root(t *testing.T) {
	s := sample(t)
	root, err := s.Root()
	require.NoError(t, err)
	assert.Equal(t, "root", root.ID)

	require.NoError(t, s.Insert(node("second", "", "")))
	_, err = s.Root()
	assert.ErrorIs(t, err, domain.ErrRootNotFound)

	empty, err := New(nil)
	require.NoError(t, err)
	_, err = empty.Root()
	assert.ErrorIs(t, err, domain.ErrRootNotFound)
}

func TestStore_RemoveAndDescendants(t *testing.T) {
	s := sample(t)
	assert.ElementsMatch(t, []string{"a1", "a2"}, s.Descendants("a"))
	assert.True(t, s.HasChildren("a"))

	assert.True(t, s.Remove("a1"))
	assert.False(t, s.Remove("a1"))
	assert.Equal(t, 4, s.Len())
	assert.Empty(t, s.Children("a"), "a2 lost its predecessor")
	assert.Equal(t, []string{"a2"}, s.ChildIDs("a"))
}

func TestStore_Resolve(t *testing.T) {
	s := sample(t)
	n, _ := s.Get("a")
	n.Title = "Alpha"
	s.Invalidate()

	got, err := s.Resolve("Alpha")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	got, err = s.Resolve("b")
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)

	_, err = s.Resolve("missing")
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
}

func TestStore_LastChildAndRename(t *testing.T) {
	s := sample(t)
	assert.Equal(t, "a2", s.LastChild("a"))
	assert.Equal(t, "", s.LastChild("b"))

	require.NoError(t, s.Rename("a2", "a9"))
	assert.Equal(t, []string{"b", "a9", "root", "a", "a1"}, s.IDs())
	assert.ErrorIs(t, s.Rename("a9", "a"), domain.ErrDuplicateNodeID)
}

func TestStore_CloneIsIndependent(t *testing.T) {
	s := sample(t)
	c := s.Clone()
	c.SetParent("b", "a")

	orig, _ := s.Get("b")
	assert.Equal(t, "", orig.Parent)
	assert.Equal(t, s.IDs(), c.IDs())
}

func TestIDs(t *testing.T) {
	used := map[string]bool{"node_7_0": true, "node_7_1": true}
	taken := func(id string) bool { return used[id] }

	assert.Equal(t, "node_7_2", SequenceIDs{Prefix: 7}.Next(taken))

	a := NewSeededIDs(42)
	b := NewSeededIDs(42)
	for range 5 {
		assert.Equal(t, a.Next(taken), b.Next(taken))
	}

	id := NewRandomIDs().Next(nil)
	assert.Regexp(t, `^node_\d{1,4}_0$`, id)
}
