// Package tree holds dialog nodes in an arena keyed by id and derives the
// parent and sibling-chain indices from their back-pointers.
package tree

import (
	"fmt"
	"iter"
	"slices"

	"github.com/aretw0/arbor/pkg/domain"
)

// Store is an arena of dialog nodes with lazily rebuilt adjacency indices.
//
// Structural fields (parent, previous_sibling) should be changed through
// SetParent and SetPreviousSibling so the indices are invalidated. Code that
// edits nodes directly must call Invalidate.
type Store struct {
	nodes map[string]*domain.Node
	order []string

	dirty    bool
	children map[string][]string
	next     map[link][]string
	titles   map[string]string
}

// link keys a sibling-chain step: the node under parent whose predecessor is prev.
type link struct {
	parent string
	prev   string
}

// New builds a store from nodes, keeping their order.
func New(nodes []*domain.Node) (*Store, error) {
	s := &Store{nodes: make(map[string]*domain.Node, len(nodes)), dirty: true}
	for _, n := range nodes {
		if err := s.Insert(n); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Len returns the number of nodes.
func (s *Store) Len() int { return len(s.order) }

// Has reports whether id is in the store.
func (s *Store) Has(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// Get returns the node with the given id.
func (s *Store) Get(id string) (*domain.Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// MustGet returns the node with the given id or an ErrNodeNotFound error.
func (s *Store) MustGet(id string) (*domain.Node, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrNodeNotFound, id)
	}
	return n, nil
}

// Nodes returns the nodes in arena order: load order, then insertion order.
func (s *Store) Nodes() []*domain.Node {
	out := make([]*domain.Node, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.nodes[id])
	}
	return out
}

// IDs returns the node ids in arena order.
func (s *Store) IDs() []string { return slices.Clone(s.order) }

// Insert appends a node to the arena.
func (s *Store) Insert(n *domain.Node) error {
	if _, ok := s.nodes[n.ID]; ok {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateNodeID, n.ID)
	}
	s.nodes[n.ID] = n
	s.order = append(s.order, n.ID)
	s.dirty = true
	return nil
}

// Remove deletes a node. References to it are left as they are.
func (s *Store) Remove(id string) bool {
	if _, ok := s.nodes[id]; !ok {
		return false
	}
	delete(s.nodes, id)
	s.order = slices.DeleteFunc(s.order, func(x string) bool { return x == id })
	s.dirty = true
	return true
}

// RemoveAll deletes every listed node in a single pass.
func (s *Store) RemoveAll(ids []string) int {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := s.nodes[id]; ok {
			drop[id] = true
			delete(s.nodes, id)
		}
	}
	if len(drop) == 0 {
		return 0
	}
	s.order = slices.DeleteFunc(s.order, func(x string) bool { return drop[x] })
	s.dirty = true
	return len(drop)
}

// Rename changes a node id in place, keeping its arena position. References
// to the old id are not rewritten.
func (s *Store) Rename(oldID, newID string) error {
	n, ok := s.nodes[oldID]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrNodeNotFound, oldID)
	}
	if _, taken := s.nodes[newID]; taken {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateNodeID, newID)
	}
	delete(s.nodes, oldID)
	n.ID = newID
	s.nodes[newID] = n
	s.order[slices.Index(s.order, oldID)] = newID
	s.dirty = true
	return nil
}

// SetParent updates a node's parent.
func (s *Store) SetParent(id, parent string) {
	if n, ok := s.nodes[id]; ok {
		n.Parent = parent
		s.dirty = true
	}
}

// SetPreviousSibling updates a node's previous sibling.
func (s *Store) SetPreviousSibling(id, prev string) {
	if n, ok := s.nodes[id]; ok {
		n.PreviousSibling = prev
		s.dirty = true
	}
}

// Invalidate marks the indices stale after direct edits to node fields.
func (s *Store) Invalidate() { s.dirty = true }

func (s *Store) reindex() {
	if !s.dirty {
		return
	}
	s.children = make(map[string][]string)
	s.next = make(map[link][]string)
	s.titles = make(map[string]string)
	for _, id := range s.order {
		n := s.nodes[id]
		s.children[n.Parent] = append(s.children[n.Parent], id)
		k := link{parent: n.Parent, prev: n.PreviousSibling}
		s.next[k] = append(s.next[k], id)
		if n.Title != "" {
			if _, seen := s.titles[n.Title]; !seen {
				s.titles[n.Title] = id
			}
		}
	}
	s.dirty = false
}

// ChildrenOf yields the children of parent in sibling order, walking the
// previous_sibling chain from the child with no predecessor. An empty parent
// selects the top level. The sequence can be ranged over more than once;
// each pass reads the indices as they are at that moment.
func (s *Store) ChildrenOf(parent string) iter.Seq[string] {
	return func(yield func(string) bool) {
		s.reindex()
		heads := s.next[link{parent: parent}]
		if len(heads) == 0 {
			return
		}
		s.walk(parent, heads[0], yield)
	}
}

// Chain yields the sibling chain starting at id, which need not be a head.
func (s *Store) Chain(id string) iter.Seq[string] {
	return func(yield func(string) bool) {
		n, ok := s.nodes[id]
		if !ok {
			return
		}
		s.reindex()
		s.walk(n.Parent, id, yield)
	}
}

func (s *Store) walk(parent, start string, yield func(string) bool) {
	seen := make(map[string]bool)
	for cur := start; cur != "" && !seen[cur]; {
		seen[cur] = true
		if !yield(cur) {
			return
		}
		following := s.next[link{parent: parent, prev: cur}]
		if len(following) == 0 {
			return
		}
		cur = following[0]
	}
}

// Children returns the children of parent in sibling order.
func (s *Store) Children(parent string) []string {
	return slices.Collect(s.ChildrenOf(parent))
}

// ChildIDs returns every node naming parent as its parent, in arena order,
// whether or not the sibling chain reaches it.
func (s *Store) ChildIDs(parent string) []string {
	s.reindex()
	return slices.Clone(s.children[parent])
}

// HasChildren reports whether any node names id as its parent.
func (s *Store) HasChildren(id string) bool {
	s.reindex()
	return len(s.children[id]) > 0
}

// Successors returns the nodes that name id as previous sibling under parent.
func (s *Store) Successors(parent, id string) []string {
	s.reindex()
	return slices.Clone(s.next[link{parent: parent, prev: id}])
}

// ReferrersOf returns the nodes whose previous_sibling is id, regardless of parent.
func (s *Store) ReferrersOf(id string) []string {
	var out []string
	for _, nid := range s.order {
		if s.nodes[nid].PreviousSibling == id {
			out = append(out, nid)
		}
	}
	return out
}

// LastChild returns the tail of parent's sibling chain, or "" if it has none.
func (s *Store) LastChild(parent string) string {
	last := ""
	for id := range s.ChildrenOf(parent) {
		last = id
	}
	return last
}

// Descendants returns every node below id, breadth first.
func (s *Store) Descendants(id string) []string {
	s.reindex()
	var out []string
	seen := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range s.children[cur] {
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
			queue = append(queue, c)
		}
	}
	return out
}

// Root returns the unique node with neither parent nor previous sibling.
func (s *Store) Root() (*domain.Node, error) {
	s.reindex()
	heads := s.next[link{}]
	switch len(heads) {
	case 0:
		return nil, fmt.Errorf("%w: no top-level head", domain.ErrRootNotFound)
	case 1:
		return s.nodes[heads[0]], nil
	default:
		return nil, fmt.Errorf("%w: %d top-level heads %v", domain.ErrRootNotFound, len(heads), heads)
	}
}

// Resolve finds a node by id, falling back to the first node with that title.
func (s *Store) Resolve(ref string) (*domain.Node, error) {
	if n, ok := s.nodes[ref]; ok {
		return n, nil
	}
	s.reindex()
	if id, ok := s.titles[ref]; ok {
		return s.nodes[id], nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrNodeNotFound, ref)
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	c := &Store{
		nodes: make(map[string]*domain.Node, len(s.nodes)),
		order: slices.Clone(s.order),
		dirty: true,
	}
	for id, n := range s.nodes {
		c.nodes[id] = n.Clone()
	}
	return c
}
