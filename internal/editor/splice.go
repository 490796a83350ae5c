package editor

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

// Subtree is a replacement built outside the store. Its top-level nodes are
// those whose parent is RootID or empty; RootID itself is a placeholder and
// is never inserted.
type Subtree struct {
	RootID string
	Nodes  []*domain.Node
}

// Splice attaches sub under the node named by attachment (an id or a title).
// The attachment jumps to the replacement's first child, and existing
// children of the attachment follow its last child. When opts.Collapse is
// set, the appended nodes are collapsed by intent afterwards.
func Splice(s *tree.Store, attachment string, sub Subtree, opts Options) error {
	target, err := s.Resolve(attachment)
	if err != nil {
		return fmt.Errorf("%w: %q", domain.ErrAttachmentPointNotFound, attachment)
	}

	nodes := make([]*domain.Node, 0, len(sub.Nodes))
	for _, n := range sub.Nodes {
		if sub.RootID != "" && n.ID == sub.RootID {
			continue
		}
		if s.Has(n.ID) {
			return fmt.Errorf("splice at %q: %w: %q", target.ID, domain.ErrDuplicateNodeID, n.ID)
		}
		nodes = append(nodes, n.Clone())
	}

	var top []*domain.Node
	for _, n := range nodes {
		if n.Parent == "" || n.Parent == sub.RootID {
			n.Parent = target.ID
			top = append(top, n)
		}
	}
	first, last, err := chainEnds(top)
	if err != nil {
		return fmt.Errorf("splice at %q: %w", target.ID, err)
	}

	if !target.IsFolder() {
		target.Forget(domain.KeyGoTo)
		if target.NextStep == nil {
			target.NextStep = domain.JumpTo(first, domain.SelectorCondition)
		}
		target.NextStep.DialogNode = first
		if target.NextStep.Behavior == "" {
			target.NextStep.Behavior = domain.BehaviorJumpTo
		}
	}

	// The heads of what is left under the attachment now follow the new subtree.
	for _, id := range s.ChildIDs(target.ID) {
		n, _ := s.Get(id)
		if n.PreviousSibling == "" || !s.Has(n.PreviousSibling) {
			s.SetPreviousSibling(id, last)
		}
	}

	appended := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if err := s.Insert(n); err != nil {
			return err
		}
		appended = append(appended, n.ID)
	}

	opts.logger().Info("spliced subtree",
		"attachment", target.ID,
		"nodes", len(appended),
		"first", first,
		"last", last,
	)

	if !opts.Collapse {
		return nil
	}
	_, err = CollapseByIntent(s, appended, opts)
	return err
}

// chainEnds finds the unique head and the unique tail of a sibling list.
func chainEnds(top []*domain.Node) (first, last string, err error) {
	named := make(map[string]bool, len(top))
	var heads []string
	for _, n := range top {
		if n.PreviousSibling == "" {
			heads = append(heads, n.ID)
		} else {
			named[n.PreviousSibling] = true
		}
	}
	var tails []string
	for _, n := range top {
		if !named[n.ID] {
			tails = append(tails, n.ID)
		}
	}
	if len(heads) != 1 {
		return "", "", fmt.Errorf("%w: %d first children", domain.ErrAmbiguousChildOrder, len(heads))
	}
	if len(tails) != 1 {
		return "", "", fmt.Errorf("%w: %d last children", domain.ErrAmbiguousChildOrder, len(tails))
	}

	// Every node must be reachable from the head, otherwise the rest loop
	// among themselves.
	next := make(map[string]string, len(top))
	for _, n := range top {
		if n.PreviousSibling != "" {
			next[n.PreviousSibling] = n.ID
		}
	}
	seen := make(map[string]bool, len(top))
	for id := heads[0]; id != "" && !seen[id]; id = next[id] {
		seen[id] = true
	}
	if len(seen) != len(top) {
		return "", "", fmt.Errorf("%w: %d of %d children form a cycle",
			domain.ErrAmbiguousChildOrder, len(top)-len(seen), len(top))
	}
	return heads[0], tails[0], nil
}

// ReplaceSubtree resolves the attachment, prunes everything below it except
// its fallback branch, and splices sub in its place.
func ReplaceSubtree(s *tree.Store, attachment string, sub Subtree, opts Options) error {
	target, err := s.Resolve(attachment)
	if err != nil {
		return fmt.Errorf("%w: %q", domain.ErrAttachmentPointNotFound, attachment)
	}
	removed, err := Prune(s, target.ID)
	if err != nil {
		return err
	}
	opts.logger().Debug("pruned subtree", "attachment", target.ID, "removed", len(removed))
	return Splice(s, target.ID, sub, opts)
}
