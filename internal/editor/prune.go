package editor

import (
	"fmt"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

// Prune removes every descendant of the given roots. Roots are named by id or
// title and are themselves kept. A direct child of a root whose condition is
// the always-true literal is kept along with its own subtree, since it is the
// root's fallback branch. Sibling chains broken by the removal are not
// repaired. Prune returns the removed ids in arena order.
func Prune(s *tree.Store, roots ...string) ([]string, error) {
	rootSet := make(map[string]bool, len(roots))
	for _, ref := range roots {
		n, err := s.Resolve(ref)
		if err != nil {
			return nil, fmt.Errorf("prune: %w", err)
		}
		rootSet[n.ID] = true
	}

	gone := make(map[string]bool)
	expands := func(id string) bool { return rootSet[id] || gone[id] }

	nodes := s.Nodes()
	for changed := true; changed; {
		changed = false
		for _, n := range nodes {
			if gone[n.ID] || !expands(n.Parent) {
				continue
			}
			if rootSet[n.Parent] && n.Conditions == domain.ConditionTrue {
				continue
			}
			gone[n.ID] = true
			changed = true
		}
	}

	var removed []string
	for _, n := range nodes {
		if gone[n.ID] {
			removed = append(removed, n.ID)
		}
	}
	s.RemoveAll(removed)
	return removed, nil
}
