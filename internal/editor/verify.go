package editor

import (
	"fmt"
	"slices"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

// Report is the result of a verification pass.
type Report struct {
	Faults []domain.Fault `json:"faults"`
}

// OK reports whether no faults were found.
func (r Report) OK() bool { return len(r.Faults) == 0 }

// Verify checks that every parent and previous_sibling reference resolves.
// Each unresolved reference yields one dangling reference fault. The store is
// not modified.
func Verify(s *tree.Store) Report {
	var r Report
	for _, n := range s.Nodes() {
		if n.Parent != "" && !s.Has(n.Parent) {
			r.Faults = append(r.Faults, domain.DanglingReference(n.ID, domain.KeyParent, n.Parent))
		}
		if n.PreviousSibling != "" && !s.Has(n.PreviousSibling) {
			r.Faults = append(r.Faults, domain.DanglingReference(n.ID, domain.KeyPreviousSibling, n.PreviousSibling))
		}
	}
	return r
}

// VerifyStrict runs Verify and additionally checks next_step targets, the
// unique root and the shape of every sibling chain.
func VerifyStrict(s *tree.Store) Report {
	r := Verify(s)

	for _, n := range s.Nodes() {
		if t := n.JumpTarget(); t != "" && !s.Has(t) {
			r.Faults = append(r.Faults, domain.DanglingReference(n.ID, domain.KeyNextStep, t))
		}
	}

	if _, err := s.Root(); err != nil {
		r.Faults = append(r.Faults, domain.Fault{Kind: domain.FaultRootNotFound, Detail: err.Error()})
	}

	parents := []string{""}
	seen := map[string]bool{"": true}
	for _, n := range s.Nodes() {
		if n.Parent != "" && !seen[n.Parent] && s.Has(n.Parent) {
			seen[n.Parent] = true
			parents = append(parents, n.Parent)
		}
	}
	for _, p := range parents {
		r.Faults = append(r.Faults, chainFaults(s, p)...)
	}
	return r
}

func chainFaults(s *tree.Store, parent string) []domain.Fault {
	members := s.ChildIDs(parent)
	if len(members) == 0 {
		return nil
	}
	var faults []domain.Fault
	broken := func(id, detail string) {
		faults = append(faults, domain.Fault{Kind: domain.FaultBrokenChain, NodeID: id, Field: domain.KeyPreviousSibling, Detail: detail})
	}

	var heads []string
	for _, id := range members {
		n, _ := s.Get(id)
		if n.PreviousSibling == "" {
			heads = append(heads, id)
			continue
		}
		if prev, ok := s.Get(n.PreviousSibling); ok && prev.Parent != parent {
			broken(id, fmt.Sprintf("previous sibling %q has parent %q", prev.ID, prev.Parent))
		}
		if succ := s.Successors(parent, n.PreviousSibling); len(succ) > 1 && succ[0] != id {
			broken(id, fmt.Sprintf("shares previous sibling %q with %q", n.PreviousSibling, succ[0]))
		}
	}

	// Top-level heads are the root check's concern.
	if parent != "" && len(heads) != 1 {
		broken(parent, fmt.Sprintf("children of %q have %d chain heads", parent, len(heads)))
	}

	reached := slices.Collect(s.ChildrenOf(parent))
	for _, id := range members {
		if !slices.Contains(reached, id) {
			broken(id, "not reachable from the chain head")
		}
	}
	return faults
}
