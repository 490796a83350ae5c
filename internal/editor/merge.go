package editor

import (
	"fmt"
	"slices"

	"github.com/aretw0/arbor/pkg/domain"
)

// MergeTraining folds the intents, entities and counterexamples of source
// into the workspace. Intents with the same name union their examples,
// ignoring case; entities union their values and synonyms under the synonym
// length rule.
func MergeTraining(ws *domain.Workspace, source *domain.Workspace, opts Options) {
	MergeIntents(ws, source.Intents)
	MergeEntities(ws, source.Entities, opts)
	if source.Counterexamples != nil {
		ws.Counterexamples = domain.UnionExamples(ws.Counterexamples, source.Counterexamples)
	}
}

// MergeIntents unions intents into the workspace by name.
func MergeIntents(ws *domain.Workspace, intents []domain.Intent) {
	for _, in := range intents {
		if existing := ws.FindIntent(in.Name); existing != nil {
			existing.Absorb(in)
			continue
		}
		in.Examples = domain.UnionExamples(nil, in.Examples)
		ws.Intents = append(ws.Intents, in)
	}
}

// MergeEntities unions entities into the workspace by name.
func MergeEntities(ws *domain.Workspace, entities []domain.Entity, opts Options) {
	for _, en := range entities {
		if existing := ws.FindEntity(en.Name); existing != nil {
			existing.Absorb(en, opts.RejectSynonym)
			continue
		}
		en.Values = slices.Clone(en.Values)
		en.Sanitize(opts.RejectSynonym)
		ws.Entities = append(ws.Entities, en)
	}
}

// Merge combines source into doc. Source nodes whose id is already taken are
// renamed with the id generator and every reference inside the source is
// rewritten to match. The source root becomes the last top-level sibling of
// the target. The merged tree is verified; faults abort with
// ErrMergeIntegrity.
func Merge(doc *Document, source *domain.Workspace, opts Options) error {
	s := doc.Tree
	src, err := Open(source)
	if err != nil {
		return fmt.Errorf("merge: source: %w", err)
	}
	srcRoot, err := src.Tree.Root()
	if err != nil {
		return fmt.Errorf("merge: source: %w", err)
	}
	tail := s.LastChild("")

	ids := opts.ids()
	renames := make(map[string]string)
	assigned := make(map[string]bool)
	taken := func(id string) bool {
		return s.Has(id) || src.Tree.Has(id) || assigned[id]
	}
	for _, n := range src.Tree.Nodes() {
		if s.Has(n.ID) {
			id := ids.Next(taken)
			renames[n.ID] = id
			assigned[id] = true
		}
	}
	rename := func(id string) string {
		if r, ok := renames[id]; ok {
			return r
		}
		return id
	}

	for _, orig := range src.Tree.Nodes() {
		n := orig.Clone()
		n.ID = rename(n.ID)
		n.Parent = rename(n.Parent)
		n.PreviousSibling = rename(n.PreviousSibling)
		if n.NextStep != nil {
			n.NextStep.DialogNode = rename(n.NextStep.DialogNode)
		}
		if orig.ID == srcRoot.ID {
			n.PreviousSibling = tail
		}
		if err := s.Insert(n); err != nil {
			return fmt.Errorf("merge: %w", err)
		}
	}

	MergeTraining(doc.Workspace, source, opts)

	opts.logger().Info("merged workspace",
		"source", source.Name,
		"nodes", src.Tree.Len(),
		"renamed", len(renames),
	)

	if r := Verify(s); !r.OK() {
		return domain.NewFaultError("merge", domain.ErrMergeIntegrity, r.Faults)
	}
	return nil
}
