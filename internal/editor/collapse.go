package editor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

// CollapseAll collapses every sibling chain of the store.
func CollapseAll(s *tree.Store, opts Options) ([]string, error) {
	var heads []string
	for _, n := range s.Nodes() {
		if n.IsHead() {
			heads = append(heads, n.ID)
		}
	}
	return CollapseByIntent(s, heads, opts)
}

// CollapseByIntent scans the sibling chain of every candidate that is a chain
// head and replaces each run of two or more consecutive same-intent siblings
// with an MCR cluster. It returns the ids of the MCR parents it created.
func CollapseByIntent(s *tree.Store, candidates []string, opts Options) ([]string, error) {
	c := &collapser{store: s, opts: opts, ids: opts.ids()}
	for _, id := range candidates {
		n, ok := s.Get(id)
		if !ok || !n.IsHead() {
			continue
		}
		if err := c.scan(slices.Collect(s.Chain(id))); err != nil {
			return c.created, err
		}
	}
	return c.created, nil
}

type collapser struct {
	store   *tree.Store
	opts    Options
	ids     tree.IDGenerator
	created []string
}

// run is a group of siblings sharing an intent. skipped holds the nodes with
// an empty condition found between members.
type run struct {
	intent  string
	members []string
	skipped []string
}

func (c *collapser) scan(chain []string) error {
	var (
		cur     run
		pending []string
	)
	flush := func() error {
		r := cur
		cur, pending = run{}, nil
		if len(r.members) < 2 {
			return nil
		}
		return c.collapse(r)
	}

	for _, id := range chain {
		n, ok := c.store.Get(id)
		if !ok {
			continue
		}
		if n.Conditions == "" {
			if len(cur.members) > 0 {
				pending = append(pending, id)
			}
			continue
		}
		intent := domain.IntentTerm(n.Conditions)
		if intent == "" {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		if intent != cur.intent {
			if err := flush(); err != nil {
				return err
			}
			cur.intent = intent
		}
		if c.store.HasChildren(id) && !c.longAnswerPair(id) {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		cur.skipped = append(cur.skipped, pending...)
		pending = nil
		cur.members = append(cur.members, id)
	}
	return flush()
}

// longAnswerPair reports whether id's children are exactly one yes and one
// no confirmation node.
func (c *collapser) longAnswerPair(id string) bool {
	if c.opts.YesCondition == "" || c.opts.NoCondition == "" {
		return false
	}
	kids := c.store.ChildIDs(id)
	if len(kids) != 2 {
		return false
	}
	var yes, no int
	for _, k := range kids {
		n, _ := c.store.Get(k)
		switch n.Conditions {
		case c.opts.YesCondition:
			yes++
		case c.opts.NoCondition:
			no++
		}
	}
	return yes == 1 && no == 1
}

func (c *collapser) newID() string {
	return c.ids.Next(c.store.Has)
}

func (c *collapser) collapse(r run) error {
	s := c.store
	first, _ := s.Get(r.members[0])
	tail := r.members[len(r.members)-1]
	parent := first.Parent

	followers := s.Successors(parent, tail)

	root, err := s.Root()
	if err != nil {
		return fmt.Errorf("collapse %s: %w", r.intent, err)
	}
	rootID := root.ID

	mcr := first.Clone()
	mcr.ID = c.newID()
	mcr.Conditions = r.intent
	mcr.Output = &domain.Output{}
	if err := s.Insert(mcr); err != nil {
		return err
	}
	first.Title = ""
	first.Forget(domain.KeyTitle)
	s.Invalidate()
	if rootID == first.ID {
		rootID = mcr.ID
	}

	for _, n := range s.Nodes() {
		if n.NextStep != nil && n.NextStep.DialogNode == first.ID && n.ID != mcr.ID {
			n.NextStep.DialogNode = mcr.ID
		}
	}

	// Skipped nodes stay in the outer chain, right after the MCR parent.
	last := mcr.ID
	for _, id := range r.skipped {
		s.SetPreviousSibling(id, last)
		last = id
	}
	for _, f := range followers {
		s.SetPreviousSibling(f, last)
	}

	var entities []string
	for _, id := range r.members {
		for _, ref := range c.rewriteMember(id, r.intent, mcr.ID) {
			if !slices.Contains(entities, ref) {
				entities = append(entities, ref)
			}
		}
	}

	lastGenerated, err := c.generateChildren(mcr.ID, rootID, entities)
	if err != nil {
		return err
	}

	prev := lastGenerated
	for _, id := range r.members {
		s.SetPreviousSibling(id, prev)
		prev = id
	}

	c.created = append(c.created, mcr.ID)
	c.opts.logger().Debug("collapsed siblings",
		"intent", r.intent,
		"parent", mcr.ID,
		"members", len(r.members),
	)
	if c.opts.Hooks.OnCluster != nil {
		c.opts.Hooks.OnCluster(&domain.ClusterEvent{
			EventBase: domain.EventBase{Timestamp: now(), Type: domain.EventClusterCreated},
			ParentID:  mcr.ID,
			Intent:    r.intent,
			Members:   slices.Clone(r.members),
		})
	}
	return nil
}

// rewriteMember turns a run member into a response condition of the MCR
// parent and returns the entity references of its new condition.
func (c *collapser) rewriteMember(id, intent, mcrID string) []string {
	s := c.store
	n, _ := s.Get(id)

	terms := domain.SplitConditions(n.Conditions)
	if i := slices.Index(terms, intent); i >= 0 {
		terms = slices.Delete(terms, i, i+1)
	}

	var contextTerms []string
	for _, p := range domain.EntityPredicates(terms) {
		if n.Context == nil {
			n.Context = make(map[string]any)
		}
		n.Context[p.Entity] = "@" + p.Entity
		if p.Valued {
			contextTerms = append(contextTerms, "$"+p.Entity+` == "`+p.Value+`"`)
		} else {
			contextTerms = append(contextTerms, "$"+p.Entity)
		}
	}

	cond := domain.JoinAll(terms, domain.ConditionSeparator)
	if ctx := domain.JoinAll(contextTerms, domain.ConditionSeparator); cond != "" && ctx != "" {
		cond += " || " + ctx
	}
	// A member left with no terms once the intent is removed matches any
	// input under the MCR parent.
	if cond == "" {
		cond = domain.ConditionTrue
	}
	n.Conditions = cond
	n.Type = domain.TypeResponseCondition
	s.SetParent(id, mcrID)

	c.foldLongAnswer(n)
	return domain.EntityRefs(cond)
}

// foldLongAnswer removes the yes/no children of n and appends the yes
// branch's text to n's responses.
func (c *collapser) foldLongAnswer(n *domain.Node) {
	s := c.store
	kids := s.ChildIDs(n.ID)
	if len(kids) == 0 {
		return
	}
	var drop []string
	for _, k := range kids {
		child, _ := s.Get(k)
		if text := child.Output.FirstResponse(); child.Conditions == c.opts.YesCondition && text != "" {
			if n.Output == nil {
				n.Output = &domain.Output{}
			}
			n.Output.AppendResponse(text)
		}
		drop = append(drop, k)
		drop = append(drop, s.Descendants(k)...)
	}
	s.RemoveAll(drop)
}

// generateChildren adds the control children of an MCR parent and returns
// the id of the last one.
func (c *collapser) generateChildren(mcrID, rootID string, entities []string) (string, error) {
	s := c.store

	clearCtx := func() map[string]any {
		m := make(map[string]any, len(entities))
		for _, ref := range entities {
			m[domain.EntityName(ref)] = nil
		}
		return m
	}

	priming := c.opts.sameIntent()
	if len(entities) > 0 {
		alt := strings.Join(entities, " || ")
		if len(entities) > 1 {
			alt = "(" + alt + ")"
		}
		priming += domain.ConditionSeparator + alt
	}

	children := []*domain.Node{{
		Conditions: priming,
		Context:    clearCtx(),
		Output:     &domain.Output{},
		NextStep:   domain.JumpTo(mcrID, domain.SelectorBody),
	}}
	if c.opts.YesCondition != "" {
		children = append(children, &domain.Node{
			Conditions: c.opts.YesCondition,
			Output:     &domain.Output{},
			NextStep:   domain.JumpTo(mcrID, domain.SelectorBody),
		})
		if c.opts.NoCondition != "" {
			children = append(children, &domain.Node{
				Conditions: c.opts.NoCondition,
				Context:    clearCtx(),
				Output:     domain.Variants(domain.SelectionSequential, c.opts.responseToNo()),
			})
		}
	}
	children = append(children, &domain.Node{
		Conditions: domain.ConditionTrue,
		Context:    clearCtx(),
		Output:     &domain.Output{},
		NextStep:   domain.JumpTo(rootID, domain.SelectorCondition),
	})

	prev := ""
	for _, child := range children {
		child.ID = c.newID()
		child.Parent = mcrID
		child.PreviousSibling = prev
		if err := s.Insert(child); err != nil {
			return "", err
		}
		prev = child.ID
	}
	return prev, nil
}
