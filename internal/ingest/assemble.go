package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/pkg/domain"
)

// Ids and condition of the node opening an assembled dialog.
const (
	ConversationStartID        = "node_0"
	ConversationStartCondition = "conversation_start"
)

// ErrEmptyDialog is returned when a topic yields no dialog nodes to enter.
var ErrEmptyDialog = errors.New("topic has no dialog nodes")

// ConversationStart returns the node that greets the user.
func (b *Builder) ConversationStart() *domain.Node {
	return &domain.Node{
		ID:         ConversationStartID,
		Conditions: ConversationStartCondition,
		Output:     domain.PlainText(b.cfg.Greeting),
	}
}

// ConditionalNode returns the entry node of a topic, node_<code>_0. It
// matches when the top intent carries the topic's prefix and jumps to first.
func (b *Builder) ConditionalNode(t config.Topic, first string) (*domain.Node, error) {
	n := &domain.Node{
		ID:         NodeID(t.NodeCode, 0),
		Conditions: PrefixCondition(t.IntentPrefix),
		Output:     &domain.Output{},
		NextStep:   domain.JumpTo(first, domain.SelectorCondition),
	}
	if err := b.stampRecord(n.SetExtra); err != nil {
		return nil, fmt.Errorf("node %s: %w", n.ID, err)
	}
	return n, nil
}

// PrefixCondition matches the top intent against an intent name prefix.
func PrefixCondition(prefix string) string {
	return strconv.Quote(prefix) + " == intent[0].intent.substring(0," +
		strconv.Itoa(utf8.RuneCountInString(prefix)) + ")"
}

// Assemble builds a whole dialog from the named topics: the conversation
// start node, then one conditional node per topic chained after it, then the
// nodes of every topic below its conditional node.
func (b *Builder) Assemble(names []string) ([]*domain.Node, error) {
	nodes := []*domain.Node{b.ConversationStart()}
	var bodies []*domain.Node
	prev := ConversationStartID
	for _, name := range names {
		t, err := b.cfg.Topic(name)
		if err != nil {
			return nil, err
		}
		sub, err := b.Subtree(t)
		if err != nil {
			return nil, fmt.Errorf("topic %s: %w", name, err)
		}

		first := ""
		for _, n := range sub.Nodes {
			if n.Parent == "" {
				n.Parent = sub.RootID
			}
			if n.Parent == sub.RootID && n.PreviousSibling == "" && first == "" {
				first = n.ID
			}
		}
		if first == "" {
			return nil, fmt.Errorf("topic %s: %w", name, ErrEmptyDialog)
		}

		entry, err := b.ConditionalNode(t, first)
		if err != nil {
			return nil, fmt.Errorf("topic %s: %w", name, err)
		}
		entry.PreviousSibling = prev
		prev = entry.ID
		nodes = append(nodes, entry)
		bodies = append(bodies, sub.Nodes...)
		b.log.Info("assembled topic", "topic", name, "entry", entry.ID, "nodes", len(sub.Nodes))
	}
	return append(nodes, bodies...), nil
}
