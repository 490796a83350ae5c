package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/internal/editor"
	"github.com/aretw0/arbor/pkg/adapters/sheet"
	"github.com/aretw0/arbor/pkg/domain"
)

// Fixed wordings of the generated yes/no children.
const (
	LongAnswerDecline = "Sure. Let’s talk about something else."
	FollowOnAccept    = "Okay. Let me look that up."
	FollowOnDecline   = "Okay. Let’s talk about something else."
	FollowOnAction    = "follow-on"
)

// Conditions of the generated yes/no children when the configuration names
// none.
const (
	DefaultYesCondition = "#C.Yes"
	DefaultNoCondition  = "#C.No"
)

// ErrNoConditionHeader is returned when a topic names neither an intent nor
// a conditions header.
var ErrNoConditionHeader = errors.New("topic has no intent or conditions header")

// NodeID names the i-th node of a topic. Index 0 is the topic's placeholder
// root.
func NodeID(code string, i int) string {
	return "node_" + code + "_" + strconv.Itoa(i)
}

// Subtree loads a topic's replacement dialog, from its node document when one
// is configured and from its table otherwise.
func (b *Builder) Subtree(t config.Topic) (editor.Subtree, error) {
	if t.Document != "" {
		return ReadDocument(t.Document, NodeID(t.NodeCode, 0))
	}
	tbl, err := LoadTable(t)
	if err != nil {
		return editor.Subtree{}, err
	}
	return b.Dialog(t, tbl)
}

// ReadDocument loads a JSON array of dialog nodes as a subtree under rootID.
func ReadDocument(path, rootID string) (editor.Subtree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return editor.Subtree{}, err
	}
	var nodes []*domain.Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return editor.Subtree{}, fmt.Errorf("%s: %w: %v", path, domain.ErrInvalidDocument, err)
	}
	return editor.Subtree{RootID: rootID, Nodes: nodes}, nil
}

type dialogBuild struct {
	*Builder
	topic  config.Topic
	nodes  []*domain.Node
	byRow  map[int]*domain.Node
	parent map[string]bool
}

// Dialog builds one node per distinct condition of the table, in first-seen
// order, with the answers of every row sharing it. Long answers and
// follow-on questions add yes/no children.
func (b *Builder) Dialog(t config.Topic, tbl *sheet.Table) (editor.Subtree, error) {
	d := &dialogBuild{
		Builder: b,
		topic:   t,
		byRow:   make(map[int]*domain.Node),
		parent:  make(map[string]bool),
	}
	root := NodeID(t.NodeCode, 0)

	conds, err := d.conditions(tbl)
	if err != nil {
		return editor.Subtree{}, err
	}
	answers, err := d.answers(tbl)
	if err != nil {
		return editor.Subtree{}, err
	}

	answered := make(map[string]bool)
	for row, cond := range conds {
		if answers[row] != "" {
			answered[cond] = true
		}
	}

	index := make(map[string]*domain.Node)
	for row, cond := range conds {
		if cond == "" {
			b.log.Warn("skipping row without condition", "row", row+2)
			continue
		}
		if !answered[cond] {
			b.log.Warn("skipping row without answer", "row", row+2, "condition", cond)
			continue
		}
		n, ok := index[cond]
		if !ok {
			prev := ""
			if len(d.nodes) > 0 {
				prev = d.nodes[len(d.nodes)-1].ID
			}
			n = &domain.Node{
				ID:              NodeID(t.NodeCode, len(d.nodes)+1),
				Conditions:      cond,
				Parent:          root,
				PreviousSibling: prev,
				Output:          domain.Variants(domain.SelectionSequential),
			}
			index[cond] = n
			d.nodes = append(d.nodes, n)
		}
		if a := answers[row]; a != "" {
			n.Output.Text.Values = append(n.Output.Text.Values, a)
		}
		d.byRow[row] = n
	}

	long, err := d.longAnswers(tbl)
	if err != nil {
		return editor.Subtree{}, err
	}
	if err := d.followOns(tbl, long); err != nil {
		return editor.Subtree{}, err
	}

	b.log.Info("built dialog", "nodes", len(d.nodes), "root", root)
	return editor.Subtree{RootID: root, Nodes: d.nodes}, nil
}

func (d *dialogBuild) conditions(tbl *sheet.Table) ([]string, error) {
	t := d.topic
	header := t.Intent
	if header == "" {
		header = t.Conditions
	}
	if header == "" {
		return nil, ErrNoConditionHeader
	}
	names, err := tbl.Values(header)
	if err != nil {
		return nil, err
	}

	var types, values []string
	if t.Intent != "" && t.EntityType != "" && t.EntityValue != "" {
		if types, err = tbl.Values(t.EntityType); err != nil {
			return nil, err
		}
		if values, err = tbl.Values(t.EntityValue); err != nil {
			return nil, err
		}
	}

	out := make([]string, len(names))
	for i, name := range names {
		name = StringToCondition(name)
		if name == "" {
			continue
		}
		cond := "#" + t.IntentPrefix + name
		if types != nil {
			terms, err := EntityCondition(types[i], values[i])
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+2, err)
			}
			cond += terms
		}
		out[i] = cond
	}
	return out, nil
}

func (d *dialogBuild) answers(tbl *sheet.Table) ([]string, error) {
	values, err := tbl.Values(d.topic.Answers)
	if err != nil {
		return nil, err
	}
	var emotions []string
	if d.topic.Emotion != "" {
		if emotions, err = tbl.Values(d.topic.Emotion); err != nil {
			return nil, err
		}
	}
	out := make([]string, len(values))
	for i, v := range values {
		if v == "" {
			continue
		}
		if emotions != nil && emotions[i] != "" {
			v = GestureTag(emotions[i]) + v
		}
		out[i] = FormatAnswer(v, d.cfg.FormatHTML)
	}
	return out, nil
}

func (d *dialogBuild) yesCondition() string {
	if d.cfg.YesCondition != "" {
		return d.cfg.YesCondition
	}
	return DefaultYesCondition
}

func (d *dialogBuild) noCondition() string {
	if d.cfg.NoCondition != "" {
		return d.cfg.NoCondition
	}
	return DefaultNoCondition
}

// addPair appends a yes child and a no child under parent.
func (d *dialogBuild) addPair(parent *domain.Node, yes, no *domain.Node) error {
	next := len(d.nodes)
	yes.ID = NodeID(d.topic.NodeCode, next+1)
	yes.Parent = parent.ID
	yes.Conditions = d.yesCondition()
	no.ID = NodeID(d.topic.NodeCode, next+2)
	no.Parent = parent.ID
	no.PreviousSibling = yes.ID
	no.Conditions = d.noCondition()
	for _, n := range []*domain.Node{yes, no} {
		if err := d.stampRecord(n.SetExtra); err != nil {
			return fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	d.nodes = append(d.nodes, yes, no)
	d.parent[parent.ID] = true
	return nil
}

// longAnswers returns the rows that received a long answer.
func (d *dialogBuild) longAnswers(tbl *sheet.Table) ([]int, error) {
	t := d.topic
	if t.LongAnswer == "" {
		return nil, nil
	}
	rows, err := tbl.Matching(t.LongAnswer, t.LongAnswerFilter)
	if err != nil {
		return nil, err
	}
	texts, _ := tbl.Values(t.LongAnswer)

	for _, row := range rows {
		n, ok := d.byRow[row]
		if !ok {
			continue
		}
		if d.parent[n.ID] {
			d.log.Warn("node already has a long answer", "node", n.ID, "row", row+2)
			continue
		}
		long := FormatAnswer(texts[row], d.cfg.FormatHTML)
		values := n.Output.Text.Values
		for i, v := range values {
			values[i] = v + d.cfg.LongAnswerQuestion + d.cfg.YesNoTag
		}
		if len(values) == 1 {
			n.Output.Text.Values = append(values, long)
		}
		if err := d.addPair(n, &domain.Node{Output: domain.PlainText(long)}, &domain.Node{Output: domain.PlainText(LongAnswerDecline)}); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

func (d *dialogBuild) followOns(tbl *sheet.Table, skip []int) error {
	t := d.topic
	if t.FollowOnIntent == "" || t.FollowOnWording == "" {
		return nil
	}
	rows, err := tbl.Matching(t.FollowOnIntent, t.FollowOnFilter)
	if err != nil {
		return err
	}
	intents, _ := tbl.Values(t.FollowOnIntent)
	wordings, err := tbl.Values(t.FollowOnWording)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if slices.Contains(skip, row) {
			continue
		}
		n, ok := d.byRow[row]
		if !ok {
			continue
		}
		if d.parent[n.ID] {
			d.log.Warn("node already has a follow-on question", "node", n.ID, "row", row+2)
			continue
		}
		first := ""
		if v := n.Output.Text.Values; len(v) > 0 {
			first = v[0]
		}
		n.Output.Text.Values = []string{first + d.cfg.BreakTag + wordings[row] + d.cfg.YesNoTag}

		accept := &domain.Node{
			Output:  domain.PlainText(FollowOnAccept),
			Context: map[string]any{"user_meant": intents[row]},
		}
		if err := accept.Output.SetExtra("action", FollowOnAction); err != nil {
			return fmt.Errorf("row %d: %w", row+2, err)
		}
		if err := d.addPair(n, accept, &domain.Node{Output: domain.PlainText(FollowOnDecline)}); err != nil {
			return err
		}
	}
	return nil
}
