package domain

import (
	"fmt"
	"maps"
)

// Node is one dialog node of a workspace. The tree is encoded through the
// Parent and PreviousSibling back-pointers; an empty string stands for null.
type Node struct {
	ID              string
	Title           string
	Conditions      string
	Parent          string
	PreviousSibling string
	Output          *Output
	Context         map[string]any
	NextStep        *NextStep
	Type            string

	fields
}

// NextStep is an explicit control-flow jump out of a node.
type NextStep struct {
	DialogNode string
	Behavior   string
	Selector   string

	fields
}

// JumpTo builds a jump_to step.
func JumpTo(target, selector string) *NextStep {
	return &NextStep{DialogNode: target, Behavior: BehaviorJumpTo, Selector: selector}
}

// IsTopLevel reports whether the node has no parent.
func (n *Node) IsTopLevel() bool { return n.Parent == "" }

// IsHead reports whether the node starts its sibling chain.
func (n *Node) IsHead() bool { return n.PreviousSibling == "" }

// IsFolder reports whether the node is a folder, which carries no control flow.
func (n *Node) IsFolder() bool { return n.Type == TypeFolder }

// JumpTarget returns the next_step destination, if any.
func (n *Node) JumpTarget() string {
	if n.NextStep == nil {
		return ""
	}
	return n.NextStep.DialogNode
}

// Clone returns a deep copy of the node, including what the codec remembers
// about its source keys.
func (n *Node) Clone() *Node {
	c := *n
	c.fields = n.fields.clone()
	if n.Output != nil {
		c.Output = n.Output.Clone()
	}
	if n.Context != nil {
		c.Context = maps.Clone(n.Context)
	}
	if n.NextStep != nil {
		ns := *n.NextStep
		ns.fields = n.NextStep.fields.clone()
		c.NextStep = &ns
	}
	return &c
}

// UnmarshalJSON decodes a dialog node record.
func (n *Node) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	*n = Node{}
	reads := []struct {
		key string
		dst any
	}{
		{KeyDialogNode, &n.ID},
		{KeyTitle, &n.Title},
		{KeyConditions, &n.Conditions},
		{KeyParent, &n.Parent},
		{KeyPreviousSibling, &n.PreviousSibling},
		{KeyOutput, &n.Output},
		{KeyContext, &n.Context},
		{KeyNextStep, &n.NextStep},
		{KeyType, &n.Type},
	}
	for _, r := range reads {
		if err := n.read(raw, r.key, r.dst); err != nil {
			return fmt.Errorf("dialog node field %q: %w", r.key, err)
		}
	}
	n.keep(raw)
	return nil
}

// MarshalJSON encodes the node, leaving untouched keys as they were read.
func (n Node) MarshalJSON() ([]byte, error) {
	out := n.object()
	out[KeyDialogNode] = n.ID
	n.put(out, KeyTitle, n.Title, n.Title == "")
	n.put(out, KeyConditions, n.Conditions, n.Conditions == "")
	n.putRef(out, KeyParent, n.Parent)
	n.putRef(out, KeyPreviousSibling, n.PreviousSibling)
	n.put(out, KeyOutput, n.Output, n.Output == nil)
	n.put(out, KeyContext, n.Context, n.Context == nil)
	n.put(out, KeyNextStep, n.NextStep, n.NextStep == nil)
	n.put(out, KeyType, n.Type, n.Type == "")
	return marshal(out)
}

// UnmarshalJSON decodes a next_step record.
func (s *NextStep) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	*s = NextStep{}
	if err := s.read(raw, KeyDialogNode, &s.DialogNode); err != nil {
		return err
	}
	if err := s.read(raw, "behavior", &s.Behavior); err != nil {
		return err
	}
	if err := s.read(raw, "selector", &s.Selector); err != nil {
		return err
	}
	s.keep(raw)
	return nil
}

// MarshalJSON encodes the next_step record.
func (s NextStep) MarshalJSON() ([]byte, error) {
	out := s.object()
	s.putRef(out, KeyDialogNode, s.DialogNode)
	s.put(out, "behavior", s.Behavior, s.Behavior == "")
	s.put(out, "selector", s.Selector, s.Selector == "")
	return marshal(out)
}
