package domain

import (
	"bytes"
	"encoding/json"
)

// WorkspaceDiff summarises what an operation changed in the dialog tree and
// the training data. Node lists are in document order.
type WorkspaceDiff struct {
	AddedNodes    []string `json:"added_nodes,omitempty"`
	RemovedNodes  []string `json:"removed_nodes,omitempty"`
	ModifiedNodes []string `json:"modified_nodes,omitempty"`

	IntentsBefore  int `json:"intents_before"`
	IntentsAfter   int `json:"intents_after"`
	EntitiesBefore int `json:"entities_before"`
	EntitiesAfter  int `json:"entities_after"`
}

// Diff calculates the difference between oldWS and newWS.
// If oldWS is nil, every node of newWS counts as added.
func Diff(oldWS, newWS *Workspace) *WorkspaceDiff {
	if newWS == nil {
		return nil
	}
	d := &WorkspaceDiff{
		IntentsAfter:  len(newWS.Intents),
		EntitiesAfter: len(newWS.Entities),
	}
	var before map[string]*Node
	if oldWS != nil {
		d.IntentsBefore = len(oldWS.Intents)
		d.EntitiesBefore = len(oldWS.Entities)
		before = make(map[string]*Node, len(oldWS.DialogNodes))
		for _, n := range oldWS.DialogNodes {
			before[n.ID] = n
		}
	}

	after := make(map[string]bool, len(newWS.DialogNodes))
	for _, n := range newWS.DialogNodes {
		after[n.ID] = true
		prev, ok := before[n.ID]
		switch {
		case !ok:
			d.AddedNodes = append(d.AddedNodes, n.ID)
		case !sameNode(prev, n):
			d.ModifiedNodes = append(d.ModifiedNodes, n.ID)
		}
	}
	if oldWS != nil {
		for _, n := range oldWS.DialogNodes {
			if !after[n.ID] {
				d.RemovedNodes = append(d.RemovedNodes, n.ID)
			}
		}
	}
	return d
}

// IsEmpty reports whether the diff carries no changes.
func (d *WorkspaceDiff) IsEmpty() bool {
	return len(d.AddedNodes) == 0 &&
		len(d.RemovedNodes) == 0 &&
		len(d.ModifiedNodes) == 0 &&
		d.IntentsBefore == d.IntentsAfter &&
		d.EntitiesBefore == d.EntitiesAfter
}

func sameNode(a, b *Node) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}
