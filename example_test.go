package arbor_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

// ExampleEditor_Edit collapses a run of same-intent siblings of a workspace
// kept in memory.
func ExampleEditor_Edit() {
	store, err := memory.NewFromDocuments(map[string]string{
		"ws.json": `{"dialog_nodes": [
		  {"dialog_node": "a", "conditions": "#hours && @day:monday", "parent": null, "previous_sibling": null, "output": {"text": "Nine to five."}},
		  {"dialog_node": "b", "conditions": "#hours && @day:sunday", "parent": null, "previous_sibling": "a", "output": {"text": "Closed."}},
		  {"dialog_node": "c", "conditions": "anything_else", "parent": null, "previous_sibling": "b", "output": {"text": "Sorry?"}}
		]}`,
	})
	if err != nil {
		log.Fatal(err)
	}

	ed := arbor.New(
		arbor.WithStore(store),
		arbor.WithIDGenerator(tree.SequenceIDs{Prefix: 1}),
	)

	ctx := context.Background()
	err = ed.Edit(ctx, "ws.json", "ws.json", func(s *arbor.Session) error {
		created, err := s.CollapseAll()
		fmt.Println("created:", created)
		return err
	})
	if err != nil {
		log.Fatal(err)
	}

	ws, err := store.Load(ctx, "ws.json")
	if err != nil {
		log.Fatal(err)
	}
	for _, n := range ws.DialogNodes {
		if n.ID == "a" || n.ID == "b" {
			fmt.Printf("%s under %s\n", n.ID, n.Parent)
		}
	}
	// Output:
	// created: [node_1_0]
	// a under node_1_0
	// b under node_1_0
}

// ExampleEditor_Open verifies a workspace built in code.
func ExampleEditor_Open() {
	ws := &domain.Workspace{DialogNodes: []*domain.Node{
		{ID: "welcome", Conditions: "welcome"},
		{ID: "child", Parent: "welcome", PreviousSibling: "missing"},
	}}

	s, err := arbor.New().Open(ws)
	if err != nil {
		log.Fatal(err)
	}
	for _, f := range s.Verify().Faults {
		fmt.Println(f)
	}
	// Output:
	// node "child": previous_sibling "missing" does not exist
}
