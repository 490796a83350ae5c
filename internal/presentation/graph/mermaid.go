package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

// GraphOverlay marks nodes to highlight, such as the subjects of faults.
type GraphOverlay struct {
	Highlight []string
}

// GenerateMermaid produces a Mermaid flowchart of the dialog tree.
// Shapes:
// - Top-level: ([Stadium])
// - Folder: [[Subroutine]]
// - Response condition: [/Parallelogram/]
// - Default: [Rectangle]
// Parent edges are solid and follow sibling order; next_step jumps are dotted
// and labelled with their selector.
func GenerateMermaid(s *tree.Store, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range s.Nodes() {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch {
		case node.IsFolder():
			opener, closer = "[[", "]]"
		case node.Type == domain.TypeResponseCondition:
			opener, closer = "[/", "/]"
		case node.IsTopLevel():
			opener, closer = "([", "])"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label(node), closer)
	}

	// Children in chain order first, then any the chain cannot reach.
	edges := func(parent string) {
		seen := make(map[string]bool)
		for id := range s.ChildrenOf(parent) {
			seen[id] = true
			fmt.Fprintf(&sb, "    %s --> %s\n", sanitizeMermaidID(parent), sanitizeMermaidID(id))
		}
		for _, id := range s.ChildIDs(parent) {
			if !seen[id] {
				fmt.Fprintf(&sb, "    %s --> %s\n", sanitizeMermaidID(parent), sanitizeMermaidID(id))
			}
		}
	}
	for _, node := range s.Nodes() {
		if s.HasChildren(node.ID) {
			edges(node.ID)
		}
	}

	for _, node := range s.Nodes() {
		target := node.JumpTarget()
		if target == "" {
			continue
		}
		selector := node.NextStep.Selector
		if selector == "" {
			selector = node.NextStep.Behavior
		}
		fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", sanitizeMermaidID(node.ID), escape(selector), sanitizeMermaidID(target))
	}

	if overlay != nil && len(overlay.Highlight) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast regardless of theme
		sb.WriteString("    classDef fault fill:#ffcdd2,stroke:#b71c1c,stroke-width:3px,color:#000;\n")
		seen := make(map[string]bool)
		for _, id := range overlay.Highlight {
			safeID := sanitizeMermaidID(id)
			if safeID == "" || seen[safeID] {
				continue
			}
			seen[safeID] = true
			fmt.Fprintf(&sb, "    class %s fault;\n", safeID)
		}
	}

	return sb.String()
}

func label(n *domain.Node) string {
	name := n.ID
	if n.Title != "" {
		name = n.Title
	}
	if n.Conditions == "" {
		return escape(name)
	}
	return escape(name) + "<br/>" + escape(n.Conditions)
}

// escape keeps double quotes out of Mermaid labels.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
