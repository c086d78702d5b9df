package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/stepflow/pkg/domain"
)

// Overlay contains dynamic state to visualize on the graph.
type Overlay struct {
	// ShowOrder prefixes labels with the submission order of the step.
	ShowOrder bool
	// HighlightSelected styles nodes and edges whose Selected flag is set.
	HighlightSelected bool
}

// GenerateMermaid produces a Mermaid flowchart from the flow graph.
// Nodes sharing an id collapse into one Mermaid node, as they do on the canvas.
// Edges pointing at missing nodes are still drawn.
func GenerateMermaid(nodes []domain.Node, edges []domain.Edge, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	var selected []string
	for i, node := range nodes {
		label := strings.ReplaceAll(node.Data.Label, "\"", "'")
		if overlay != nil && overlay.ShowOrder {
			label = fmt.Sprintf("%d. %s", i+1, label)
		}
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", mermaidID(node.ID), label))
		if node.Selected {
			selected = append(selected, mermaidID(node.ID))
		}
	}

	var selectedEdges []int
	for i, e := range edges {
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", mermaidID(e.Source), mermaidID(e.Target)))
		if e.Selected {
			selectedEdges = append(selectedEdges, i)
		}
	}

	if overlay != nil && overlay.HighlightSelected && (len(selected) > 0 || len(selectedEdges) > 0) {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds.
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		for _, id := range selected {
			sb.WriteString(fmt.Sprintf("    class %s selected;\n", id))
		}
		for _, i := range selectedEdges {
			sb.WriteString(fmt.Sprintf("    linkStyle %d stroke:#fbc02d,stroke-width:4px;\n", i))
		}
	}

	return sb.String()
}

// mermaidID sanitizes id and prefixes it so numeric ids stay valid Mermaid identifiers.
func mermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return "n" + s
}
