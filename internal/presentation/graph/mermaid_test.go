package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/stepflow/internal/presentation/graph"
	"github.com/aretw0/stepflow/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	nodes := []domain.Node{
		{ID: "2", Data: domain.NodeData{Label: "go Flights"}},
		{ID: "5", Data: domain.NodeData{Label: "go Seats"}, Selected: true},
	}
	edges := []domain.Edge{
		{ID: "edge-2-5", Source: "2", Target: "5"},
		{ID: "edge-5-9", Source: "5", Target: "9", Selected: true},
	}

	tests := []struct {
		name        string
		overlay     *graph.Overlay
		contains    []string
		notContains []string
	}{
		{
			name: "Plain",
			contains: []string{
				"graph LR\n",
				`n2["go Flights"]`,
				`n5["go Seats"]`,
				"n2 --> n5",
				"n5 --> n9",
			},
			notContains: []string{"classDef", "1. go"},
		},
		{
			name:    "Order",
			overlay: &graph.Overlay{ShowOrder: true},
			contains: []string{
				`n2["1. go Flights"]`,
				`n5["2. go Seats"]`,
			},
		},
		{
			name:    "Selection",
			overlay: &graph.Overlay{HighlightSelected: true},
			contains: []string{
				"classDef selected",
				"class n5 selected;",
				"linkStyle 1 stroke",
			},
			notContains: []string{"class n2 selected;", "linkStyle 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(nodes, edges, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Expected output to contain %q, got:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(got, unwanted) {
					t.Errorf("Expected output not to contain %q, got:\n%s", unwanted, got)
				}
			}
		})
	}
}

func TestGenerateMermaid_EscapesQuotes(t *testing.T) {
	got := graph.GenerateMermaid([]domain.Node{{ID: "1", Data: domain.NodeData{Label: `go "Home"`}}}, nil, nil)
	if !strings.Contains(got, `n1["go 'Home'"]`) {
		t.Errorf("Quotes not escaped:\n%s", got)
	}
}
