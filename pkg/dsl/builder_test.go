package dsl

import (
	"errors"
	"testing"

	"github.com/aretw0/stepflow/pkg/catalog"
	"github.com/aretw0/stepflow/pkg/domain"
)

func TestBuilder_Chain(t *testing.T) {
	store, err := New(catalog.Default()).
		Step("home").
		Then("flights").
		Then("seats").
		Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	snap := store.Snapshot()
	if len(snap.Nodes) != 3 {
		t.Fatalf("Expected 3 nodes, got %d", len(snap.Nodes))
	}
	wantIDs := []string{"1", "2", "5"}
	for i, n := range snap.Nodes {
		if n.ID != wantIDs[i] {
			t.Errorf("Node %d: expected id %q, got %q", i, wantIDs[i], n.ID)
		}
	}

	wantEdges := []domain.Edge{
		{ID: "edge-1-2", Source: "1", Target: "2"},
		{ID: "edge-2-5", Source: "2", Target: "5"},
	}
	if len(snap.Edges) != len(wantEdges) {
		t.Fatalf("Expected %d edges, got %d", len(wantEdges), len(snap.Edges))
	}
	for i, e := range snap.Edges {
		if e != wantEdges[i] {
			t.Errorf("Edge %d: expected %+v, got %+v", i, wantEdges[i], e)
		}
	}
}

func TestBuilder_StepsAndConnect(t *testing.T) {
	store, err := New(catalog.Default()).
		Steps("passengers", "services").
		Connect("4", "3").
		Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	snap := store.Snapshot()
	if len(snap.Nodes) != 2 || len(snap.Edges) != 2 {
		t.Fatalf("Expected 2 nodes and 2 edges, got %d and %d", len(snap.Nodes), len(snap.Edges))
	}
	if snap.Edges[1].Source != "4" || snap.Edges[1].Target != "3" {
		t.Errorf("Unexpected back edge: %+v", snap.Edges[1])
	}
}

func TestBuilder_UnknownKeys(t *testing.T) {
	b := New(catalog.Default()).
		Then("home").
		Then("lounge").
		Then("payment").
		Then("spa")

	_, err := b.Build()
	if err == nil {
		t.Fatal("Expected error for unknown keys")
	}
	if !errors.Is(err, domain.ErrPageNotFound) {
		t.Errorf("Expected ErrPageNotFound, got %v", err)
	}

	// The chain skips the unknown step and keeps connecting.
	edges := b.store.Edges()
	if len(edges) != 1 || edges[0].ID != "edge-1-6" {
		t.Errorf("Expected a single edge-1-6, got %+v", edges)
	}
}
