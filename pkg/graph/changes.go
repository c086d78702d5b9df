package graph

import (
	"slices"

	"github.com/aretw0/stepflow/pkg/catalog"
	"github.com/aretw0/stepflow/pkg/domain"
)

// PositionSpread bounds the random coordinates given to new nodes, on both axes.
const PositionSpread = 10.0

// PageLookup resolves a catalog key to a page.
type PageLookup interface {
	Lookup(key string) (domain.Page, bool)
}

// ApplyNodeChanges applies changes in order and returns the resulting collection.
// Changes that reference unknown ids are ignored.
func ApplyNodeChanges(changes []domain.NodeChange, nodes []domain.Node) []domain.Node {
	out := slices.Clone(nodes)
	for _, change := range changes {
		switch c := change.(type) {
		case domain.NodeAdded:
			out = insertAt(out, c.Node, c.Index)
		case domain.NodeRemoved:
			out = slices.DeleteFunc(out, func(n domain.Node) bool { return n.ID == c.ID })
		case domain.NodePositionUpdated:
			for i := range out {
				if out[i].ID != c.ID {
					continue
				}
				if c.Position != nil {
					out[i].Position = *c.Position
				}
				out[i].Dragging = c.Dragging
			}
		case domain.NodeSelectionToggled:
			for i := range out {
				if out[i].ID == c.ID {
					out[i].Selected = c.Selected
				}
			}
		}
	}
	return out
}

// ApplyEdgeChanges is the edge counterpart of ApplyNodeChanges.
func ApplyEdgeChanges(changes []domain.EdgeChange, edges []domain.Edge) []domain.Edge {
	out := slices.Clone(edges)
	for _, change := range changes {
		switch c := change.(type) {
		case domain.EdgeAdded:
			out = insertAt(out, c.Edge, c.Index)
		case domain.EdgeRemoved:
			out = slices.DeleteFunc(out, func(e domain.Edge) bool { return e.ID == c.ID })
		case domain.EdgeSelectionToggled:
			for i := range out {
				if out[i].ID == c.ID {
					out[i].Selected = c.Selected
				}
			}
		}
	}
	return out
}

// Connect appends an edge for conn.
// Endpoints are not checked and duplicates are kept.
func Connect(conn domain.Connection, edges []domain.Edge) []domain.Edge {
	out := make([]domain.Edge, 0, len(edges)+1)
	out = append(out, edges...)
	return append(out, domain.Edge{
		ID:     domain.EdgeID(conn),
		Source: conn.Source,
		Target: conn.Target,
	})
}

// AddNode appends the node for the page under key, placed at pos.
// An empty key selects catalog.DefaultKey ("home"). When the key is unknown the
// input collection is returned unchanged together with a *domain.LookupError.
func AddNode(key string, pages PageLookup, nodes []domain.Node, pos domain.Position) ([]domain.Node, error) {
	if key == "" {
		key = catalog.DefaultKey
	}
	page, ok := pages.Lookup(key)
	if !ok {
		return nodes, &domain.LookupError{Key: key}
	}

	out := make([]domain.Node, 0, len(nodes)+1)
	out = append(out, nodes...)
	return append(out, domain.NewNode(page, pos)), nil
}

func insertAt[T any](s []T, v T, index *int) []T {
	if index == nil || *index < 0 || *index >= len(s) {
		return append(s, v)
	}
	return slices.Insert(s, *index, v)
}
