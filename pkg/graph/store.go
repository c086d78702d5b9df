package graph

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/aretw0/stepflow/pkg/domain"
)

// Snapshot is a point-in-time copy of the graph.
type Snapshot struct {
	Nodes []domain.Node `json:"nodes"`
	Edges []domain.Edge `json:"edges"`
}

// Store holds the current graph and applies updates to it.
// Every mutator reads the current snapshot, runs the matching pure function and
// writes the result back. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	nodes []domain.Node
	edges []domain.Edge
	float func() float64
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithRand sets the source used to place new nodes.
func WithRand(r *rand.Rand) StoreOption {
	return func(s *Store) {
		s.float = r.Float64
	}
}

// WithSnapshot seeds the store with an existing graph.
func WithSnapshot(snap Snapshot) StoreOption {
	return func(s *Store) {
		s.nodes = append([]domain.Node{}, snap.Nodes...)
		s.edges = append([]domain.Edge{}, snap.Edges...)
	}
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		nodes: []domain.Node{},
		edges: []domain.Edge{},
		float: rand.Float64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Nodes returns a copy of the node collection in creation order.
func (s *Store) Nodes() []domain.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.nodes)
}

// Edges returns a copy of the edge collection.
func (s *Store) Edges() []domain.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.edges)
}

// Snapshot returns a copy of both collections.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Nodes: slices.Clone(s.nodes),
		Edges: slices.Clone(s.edges),
	}
}

// ApplyNodeChanges applies changes to the stored nodes and returns the new collection.
func (s *Store) ApplyNodeChanges(changes ...domain.NodeChange) []domain.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = ApplyNodeChanges(changes, s.nodes)
	return slices.Clone(s.nodes)
}

// ApplyEdgeChanges applies changes to the stored edges and returns the new collection.
func (s *Store) ApplyEdgeChanges(changes ...domain.EdgeChange) []domain.Edge {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges = ApplyEdgeChanges(changes, s.edges)
	return slices.Clone(s.edges)
}

// Connect stores a new edge and returns it.
func (s *Store) Connect(conn domain.Connection) domain.Edge {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges = Connect(conn, s.edges)
	return s.edges[len(s.edges)-1]
}

// AddNode appends the node for key at a random position and returns it.
// On a catalog miss nothing is stored.
func (s *Store) AddNode(key string, pages PageLookup) (domain.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := domain.Position{X: s.float() * PositionSpread, Y: s.float() * PositionSpread}
	nodes, err := AddNode(key, pages, s.nodes, pos)
	if err != nil {
		return domain.Node{}, err
	}
	s.nodes = nodes
	return nodes[len(nodes)-1], nil
}

// Reset clears the graph.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = []domain.Node{}
	s.edges = []domain.Edge{}
}
