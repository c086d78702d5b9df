package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/stepflow/pkg/domain"
	"github.com/aretw0/stepflow/pkg/graph"
)

// Builder manages the graph construction.
type Builder struct {
	pages graph.PageLookup
	store *graph.Store
	last  *domain.Node
	errs  []error
}

// New creates a new graph builder resolving keys against pages.
func New(pages graph.PageLookup, opts ...graph.StoreOption) *Builder {
	return &Builder{
		pages: pages,
		store: graph.NewStore(opts...),
	}
}

// Step appends a node for key without connecting it.
func (b *Builder) Step(key string) *Builder {
	n, err := b.store.AddNode(key, b.pages)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("step %d: %w", len(b.store.Nodes())+len(b.errs), err))
		return b
	}
	b.last = &n
	return b
}

// Then appends a node for key and connects the previous step to it.
// On the first step it behaves like Step.
func (b *Builder) Then(key string) *Builder {
	prev := b.last
	b.Step(key)
	if prev != nil && b.last != prev {
		b.store.Connect(domain.Connection{Source: prev.ID, Target: b.last.ID})
	}
	return b
}

// Steps chains every key with Then.
func (b *Builder) Steps(keys ...string) *Builder {
	for _, k := range keys {
		b.Then(k)
	}
	return b
}

// Connect adds an edge between two node ids. Endpoints are not checked.
func (b *Builder) Connect(source, target string) *Builder {
	b.store.Connect(domain.Connection{Source: source, Target: target})
	return b
}

// Build returns the store holding the graph, or every lookup failure joined.
func (b *Builder) Build() (*graph.Store, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("failed to build flow: %w", errors.Join(b.errs...))
	}
	return b.store, nil
}
