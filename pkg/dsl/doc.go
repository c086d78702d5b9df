/*
Package dsl provides a fluent builder for stepflow graphs.

It is the programmatic counterpart of clicking "add node" and dragging edges: each
Step appends a node for a catalog page, Then also connects it to the previous step.
Unknown keys do not stop the chain; they are collected and reported by Build.

Example usage:

	package main

	import (
		"github.com/aretw0/stepflow/pkg/catalog"
		"github.com/aretw0/stepflow/pkg/dsl"
	)

	func main() {
		store, err := dsl.New(catalog.Default()).
			Step("home").
			Then("flights").
			Then("seats").
			Build()
		if err != nil {
			panic(err)
		}
		_ = store // pass to stepflow.New(gw, stepflow.WithStore(store))
	}
*/
package dsl
