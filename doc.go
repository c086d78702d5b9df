/*
Package stepflow is a headless editor for UI-test flows.

A flow is a graph of steps, each one navigating to a page from a catalog. The
editor keeps the graph, gates edits behind a backend health check and submits the
steps, in the order they were created, to a Playwright-driving execution API.

# Concept

The editor is an explicit object shared by reference between front-ends (CLI,
HTTP, MCP). Every graph mutation goes through the pure functions of package graph,
so the stored snapshot is always replaced, never edited in place.

	Locked --CheckStatus ok--> Unlocked --Execute (any outcome)--> Unlocked

# Usage

	package main

	import (
		"context"
		"fmt"

		"github.com/aretw0/stepflow"
		"github.com/aretw0/stepflow/pkg/gateway"
	)

	func main() {
		ctx := context.Background()
		ed := stepflow.New(gateway.New("http://localhost:3000"))

		if out := ed.CheckStatus(ctx); !out.OK() {
			fmt.Println(out.Notification.Title)
			return
		}

		for _, key := range []string{"flights", "seats"} {
			ed.Select(key)
			if _, err := ed.AddNode(ctx); err != nil {
				fmt.Println(err)
				return
			}
		}

		out, _ := ed.Execute(ctx)
		fmt.Println(out.Notification.Title)
	}
*/
package stepflow
