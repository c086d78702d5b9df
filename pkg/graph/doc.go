/*
Package graph maintains the nodes and edges of the flow being authored.

The package has two layers. The functions ApplyNodeChanges, ApplyEdgeChanges,
Connect and AddNode are pure: they take the current collection and return a new
one, leaving the argument untouched. Store wraps them around a mutable snapshot
that front-ends share by reference.

Node order is creation order. It is the order steps are submitted in; edges never
influence it.
*/
package graph
