/*
Package domain contains the core data model of the stepflow editor.

It defines the entities a flow is authored with (pages, nodes, edges), the tagged
change sets that mutate them, and the payload sent to the execution backend. This
package is kept pure and free of I/O, following the same ports-and-adapters split
as the rest of the module.

# Key Entities

  - Page: A selectable destination from the catalog (id, title, description).
  - Node: A step on the canvas, tagged with the page it navigates to.
  - Edge: A directed, purely cosmetic connection between two nodes.
  - NodeChange / EdgeChange: Incremental deltas produced by user gestures.
  - ExecutionRequest: The ordered step list posted to the backend.
  - Outcome: The result of a backend call, shaped as a user notification.
*/
package domain
