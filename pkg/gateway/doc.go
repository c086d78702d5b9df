/*
Package gateway talks to the remote test-execution backend.

It has three parts:

  - Client: issues GET /status and POST /execute and folds every result, failures
    included, into a domain.Outcome ready to be shown as a notification.
  - BuildRequest: turns the node collection into the ordered step list.
  - Gate: the Locked/Unlocked state machine that guards edits and execution.

Nothing is retried. A failed call must be triggered again by the user.
*/
package gateway
