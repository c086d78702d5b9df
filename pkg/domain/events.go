package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeAdded     EventType = "node_added"
	EventEdgeConnected EventType = "edge_connected"
	EventStatusChecked EventType = "status_checked"
	EventFlowSubmitted EventType = "flow_submitted"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// GraphEvent is emitted after a structural edit.
type GraphEvent struct {
	EventBase
	NodeID  string `json:"node_id,omitempty"`
	PageKey string `json:"page_key,omitempty"`
	Edge    *Edge  `json:"edge,omitempty"`
}

// GatewayEvent is emitted after a backend call completes.
type GatewayEvent struct {
	EventBase
	Outcome Outcome   `json:"outcome"`
	Gate    GateState `json:"gate"`
}

// LifecycleHooks defines callbacks for editor observability.
type LifecycleHooks struct {
	OnNodeAdded     func(context.Context, *GraphEvent)
	OnEdgeConnected func(context.Context, *GraphEvent)
	OnStatusChecked func(context.Context, *GatewayEvent)
	OnFlowSubmitted func(context.Context, *GatewayEvent)
}
