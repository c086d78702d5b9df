package domain

// Change type discriminators, as carried in untyped payloads.
const (
	ChangeAdd      = "add"
	ChangeRemove   = "remove"
	ChangePosition = "position"
	ChangeSelect   = "select"
)

// NodeChange is a delta applied to the node collection.
// The set of implementations is closed: NodeAdded, NodeRemoved,
// NodePositionUpdated and NodeSelectionToggled.
type NodeChange interface {
	// ChangeType returns the discriminator of the variant.
	ChangeType() string
	nodeChange()
}

// NodeAdded inserts a node at Index, or appends it when Index is nil.
type NodeAdded struct {
	Node  Node
	Index *int
}

// NodeRemoved removes every node with the given id.
type NodeRemoved struct {
	ID string
}

// NodePositionUpdated moves a node. A nil Position only updates the dragging flag.
type NodePositionUpdated struct {
	ID       string
	Position *Position
	Dragging bool
}

// NodeSelectionToggled sets the selection flag of a node.
type NodeSelectionToggled struct {
	ID       string
	Selected bool
}

func (NodeAdded) ChangeType() string            { return ChangeAdd }
func (NodeRemoved) ChangeType() string          { return ChangeRemove }
func (NodePositionUpdated) ChangeType() string  { return ChangePosition }
func (NodeSelectionToggled) ChangeType() string { return ChangeSelect }

func (NodeAdded) nodeChange()            {}
func (NodeRemoved) nodeChange()          {}
func (NodePositionUpdated) nodeChange()  {}
func (NodeSelectionToggled) nodeChange() {}

// EdgeChange is a delta applied to the edge collection.
// Implementations: EdgeAdded, EdgeRemoved and EdgeSelectionToggled.
type EdgeChange interface {
	ChangeType() string
	edgeChange()
}

// EdgeAdded inserts an edge at Index, or appends it when Index is nil.
type EdgeAdded struct {
	Edge  Edge
	Index *int
}

// EdgeRemoved removes every edge with the given id.
type EdgeRemoved struct {
	ID string
}

// EdgeSelectionToggled sets the selection flag of an edge.
type EdgeSelectionToggled struct {
	ID       string
	Selected bool
}

func (EdgeAdded) ChangeType() string            { return ChangeAdd }
func (EdgeRemoved) ChangeType() string          { return ChangeRemove }
func (EdgeSelectionToggled) ChangeType() string { return ChangeSelect }

func (EdgeAdded) edgeChange()            {}
func (EdgeRemoved) edgeChange()          {}
func (EdgeSelectionToggled) edgeChange() {}
