package domain

import "strconv"

// LabelPrefix is prepended to a page title to build a node label.
// Stripping it from the label recovers the action name at submission time.
const LabelPrefix = "go "

// Position is a point on the canvas.
type Position struct {
	X float64 `json:"x" mapstructure:"x"`
	Y float64 `json:"y" mapstructure:"y"`
}

// NodeData is the payload rendered inside a node.
type NodeData struct {
	Label string `json:"label" mapstructure:"label"`
}

// Node represents one step of the flow on the canvas.
// Its ID is the numeric page id as a string, so two nodes for the same page share an ID.
type Node struct {
	ID       string   `json:"id" mapstructure:"id"`
	Position Position `json:"position" mapstructure:"position"`
	Data     NodeData `json:"data" mapstructure:"data"`

	Selected bool `json:"selected,omitempty" mapstructure:"selected"`
	Dragging bool `json:"dragging,omitempty" mapstructure:"dragging"`
}

// NewNode builds the node for a page at the given position.
func NewNode(page Page, pos Position) Node {
	return Node{
		ID:       strconv.Itoa(page.ID),
		Position: pos,
		Data:     NodeData{Label: LabelPrefix + page.Title},
	}
}

// Edge is a directed connection between two node ids.
// Nothing guarantees that Source or Target still exist.
type Edge struct {
	ID       string `json:"id" mapstructure:"id"`
	Source   string `json:"source" mapstructure:"source"`
	Target   string `json:"target" mapstructure:"target"`
	Selected bool   `json:"selected,omitempty" mapstructure:"selected"`
}

// Connection describes the endpoints of an edge about to be created.
type Connection struct {
	Source string `json:"source" mapstructure:"source"`
	Target string `json:"target" mapstructure:"target"`
}

// EdgeID derives the identifier of the edge created for a connection.
// Connecting the same pair twice yields the same id.
func EdgeID(c Connection) string {
	return "edge-" + c.Source + "-" + c.Target
}
