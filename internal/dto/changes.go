package dto

import (
	"fmt"

	"github.com/aretw0/stepflow/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Change is the untyped shape of a canvas change, as emitted by xyflow-style
// front-ends. Only the fields of the variant named by Type are meaningful.
type Change struct {
	Type     string           `json:"type" mapstructure:"type"`
	ID       string           `json:"id" mapstructure:"id"`
	Position *domain.Position `json:"position,omitempty" mapstructure:"position"`
	Dragging bool             `json:"dragging,omitempty" mapstructure:"dragging"`
	Selected bool             `json:"selected,omitempty" mapstructure:"selected"`
	Item     map[string]any   `json:"item,omitempty" mapstructure:"item"`
	Index    *int             `json:"index,omitempty" mapstructure:"index"`
}

// Render-only change types emitted by xyflow on every layout pass. They carry
// nothing the graph keeps and are dropped by the decoders.
const (
	ChangeDimensions = "dimensions"
	ChangeReplace    = "replace"
)

// DecodeNodeChanges turns untyped payloads into tagged node changes.
// Extra keys are ignored and render-only types are dropped, so the result may be
// shorter than raw. Any other unknown or missing type is an error.
func DecodeNodeChanges(raw []map[string]any) ([]domain.NodeChange, error) {
	changes := make([]domain.NodeChange, 0, len(raw))
	for i, r := range raw {
		c, err := decodeChange(r)
		if err != nil {
			return nil, fmt.Errorf("change %d: %w", i, err)
		}
		switch c.Type {
		case domain.ChangeAdd:
			var n domain.Node
			if err := decode(c.Item, &n); err != nil {
				return nil, fmt.Errorf("change %d: item: %w", i, err)
			}
			changes = append(changes, domain.NodeAdded{Node: n, Index: c.Index})
		case domain.ChangeRemove:
			changes = append(changes, domain.NodeRemoved{ID: c.ID})
		case domain.ChangePosition:
			changes = append(changes, domain.NodePositionUpdated{ID: c.ID, Position: c.Position, Dragging: c.Dragging})
		case domain.ChangeSelect:
			changes = append(changes, domain.NodeSelectionToggled{ID: c.ID, Selected: c.Selected})
		case ChangeDimensions, ChangeReplace:
		default:
			return nil, fmt.Errorf("change %d: unsupported node change type %q", i, c.Type)
		}
	}
	return changes, nil
}

// DecodeEdgeChanges turns untyped payloads into tagged edge changes.
// Render-only types are dropped as in DecodeNodeChanges.
func DecodeEdgeChanges(raw []map[string]any) ([]domain.EdgeChange, error) {
	changes := make([]domain.EdgeChange, 0, len(raw))
	for i, r := range raw {
		c, err := decodeChange(r)
		if err != nil {
			return nil, fmt.Errorf("change %d: %w", i, err)
		}
		switch c.Type {
		case domain.ChangeAdd:
			var e domain.Edge
			if err := decode(c.Item, &e); err != nil {
				return nil, fmt.Errorf("change %d: item: %w", i, err)
			}
			changes = append(changes, domain.EdgeAdded{Edge: e, Index: c.Index})
		case domain.ChangeRemove:
			changes = append(changes, domain.EdgeRemoved{ID: c.ID})
		case domain.ChangeSelect:
			changes = append(changes, domain.EdgeSelectionToggled{ID: c.ID, Selected: c.Selected})
		case ChangeReplace:
		default:
			return nil, fmt.Errorf("change %d: unsupported edge change type %q", i, c.Type)
		}
	}
	return changes, nil
}

// DecodeConnection reads {source, target} from an untyped payload.
func DecodeConnection(raw map[string]any) (domain.Connection, error) {
	var conn domain.Connection
	if err := decode(raw, &conn); err != nil {
		return domain.Connection{}, err
	}
	if conn.Source == "" || conn.Target == "" {
		return domain.Connection{}, fmt.Errorf("connection needs both source and target")
	}
	return conn, nil
}

func decodeChange(raw map[string]any) (Change, error) {
	var c Change
	if err := decode(raw, &c); err != nil {
		return Change{}, err
	}
	if c.Type == "" {
		return Change{}, fmt.Errorf("missing change type")
	}
	return c, nil
}

func decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
