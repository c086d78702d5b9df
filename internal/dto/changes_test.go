package dto

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/stepflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRaw(t *testing.T, src string) []map[string]any {
	t.Helper()
	var raw []map[string]any
	require.NoError(t, json.Unmarshal([]byte(src), &raw))
	return raw
}

func TestDecodeNodeChanges(t *testing.T) {
	raw := mustRaw(t, `[
		{"type": "position", "id": "2", "position": {"x": 12.5, "y": 3}, "dragging": true},
		{"type": "position", "id": "2", "dragging": false},
		{"type": "select", "id": "5", "selected": true},
		{"type": "remove", "id": "1"},
		{"type": "add", "item": {"id": "3", "position": {"x": 1, "y": 2}, "data": {"label": "go Passengers"}}, "index": 0},
		{"type": "dimensions", "id": "2", "dimensions": {"width": 10}},
		{"type": "replace", "id": "2", "item": {"id": "2"}}
	]`)

	changes, err := DecodeNodeChanges(raw)
	require.NoError(t, err, "render-only changes are dropped")
	require.Len(t, changes, 5)

	assert.Equal(t, domain.NodePositionUpdated{ID: "2", Position: &domain.Position{X: 12.5, Y: 3}, Dragging: true}, changes[0])
	assert.Equal(t, domain.NodePositionUpdated{ID: "2"}, changes[1])
	assert.Equal(t, domain.NodeSelectionToggled{ID: "5", Selected: true}, changes[2])
	assert.Equal(t, domain.NodeRemoved{ID: "1"}, changes[3])

	added, ok := changes[4].(domain.NodeAdded)
	require.True(t, ok)
	assert.Equal(t, "go Passengers", added.Node.Data.Label)
	assert.Equal(t, domain.Position{X: 1, Y: 2}, added.Node.Position)
	require.NotNil(t, added.Index)
	assert.Equal(t, 0, *added.Index)
}

func TestDecodeNodeChanges_MissingType(t *testing.T) {
	_, err := DecodeNodeChanges(mustRaw(t, `[{"id": "1"}]`))
	assert.ErrorContains(t, err, "missing change type")
}

func TestDecodeEdgeChanges(t *testing.T) {
	changes, err := DecodeEdgeChanges(mustRaw(t, `[
		{"type": "remove", "id": "edge-1-2"},
		{"type": "select", "id": "edge-2-5", "selected": true},
		{"type": "add", "item": {"id": "edge-5-6", "source": "5", "target": "6"}}
	]`))
	require.NoError(t, err)

	assert.Equal(t, domain.EdgeRemoved{ID: "edge-1-2"}, changes[0])
	assert.Equal(t, domain.EdgeSelectionToggled{ID: "edge-2-5", Selected: true}, changes[1])
	assert.Equal(t, domain.EdgeAdded{Edge: domain.Edge{ID: "edge-5-6", Source: "5", Target: "6"}}, changes[2])

	_, err = DecodeEdgeChanges(mustRaw(t, `[{"type": "position", "id": "edge-1-2"}]`))
	assert.Error(t, err)
}

func TestDecodeConnection(t *testing.T) {
	conn, err := DecodeConnection(map[string]any{"source": "1", "target": "2", "sourceHandle": nil})
	require.NoError(t, err)
	assert.Equal(t, domain.Connection{Source: "1", Target: "2"}, conn)

	_, err = DecodeConnection(map[string]any{"source": "1"})
	assert.Error(t, err)
}

func TestDecodeChanges_UnknownTypeFails(t *testing.T) {
	_, err := DecodeNodeChanges(mustRaw(t, `[{"type": "select", "id": "1"}, {"type": "resize", "id": "1"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "change 1")

	edges, err := DecodeEdgeChanges(mustRaw(t, `[{"type": "replace", "id": "edge-1-2"}, {"type": "remove", "id": "edge-1-2"}]`))
	require.NoError(t, err)
	assert.Equal(t, []domain.EdgeChange{domain.EdgeRemoved{ID: "edge-1-2"}}, edges)

	_, err = DecodeEdgeChanges(mustRaw(t, `[{"type": "dimensions", "id": "edge-1-2"}]`))
	assert.Error(t, err)
}
