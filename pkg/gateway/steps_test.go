package gateway

import (
	"testing"

	"github.com/aretw0/stepflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToStep(t *testing.T) {
	step, err := ToStep(domain.Node{ID: "4", Data: domain.NodeData{Label: "go Services"}})
	require.NoError(t, err)
	assert.Equal(t, domain.ExecutionStep{ID: 4, Accion: "Services"}, step)

	// Only the leading prefix is stripped.
	step, err = ToStep(domain.Node{ID: "7", Data: domain.NodeData{Label: "go go Home"}})
	require.NoError(t, err)
	assert.Equal(t, "go Home", step.Accion)
}

func TestToStep_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		node   domain.Node
		reason string
	}{
		{"non numeric id", domain.Node{ID: "abc", Data: domain.NodeData{Label: "go Home"}}, "id is not numeric"},
		{"missing prefix", domain.Node{ID: "1", Data: domain.NodeData{Label: "Home"}}, "prefix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToStep(tt.node)
			require.ErrorIs(t, err, domain.ErrMalformedStep)
			var mse *domain.MalformedStepError
			require.ErrorAs(t, err, &mse)
			assert.Equal(t, tt.node.ID, mse.NodeID)
			assert.Contains(t, mse.Reason, tt.reason)
		})
	}
}

func TestBuildRequest_Policies(t *testing.T) {
	nodes := []domain.Node{
		{ID: "bad", Data: domain.NodeData{Label: "go Home"}},
		{ID: "6", Data: domain.NodeData{Label: "go Payment"}},
	}

	_, err := BuildRequest("f", nodes, FailFast, nil)
	assert.ErrorIs(t, err, domain.ErrMalformedStep)

	req, err := BuildRequest("f", nodes, SkipMalformed, nil)
	require.NoError(t, err)
	assert.Equal(t, "f", req.NameFlow)
	assert.Equal(t, []domain.ExecutionStep{{ID: 6, Accion: "Payment"}}, req.Steps)
}

func TestParseStepPolicy(t *testing.T) {
	p, ok := ParseStepPolicy("skip")
	assert.True(t, ok)
	assert.Equal(t, SkipMalformed, p)
	assert.Equal(t, "skip", p.String())

	p, ok = ParseStepPolicy("")
	assert.True(t, ok)
	assert.Equal(t, FailFast, p)

	_, ok = ParseStepPolicy("retry")
	assert.False(t, ok)
}
