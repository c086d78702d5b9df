package stepflow_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/stepflow"
	"github.com/aretw0/stepflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateway records submissions and answers with fixed outcomes.
type stubGateway struct {
	mu        sync.Mutex
	status    domain.OutcomeStatus
	submitted [][]domain.Node
}

func (g *stubGateway) CheckStatus(ctx context.Context) domain.Outcome {
	return domain.Outcome{Status: g.status}
}

func (g *stubGateway) SubmitFlow(ctx context.Context, nodes []domain.Node) domain.Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.submitted = append(g.submitted, nodes)
	return domain.Outcome{Status: domain.OutcomeRejected}
}

func TestEditor_LockedUntilStatusCheck(t *testing.T) {
	gw := &stubGateway{status: domain.OutcomeUnavailable}
	ed := stepflow.New(gw)
	ctx := context.Background()

	_, err := ed.AddNode(ctx)
	assert.ErrorIs(t, err, domain.ErrLocked)
	_, err = ed.Execute(ctx)
	assert.ErrorIs(t, err, domain.ErrLocked)

	ed.CheckStatus(ctx)
	assert.Equal(t, domain.GateLocked, ed.GateState())
	_, err = ed.AddNode(ctx)
	assert.ErrorIs(t, err, domain.ErrLocked)

	gw.status = domain.OutcomeReady
	ed.CheckStatus(ctx)
	assert.Equal(t, domain.GateUnlocked, ed.GateState())
}

func TestEditor_AddNodeUsesSelection(t *testing.T) {
	ed := stepflow.New(&stubGateway{status: domain.OutcomeReady})
	ctx := context.Background()
	ed.CheckStatus(ctx)

	n, err := ed.AddNode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "go Home", n.Data.Label, "no selection falls back to home")

	ed.Select("payment")
	n, err = ed.AddNode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "6", n.ID)

	ed.Select("lounge")
	_, err = ed.AddNode(ctx)
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
	assert.Len(t, ed.Snapshot().Nodes, 2)
}

func TestEditor_ExecuteKeepsGateAndOrder(t *testing.T) {
	gw := &stubGateway{status: domain.OutcomeReady}
	ed := stepflow.New(gw)
	ctx := context.Background()
	ed.CheckStatus(ctx)

	for _, k := range []string{"seats", "flights"} {
		ed.Select(k)
		_, err := ed.AddNode(ctx)
		require.NoError(t, err)
	}
	ed.Connect(ctx, domain.Connection{Source: "2", Target: "5"})

	out, err := ed.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRejected, out.Status)
	assert.Equal(t, domain.GateUnlocked, ed.GateState())

	require.Len(t, gw.submitted, 1)
	assert.Equal(t, "5", gw.submitted[0][0].ID, "creation order, not edge order")
	assert.Equal(t, "2", gw.submitted[0][1].ID)
}

func TestEditor_Hooks(t *testing.T) {
	var events []domain.EventType
	hooks := domain.LifecycleHooks{
		OnStatusChecked: func(ctx context.Context, e *domain.GatewayEvent) { events = append(events, e.Type) },
		OnNodeAdded:     func(ctx context.Context, e *domain.GraphEvent) { events = append(events, e.Type) },
		OnEdgeConnected: func(ctx context.Context, e *domain.GraphEvent) { events = append(events, e.Type) },
		OnFlowSubmitted: func(ctx context.Context, e *domain.GatewayEvent) { events = append(events, e.Type) },
	}
	ed := stepflow.New(&stubGateway{status: domain.OutcomeReady}, stepflow.WithLifecycleHooks(hooks))
	ctx := context.Background()

	ed.CheckStatus(ctx)
	_, err := ed.AddNode(ctx)
	require.NoError(t, err)
	ed.Connect(ctx, domain.Connection{Source: "1", Target: "1"})
	_, err = ed.Execute(ctx)
	require.NoError(t, err)

	assert.Equal(t, []domain.EventType{
		domain.EventStatusChecked,
		domain.EventNodeAdded,
		domain.EventEdgeConnected,
		domain.EventFlowSubmitted,
	}, events)
}

func TestEditor_CanvasChanges(t *testing.T) {
	ed := stepflow.New(&stubGateway{status: domain.OutcomeReady})
	ctx := context.Background()
	ed.CheckStatus(ctx)
	_, err := ed.AddNode(ctx)
	require.NoError(t, err)
	e := ed.Connect(ctx, domain.Connection{Source: "1", Target: "2"})

	nodes := ed.ApplyNodeChanges(domain.NodePositionUpdated{ID: "1", Position: &domain.Position{X: 100, Y: 200}})
	assert.Equal(t, domain.Position{X: 100, Y: 200}, nodes[0].Position)

	edges := ed.ApplyEdgeChanges(domain.EdgeRemoved{ID: e.ID})
	assert.Empty(t, edges)
}

func TestEditor_ResetKeepsGate(t *testing.T) {
	ed := stepflow.New(&stubGateway{status: domain.OutcomeReady})
	ctx := context.Background()
	ed.CheckStatus(ctx)
	ed.Select("seats")
	_, err := ed.AddNode(ctx)
	require.NoError(t, err)

	ed.Reset()
	assert.Empty(t, ed.Snapshot().Nodes)
	assert.Equal(t, domain.GateUnlocked, ed.GateState())
	assert.Equal(t, "seats", ed.Selected())
}

func TestEditor_AddPage(t *testing.T) {
	ed := stepflow.New(&stubGateway{status: domain.OutcomeReady})
	ctx := context.Background()

	_, err := ed.AddPage(ctx, "flights")
	assert.ErrorIs(t, err, domain.ErrLocked)

	ed.CheckStatus(ctx)
	ed.Select("seats")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := ed.AddPage(ctx, "flights")
			assert.NoError(t, err)
			assert.Equal(t, "go Flights", n.Data.Label)
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			ed.Select("payment")
		}()
	}
	wg.Wait()
	assert.Len(t, ed.Snapshot().Nodes, 50)

	n, err := ed.AddPage(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "1", n.ID, "empty key means home")

	_, err = ed.AddPage(ctx, "lounge")
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
	assert.Equal(t, "payment", ed.Selected())
}
