package gateway

import (
	"sync"

	"github.com/aretw0/stepflow/pkg/domain"
)

// Gate guards graph edits and execution behind a successful status check.
// It starts Locked and only ever moves to Unlocked.
type Gate struct {
	mu    sync.RWMutex
	state domain.GateState
}

// NewGate returns a locked gate.
func NewGate() *Gate {
	return &Gate{state: domain.GateLocked}
}

// State returns the current gate state.
func (g *Gate) State() domain.GateState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Unlocked reports whether edits and execution are allowed.
func (g *Gate) Unlocked() bool {
	return g.State() == domain.GateUnlocked
}

// Observe feeds an outcome into the gate and returns the resulting state.
// Only a ready status check unlocks. Failures never relock.
func (g *Gate) Observe(o domain.Outcome) domain.GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	if o.Status == domain.OutcomeReady {
		g.state = domain.GateUnlocked
	}
	return g.state
}
