package gateway

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/stepflow/pkg/domain"
)

// StepPolicy decides what happens to nodes that cannot become steps.
type StepPolicy int

const (
	// FailFast aborts the whole submission on the first malformed node.
	FailFast StepPolicy = iota
	// SkipMalformed drops malformed nodes and submits the rest.
	SkipMalformed
)

// String implements fmt.Stringer.
func (p StepPolicy) String() string {
	switch p {
	case SkipMalformed:
		return "skip"
	default:
		return "fail-fast"
	}
}

// ParseStepPolicy maps "fail-fast" or "skip" to a policy.
func ParseStepPolicy(s string) (StepPolicy, bool) {
	switch s {
	case "", "fail-fast":
		return FailFast, true
	case "skip":
		return SkipMalformed, true
	}
	return FailFast, false
}

// ToStep converts a node into an execution step.
func ToStep(n domain.Node) (domain.ExecutionStep, error) {
	id, err := strconv.Atoi(n.ID)
	if err != nil {
		return domain.ExecutionStep{}, &domain.MalformedStepError{NodeID: n.ID, Label: n.Data.Label, Reason: "id is not numeric"}
	}
	action, ok := strings.CutPrefix(n.Data.Label, domain.LabelPrefix)
	if !ok {
		return domain.ExecutionStep{}, &domain.MalformedStepError{NodeID: n.ID, Label: n.Data.Label, Reason: "label lacks the " + strconv.Quote(domain.LabelPrefix) + " prefix"}
	}
	return domain.ExecutionStep{ID: id, Accion: action}, nil
}

// BuildRequest maps nodes to steps in collection order.
// Under SkipMalformed the skipped nodes are logged and never returned as an error.
func BuildRequest(flowName string, nodes []domain.Node, policy StepPolicy, logger *slog.Logger) (domain.ExecutionRequest, error) {
	req := domain.ExecutionRequest{
		NameFlow: flowName,
		Steps:    make([]domain.ExecutionStep, 0, len(nodes)),
	}
	for _, n := range nodes {
		step, err := ToStep(n)
		if err != nil {
			if policy == SkipMalformed {
				if logger != nil {
					logger.Warn("Skipping malformed node", "node_id", n.ID, "error", err)
				}
				continue
			}
			return domain.ExecutionRequest{}, err
		}
		req.Steps = append(req.Steps, step)
	}
	return req, nil
}
