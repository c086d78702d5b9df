package domain

// DefaultFlowName is the name submitted with every flow unless configured otherwise.
const DefaultFlowName = "Playwright Flow"

// ExecutionStep is a single navigation derived from a node at submission time.
type ExecutionStep struct {
	ID     int    `json:"id"`
	Accion string `json:"accion"`
}

// ExecutionRequest is the body posted to the execute endpoint.
type ExecutionRequest struct {
	NameFlow string          `json:"nameFlow"`
	Steps    []ExecutionStep `json:"steps"`
}

// APIResponse is the body returned by both backend endpoints.
type APIResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
