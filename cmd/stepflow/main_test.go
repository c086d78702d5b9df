package main

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/aretw0/stepflow"
	"github.com/aretw0/stepflow/internal/testutils"
	"github.com/aretw0/stepflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--env-file", "testdata-missing.env"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "stepflow version "+stepflow.Version+"\n", out)
}

func TestCatalogCommand(t *testing.T) {
	out, err := execute(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "| `flights` | 2 | Flights | Flights Page |")
}

func TestRunCommand_DryRun(t *testing.T) {
	out, err := execute(t, "run", "home", "seats", "--dry-run", "--mermaid")
	require.NoError(t, err)
	assert.Contains(t, out, "n1 --> n5")
	assert.Contains(t, out, "1. **Home** (page 1)")
	assert.Contains(t, out, "2. **Seats** (page 5)")
}

func TestRunCommand_UnknownPage(t *testing.T) {
	_, err := execute(t, "run", "home", "lounge", "--dry-run=false", "--mermaid=false")
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
}

func TestRunCommand_Submits(t *testing.T) {
	backend := testutils.NewBackend(t, http.StatusOK, http.StatusOK)

	out, err := execute(t, "run", "flights", "payment", "--api-url", backend.URL, "--dry-run=false", "--mermaid=false")
	require.NoError(t, err)
	assert.Contains(t, out, testutils.StatusMessage)
	assert.Contains(t, out, testutils.ExecuteMessage)
	assert.Equal(t, &domain.ExecutionRequest{
		NameFlow: domain.DefaultFlowName,
		Steps:    []domain.ExecutionStep{{ID: 2, Accion: "Flights"}, {ID: 6, Accion: "Payment"}},
	}, backend.LastRequest())
}

func TestStatusCommand_Unavailable(t *testing.T) {
	backend := testutils.NewBackend(t, http.StatusInternalServerError, http.StatusOK)

	out, err := execute(t, "status", "--api-url", backend.URL)
	assert.ErrorIs(t, err, errAPIUnavailable)
	assert.Contains(t, out, "an error occurred while validating the API.")
}
