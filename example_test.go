package stepflow_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/aretw0/stepflow"
	"github.com/aretw0/stepflow/pkg/domain"
	"github.com/aretw0/stepflow/pkg/gateway"
)

// ExampleEditor shows the full validate, edit, execute cycle against a local backend.
func ExampleEditor() {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/status":
			json.NewEncoder(w).Encode(domain.APIResponse{Message: "API OK"})
		case "/execute":
			var req domain.ExecutionRequest
			json.NewDecoder(r.Body).Decode(&req)
			json.NewEncoder(w).Encode(domain.APIResponse{Message: fmt.Sprintf("%s: %d steps", req.NameFlow, len(req.Steps))})
		}
	}))
	defer backend.Close()

	ctx := context.Background()
	ed := stepflow.New(gateway.New(backend.URL))

	fmt.Println(ed.CheckStatus(ctx).Notification.Title)

	for _, key := range []string{"flights", "seats"} {
		ed.Select(key)
		if _, err := ed.AddNode(ctx); err != nil {
			fmt.Println(err)
			return
		}
	}

	out, _ := ed.Execute(ctx)
	fmt.Println(out.Notification.Title)
	fmt.Println(out.Request.Steps)

	// Output:
	// API OK
	// Playwright Flow: 2 steps
	// [{2 Flights} {5 Seats}]
}
