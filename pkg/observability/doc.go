/*
Package observability turns editor lifecycle events into structured logs and
Prometheus metrics.

A Recorder is attached to an editor through stepflow.WithLifecycleHooks:

	rec := observability.NewRecorder(reg, logger)
	editor := stepflow.New(client, stepflow.WithLifecycleHooks(rec.Hooks()))
*/
package observability
