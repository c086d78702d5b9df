package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/stepflow"
	"github.com/aretw0/stepflow/internal/presentation/tui"
	httpAdapter "github.com/aretw0/stepflow/pkg/adapters/http"
	"github.com/aretw0/stepflow/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP editor API",
	Long:  `Starts a JSON API over HTTP that edits one shared flow graph and relays it to the execution API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		port, _ := cmd.Flags().GetString("port")

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		rec := observability.NewRecorder(reg, env.logger)
		handler := httpAdapter.NewHandler(env.editor(reg, stepflow.WithLifecycleHooks(rec.Hooks())),
			httpAdapter.WithGatherer(reg),
			httpAdapter.WithLogger(env.logger),
		)

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			tui.PrintBanner(os.Stderr)
			env.logger.Info("Starting stepflow server", "address", srv.Addr, "api_url", env.cfg.APIURL)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			env.logger.Info("Start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				env.logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			env.logger.Info("stepflow server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
