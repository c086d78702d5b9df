package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/stepflow"
	"github.com/aretw0/stepflow/internal/config"
	"github.com/aretw0/stepflow/internal/logging"
	"github.com/aretw0/stepflow/pkg/catalog"
	"github.com/aretw0/stepflow/pkg/gateway"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stepflow",
	Short: "stepflow assembles UI test flows and submits them to an execution API",
	Long: `stepflow builds an ordered list of page navigation steps and posts it to a
Playwright-driving execution API. The API must answer GET /status before any
step can be added or executed.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("api-url", "", "Execution API base URL (overrides "+config.EnvAPIURL+")")
	rootCmd.PersistentFlags().String("catalog", "", "YAML page catalog (overrides "+config.EnvCatalog+")")
	rootCmd.PersistentFlags().String("env-file", ".env", "Dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("log-json", false, "Log as JSON lines")
}

// runtimeEnv is what every command needs to build an editor.
type runtimeEnv struct {
	cfg     config.Config
	catalog *catalog.Catalog
	logger  *slog.Logger
}

func loadRuntime(cmd *cobra.Command) (*runtimeEnv, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if url, _ := cmd.Flags().GetString("api-url"); url != "" {
		cfg.APIURL = url
	}
	if path, _ := cmd.Flags().GetString("catalog"); path != "" {
		cfg.CatalogPath = path
	}

	level := slog.LevelInfo
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}
	asJSON, _ := cmd.Flags().GetBool("log-json")
	logger := logging.NewWriter(os.Stderr, level, asJSON)

	pages := catalog.Default()
	if cfg.CatalogPath != "" {
		pages, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("Catalog loaded", "path", cfg.CatalogPath, "pages", pages.Len())
	}

	return &runtimeEnv{cfg: cfg, catalog: pages, logger: logger}, nil
}

// client builds the gateway client; reg may be nil when metrics are not exported.
func (e *runtimeEnv) client(reg prometheus.Registerer) *gateway.Client {
	opts := append(e.cfg.GatewayOptions(), gateway.WithLogger(e.logger))
	if reg != nil {
		opts = append(opts, gateway.WithMetrics(gateway.NewMetrics(reg)))
	}
	c := gateway.New(e.cfg.APIURL, opts...)
	e.logger.Debug("Gateway configured", "base_url", c.BaseURL(), "timeout", e.cfg.Timeout, "step_policy", e.cfg.StepPolicy.String())
	return c
}

func (e *runtimeEnv) editor(reg prometheus.Registerer, opts ...stepflow.Option) *stepflow.Editor {
	opts = append([]stepflow.Option{
		stepflow.WithCatalog(e.catalog),
		stepflow.WithLogger(e.logger),
	}, opts...)
	return stepflow.New(e.client(reg), opts...)
}
