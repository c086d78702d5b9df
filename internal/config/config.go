// Package config resolves the backend settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/stepflow/pkg/domain"
	"github.com/aretw0/stepflow/pkg/gateway"
	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvAPIURL     = "STEPFLOW_API_URL"
	EnvAPIHeaders = "STEPFLOW_API_HEADERS"
	EnvAPITimeout = "STEPFLOW_API_TIMEOUT"
	EnvFlowName   = "STEPFLOW_FLOW_NAME"
	EnvCatalog    = "STEPFLOW_CATALOG"
	EnvStepPolicy = "STEPFLOW_STEP_POLICY"
)

// DefaultAPIURL is used when no backend is configured.
const DefaultAPIURL = "http://localhost:3000"

// Config holds the settings shared by every command.
type Config struct {
	APIURL      string
	Headers     map[string]string
	Timeout     time.Duration
	FlowName    string
	CatalogPath string
	StepPolicy  gateway.StepPolicy
}

// Load reads .env files (missing files are fine) and then the process environment.
// Variables already set in the environment win over .env entries.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		APIURL:      getenv(EnvAPIURL),
		Timeout:     gateway.DefaultTimeout,
		FlowName:    getenv(EnvFlowName),
		CatalogPath: getenv(EnvCatalog),
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.FlowName == "" {
		cfg.FlowName = domain.DefaultFlowName
	}

	headers, err := ParseHeaders(getenv(EnvAPIHeaders))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvAPIHeaders, err)
	}
	cfg.Headers = headers

	if v := getenv(EnvAPITimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvAPITimeout, err)
		}
		cfg.Timeout = d
	}

	policy, ok := gateway.ParseStepPolicy(getenv(EnvStepPolicy))
	if !ok {
		return Config{}, fmt.Errorf("%s: unknown policy %q", EnvStepPolicy, getenv(EnvStepPolicy))
	}
	cfg.StepPolicy = policy

	return cfg, nil
}

// ParseHeaders reads "Key=Value,Key2=Value2".
func ParseHeaders(s string) (map[string]string, error) {
	headers := make(map[string]string)
	if strings.TrimSpace(s) == "" {
		return headers, nil
	}
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("malformed header %q", pair)
		}
		headers[k] = strings.TrimSpace(v)
	}
	return headers, nil
}

// GatewayOptions translates the config into gateway client options.
func (c Config) GatewayOptions() []gateway.Option {
	return []gateway.Option{
		gateway.WithTimeout(c.Timeout),
		gateway.WithHeaders(c.Headers),
		gateway.WithFlowName(c.FlowName),
		gateway.WithStepPolicy(c.StepPolicy),
	}
}
