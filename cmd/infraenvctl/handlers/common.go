// Package handlers implements the command execution logic behind the
// infraenvctl CLI. Construction of collaborators goes through package-level
// factory variables so tests can substitute them.
package handlers

import (
	"context"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/mattn/go-isatty"

	"github.com/omer-vishlitzky/assisted-test-infra/internal/config"
	"github.com/omer-vishlitzky/assisted-test-infra/internal/infraenv"
	"github.com/omer-vishlitzky/assisted-test-infra/internal/nodes"
	"github.com/omer-vishlitzky/assisted-test-infra/internal/service"
	"github.com/omer-vishlitzky/assisted-test-infra/internal/util/retry"
)

// Factory function variables - can be replaced in tests.
var (
	loadConfig = config.LoadFile
	saveConfig = config.SaveFile

	newClient = func(serviceURL, authToken string, logger logr.Logger) service.InventoryClient {
		opts := []service.Option{service.WithLogger(logger)}
		if authToken != "" {
			opts = append(opts, service.WithAuthToken(authToken))
		}
		return service.NewRealClient(serviceURL, opts...)
	}

	// waitForService blocks until the service answers, with exponential
	// backoff. Test environments routinely race the service's startup.
	waitForService = func(ctx context.Context, serviceURL, authToken string, logger logr.Logger) error {
		opts := []service.Option{service.WithLogger(logger)}
		if authToken != "" {
			opts = append(opts, service.WithAuthToken(authToken))
		}
		client := service.NewRealClient(serviceURL, opts...)
		return retry.WithExponentialBackoff(ctx, func() error {
			return client.Ping(ctx)
		}, retry.WithMaxRetries(4))
	}
)

// newLogger builds the CLI logger: bare messages on a terminal, timestamped
// lines otherwise (CI logs).
func newLogger() logr.Logger {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		log.SetFlags(0)
	} else {
		log.SetFlags(log.LstdFlags)
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			log.Printf("%s: %s", prefix, args)
		} else {
			log.Print(args)
		}
	}, funcr.Options{})
}

// setup loads the configuration, waits for the service, and builds the
// entity bound to it.
func setup(ctx context.Context, configPath, serviceURL, authToken string) (*config.InfraEnvConfig, *infraenv.InfraEnv, logr.Logger, error) {
	logger := newLogger()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, logger, err
	}

	if err := waitForService(ctx, serviceURL, authToken, logger); err != nil {
		return nil, nil, logger, err
	}

	var machineNodes *nodes.Nodes
	if cfg.TerraformFolder != "" {
		machineNodes = nodes.New(nodes.NewTerraformController(cfg.TerraformFolder))
	}

	client := newClient(serviceURL, authToken, logger)
	entity := infraenv.New(client, cfg, machineNodes, logger)
	return cfg, entity, logger, nil
}

// optional returns a pointer to s, or nil for the empty string, so
// unset flags stay out of partial-update payloads.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
