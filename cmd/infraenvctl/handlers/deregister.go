package handlers

import (
	"context"
	"fmt"
)

// Deregister handles the deregister command. The cleared resource handle is
// written back to the configuration file on success.
func Deregister(ctx context.Context, configPath, serviceURL, authToken string, deregisterHosts bool) error {
	cfg, entity, logger, err := setup(ctx, configPath, serviceURL, authToken)
	if err != nil {
		return err
	}

	if err := entity.Deregister(ctx, deregisterHosts); err != nil {
		return fmt.Errorf("failed to deregister infra-env: %w", err)
	}
	logger.Info("infra-env deregistered", "name", cfg.EntityName)

	return saveConfig(configPath, cfg)
}
