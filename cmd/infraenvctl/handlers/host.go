package handlers

import (
	"context"
	"fmt"

	"github.com/omer-vishlitzky/assisted-test-infra/internal/service"
)

// UpdateHost handles the host update command. Empty role/name flags are
// omitted from the request.
func UpdateHost(ctx context.Context, configPath, serviceURL, authToken, hostID, hostRole, hostName string) error {
	_, entity, logger, err := setup(ctx, configPath, serviceURL, authToken)
	if err != nil {
		return err
	}

	params := &service.HostUpdateParams{
		HostRole: optional(hostRole),
		HostName: optional(hostName),
	}
	if err := entity.UpdateHost(ctx, hostID, params); err != nil {
		return fmt.Errorf("failed to update host %s: %w", hostID, err)
	}
	logger.Info("host updated", "host_id", hostID)
	return nil
}

// UpdateHostInstallerArgs handles the host installer-args command.
func UpdateHostInstallerArgs(ctx context.Context, configPath, serviceURL, authToken, hostID string) error {
	_, entity, _, err := setup(ctx, configPath, serviceURL, authToken)
	if err != nil {
		return err
	}
	return entity.UpdateHostInstallerArgs(ctx, hostID)
}

// BindHost handles the host bind command.
func BindHost(ctx context.Context, configPath, serviceURL, authToken, hostID, clusterID string) error {
	_, entity, logger, err := setup(ctx, configPath, serviceURL, authToken)
	if err != nil {
		return err
	}
	if err := entity.BindHost(ctx, hostID, clusterID); err != nil {
		return fmt.Errorf("failed to bind host %s: %w", hostID, err)
	}
	logger.Info("host bound", "host_id", hostID, "cluster_id", clusterID)
	return nil
}

// UnbindHost handles the host unbind command.
func UnbindHost(ctx context.Context, configPath, serviceURL, authToken, hostID string) error {
	_, entity, logger, err := setup(ctx, configPath, serviceURL, authToken)
	if err != nil {
		return err
	}
	if err := entity.UnbindHost(ctx, hostID); err != nil {
		return fmt.Errorf("failed to unbind host %s: %w", hostID, err)
	}
	logger.Info("host unbound", "host_id", hostID)
	return nil
}

// DeleteHost handles the host delete command.
func DeleteHost(ctx context.Context, configPath, serviceURL, authToken, hostID string) error {
	_, entity, logger, err := setup(ctx, configPath, serviceURL, authToken)
	if err != nil {
		return err
	}
	if err := entity.DeleteHost(ctx, hostID); err != nil {
		return fmt.Errorf("failed to delete host %s: %w", hostID, err)
	}
	logger.Info("host deregistered", "host_id", hostID)
	return nil
}
