package handlers

import (
	"context"
)

// WaitDiscovered handles the wait command. A nodesCount of 0 falls back to
// the configured expected host count.
func WaitDiscovered(ctx context.Context, configPath, serviceURL, authToken string, nodesCount int, allowInsufficient bool) error {
	cfg, entity, logger, err := setup(ctx, configPath, serviceURL, authToken)
	if err != nil {
		return err
	}

	if nodesCount == 0 {
		nodesCount = cfg.NodesCount
	}

	logger.Info("waiting for host discovery", "expected", nodesCount, "allow_insufficient", allowInsufficient)
	if err := entity.WaitUntilHostsAreDiscovered(ctx, nodesCount, allowInsufficient); err != nil {
		return err
	}
	logger.Info("all expected hosts discovered", "count", nodesCount)
	return nil
}
