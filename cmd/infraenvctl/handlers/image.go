package handlers

import (
	"context"
	"fmt"
)

// DownloadImage handles the image command.
func DownloadImage(ctx context.Context, configPath, serviceURL, authToken, isoPath string) error {
	cfg, entity, logger, err := setup(ctx, configPath, serviceURL, authToken)
	if err != nil {
		return err
	}

	downloadedTo, err := entity.DownloadImage(ctx, isoPath)
	if err != nil {
		return fmt.Errorf("failed to download discovery image: %w", err)
	}
	logger.Info("discovery image downloaded", "path", downloadedTo)

	// Static network generation may have populated the configuration.
	return saveConfig(configPath, cfg)
}
