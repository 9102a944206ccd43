package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
)

// GetIgnition handles the ignition get command, printing the current
// discovery ignition document to out.
func GetIgnition(ctx context.Context, configPath, serviceURL, authToken string, out io.Writer) error {
	_, entity, _, err := setup(ctx, configPath, serviceURL, authToken)
	if err != nil {
		return err
	}

	ignition, err := entity.GetDiscoveryIgnition(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch discovery ignition: %w", err)
	}
	_, err = fmt.Fprintln(out, ignition)
	return err
}

// PatchIgnition handles the ignition patch command, overriding the
// discovery ignition with the contents of ignitionFile.
func PatchIgnition(ctx context.Context, configPath, serviceURL, authToken, ignitionFile string) error {
	_, entity, logger, err := setup(ctx, configPath, serviceURL, authToken)
	if err != nil {
		return err
	}

	// #nosec G304
	ignition, err := os.ReadFile(ignitionFile)
	if err != nil {
		return fmt.Errorf("failed to read ignition file: %w", err)
	}

	if err := entity.PatchDiscoveryIgnition(ctx, string(ignition)); err != nil {
		return fmt.Errorf("failed to patch discovery ignition: %w", err)
	}
	logger.Info("discovery ignition patched", "source", ignitionFile)
	return nil
}
