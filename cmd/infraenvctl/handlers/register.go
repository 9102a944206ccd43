package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/omer-vishlitzky/assisted-test-infra/internal/util/keygen"
)

// Register handles the register command.
//
// It registers a new infra-env from the configuration file and writes the
// assigned resource id back into the file. With generateSSHKey set and no
// configured public key, a discovery key pair is generated first.
func Register(ctx context.Context, configPath, serviceURL, authToken string, generateSSHKey bool) error {
	cfg, entity, logger, err := setup(ctx, configPath, serviceURL, authToken)
	if err != nil {
		return err
	}

	if cfg.SSHPublicKey == "" && generateSSHKey {
		keyPair, err := keygen.GenerateRSAKeyPair(keygen.DefaultBits)
		if err != nil {
			return err
		}
		keyDir := filepath.Dir(cfg.ISODownloadPath)
		if err := os.MkdirAll(keyDir, 0o755); err != nil {
			return fmt.Errorf("failed to create key directory %s: %w", keyDir, err)
		}
		privateKeyPath := filepath.Join(keyDir, cfg.EntityName+"-ssh-key")
		if err := keyPair.SavePrivateKey(privateKeyPath); err != nil {
			return err
		}
		cfg.SSHPublicKey = strings.TrimSpace(string(keyPair.PublicKey))
		logger.Info("generated discovery SSH key pair", "private_key", privateKeyPath)
	}

	infraEnvID, err := entity.Register(ctx)
	if err != nil {
		return fmt.Errorf("failed to register infra-env %s: %w", cfg.EntityName, err)
	}
	logger.Info("registered infra-env", "name", cfg.EntityName, "infra_env_id", infraEnvID)

	return saveConfig(configPath, cfg)
}
