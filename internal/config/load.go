package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/omer-vishlitzky/assisted-test-infra/internal/consts"
)

// LoadFile reads and parses an infra-env configuration from a YAML file,
// applies defaults, and validates it.
func LoadFile(path string) (*InfraEnvConfig, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg InfraEnvConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveFile writes the configuration back to path. The harness uses this to
// keep the resource handle across CLI invocations.
func SaveFile(path string, cfg *InfraEnvConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func applyDefaults(cfg *InfraEnvConfig) {
	if cfg.EntityName == "" {
		cfg.EntityName = "infra-env-" + uuid.NewString()[:8]
	}
	if cfg.ISOImageType == "" {
		cfg.ISOImageType = consts.ImageTypeFullISO
	}
	if cfg.ISODownloadPath == "" {
		cfg.ISODownloadPath = fmt.Sprintf("/tmp/test_images/%s-discovery.iso", cfg.EntityName)
	}
	if cfg.NodesCount == 0 {
		cfg.NodesCount = 1
	}
}
