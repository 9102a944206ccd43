package handlers

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/omer-vishlitzky/assisted-test-infra/internal/config"
	"github.com/omer-vishlitzky/assisted-test-infra/internal/consts"
	"github.com/omer-vishlitzky/assisted-test-infra/internal/service"
)

// saveAndRestoreFactories saves and restores the handler factory variables.
func saveAndRestoreFactories(t *testing.T) {
	origLoadConfig := loadConfig
	origSaveConfig := saveConfig
	origNewClient := newClient
	origWaitForService := waitForService

	t.Cleanup(func() {
		loadConfig = origLoadConfig
		saveConfig = origSaveConfig
		newClient = origNewClient
		waitForService = origWaitForService
	})
}

// installFakes wires a mock client and in-memory config persistence into the
// handler seams, returning the mock and a pointer to the last saved config.
func installFakes(t *testing.T, cfg *config.InfraEnvConfig) (*service.MockClient, **config.InfraEnvConfig) {
	t.Helper()
	saveAndRestoreFactories(t)

	client := &service.MockClient{}
	var saved *config.InfraEnvConfig

	loadConfig = func(string) (*config.InfraEnvConfig, error) { return cfg, nil }
	saveConfig = func(_ string, c *config.InfraEnvConfig) error { saved = c; return nil }
	newClient = func(string, string, logr.Logger) service.InventoryClient { return client }
	waitForService = func(context.Context, string, string, logr.Logger) error { return nil }

	return client, &saved
}

func testConfig(t *testing.T) *config.InfraEnvConfig {
	t.Helper()
	return &config.InfraEnvConfig{
		EntityName:       "test-env",
		PullSecret:       "{}",
		OpenshiftVersion: "4.14",
		ISOImageType:     consts.ImageTypeFullISO,
		ISODownloadPath:  filepath.Join(t.TempDir(), "discovery.iso"),
		NodesCount:       1,
	}
}

func TestRegister_PersistsHandle(t *testing.T) {
	cfg := testConfig(t)
	cfg.SSHPublicKey = "ssh-rsa AAAA test@host"
	client, saved := installFakes(t, cfg)

	client.On("RegisterInfraEnv", mock.Anything, mock.Anything).
		Return(&service.InfraEnv{ID: "env-123"}, nil)

	require.NoError(t, Register(context.Background(), "infra-env.yaml", "http://svc", "", false))
	require.NotNil(t, *saved)
	assert.Equal(t, "env-123", (*saved).InfraEnvID)
}

func TestRegister_GeneratesSSHKeyWhenMissing(t *testing.T) {
	cfg := testConfig(t)
	client, _ := installFakes(t, cfg)

	client.On("RegisterInfraEnv", mock.Anything, mock.MatchedBy(func(params *service.InfraEnvCreateParams) bool {
		return strings.HasPrefix(params.SSHAuthorizedKey, "ssh-rsa ")
	})).Return(&service.InfraEnv{ID: "env-123"}, nil)

	require.NoError(t, Register(context.Background(), "infra-env.yaml", "http://svc", "", true))
	assert.True(t, strings.HasPrefix(cfg.SSHPublicKey, "ssh-rsa "))
	assert.NotContains(t, cfg.SSHPublicKey, "\n", "authorized_keys entry must be a single trimmed line")

	keyPath := filepath.Join(filepath.Dir(cfg.ISODownloadPath), "test-env-ssh-key")
	assert.FileExists(t, keyPath)
}

func TestRegister_KeepsConfiguredSSHKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.SSHPublicKey = "ssh-rsa CONFIGURED test@host"
	client, _ := installFakes(t, cfg)

	client.On("RegisterInfraEnv", mock.Anything, mock.MatchedBy(func(params *service.InfraEnvCreateParams) bool {
		return params.SSHAuthorizedKey == "ssh-rsa CONFIGURED test@host"
	})).Return(&service.InfraEnv{ID: "env-123"}, nil)

	require.NoError(t, Register(context.Background(), "infra-env.yaml", "http://svc", "", true))
	client.AssertExpectations(t)
}

func TestRegister_RegistrationFailureSkipsSave(t *testing.T) {
	cfg := testConfig(t)
	cfg.SSHPublicKey = "ssh-rsa AAAA test@host"
	client, saved := installFakes(t, cfg)

	client.On("RegisterInfraEnv", mock.Anything, mock.Anything).
		Return(nil, errors.New("service rejected the request"))

	err := Register(context.Background(), "infra-env.yaml", "http://svc", "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to register infra-env test-env")
	assert.Nil(t, *saved)
}

func TestRegister_ServiceUnreachable(t *testing.T) {
	cfg := testConfig(t)
	_, saved := installFakes(t, cfg)

	waitErr := errors.New("service never became ready")
	waitForService = func(context.Context, string, string, logr.Logger) error { return waitErr }

	err := Register(context.Background(), "infra-env.yaml", "http://svc", "", false)
	require.ErrorIs(t, err, waitErr)
	assert.Nil(t, *saved)
}
