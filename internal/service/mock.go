package service

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient is a testify-based mock implementation of InventoryClient.
type MockClient struct {
	mock.Mock
}

var _ InventoryClient = (*MockClient)(nil)

func (m *MockClient) RegisterInfraEnv(ctx context.Context, params *InfraEnvCreateParams) (*InfraEnv, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*InfraEnv), args.Error(1)
}

func (m *MockClient) UpdateInfraEnv(ctx context.Context, infraEnvID string, params *InfraEnvUpdateParams) (*InfraEnv, error) {
	args := m.Called(ctx, infraEnvID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*InfraEnv), args.Error(1)
}

func (m *MockClient) GetInfraEnv(ctx context.Context, infraEnvID string) (*InfraEnv, error) {
	args := m.Called(ctx, infraEnvID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*InfraEnv), args.Error(1)
}

func (m *MockClient) DeregisterInfraEnv(ctx context.Context, infraEnvID string) error {
	args := m.Called(ctx, infraEnvID)
	return args.Error(0)
}

func (m *MockClient) ListHosts(ctx context.Context, infraEnvID string) ([]*Host, error) {
	args := m.Called(ctx, infraEnvID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Host), args.Error(1)
}

func (m *MockClient) UpdateHost(ctx context.Context, infraEnvID, hostID string, params *HostUpdateParams) error {
	args := m.Called(ctx, infraEnvID, hostID, params)
	return args.Error(0)
}

func (m *MockClient) UpdateHostInstallerArgs(ctx context.Context, infraEnvID, hostID string, installerArgs []string) error {
	args := m.Called(ctx, infraEnvID, hostID, installerArgs)
	return args.Error(0)
}

func (m *MockClient) BindHost(ctx context.Context, infraEnvID, hostID, clusterID string) error {
	args := m.Called(ctx, infraEnvID, hostID, clusterID)
	return args.Error(0)
}

func (m *MockClient) UnbindHost(ctx context.Context, infraEnvID, hostID string) error {
	args := m.Called(ctx, infraEnvID, hostID)
	return args.Error(0)
}

func (m *MockClient) DeregisterHost(ctx context.Context, infraEnvID, hostID string) error {
	args := m.Called(ctx, infraEnvID, hostID)
	return args.Error(0)
}

func (m *MockClient) DownloadFile(ctx context.Context, infraEnvID, fileName, destPath string) error {
	args := m.Called(ctx, infraEnvID, fileName, destPath)
	return args.Error(0)
}

func (m *MockClient) DownloadFromURL(ctx context.Context, url, destPath string, verifyTLS bool) (string, error) {
	args := m.Called(ctx, url, destPath, verifyTLS)
	return args.String(0), args.Error(1)
}

func (m *MockClient) GetDiscoveryIgnition(ctx context.Context, infraEnvID string) (string, error) {
	args := m.Called(ctx, infraEnvID)
	return args.String(0), args.Error(1)
}

func (m *MockClient) PatchDiscoveryIgnition(ctx context.Context, infraEnvID, ignition string) error {
	args := m.Called(ctx, infraEnvID, ignition)
	return args.Error(0)
}
