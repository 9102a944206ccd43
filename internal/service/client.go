// Package service provides a client for the assisted installation service's
// REST API, covering the infra-env and host operations the test
// infrastructure drives.
package service

import "context"

// InfraEnvManager defines the lifecycle operations on infra-env resources.
type InfraEnvManager interface {
	// RegisterInfraEnv creates a new infra-env and returns its server-side
	// representation, including the assigned id.
	RegisterInfraEnv(ctx context.Context, params *InfraEnvCreateParams) (*InfraEnv, error)

	// UpdateInfraEnv applies a partial update and returns the updated
	// representation.
	UpdateInfraEnv(ctx context.Context, infraEnvID string, params *InfraEnvUpdateParams) (*InfraEnv, error)

	// GetInfraEnv fetches the full current representation.
	GetInfraEnv(ctx context.Context, infraEnvID string) (*InfraEnv, error)

	// DeregisterInfraEnv deletes the infra-env. Hosts registered under it
	// must be deregistered first.
	DeregisterInfraEnv(ctx context.Context, infraEnvID string) error
}

// HostManager defines the operations on hosts registered under an infra-env.
type HostManager interface {
	// ListHosts returns all hosts currently registered under the infra-env.
	ListHosts(ctx context.Context, infraEnvID string) ([]*Host, error)

	// UpdateHost applies a partial update to one host.
	UpdateHost(ctx context.Context, infraEnvID, hostID string, params *HostUpdateParams) error

	// UpdateHostInstallerArgs replaces the extra installer arguments passed
	// to coreos-installer for one host.
	UpdateHostInstallerArgs(ctx context.Context, infraEnvID, hostID string, args []string) error

	// BindHost binds a host to a cluster.
	BindHost(ctx context.Context, infraEnvID, hostID, clusterID string) error

	// UnbindHost releases a host from its cluster.
	UnbindHost(ctx context.Context, infraEnvID, hostID string) error

	// DeregisterHost removes a host from the infra-env.
	DeregisterHost(ctx context.Context, infraEnvID, hostID string) error
}

// FileDownloader defines retrieval of files the service exposes for an
// infra-env, including the discovery image itself.
type FileDownloader interface {
	// DownloadFile streams a named infra-env file to destPath.
	DownloadFile(ctx context.Context, infraEnvID, fileName, destPath string) error

	// DownloadFromURL streams an arbitrary URL (typically the infra-env's
	// download_url) to destPath. TLS verification is skipped when verifyTLS
	// is false.
	DownloadFromURL(ctx context.Context, url, destPath string, verifyTLS bool) (string, error)

	// GetDiscoveryIgnition returns the current discovery ignition document.
	GetDiscoveryIgnition(ctx context.Context, infraEnvID string) (string, error)

	// PatchDiscoveryIgnition overrides the discovery ignition document.
	PatchDiscoveryIgnition(ctx context.Context, infraEnvID, ignition string) error
}

// InventoryClient is the full client surface the test infrastructure uses.
type InventoryClient interface {
	InfraEnvManager
	HostManager
	FileDownloader
}
