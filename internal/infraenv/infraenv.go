// Package infraenv implements the InfraEnv entity: a stateful proxy binding
// a local configuration record to one infra-env resource on the assisted
// service. All hard logic (HTTP semantics, polling, static network
// generation) lives in collaborators; the entity composes them.
package infraenv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/omer-vishlitzky/assisted-test-infra/internal/config"
	"github.com/omer-vishlitzky/assisted-test-infra/internal/consts"
	"github.com/omer-vishlitzky/assisted-test-infra/internal/nodes"
	"github.com/omer-vishlitzky/assisted-test-infra/internal/service"
	"github.com/omer-vishlitzky/assisted-test-infra/internal/staticnetwork"
	"github.com/omer-vishlitzky/assisted-test-infra/internal/waiting"
)

// ErrNotRegistered is returned by operations that need a server-side handle
// before the infra-env has been registered (or after deregistration).
var ErrNotRegistered = errors.New("infra-env is not registered")

// Seams replaced in tests.
var (
	generateStaticNetworkConfig = staticnetwork.GenerateFromTerraform
	waitUntilAllHostsInStatuses = waiting.UntilAllHostsInStatuses
)

// InfraEnv drives one infra-env resource. The entity owns its configuration
// record exclusively and mutates it only on successful remote operations.
// It is not safe for concurrent use; the surrounding harness serializes
// access.
type InfraEnv struct {
	client service.InventoryClient
	config *config.InfraEnvConfig
	nodes  *nodes.Nodes
	log    logr.Logger
}

// New creates an entity bound to cfg. nodes may be nil when no machine
// controller is involved (e.g. pure API tests).
func New(client service.InventoryClient, cfg *config.InfraEnvConfig, machineNodes *nodes.Nodes, log logr.Logger) *InfraEnv {
	return &InfraEnv{
		client: client,
		config: cfg,
		nodes:  machineNodes,
		log:    log,
	}
}

// ID returns the resource handle, empty while unregistered.
func (e *InfraEnv) ID() string {
	return e.config.InfraEnvID
}

func (e *InfraEnv) requireID() (string, error) {
	if e.config.InfraEnvID == "" {
		return "", ErrNotRegistered
	}
	return e.config.InfraEnvID, nil
}

// Register creates the infra-env from the configuration record and stores
// the returned id as the resource handle. Optional fields are included in
// the payload only when configured. Transport failures propagate unchanged;
// there are no retries.
func (e *InfraEnv) Register(ctx context.Context) (string, error) {
	params := &service.InfraEnvCreateParams{
		Name:             e.config.EntityName,
		PullSecret:       e.config.PullSecret,
		SSHAuthorizedKey: e.config.SSHPublicKey,
		OpenshiftVersion: e.config.OpenshiftVersion,
	}

	if e.config.ClusterID != "" {
		clusterID := e.config.ClusterID
		params.ClusterID = &clusterID
	}
	if e.config.StaticNetworkConfig != nil {
		params.StaticNetworkConfig = e.config.StaticNetworkConfig
	}
	if len(e.config.IgnitionConfigOverride) > 0 {
		override, err := json.Marshal(e.config.IgnitionConfigOverride)
		if err != nil {
			return "", fmt.Errorf("failed to serialize ignition config override: %w", err)
		}
		params.IgnitionConfigOverride = string(override)
	}
	if e.config.Proxy != nil {
		params.Proxy = e.config.Proxy
	}
	if e.config.ISOImageType != "" {
		params.ImageType = e.config.ISOImageType
	}
	if e.config.KernelArguments != nil {
		params.KernelArguments = e.config.KernelArguments
	}
	if e.config.CPUArchitecture != "" {
		params.CPUArchitecture = e.config.CPUArchitecture
	}

	infraEnv, err := e.client.RegisterInfraEnv(ctx, params)
	if err != nil {
		return "", err
	}
	e.config.InfraEnvID = infraEnv.ID
	return infraEnv.ID, nil
}

// UpdateExisting re-applies the configured image type to an already
// registered infra-env and returns its id.
//
// Known caveat: a partial update may leave other server-side defaults in
// place, so the remote resource is not guaranteed to fully match the local
// configuration afterwards.
func (e *InfraEnv) UpdateExisting(ctx context.Context) (string, error) {
	id, err := e.requireID()
	if err != nil {
		return "", err
	}
	imageType := e.config.ISOImageType
	if _, err := e.client.UpdateInfraEnv(ctx, id, &service.InfraEnvUpdateParams{ImageType: &imageType}); err != nil {
		return "", err
	}
	return id, nil
}

// ISODownloadPath resolves the destination for the discovery image; an
// explicit argument overrides the configured path.
func (e *InfraEnv) ISODownloadPath(override string) string {
	if override != "" {
		return override
	}
	return e.config.ISODownloadPath
}

// DownloadImage fetches the discovery image to the resolved path and
// returns that path. It synchronizes static network configuration first and
// announces the chosen path to the machine controller.
func (e *InfraEnv) DownloadImage(ctx context.Context, isoDownloadPath string) (string, error) {
	id, err := e.requireID()
	if err != nil {
		return "", err
	}

	details, err := e.client.GetInfraEnv(ctx, id)
	if err != nil {
		return "", err
	}
	if details.DownloadURL == "" {
		return "", fmt.Errorf("infra-env %s has no download URL", id)
	}

	downloadPath := e.ISODownloadPath(isoDownloadPath)
	if err := ensureDir(downloadPath); err != nil {
		return "", err
	}

	if err := e.updateStaticNetwork(ctx); err != nil {
		return "", err
	}

	if e.nodes != nil {
		e.nodes.Controller().SetDownloadPath(downloadPath)
	}

	e.log.Info("downloading discovery image", "url", details.DownloadURL, "path", downloadPath)
	return e.client.DownloadFromURL(ctx, details.DownloadURL, downloadPath, e.config.VerifyDownloadTLS)
}

// DownloadFile fetches a named infra-env file to filePath.
func (e *InfraEnv) DownloadFile(ctx context.Context, fileName, filePath string) error {
	id, err := e.requireID()
	if err != nil {
		return err
	}

	e.log.Info("downloading infra-env file", "file_name", fileName, "path", filePath)
	if err := ensureDir(filePath); err != nil {
		return err
	}
	return e.client.DownloadFile(ctx, id, fileName, filePath)
}

// WaitUntilHostsAreDiscovered blocks until nodesCount hosts report
// known-unbound (or also insufficient-unbound when allowInsufficient is
// set), or fails with a timeout.
func (e *InfraEnv) WaitUntilHostsAreDiscovered(ctx context.Context, nodesCount int, allowInsufficient bool) error {
	id, err := e.requireID()
	if err != nil {
		return err
	}

	statuses := []string{consts.HostStatusKnownUnbound}
	if allowInsufficient {
		statuses = append(statuses, consts.HostStatusInsufficientUnbound)
	}
	return waitUntilAllHostsInStatuses(ctx, e.client, id, nodesCount, statuses,
		waiting.WithTimeout(consts.NodesRegisteredTimeout),
		waiting.WithLogger(e.log))
}

// UpdateHost forwards a partial host update; absent fields are omitted from
// the request, never sent as empty values.
func (e *InfraEnv) UpdateHost(ctx context.Context, hostID string, params *service.HostUpdateParams) error {
	id, err := e.requireID()
	if err != nil {
		return err
	}
	return e.client.UpdateHost(ctx, id, hostID, params)
}

// UpdateHostInstallerArgs forwards the configured installer arguments to one
// host. It is a no-op when none are configured.
func (e *InfraEnv) UpdateHostInstallerArgs(ctx context.Context, hostID string) error {
	if len(e.config.HostInstallerArgs) == 0 {
		return nil
	}
	id, err := e.requireID()
	if err != nil {
		return err
	}

	e.log.Info("updating host installer args", "host_id", hostID, "args", e.config.HostInstallerArgs)
	return e.client.UpdateHostInstallerArgs(ctx, id, hostID, e.config.HostInstallerArgs)
}

// BindHost binds a host to a cluster.
func (e *InfraEnv) BindHost(ctx context.Context, hostID, clusterID string) error {
	id, err := e.requireID()
	if err != nil {
		return err
	}
	return e.client.BindHost(ctx, id, hostID, clusterID)
}

// UnbindHost releases a host from its cluster.
func (e *InfraEnv) UnbindHost(ctx context.Context, hostID string) error {
	id, err := e.requireID()
	if err != nil {
		return err
	}
	return e.client.UnbindHost(ctx, id, hostID)
}

// DeleteHost deregisters a host from the infra-env.
func (e *InfraEnv) DeleteHost(ctx context.Context, hostID string) error {
	id, err := e.requireID()
	if err != nil {
		return err
	}
	return e.client.DeregisterHost(ctx, id, hostID)
}

// GetDiscoveryIgnition returns the current discovery ignition document.
func (e *InfraEnv) GetDiscoveryIgnition(ctx context.Context) (string, error) {
	id, err := e.requireID()
	if err != nil {
		return "", err
	}
	return e.client.GetDiscoveryIgnition(ctx, id)
}

// PatchDiscoveryIgnition overrides the discovery ignition document.
func (e *InfraEnv) PatchDiscoveryIgnition(ctx context.Context, ignition string) error {
	id, err := e.requireID()
	if err != nil {
		return err
	}
	return e.client.PatchDiscoveryIgnition(ctx, id, ignition)
}

// GetDetails fetches the full current remote representation.
func (e *InfraEnv) GetDetails(ctx context.Context) (*service.InfraEnv, error) {
	id, err := e.requireID()
	if err != nil {
		return nil, err
	}
	return e.client.GetInfraEnv(ctx, id)
}

// UpdateProxy stores the proxy settings locally and pushes only the proxy
// field to the remote resource.
func (e *InfraEnv) UpdateProxy(ctx context.Context, proxy *service.Proxy) error {
	id, err := e.requireID()
	if err != nil {
		return err
	}
	e.config.Proxy = proxy
	_, err = e.client.UpdateInfraEnv(ctx, id, &service.InfraEnvUpdateParams{Proxy: proxy})
	return err
}

// UpdateKernelArguments stores the kernel arguments locally and pushes only
// that field to the remote resource.
func (e *InfraEnv) UpdateKernelArguments(ctx context.Context, kernelArguments []service.KernelArgument) error {
	id, err := e.requireID()
	if err != nil {
		return err
	}
	e.config.KernelArguments = kernelArguments
	_, err = e.client.UpdateInfraEnv(ctx, id, &service.InfraEnvUpdateParams{KernelArguments: kernelArguments})
	return err
}

// UpdateStaticNetworkConfig stores the static network configuration locally
// and pushes only that field to the remote resource.
func (e *InfraEnv) UpdateStaticNetworkConfig(ctx context.Context, staticNetworkConfig []service.HostStaticNetworkConfig) error {
	id, err := e.requireID()
	if err != nil {
		return err
	}
	e.config.StaticNetworkConfig = staticNetworkConfig
	_, err = e.client.UpdateInfraEnv(ctx, id, &service.InfraEnvUpdateParams{StaticNetworkConfig: staticNetworkConfig})
	return err
}

// SelectHostInstallationDisk forwards a disk-selection request for one host.
func (e *InfraEnv) SelectHostInstallationDisk(ctx context.Context, hostID string, diskPaths []service.DiskConfigParams) error {
	id, err := e.requireID()
	if err != nil {
		return err
	}
	return e.client.UpdateHost(ctx, id, hostID, &service.HostUpdateParams{DisksSelectedConfig: diskPaths})
}

// Deregister removes the infra-env. With deregisterHosts set it first
// deregisters every listed host, sequentially and without rollback; a
// failure aborts the remaining deregistrations and the caller must treat the
// cleanup as incomplete. The local handle is cleared only after the
// resource-level call succeeds.
func (e *InfraEnv) Deregister(ctx context.Context, deregisterHosts bool) error {
	id, err := e.requireID()
	if err != nil {
		return err
	}

	e.log.Info("deregistering infra-env", "infra_env_id", id)
	if deregisterHosts {
		hosts, err := e.client.ListHosts(ctx, id)
		if err != nil {
			return err
		}
		for _, host := range hosts {
			e.log.Info("deregistering infra-env host", "host_id", host.ID)
			if err := e.client.DeregisterHost(ctx, id, host.ID); err != nil {
				return err
			}
		}
	}

	if err := e.client.DeregisterInfraEnv(ctx, id); err != nil {
		return err
	}
	e.config.InfraEnvID = ""
	return nil
}

// updateStaticNetwork pushes the static network configuration to the remote
// resource, generating it from the machine topology first when none exists
// yet. It is a no-op for non-static configurations.
func (e *InfraEnv) updateStaticNetwork(ctx context.Context) error {
	if !e.config.IsStaticIP {
		return nil
	}
	id, err := e.requireID()
	if err != nil {
		return err
	}

	if e.config.StaticNetworkConfig == nil {
		e.log.Info("no static network configuration found, generating new network configurations")
		if e.nodes == nil {
			return fmt.Errorf("static network generation requires a machine controller")
		}
		staticNetworkConfig, err := generateStaticNetworkConfig(e.nodes.Controller().TerraformFolder(), e.config)
		if err != nil {
			return fmt.Errorf("failed to generate static network config: %w", err)
		}
		e.config.StaticNetworkConfig = staticNetworkConfig
	}

	e.log.Info("updating infra-env static network configuration", "infra_env_id", id)
	if _, err := e.client.UpdateInfraEnv(ctx, id, &service.InfraEnvUpdateParams{
		StaticNetworkConfig: e.config.StaticNetworkConfig,
	}); err != nil {
		return err
	}
	e.log.Info("infra-env static network configuration successfully updated",
		"infra_env_id", id, "hosts", len(e.config.StaticNetworkConfig))
	return nil
}

// ensureDir creates the destination's parent directory if absent. Existing
// directories and their contents are left untouched.
func ensureDir(destPath string) error {
	dir := filepath.Dir(destPath)
	if _, err := os.Stat(dir); err == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
