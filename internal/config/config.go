// Package config defines the infra-env configuration record owned by the
// test infrastructure and its YAML loader.
package config

import (
	"fmt"

	"github.com/omer-vishlitzky/assisted-test-infra/internal/consts"
	"github.com/omer-vishlitzky/assisted-test-infra/internal/service"
)

// InfraEnvConfig holds the identifying and descriptive fields of one
// infra-env resource. It is owned exclusively by the entity instance bound
// to it and is mutated in place as remote operations succeed.
type InfraEnvConfig struct {
	// InfraEnvID is the server-assigned resource handle. Empty until the
	// infra-env is registered; cleared again on deregistration.
	InfraEnvID string `yaml:"infra_env_id"`

	// EntityName is the name the infra-env is registered under.
	EntityName string `yaml:"entity_name"`

	PullSecret       string `yaml:"pull_secret"`
	SSHPublicKey     string `yaml:"ssh_public_key"`
	OpenshiftVersion string `yaml:"openshift_version"`
	ClusterID        string `yaml:"cluster_id"`
	CPUArchitecture  string `yaml:"cpu_architecture"`

	// ISOImageType selects the discovery image flavor, "full-iso" or
	// "minimal-iso".
	ISOImageType    string `yaml:"iso_image_type"`
	ISODownloadPath string `yaml:"iso_download_path"`

	// VerifyDownloadTLS controls certificate verification when fetching the
	// discovery image.
	VerifyDownloadTLS bool `yaml:"verify_download_tls"`

	// IsStaticIP enables static network configuration generation for the
	// discovery image.
	IsStaticIP          bool                              `yaml:"is_static_ip"`
	StaticNetworkConfig []service.HostStaticNetworkConfig `yaml:"static_network_config"`

	// IgnitionConfigOverride, when present, is serialized to JSON and sent
	// as the discovery ignition override at registration time.
	IgnitionConfigOverride map[string]any `yaml:"ignition_config_override"`

	Proxy           *service.Proxy           `yaml:"proxy"`
	KernelArguments []service.KernelArgument `yaml:"kernel_arguments"`

	// HostInstallerArgs are extra coreos-installer arguments forwarded to
	// every host; when empty no installer-args update is issued.
	HostInstallerArgs []string `yaml:"host_installer_args"`

	// NodesCount is the number of hosts expected to register under this
	// infra-env.
	NodesCount int `yaml:"nodes_count"`

	// TerraformFolder points at the Terraform working directory the test
	// machines were created from; required for static-IP configurations.
	TerraformFolder string `yaml:"tf_folder"`
}

// Validate checks the fields required to register a new infra-env.
func (c *InfraEnvConfig) Validate() error {
	if c.EntityName == "" {
		return fmt.Errorf("entity_name is required")
	}
	if c.PullSecret == "" {
		return fmt.Errorf("pull_secret is required")
	}
	if c.OpenshiftVersion == "" {
		return fmt.Errorf("openshift_version is required")
	}
	switch c.ISOImageType {
	case consts.ImageTypeFullISO, consts.ImageTypeMinimalISO:
	default:
		return fmt.Errorf("iso_image_type must be %q or %q, got %q",
			consts.ImageTypeFullISO, consts.ImageTypeMinimalISO, c.ISOImageType)
	}
	return nil
}
