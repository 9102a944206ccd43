package service

import "time"

// InfraEnv is the service-side representation of a discovery boot
// environment. Field names follow the assisted-service v2 wire format.
type InfraEnv struct {
	ID                     string           `json:"id"`
	Name                   string           `json:"name"`
	Href                   string           `json:"href,omitempty"`
	Kind                   string           `json:"kind,omitempty"`
	ClusterID              string           `json:"cluster_id,omitempty"`
	OpenshiftVersion       string           `json:"openshift_version,omitempty"`
	CPUArchitecture        string           `json:"cpu_architecture,omitempty"`
	SSHAuthorizedKey       string           `json:"ssh_authorized_key,omitempty"`
	Type                   string           `json:"type,omitempty"`
	DownloadURL            string           `json:"download_url,omitempty"`
	Proxy                  *Proxy           `json:"proxy,omitempty"`
	KernelArguments        []KernelArgument `json:"kernel_arguments,omitempty"`
	StaticNetworkConfig    string           `json:"static_network_config,omitempty"`
	IgnitionConfigOverride string           `json:"ignition_config_override,omitempty"`
	CreatedAt              time.Time        `json:"created_at,omitempty"`
	UpdatedAt              time.Time        `json:"updated_at,omitempty"`
	ExpiresAt              time.Time        `json:"expires_at,omitempty"`
}

// Host is a machine registered under an infra-env, addressed by id.
type Host struct {
	ID                string `json:"id"`
	InfraEnvID        string `json:"infra_env_id,omitempty"`
	ClusterID         string `json:"cluster_id,omitempty"`
	Status            string `json:"status"`
	StatusInfo        string `json:"status_info,omitempty"`
	Role              string `json:"role,omitempty"`
	RequestedHostname string `json:"requested_hostname,omitempty"`
	Inventory         string `json:"inventory,omitempty"`
}

// Proxy carries the proxy settings delivered to discovered hosts.
type Proxy struct {
	HTTPProxy  string `json:"http_proxy,omitempty"`
	HTTPSProxy string `json:"https_proxy,omitempty"`
	NoProxy    string `json:"no_proxy,omitempty"`
}

// KernelArgument is a single kernel command line modification applied to the
// discovery image.
type KernelArgument struct {
	Operation string `json:"operation"` // "append", "replace" or "delete"
	Value     string `json:"value"`
}

// MacInterfaceMapItems maps a host NIC MAC address to the logical interface
// name used inside a static network document.
type MacInterfaceMapItems struct {
	MacAddress     string `json:"mac_address"`
	LogicalNicName string `json:"logical_nic_name"`
}

// HostStaticNetworkConfig is the static network configuration of one host:
// an NMState YAML document plus the MAC to interface-name mapping needed to
// apply it on the right NICs.
type HostStaticNetworkConfig struct {
	NetworkYaml     string                 `json:"network_yaml"`
	MacInterfaceMap []MacInterfaceMapItems `json:"mac_interface_map"`
}

// InfraEnvCreateParams is the payload for registering a new infra-env.
// Optional fields are pointers or nilable slices and are omitted from the
// request when unset.
type InfraEnvCreateParams struct {
	Name                   string                    `json:"name"`
	PullSecret             string                    `json:"pull_secret"`
	SSHAuthorizedKey       string                    `json:"ssh_authorized_key,omitempty"`
	OpenshiftVersion       string                    `json:"openshift_version,omitempty"`
	ClusterID              *string                   `json:"cluster_id,omitempty"`
	CPUArchitecture        string                    `json:"cpu_architecture,omitempty"`
	ImageType              string                    `json:"image_type,omitempty"`
	Proxy                  *Proxy                    `json:"proxy,omitempty"`
	IgnitionConfigOverride string                    `json:"ignition_config_override,omitempty"`
	StaticNetworkConfig    []HostStaticNetworkConfig `json:"static_network_config,omitempty"`
	KernelArguments        []KernelArgument          `json:"kernel_arguments,omitempty"`
}

// InfraEnvUpdateParams is the partial payload for PATCHing an existing
// infra-env. Only non-nil fields are sent.
type InfraEnvUpdateParams struct {
	ImageType              *string                   `json:"image_type,omitempty"`
	Proxy                  *Proxy                    `json:"proxy,omitempty"`
	SSHAuthorizedKey       *string                   `json:"ssh_authorized_key,omitempty"`
	PullSecret             *string                   `json:"pull_secret,omitempty"`
	IgnitionConfigOverride *string                   `json:"ignition_config_override,omitempty"`
	StaticNetworkConfig    []HostStaticNetworkConfig `json:"static_network_config,omitempty"`
	KernelArguments        []KernelArgument          `json:"kernel_arguments,omitempty"`
}

// NodeLabelParams is one node label to apply to a host at installation time.
type NodeLabelParams struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// DiskSkipFormattingParams marks one disk as excluded from formatting.
type DiskSkipFormattingParams struct {
	DiskID         string `json:"disk_id"`
	SkipFormatting bool   `json:"skip_formatting"`
}

// DiskConfigParams selects the role of one disk on a host. Role is either
// "install" or "none".
type DiskConfigParams struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// HostUpdateParams is the partial payload for PATCHing a host. Absent fields
// are omitted from the request, never sent as empty values.
type HostUpdateParams struct {
	HostRole            *string                    `json:"host_role,omitempty"`
	HostName            *string                    `json:"host_name,omitempty"`
	NodeLabels          []NodeLabelParams          `json:"node_labels,omitempty"`
	DisksSkipFormatting []DiskSkipFormattingParams `json:"disks_skip_formatting,omitempty"`
	DisksSelectedConfig []DiskConfigParams         `json:"disks_selected_config,omitempty"`
}

// BindHostParams binds a host to a cluster.
type BindHostParams struct {
	ClusterID string `json:"cluster_id"`
}
