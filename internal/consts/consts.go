// Package consts holds wire-level constants of the assisted installation
// service as used by the test infrastructure: host status names, image
// types, and the timeouts the harness applies to them.
package consts

import "time"

// Host statuses reported by the service for hosts registered under an
// infra-env that is not bound to a cluster.
const (
	HostStatusKnownUnbound        = "known-unbound"
	HostStatusInsufficientUnbound = "insufficient-unbound"
	HostStatusDiscoveringUnbound  = "discovering-unbound"
	HostStatusDisconnectedUnbound = "disconnected-unbound"
	HostStatusBinding             = "binding"
)

// Discovery image types.
const (
	ImageTypeFullISO    = "full-iso"
	ImageTypeMinimalISO = "minimal-iso"
)

// DiscoveryIgnitionFileName is the name under which the service exposes the
// discovery ignition document for download.
const DiscoveryIgnitionFileName = "discovery.ign"

const (
	// NodesRegisteredTimeout bounds the wait for all expected hosts to
	// register and report a discovered status.
	NodesRegisteredTimeout = 20 * time.Minute

	// DefaultStatusPollInterval is the fixed interval between host status
	// probes while waiting.
	DefaultStatusPollInterval = 5 * time.Second
)
