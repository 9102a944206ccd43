// Package staticnetwork generates per-host static network configuration for
// discovery images: one NMState document plus a MAC to interface-name map
// per host, derived from the Terraform state the machines were created from.
package staticnetwork

// HostTopology describes the network-relevant shape of one test machine.
type HostTopology struct {
	Name       string
	Interfaces []InterfaceTopology
}

// InterfaceTopology is one NIC of a test machine. Addresses are CIDR
// notation ("192.168.126.10/24"); an empty address leaves the protocol
// disabled on that NIC.
type InterfaceTopology struct {
	MacAddress  string
	IPv4Address string
	IPv6Address string
}

// nmstate document types, marshalled through sigs.k8s.io/yaml so the json
// tags double as the YAML keys.

type nmstateDoc struct {
	Interfaces  []nmstateInterface `json:"interfaces"`
	DNSResolver *nmstateDNS        `json:"dns-resolver,omitempty"`
	Routes      *nmstateRoutes     `json:"routes,omitempty"`
}

type nmstateInterface struct {
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	State      string     `json:"state"`
	MacAddress string     `json:"mac-address,omitempty"`
	IPv4       *nmstateIP `json:"ipv4,omitempty"`
	IPv6       *nmstateIP `json:"ipv6,omitempty"`
}

type nmstateIP struct {
	Enabled   bool             `json:"enabled"`
	DHCP      bool             `json:"dhcp"`
	Addresses []nmstateAddress `json:"address,omitempty"`
}

type nmstateAddress struct {
	IP           string `json:"ip"`
	PrefixLength int    `json:"prefix-length"`
}

type nmstateDNS struct {
	Config nmstateDNSConfig `json:"config"`
}

type nmstateDNSConfig struct {
	Server []string `json:"server"`
}

type nmstateRoutes struct {
	Config []nmstateRoute `json:"config"`
}

type nmstateRoute struct {
	Destination      string `json:"destination"`
	NextHopAddress   string `json:"next-hop-address"`
	NextHopInterface string `json:"next-hop-interface"`
}
