package staticnetwork

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
)

// StateFileName is the Terraform state file read for machine topology.
const StateFileName = "terraform.tfstate"

// Terraform state subset. Only libvirt_domain resources carry the machine
// NICs we care about.

type tfState struct {
	Resources []tfResource `json:"resources"`
}

type tfResource struct {
	Type      string       `json:"type"`
	Instances []tfInstance `json:"instances"`
}

type tfInstance struct {
	Attributes tfAttributes `json:"attributes"`
}

// tfAttributes is shared between libvirt_domain and libvirt_network
// resources; each uses the fields relevant to it.
type tfAttributes struct {
	Name              string               `json:"name"`
	Addresses         []string             `json:"addresses"`
	NetworkInterfaces []tfNetworkInterface `json:"network_interface"`
}

type tfNetworkInterface struct {
	Mac       string   `json:"mac"`
	Addresses []string `json:"addresses"`
}

// ReadTopology parses the Terraform state under tfFolder and returns one
// HostTopology per defined machine, sorted by machine name.
func ReadTopology(tfFolder string) ([]HostTopology, error) {
	statePath := filepath.Join(tfFolder, StateFileName)
	// #nosec G304
	data, err := os.ReadFile(statePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read terraform state: %w", err)
	}

	var state tfState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse terraform state %s: %w", statePath, err)
	}

	subnets := collectSubnets(&state)

	var hosts []HostTopology
	for _, resource := range state.Resources {
		if resource.Type != "libvirt_domain" {
			continue
		}
		for _, instance := range resource.Instances {
			host := HostTopology{Name: instance.Attributes.Name}
			for _, nic := range instance.Attributes.NetworkInterfaces {
				iface := InterfaceTopology{MacAddress: nic.Mac}
				if len(nic.Addresses) > 0 {
					iface.IPv4Address = withPrefix(nic.Addresses[0], subnets)
				}
				host.Interfaces = append(host.Interfaces, iface)
			}
			hosts = append(hosts, host)
		}
	}

	if len(hosts) == 0 {
		return nil, fmt.Errorf("no machines found in terraform state %s", statePath)
	}

	sort.Slice(hosts, func(i, j int) bool { return hosts[i].Name < hosts[j].Name })
	return hosts, nil
}

// collectSubnets gathers the CIDRs of all libvirt_network resources in the
// state so machine addresses can be given their subnet's prefix length.
func collectSubnets(state *tfState) []*net.IPNet {
	var subnets []*net.IPNet
	for _, resource := range state.Resources {
		if resource.Type != "libvirt_network" {
			continue
		}
		for _, instance := range resource.Instances {
			for _, cidr := range instance.Attributes.Addresses {
				if _, subnet, err := net.ParseCIDR(cidr); err == nil {
					subnets = append(subnets, subnet)
				}
			}
		}
	}
	return subnets
}

// withPrefix turns a bare machine IP into CIDR notation using its containing
// subnet. Addresses already in CIDR notation pass through; unmatched
// addresses default to /24, the convention of the test networks.
func withPrefix(address string, subnets []*net.IPNet) string {
	if _, _, err := net.ParseCIDR(address); err == nil {
		return address
	}
	ip := net.ParseIP(address)
	if ip == nil {
		return address
	}
	for _, subnet := range subnets {
		if subnet.Contains(ip) {
			prefixLen, _ := subnet.Mask.Size()
			return fmt.Sprintf("%s/%d", address, prefixLen)
		}
	}
	return address + "/24"
}
