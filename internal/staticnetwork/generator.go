package staticnetwork

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/omer-vishlitzky/assisted-test-infra/internal/config"
	"github.com/omer-vishlitzky/assisted-test-infra/internal/service"
)

// GenerateFromTerraform reads the Terraform state under tfFolder and
// produces one static network configuration per machine found in it.
func GenerateFromTerraform(tfFolder string, cfg *config.InfraEnvConfig) ([]service.HostStaticNetworkConfig, error) {
	hosts, err := ReadTopology(tfFolder)
	if err != nil {
		return nil, err
	}
	return Generate(hosts)
}

// Generate builds one HostStaticNetworkConfig per host. Logical interface
// names are assigned deterministically (eth0, eth1, ...) in topology order.
func Generate(hosts []HostTopology) ([]service.HostStaticNetworkConfig, error) {
	configs := make([]service.HostStaticNetworkConfig, 0, len(hosts))
	for _, host := range hosts {
		hostConfig, err := generateHost(host)
		if err != nil {
			return nil, fmt.Errorf("host %s: %w", host.Name, err)
		}
		configs = append(configs, hostConfig)
	}
	return configs, nil
}

func generateHost(host HostTopology) (service.HostStaticNetworkConfig, error) {
	if len(host.Interfaces) == 0 {
		return service.HostStaticNetworkConfig{}, fmt.Errorf("no network interfaces in topology")
	}

	doc := nmstateDoc{}
	macMap := make([]service.MacInterfaceMapItems, 0, len(host.Interfaces))

	for i, nic := range host.Interfaces {
		name := fmt.Sprintf("eth%d", i)
		iface := nmstateInterface{
			Name:       name,
			Type:       "ethernet",
			State:      "up",
			MacAddress: strings.ToLower(nic.MacAddress),
		}

		if nic.IPv4Address != "" {
			addr, err := parseAddress(nic.IPv4Address)
			if err != nil {
				return service.HostStaticNetworkConfig{}, err
			}
			iface.IPv4 = &nmstateIP{Enabled: true, Addresses: []nmstateAddress{addr}}

			// Default route and DNS go through the first addressed NIC.
			if doc.Routes == nil {
				gateway, err := gatewayFor(nic.IPv4Address)
				if err != nil {
					return service.HostStaticNetworkConfig{}, err
				}
				doc.Routes = &nmstateRoutes{Config: []nmstateRoute{{
					Destination:      "0.0.0.0/0",
					NextHopAddress:   gateway,
					NextHopInterface: name,
				}}}
				doc.DNSResolver = &nmstateDNS{Config: nmstateDNSConfig{Server: []string{gateway}}}
			}
		}
		if nic.IPv6Address != "" {
			addr, err := parseAddress(nic.IPv6Address)
			if err != nil {
				return service.HostStaticNetworkConfig{}, err
			}
			iface.IPv6 = &nmstateIP{Enabled: true, Addresses: []nmstateAddress{addr}}
		}

		doc.Interfaces = append(doc.Interfaces, iface)
		macMap = append(macMap, service.MacInterfaceMapItems{
			MacAddress:     strings.ToLower(nic.MacAddress),
			LogicalNicName: name,
		})
	}

	networkYaml, err := yaml.Marshal(&doc)
	if err != nil {
		return service.HostStaticNetworkConfig{}, fmt.Errorf("failed to marshal nmstate document: %w", err)
	}

	return service.HostStaticNetworkConfig{
		NetworkYaml:     string(networkYaml),
		MacInterfaceMap: macMap,
	}, nil
}

// parseAddress splits CIDR notation into an nmstate address entry.
func parseAddress(cidr string) (nmstateAddress, error) {
	ip, prefix, ok := strings.Cut(cidr, "/")
	if !ok {
		return nmstateAddress{}, fmt.Errorf("address %q is not in CIDR notation", cidr)
	}
	prefixLen, err := strconv.Atoi(prefix)
	if err != nil {
		return nmstateAddress{}, fmt.Errorf("address %q has invalid prefix length: %w", cidr, err)
	}
	if net.ParseIP(ip) == nil {
		return nmstateAddress{}, fmt.Errorf("address %q has invalid IP", cidr)
	}
	return nmstateAddress{IP: ip, PrefixLength: prefixLen}, nil
}

// gatewayFor assumes the convention of the test networks: the gateway is the
// first usable address of the subnet.
func gatewayFor(cidr string) (string, error) {
	_, subnet, err := net.ParseCIDR(cidr)
	if err != nil {
		return "", fmt.Errorf("address %q has invalid subnet: %w", cidr, err)
	}
	gateway := make(net.IP, len(subnet.IP))
	copy(gateway, subnet.IP)
	gateway[len(gateway)-1]++
	return gateway.String(), nil
}
