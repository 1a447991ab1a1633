// Package codec converts between stored network-state documents and the
// network-wide and per-host form values.
package codec

import (
	"strings"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/domain"
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/nmstate"
)

var defaultRouteDestinations = map[domain.ProtocolVersion]string{
	domain.IPv4: "0.0.0.0/0",
	domain.IPv6: "::/0",
}

// Encode builds the document set for a host group. Without hosts a single
// document carrying only the network-wide settings is produced, otherwise one
// document per host in the given order.
func Encode(networkWide domain.FormViewNetworkWideValues, hosts []domain.FormViewHost) ([]domain.HostStaticNetworkConfig, error) {
	header, err := nmstate.NewHeader(networkWide)
	if err != nil {
		return nil, &domain.EncodingError{Reason: err.Error()}
	}

	if len(hosts) == 0 {
		text, err := encodeDocument(header, networkWide, nil)
		if err != nil {
			return nil, err
		}
		return []domain.HostStaticNetworkConfig{{
			NetworkYAML:     text,
			MacInterfaceMap: nmstate.DummyMacInterfaceMap(),
		}}, nil
	}

	configs := make([]domain.HostStaticNetworkConfig, 0, len(hosts))
	for i := range hosts {
		text, err := encodeDocument(header, networkWide, &hosts[i])
		if err != nil {
			return nil, err
		}
		configs = append(configs, domain.HostStaticNetworkConfig{
			NetworkYAML: text,
			MacInterfaceMap: []domain.MacInterfaceEntry{
				{MacAddress: hosts[i].MacAddress, LogicalNicName: nmstate.RealInterfaceName},
			},
		})
	}
	return configs, nil
}

func encodeDocument(header *nmstate.Header, networkWide domain.FormViewNetworkWideValues, host *domain.FormViewHost) (string, error) {
	doc := &nmstate.Document{
		Header: header,
		State: nmstate.State{
			Interfaces:  interfaces(networkWide, host),
			DNSResolver: dnsResolver(networkWide.DNS),
			Routes:      routes(networkWide),
		},
	}
	text, err := doc.Marshal()
	if err != nil {
		return "", &domain.EncodingError{Reason: err.Error()}
	}
	return text, nil
}

func vlanID(networkWide domain.FormViewNetworkWideValues) (int, bool) {
	if !networkWide.UseVlan || networkWide.VlanID == nil {
		return 0, false
	}
	return *networkWide.VlanID, true
}

// interfaces lists the real interfaces of the host first, followed by a
// placeholder for every shown protocol the host has no address for.
func interfaces(networkWide domain.FormViewNetworkWideValues, host *domain.FormViewHost) []nmstate.Interface {
	var real, placeholders []nmstate.Interface
	addressed := &nmstate.Interface{}

	for _, version := range domain.ShownProtocolVersions(networkWide.ProtocolType) {
		ip := ""
		if host != nil {
			ip = host.IP(version)
		}
		if ip == "" {
			placeholders = append(placeholders, nmstate.DummyInterface(version))
			continue
		}
		prefixLength := 0
		if pl := networkWide.IPConfig(version).MachineNetwork.PrefixLength; pl != nil {
			prefixLength = *pl
		}
		addressed.SetProtocol(version, &nmstate.ProtocolConfig{
			Enabled: true,
			Address: []nmstate.Address{{IP: ip, PrefixLength: prefixLength}},
		})
	}

	id, tagged := vlanID(networkWide)
	if addressed.IPv4 != nil || addressed.IPv6 != nil {
		base := nmstate.Interface{
			Name:  nmstate.RealInterfaceName,
			Type:  nmstate.InterfaceTypeEthernet,
			State: nmstate.InterfaceStateUp,
		}
		if tagged {
			addressed.Name = nmstate.VlanInterfaceName(nmstate.RealInterfaceName, id)
			addressed.Type = nmstate.InterfaceTypeVlan
			addressed.State = nmstate.InterfaceStateUp
			addressed.VLAN = &nmstate.VLANConfig{BaseIface: nmstate.RealInterfaceName, ID: id}
			real = append(real, base, *addressed)
		} else {
			base.IPv4, base.IPv6 = addressed.IPv4, addressed.IPv6
			real = append(real, base)
		}
	} else if tagged {
		placeholders = append(placeholders, nmstate.DummyVlanInterface(id))
	}

	return append(real, placeholders...)
}

func nextHopInterface(networkWide domain.FormViewNetworkWideValues) string {
	if id, ok := vlanID(networkWide); ok {
		return nmstate.VlanInterfaceName(nmstate.RealInterfaceName, id)
	}
	return nmstate.RealInterfaceName
}

func routes(networkWide domain.FormViewNetworkWideValues) *nmstate.Routes {
	var config []nmstate.Route
	for _, version := range domain.ShownProtocolVersions(networkWide.ProtocolType) {
		gateway := networkWide.IPConfig(version).Gateway
		if gateway == "" {
			continue
		}
		config = append(config, nmstate.Route{
			Destination:      defaultRouteDestinations[version],
			NextHopAddress:   gateway,
			NextHopInterface: nextHopInterface(networkWide),
			TableID:          nmstate.DefaultRouteTableID,
		})
	}
	if len(config) == 0 {
		return nil
	}
	return &nmstate.Routes{Config: config}
}

func dnsResolver(dns string) *nmstate.DNSResolver {
	servers := splitDNS(dns)
	if len(servers) == 0 {
		return nil
	}
	return &nmstate.DNSResolver{Config: nmstate.DNSConfig{Server: servers}}
}

// splitDNS splits the comma separated DNS field, dropping empty entries.
func splitDNS(dns string) []string {
	var servers []string
	for _, s := range strings.Split(dns, ",") {
		if s = strings.TrimSpace(s); s != "" {
			servers = append(servers, s)
		}
	}
	return servers
}
