// Package nmstate models the declarative network-state document stored for
// every host: interfaces, routes and DNS resolver settings, plus the comment
// header that carries form metadata the format has no field for.
package nmstate

import (
	"strconv"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/domain"
)

const (
	InterfaceTypeEthernet = "ethernet"
	InterfaceTypeVlan     = "vlan"
	InterfaceTypeDummy    = "dummy"

	InterfaceStateUp = "up"

	// RealInterfaceName is the logical NIC every real host interface uses.
	RealInterfaceName = "eth0"

	DefaultRouteTableID = 254
)

// State is the structured body of a network-state document.
type State struct {
	Interfaces  []Interface  `yaml:"interfaces"`
	DNSResolver *DNSResolver `yaml:"dns-resolver,omitempty"`
	Routes      *Routes      `yaml:"routes,omitempty"`
}

type Interface struct {
	Name  string          `yaml:"name"`
	Type  string          `yaml:"type"`
	State string          `yaml:"state"`
	VLAN  *VLANConfig     `yaml:"vlan,omitempty"`
	IPv4  *ProtocolConfig `yaml:"ipv4,omitempty"`
	IPv6  *ProtocolConfig `yaml:"ipv6,omitempty"`
}

type VLANConfig struct {
	BaseIface string `yaml:"base-iface"`
	ID        int    `yaml:"id"`
}

type ProtocolConfig struct {
	Enabled bool      `yaml:"enabled"`
	DHCP    bool      `yaml:"dhcp"`
	Address []Address `yaml:"address,omitempty"`
}

type Address struct {
	IP           string `yaml:"ip"`
	PrefixLength int    `yaml:"prefix-length"`
}

type Routes struct {
	Config []Route `yaml:"config"`
}

type Route struct {
	Destination      string `yaml:"destination"`
	NextHopAddress   string `yaml:"next-hop-address"`
	NextHopInterface string `yaml:"next-hop-interface"`
	TableID          int    `yaml:"table-id"`
}

type DNSResolver struct {
	Config DNSConfig `yaml:"config"`
}

type DNSConfig struct {
	Server []string `yaml:"server"`
}

func (i Interface) Protocol(version domain.ProtocolVersion) *ProtocolConfig {
	switch version {
	case domain.IPv4:
		return i.IPv4
	case domain.IPv6:
		return i.IPv6
	}
	return nil
}

// SetProtocol replaces the configuration of the given version.
func (i *Interface) SetProtocol(version domain.ProtocolVersion, cfg *ProtocolConfig) {
	switch version {
	case domain.IPv4:
		i.IPv4 = cfg
	case domain.IPv6:
		i.IPv6 = cfg
	}
}

// FirstAddress returns the first configured address of the given version.
func (i Interface) FirstAddress(version domain.ProtocolVersion) (Address, bool) {
	cfg := i.Protocol(version)
	if cfg == nil || !cfg.Enabled || len(cfg.Address) == 0 {
		return Address{}, false
	}
	return cfg.Address[0], true
}

// VlanInterfaceName returns the name of the VLAN interface on top of base.
func VlanInterfaceName(base string, id int) string {
	return base + "." + strconv.Itoa(id)
}
