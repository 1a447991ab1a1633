package domain

import (
	"context"
)

type ProtocolType string

const (
	ProtocolTypeIPv4      ProtocolType = "ipv4"
	ProtocolTypeDualStack ProtocolType = "dualStack"
)

type ProtocolVersion string

const (
	IPv4 ProtocolVersion = "ipv4"
	IPv6 ProtocolVersion = "ipv6"
)

// Cidr is a machine network as edited in the form. PrefixLength is nil while
// the user has not filled it in yet.
type Cidr struct {
	IP           string `json:"ip"`
	PrefixLength *int   `json:"prefixLength"`
}

type IPConfig struct {
	MachineNetwork Cidr   `json:"machineNetwork"`
	Gateway        string `json:"gateway"`
}

// FormViewNetworkWideValues holds the settings shared by every host of a host
// group. DNS may carry several servers separated by commas.
type FormViewNetworkWideValues struct {
	ProtocolType ProtocolType                 `json:"protocolType"`
	UseVlan      bool                         `json:"useVlan"`
	VlanID       *int                         `json:"vlanId"`
	IPConfigs    map[ProtocolVersion]IPConfig `json:"ipConfigs"`
	DNS          string                       `json:"dns"`
}

type FormViewHost struct {
	MacAddress string                     `json:"macAddress"`
	IPs        map[ProtocolVersion]string `json:"ips"`
}

type MacInterfaceEntry struct {
	MacAddress     string `json:"mac_address"`
	LogicalNicName string `json:"logical_nic_name"`
}

// HostStaticNetworkConfig is one stored network-state document. NetworkYAML
// holds the comment header followed by the nmstate body.
type HostStaticNetworkConfig struct {
	NetworkYAML     string              `json:"network_yaml"`
	MacInterfaceMap []MacInterfaceEntry `json:"mac_interface_map"`
}

// StaticNetworkRepository loads and replaces the document set of a host group.
// An empty set is a valid, uninitialized state.
type StaticNetworkRepository interface {
	Load(ctx context.Context, hostGroupID string) ([]HostStaticNetworkConfig, error)
	Save(ctx context.Context, hostGroupID string, configs []HostStaticNetworkConfig) error
}

// HostGroupLocator resolves a host group identifier to the key its documents
// are stored under.
type HostGroupLocator interface {
	Locate(ctx context.Context, hostGroupID string) (string, error)
}

// EmptyNetworkWideValues returns the values of a host group that was never
// configured.
func EmptyNetworkWideValues() FormViewNetworkWideValues {
	return FormViewNetworkWideValues{
		ProtocolType: ProtocolTypeIPv4,
		IPConfigs: map[ProtocolVersion]IPConfig{
			IPv4: {},
			IPv6: {},
		},
	}
}

// NewFormViewHost returns a host with an empty address for both versions.
func NewFormViewHost(mac string) FormViewHost {
	return FormViewHost{
		MacAddress: mac,
		IPs: map[ProtocolVersion]string{
			IPv4: "",
			IPv6: "",
		},
	}
}

func (h FormViewHost) IP(version ProtocolVersion) string {
	return h.IPs[version]
}

func (v FormViewNetworkWideValues) IPConfig(version ProtocolVersion) IPConfig {
	return v.IPConfigs[version]
}
