package nmstate

import (
	"strings"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/domain"
)

const (
	// DummyNamePrefix marks interfaces that stand in for data a host has not
	// supplied yet.
	DummyNamePrefix = "dummy"

	DummyMacAddress = "00:00:5E:00:53:AF"

	dummyVlanName = DummyNamePrefix + "-vlan"
)

var dummyAddresses = map[domain.ProtocolVersion]Address{
	domain.IPv4: {IP: "198.51.100.1", PrefixLength: 24},
	domain.IPv6: {IP: "2001:db8:ffff::1", PrefixLength: 64},
}

func dummyInterfaceName(version domain.ProtocolVersion) string {
	return DummyNamePrefix + "-" + string(version)
}

// DummyInterface returns the placeholder interface for a protocol version.
func DummyInterface(version domain.ProtocolVersion) Interface {
	iface := Interface{
		Name:  dummyInterfaceName(version),
		Type:  InterfaceTypeDummy,
		State: InterfaceStateUp,
	}
	iface.SetProtocol(version, &ProtocolConfig{
		Enabled: true,
		Address: []Address{dummyAddresses[version]},
	})
	return iface
}

// DummyVlanInterface returns a placeholder VLAN interface so that a document
// without real interfaces still records the VLAN id.
func DummyVlanInterface(vlanID int) Interface {
	return Interface{
		Name:  dummyVlanName,
		Type:  InterfaceTypeVlan,
		State: InterfaceStateUp,
		VLAN: &VLANConfig{
			BaseIface: dummyInterfaceName(domain.IPv4),
			ID:        vlanID,
		},
	}
}

func DummyMacInterfaceMap() []domain.MacInterfaceEntry {
	return []domain.MacInterfaceEntry{
		{MacAddress: DummyMacAddress, LogicalNicName: RealInterfaceName},
	}
}

func IsDummyInterfaceName(name string) bool {
	return strings.HasPrefix(name, DummyNamePrefix)
}

// IsDummyDocument reports whether every interface of the document is a
// placeholder.
func IsDummyDocument(state State) bool {
	for _, iface := range state.Interfaces {
		if !IsDummyInterfaceName(iface.Name) {
			return false
		}
	}
	return true
}
