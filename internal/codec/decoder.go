package codec

import (
	"fmt"
	"strings"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/domain"
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/nmstate"
)

// Decoded holds the form values recovered from a document set.
type Decoded struct {
	State       ConfigState                      `json:"state"`
	NetworkWide domain.FormViewNetworkWideValues `json:"networkWide"`
	Hosts       []domain.FormViewHost            `json:"hosts"`
}

// Decode classifies a document set and extracts the network-wide values and
// one entry per document that carries a real interface. Documents are handled
// in storage order and duplicates are kept.
func Decode(configs []domain.HostStaticNetworkConfig) (*Decoded, error) {
	decoded := &Decoded{
		State:       StateUninitialized,
		NetworkWide: domain.EmptyNetworkWideValues(),
		Hosts:       []domain.FormViewHost{},
	}
	if len(configs) == 0 {
		return decoded, nil
	}

	docs := make([]*nmstate.Document, len(configs))
	for i, config := range configs {
		doc, err := nmstate.Parse(config.NetworkYAML)
		if err != nil {
			return nil, malformed(i, err.Error())
		}
		docs[i] = doc
	}

	if docs[0].Header == nil {
		return decoded, nil
	}
	decoded.NetworkWide = networkWideValues(docs[0])
	shown := domain.ShownProtocolVersions(decoded.NetworkWide.ProtocolType)

	incomplete := false
	for i, doc := range docs {
		if doc.Header == nil {
			return nil, malformed(i, "document has no header")
		}
		host, err := decodeHost(doc, configs[i].MacInterfaceMap, shown)
		if err != nil {
			return nil, malformed(i, err.Error())
		}
		if host == nil {
			continue
		}
		if !hasAllAddresses(*host, shown) {
			incomplete = true
		}
		decoded.Hosts = append(decoded.Hosts, *host)
	}

	switch {
	case len(decoded.Hosts) == 0:
		decoded.State = StateNetworkWideOnly
	case incomplete:
		decoded.State = StatePartiallyUpgraded
	default:
		decoded.State = StateConfigured
	}
	return decoded, nil
}

// ClassifyDocument returns the completeness state of a single document.
func ClassifyDocument(config domain.HostStaticNetworkConfig) (ConfigState, error) {
	doc, err := nmstate.Parse(config.NetworkYAML)
	if err != nil {
		return StateUninitialized, malformed(0, err.Error())
	}
	if doc.Header == nil {
		return StateUninitialized, nil
	}
	shown := domain.ShownProtocolVersions(doc.Header.ProtocolType())
	host, err := decodeHost(doc, config.MacInterfaceMap, shown)
	if err != nil {
		return StateUninitialized, malformed(0, err.Error())
	}
	switch {
	case host == nil:
		return StateNetworkWideOnly, nil
	case hasAllAddresses(*host, shown):
		return StateConfigured, nil
	default:
		return StatePartiallyUpgraded, nil
	}
}

func malformed(index int, reason string) error {
	return &domain.MalformedDocumentError{Index: index, Reason: reason}
}

func hasAllAddresses(host domain.FormViewHost, shown []domain.ProtocolVersion) bool {
	for _, version := range shown {
		if host.IP(version) == "" {
			return false
		}
	}
	return true
}

func networkWideValues(doc *nmstate.Document) domain.FormViewNetworkWideValues {
	values := domain.EmptyNetworkWideValues()
	values.ProtocolType = doc.Header.ProtocolType()

	for _, iface := range doc.State.Interfaces {
		if iface.Type == nmstate.InterfaceTypeVlan && iface.VLAN != nil {
			id := iface.VLAN.ID
			values.UseVlan = true
			values.VlanID = &id
			break
		}
	}

	for version, cidr := range doc.Header.MachineNetworks {
		values.IPConfigs[version] = domain.IPConfig{
			MachineNetwork: cidr,
			Gateway:        gateway(doc.State, version),
		}
	}

	if doc.State.DNSResolver != nil {
		values.DNS = strings.Join(doc.State.DNSResolver.Config.Server, ",")
	}
	return values
}

func defaultRoute(state nmstate.State, version domain.ProtocolVersion) (nmstate.Route, bool) {
	if state.Routes == nil {
		return nmstate.Route{}, false
	}
	for _, route := range state.Routes.Config {
		if route.Destination == defaultRouteDestinations[version] {
			return route, true
		}
	}
	return nmstate.Route{}, false
}

func gateway(state nmstate.State, version domain.ProtocolVersion) string {
	route, _ := defaultRoute(state, version)
	return route.NextHopAddress
}

// decodeHost extracts the MAC and addresses of the first real interface. It
// returns nil when the document holds placeholders only.
func decodeHost(doc *nmstate.Document, macMap []domain.MacInterfaceEntry, shown []domain.ProtocolVersion) (*domain.FormViewHost, error) {
	nic := firstRealInterface(doc.State)
	if nic == nil {
		return nil, nil
	}

	carrier, logicalName := *nic, nic.Name
	if nic.Type == nmstate.InterfaceTypeVlan && nic.VLAN != nil {
		logicalName = nic.VLAN.BaseIface
	} else if vlan := vlanOn(doc.State, nic.Name); vlan != nil {
		carrier = *vlan
	}

	mac := ""
	for _, entry := range macMap {
		if entry.LogicalNicName == logicalName {
			mac = entry.MacAddress
			break
		}
	}
	if mac == "" {
		return nil, fmt.Errorf("interface %s has no MAC address mapping", logicalName)
	}

	host := domain.NewFormViewHost(mac)
	for _, version := range shown {
		addr, ok := carrier.FirstAddress(version)
		if !ok {
			continue
		}
		if _, ok := defaultRoute(doc.State, version); !ok {
			return nil, fmt.Errorf("interface %s has an %s address but no default route", carrier.Name, version)
		}
		if doc.State.DNSResolver == nil {
			return nil, fmt.Errorf("interface %s has an %s address but no DNS configuration", carrier.Name, version)
		}
		host.IPs[version] = addr.IP
	}
	return &host, nil
}

func firstRealInterface(state nmstate.State) *nmstate.Interface {
	for i := range state.Interfaces {
		if !nmstate.IsDummyInterfaceName(state.Interfaces[i].Name) {
			return &state.Interfaces[i]
		}
	}
	return nil
}

func vlanOn(state nmstate.State, base string) *nmstate.Interface {
	for i := range state.Interfaces {
		iface := &state.Interfaces[i]
		if iface.Type == nmstate.InterfaceTypeVlan && iface.VLAN != nil && iface.VLAN.BaseIface == base &&
			!nmstate.IsDummyInterfaceName(iface.Name) {
			return iface
		}
	}
	return nil
}
