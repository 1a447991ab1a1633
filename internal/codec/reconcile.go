package codec

import (
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/domain"
)

// ReconcileHostProtocols re-derives every host's address map for a new stack
// type. Addresses of versions no longer shown are dropped and newly shown
// versions start empty. It must run before Encode whenever the protocol type
// of the network-wide values changes.
func ReconcileHostProtocols(hosts []domain.FormViewHost, protocolType domain.ProtocolType) []domain.FormViewHost {
	reconciled := make([]domain.FormViewHost, 0, len(hosts))
	for _, host := range hosts {
		next := domain.NewFormViewHost(host.MacAddress)
		for _, version := range domain.ShownProtocolVersions(protocolType) {
			next.IPs[version] = host.IP(version)
		}
		reconciled = append(reconciled, next)
	}
	return reconciled
}

// ReconcileNetworkWide clears the settings of versions the stack type no
// longer shows.
func ReconcileNetworkWide(values domain.FormViewNetworkWideValues) domain.FormViewNetworkWideValues {
	next := values
	next.IPConfigs = map[domain.ProtocolVersion]domain.IPConfig{
		domain.IPv4: {},
		domain.IPv6: {},
	}
	for _, version := range domain.ShownProtocolVersions(values.ProtocolType) {
		next.IPConfigs[version] = values.IPConfig(version)
	}
	return next
}
