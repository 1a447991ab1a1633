package domain

import (
	"net/netip"
	"strings"
)

// ShownProtocolVersions returns the protocol versions the form displays for
// the given stack type.
func ShownProtocolVersions(protocolType ProtocolType) []ProtocolVersion {
	if protocolType == ProtocolTypeDualStack {
		return []ProtocolVersion{IPv4, IPv6}
	}
	return []ProtocolVersion{IPv4}
}

// IsShown reports whether version is displayed for protocolType.
func IsShown(protocolType ProtocolType, version ProtocolVersion) bool {
	for _, v := range ShownProtocolVersions(protocolType) {
		if v == version {
			return true
		}
	}
	return false
}

// AddressObject parses a bare host address of the given version. CIDR
// literals, zoned addresses and IPv4-mapped IPv6 addresses are rejected.
func AddressObject(ip string, version ProtocolVersion) (netip.Addr, bool) {
	if ip == "" || strings.Contains(ip, "/") {
		return netip.Addr{}, false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil || addr.Zone() != "" {
		return netip.Addr{}, false
	}
	switch version {
	case IPv4:
		return addr, addr.Is4()
	case IPv6:
		return addr, addr.Is6() && !addr.Is4In6()
	}
	return netip.Addr{}, false
}

func IsValidAddress(version ProtocolVersion, literal string) bool {
	_, ok := AddressObject(literal, version)
	return ok
}

// VersionOf returns the protocol version of a parsed address.
func VersionOf(addr netip.Addr) ProtocolVersion {
	if addr.Is4() || addr.Is4In6() {
		return IPv4
	}
	return IPv6
}
