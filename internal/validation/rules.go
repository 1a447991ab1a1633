// Package validation holds the rules applied to form values before they are
// encoded. Every rule returns an empty string when the value passes and a
// human-readable reason otherwise.
package validation

import (
	"fmt"
	"net"
	"net/netip"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go4.org/netipx"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/domain"
)

const (
	MinVlanID = 1
	MaxVlanID = 4094
)

var broadcastIPv4 = netip.AddrFrom4([4]byte{255, 255, 255, 255})

func AddressSyntax(version domain.ProtocolVersion, literal string) string {
	if strings.Contains(literal, "/") {
		return "Provide a single address, not a subnet"
	}
	if !domain.IsValidAddress(version, literal) {
		return fmt.Sprintf("Value %q is not a valid %s address", literal, version)
	}
	return ""
}

// NotReserved rejects loopback and catch-all addresses.
func NotReserved(literal string) string {
	addr, err := netip.ParseAddr(literal)
	if err != nil {
		return ""
	}
	if addr.IsLoopback() || addr.IsUnspecified() {
		return fmt.Sprintf("Address %s is reserved", literal)
	}
	return ""
}

// NotReservedDNS applies to DNS servers only and additionally rejects the
// IPv4 broadcast address.
func NotReservedDNS(literal string) string {
	if reason := NotReserved(literal); reason != "" {
		return reason
	}
	if addr, err := netip.ParseAddr(literal); err == nil && addr == broadcastIPv4 {
		return fmt.Sprintf("Address %s is reserved", literal)
	}
	return ""
}

// CidrSyntax checks a machine network: address, prefix length and that the
// address is the first one of the subnet.
func CidrSyntax(version domain.ProtocolVersion, cidr domain.Cidr) string {
	if cidr.IP == "" {
		return "Machine network address is required"
	}
	if cidr.PrefixLength == nil {
		return "Prefix length is required"
	}
	addr, ok := domain.AddressObject(cidr.IP, version)
	if !ok {
		return fmt.Sprintf("Value %q is not a valid %s address", cidr.IP, version)
	}
	if *cidr.PrefixLength < 1 || *cidr.PrefixLength > addr.BitLen() {
		return fmt.Sprintf("Prefix length must be between 1 and %d", addr.BitLen())
	}
	prefix := netip.PrefixFrom(addr, *cidr.PrefixLength)
	if prefix.Masked().Addr() != addr {
		return fmt.Sprintf("%s is not a subnet address, did you mean %s?", prefix, prefix.Masked())
	}
	return ""
}

// ParseSubnet turns a form CIDR into a prefix. It fails for every CIDR that
// CidrSyntax rejects, so the rules anchored on it stay silent and the
// machine network is reported once.
func ParseSubnet(cidr domain.Cidr) (netip.Prefix, error) {
	if cidr.PrefixLength == nil {
		return netip.Prefix{}, errors.Wrapf(domain.ErrInternal, "prefix length of %q is not set", cidr.IP)
	}
	prefix, err := netip.ParsePrefix(fmt.Sprintf("%s/%d", cidr.IP, *cidr.PrefixLength))
	if err != nil {
		return netip.Prefix{}, errors.Wrap(domain.ErrInternal, err.Error())
	}
	if reason := CidrSyntax(domain.VersionOf(prefix.Addr()), cidr); reason != "" {
		return netip.Prefix{}, errors.New(reason)
	}
	return prefix, nil
}

// InSubnet checks that an address lies within the machine network. A
// malformed CIDR or address makes the rule not applicable.
func InSubnet(cidr domain.Cidr, literal string) string {
	prefix, err := ParseSubnet(cidr)
	if err != nil {
		return ""
	}
	addr, err := netip.ParseAddr(literal)
	if err != nil {
		return ""
	}
	if !prefix.Contains(addr) {
		return fmt.Sprintf("Address %s does not belong to machine network %s", literal, prefix)
	}
	return ""
}

// NotNetworkOrBroadcast rejects the first and last address of the machine
// network. Subnets with two addresses or fewer are exempt.
func NotNetworkOrBroadcast(cidr domain.Cidr, literal string) string {
	prefix, err := ParseSubnet(cidr)
	if err != nil {
		return ""
	}
	addr, err := netip.ParseAddr(literal)
	if err != nil || !prefix.Contains(addr) {
		return ""
	}
	if prefix.Addr().BitLen()-prefix.Bits() < 2 {
		return ""
	}
	if addr == prefix.Addr() {
		return fmt.Sprintf("Address %s is the network address of %s", literal, prefix)
	}
	if addr == netipx.PrefixLastIP(prefix) {
		return fmt.Sprintf("Address %s is the broadcast address of %s", literal, prefix)
	}
	return ""
}

// VlanIDRange requires an id in [1, 4094] when VLAN tagging is on.
func VlanIDRange(useVlan bool, vlanID *int) string {
	if !useVlan {
		return ""
	}
	if vlanID == nil {
		return "VLAN ID is required"
	}
	if *vlanID < MinVlanID || *vlanID > MaxVlanID {
		return fmt.Sprintf("VLAN ID must be between %d and %d", MinVlanID, MaxVlanID)
	}
	return ""
}

func MacAddressSyntax(mac string) string {
	if mac == "" {
		return "MAC address is required"
	}
	hw, err := net.ParseMAC(mac)
	if err != nil || len(hw) != 6 {
		return fmt.Sprintf("Value %q is not a valid MAC address", mac)
	}
	return ""
}

// DuplicateMACs returns every MAC address used by more than one host,
// compared case-insensitively.
func DuplicateMACs(hosts []domain.FormViewHost) []string {
	values := make([]string, 0, len(hosts))
	for _, h := range hosts {
		values = append(values, strings.ToLower(h.MacAddress))
	}
	return duplicates(values)
}

// DuplicateIPs returns every address of the given version used by more than
// one host.
func DuplicateIPs(hosts []domain.FormViewHost, version domain.ProtocolVersion) []string {
	values := make([]string, 0, len(hosts))
	for _, h := range hosts {
		values = append(values, canonical(h.IP(version)))
	}
	return duplicates(values)
}

func duplicates(values []string) []string {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		if v != "" {
			counts[v]++
		}
	}
	var dups []string
	for v, n := range counts {
		if n > 1 {
			dups = append(dups, v)
		}
	}
	sort.Strings(dups)
	return dups
}
