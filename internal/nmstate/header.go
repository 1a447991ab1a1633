package nmstate

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/domain"
)

const (
	CommentMarker = "#"

	formViewKey = "form-view"
)

// machineNetworkKeys lists the header keys in the order they must appear.
var machineNetworkKeys = []struct {
	version domain.ProtocolVersion
	key     string
}{
	{domain.IPv4, "machine-network-ipv4"},
	{domain.IPv6, "machine-network-ipv6"},
}

// Header is the metadata block at the head of a document. It records that the
// document was produced by the form view and which machine network each
// protocol version was derived from.
type Header struct {
	FormView        bool
	MachineNetworks map[domain.ProtocolVersion]domain.Cidr
}

// ProtocolType derives the stack type from the machine networks listed.
func (h *Header) ProtocolType() domain.ProtocolType {
	if _, ok := h.MachineNetworks[domain.IPv6]; ok {
		return domain.ProtocolTypeDualStack
	}
	return domain.ProtocolTypeIPv4
}

// NewHeader builds the header for the given network-wide values. Every shown
// protocol must have a machine-network prefix length.
func NewHeader(values domain.FormViewNetworkWideValues) (*Header, error) {
	h := &Header{
		FormView:        true,
		MachineNetworks: make(map[domain.ProtocolVersion]domain.Cidr),
	}
	for _, version := range domain.ShownProtocolVersions(values.ProtocolType) {
		cidr := values.IPConfig(version).MachineNetwork
		if cidr.PrefixLength == nil {
			return nil, errors.Errorf("machine network prefix length for %s is not set", version)
		}
		if _, err := parseCidr(version, fmt.Sprintf("%s/%d", cidr.IP, *cidr.PrefixLength)); err != nil {
			return nil, errors.Wrapf(err, "machine network for %s", version)
		}
		h.MachineNetworks[version] = cidr
	}
	return h, nil
}

// Lines renders the header, one comment line per entry.
func (h *Header) Lines() []string {
	lines := make([]string, 0, 1+len(h.MachineNetworks))
	if h.FormView {
		lines = append(lines, comment(formViewKey))
	}
	for _, k := range machineNetworkKeys {
		cidr, ok := h.MachineNetworks[k.version]
		if !ok || cidr.PrefixLength == nil {
			continue
		}
		lines = append(lines, comment(fmt.Sprintf("%s: %s/%d", k.key, cidr.IP, *cidr.PrefixLength)))
	}
	return lines
}

func comment(s string) string {
	return CommentMarker + " " + s
}

// ParseHeader parses the comment lines split off the head of a document.
// The form-view marker comes first, followed by the IPv4 machine network and
// optionally the IPv6 one. Anything else is an error.
func ParseHeader(lines []string) (*Header, error) {
	if len(lines) == 0 {
		return nil, errors.New("empty header")
	}
	if uncomment(lines[0]) != formViewKey {
		return nil, errors.Errorf("first header line must be %q, got %q", comment(formViewKey), lines[0])
	}

	h := &Header{
		FormView:        true,
		MachineNetworks: make(map[domain.ProtocolVersion]domain.Cidr),
	}
	next := 0
	for _, line := range lines[1:] {
		key, value, ok := strings.Cut(uncomment(line), ":")
		if !ok {
			return nil, errors.Errorf("header line %q is not a key: value pair", line)
		}
		key = strings.TrimSpace(key)

		idx := -1
		for i, k := range machineNetworkKeys {
			if k.key == key {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, errors.Errorf("unknown header key %q", key)
		}
		if idx != next {
			return nil, errors.Errorf("header key %q is out of order", key)
		}
		next++

		version := machineNetworkKeys[idx].version
		cidr, err := parseCidr(version, strings.TrimSpace(value))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", key)
		}
		h.MachineNetworks[version] = cidr
	}

	if _, ok := h.MachineNetworks[domain.IPv4]; !ok {
		return nil, errors.New("header has no IPv4 machine network")
	}
	return h, nil
}

func uncomment(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), CommentMarker))
}

// parseCidr keeps the address literal as written so that re-encoding is
// lossless.
func parseCidr(version domain.ProtocolVersion, s string) (domain.Cidr, error) {
	prefix, err := netip.ParsePrefix(s)
	if err != nil {
		return domain.Cidr{}, err
	}
	if domain.VersionOf(prefix.Addr()) != version {
		return domain.Cidr{}, errors.Errorf("%s is not an %s network", s, version)
	}
	ip, bits, _ := strings.Cut(s, "/")
	prefixLength, err := strconv.Atoi(bits)
	if err != nil {
		return domain.Cidr{}, err
	}
	return domain.Cidr{IP: ip, PrefixLength: &prefixLength}, nil
}
