package validation

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/domain"
)

// failures collects field failures, skipping rules that passed.
type failures struct {
	result *multierror.Error
}

func (f *failures) add(field, reason string) {
	if reason == "" {
		return
	}
	f.result = multierror.Append(f.result, &domain.ValidationFailure{Field: field, Reason: reason})
}

// first records the first failing rule only, so that a malformed value does
// not produce a cascade of follow-up reasons.
func (f *failures) first(field string, reasons ...func() string) {
	for _, reason := range reasons {
		if r := reason(); r != "" {
			f.add(field, r)
			return
		}
	}
}

func (f *failures) err() error {
	return f.result.ErrorOrNil()
}

func ipConfigField(version domain.ProtocolVersion, name string) string {
	return fmt.Sprintf("ipConfigs.%s.%s", version, name)
}

func hostField(index int, name string) string {
	return fmt.Sprintf("hosts[%d].%s", index, name)
}

// ValidateNetworkWide checks the shared settings of a host group. It returns
// nil, a *multierror.Error of *domain.ValidationFailure, or domain.ErrInternal
// when called without values.
func ValidateNetworkWide(values *domain.FormViewNetworkWideValues) error {
	if values == nil {
		return errors.Wrap(domain.ErrInternal, "network-wide values are missing")
	}

	var f failures
	if values.ProtocolType != domain.ProtocolTypeIPv4 && values.ProtocolType != domain.ProtocolTypeDualStack {
		f.add("protocolType", fmt.Sprintf("Unknown protocol type %q", values.ProtocolType))
	}
	f.add("vlanId", VlanIDRange(values.UseVlan, values.VlanID))

	for _, version := range domain.ShownProtocolVersions(values.ProtocolType) {
		cfg := values.IPConfig(version)
		f.add(ipConfigField(version, "machineNetwork"), CidrSyntax(version, cfg.MachineNetwork))
		f.first(ipConfigField(version, "gateway"), addressRules(version, cfg.MachineNetwork, cfg.Gateway, "Gateway")...)
	}

	validateDNS(&f, values)
	return f.err()
}

func addressRules(version domain.ProtocolVersion, cidr domain.Cidr, literal, what string) []func() string {
	return []func() string{
		func() string {
			if literal == "" {
				return what + " is required"
			}
			return ""
		},
		func() string { return AddressSyntax(version, literal) },
		func() string { return NotReserved(literal) },
		func() string { return InSubnet(cidr, literal) },
		func() string { return NotNetworkOrBroadcast(cidr, literal) },
	}
}

func validateDNS(f *failures, values *domain.FormViewNetworkWideValues) {
	servers := strings.Split(values.DNS, ",")
	if strings.TrimSpace(values.DNS) == "" {
		f.add("dns", "DNS is required")
		return
	}
	for _, server := range servers {
		server = strings.TrimSpace(server)
		f.first("dns",
			func() string {
				if server == "" {
					return "DNS server list has an empty entry"
				}
				return ""
			},
			func() string {
				for _, version := range domain.ShownProtocolVersions(values.ProtocolType) {
					if domain.IsValidAddress(version, server) {
						return ""
					}
				}
				return fmt.Sprintf("Value %q is not a valid DNS server address", server)
			},
			func() string { return NotReservedDNS(server) },
		)
	}
}

// ValidateHosts checks the per-host values against the network-wide ones.
// Every shown protocol needs an address; a host left without one after a
// protocol switch therefore blocks saving until it is filled in.
func ValidateHosts(values *domain.FormViewNetworkWideValues, hosts []domain.FormViewHost) error {
	if values == nil {
		return errors.Wrap(domain.ErrInternal, "network-wide values are missing")
	}

	var f failures
	shown := domain.ShownProtocolVersions(values.ProtocolType)

	dupMACs := toSet(DuplicateMACs(hosts))
	dupIPs := make(map[domain.ProtocolVersion]map[string]bool, len(shown))
	for _, version := range shown {
		dupIPs[version] = toSet(DuplicateIPs(hosts, version))
	}

	for i, h := range hosts {
		field := hostField(i, "macAddress")
		f.add(field, MacAddressSyntax(h.MacAddress))
		if dupMACs[strings.ToLower(h.MacAddress)] {
			f.add(field, fmt.Sprintf("MAC address %s is used by more than one host", h.MacAddress))
		}

		for _, version := range shown {
			cfg := values.IPConfig(version)
			ip := h.IP(version)
			field := hostField(i, "ips."+string(version))

			rules := addressRules(version, cfg.MachineNetwork, ip, "IP address")
			rules = append(rules, func() string {
				if canonical(ip) == canonical(cfg.Gateway) {
					return fmt.Sprintf("Address %s is the gateway address", ip)
				}
				return ""
			})
			f.first(field, rules...)

			if dupIPs[version][canonical(ip)] {
				f.add(field, fmt.Sprintf("IP address %s is used by more than one host", ip))
			}
		}
	}
	return f.err()
}

// Validate runs both the network-wide and the per-host checks and merges
// their failures.
func Validate(values *domain.FormViewNetworkWideValues, hosts []domain.FormViewHost) error {
	var result *multierror.Error
	for _, err := range []error{ValidateNetworkWide(values), ValidateHosts(values, hosts)} {
		if err == nil {
			continue
		}
		if errors.Is(err, domain.ErrInternal) {
			return err
		}
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// Failures extracts the field failures of an error returned by this package.
func Failures(err error) []*domain.ValidationFailure {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return nil
	}
	out := make([]*domain.ValidationFailure, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		var failure *domain.ValidationFailure
		if errors.As(e, &failure) {
			out = append(out, failure)
		}
	}
	return out
}

func canonical(ip string) string {
	if addr, err := netip.ParseAddr(ip); err == nil {
		return addr.String()
	}
	return ip
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
