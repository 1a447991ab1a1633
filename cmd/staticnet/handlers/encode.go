package handlers

import (
	"fmt"
	"io"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/codec"
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/validation"
)

const documentSeparator = "---"

// Encode validates the form values in path and writes the resulting
// documents as a YAML stream. The MAC address each document belongs to is
// written as a comment above its separator.
func Encode(out io.Writer, path string) error {
	form, err := readForm(path)
	if err != nil {
		return err
	}
	values := codec.ReconcileNetworkWide(form.NetworkWide)
	hosts := codec.ReconcileHostProtocols(form.Hosts, values.ProtocolType)

	if err := validation.Validate(&values, hosts); err != nil {
		printFailures(out, err)
		return err
	}

	configs, err := codec.Encode(values, hosts)
	if err != nil {
		return err
	}
	for _, config := range configs {
		for _, entry := range config.MacInterfaceMap {
			fmt.Fprintf(out, "# mac %s -> %s\n", entry.MacAddress, entry.LogicalNicName)
		}
		fmt.Fprintln(out, documentSeparator)
		fmt.Fprint(out, config.NetworkYAML)
	}
	return nil
}
