package handlers

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/codec"
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/domain"
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/nmstate"
)

// Decode reads one document per file and writes the decoded form values as
// JSON. macs[i], when present, is the MAC address of the host in paths[i].
func Decode(out io.Writer, paths, macs []string) error {
	if len(macs) > len(paths) {
		return errors.Errorf("got %d MAC addresses for %d files", len(macs), len(paths))
	}

	configs := make([]domain.HostStaticNetworkConfig, 0, len(paths))
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", path)
		}
		config := domain.HostStaticNetworkConfig{NetworkYAML: string(data)}
		if i < len(macs) {
			config.MacInterfaceMap = []domain.MacInterfaceEntry{
				{MacAddress: macs[i], LogicalNicName: nmstate.RealInterfaceName},
			}
		}
		configs = append(configs, config)
	}

	decoded, err := codec.Decode(configs)
	if err != nil {
		return err
	}
	log.Debug().Msgf("decoded %d documents as %s", len(configs), decoded.State)

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(decoded)
}
