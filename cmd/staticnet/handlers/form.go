// Package handlers implements the business logic of the staticnet CLI
// commands.
package handlers

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/domain"
)

// formFile is the JSON layout shared by the encode and validate commands and
// the decode output.
type formFile struct {
	NetworkWide domain.FormViewNetworkWideValues `json:"networkWide"`
	Hosts       []domain.FormViewHost            `json:"hosts"`
}

func readForm(path string) (*formFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	form := formFile{NetworkWide: domain.EmptyNetworkWideValues()}
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return &form, nil
}
