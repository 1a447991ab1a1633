package handlers

import (
	"fmt"
	"io"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/validation"
)

// Validate prints the validation failures of the form values in path. It
// returns the validation error so the command exits non-zero.
func Validate(out io.Writer, path string) error {
	form, err := readForm(path)
	if err != nil {
		return err
	}
	if err := validation.Validate(&form.NetworkWide, form.Hosts); err != nil {
		printFailures(out, err)
		return err
	}
	fmt.Fprintln(out, "ok")
	return nil
}

func printFailures(out io.Writer, err error) {
	for _, failure := range validation.Failures(err) {
		fmt.Fprintf(out, "%s: %s\n", failure.Field, failure.Reason)
	}
}
