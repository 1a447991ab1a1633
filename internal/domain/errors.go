package domain

import (
	"errors"
	"fmt"
)

// ErrInternal marks programmer errors raised by the validation layer, such as
// a rule invoked without the values it needs.
var ErrInternal = errors.New("internal validation error")

// ValidationFailure is a user-correctable problem with a single form field.
type ValidationFailure struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (f *ValidationFailure) Error() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Reason)
}

// MalformedDocumentError reports a stored document that does not decode into
// the document model.
type MalformedDocumentError struct {
	HostGroupID string
	Index       int
	Reason      string
}

func (e *MalformedDocumentError) Error() string {
	if e.HostGroupID != "" {
		return fmt.Sprintf("malformed network document %d of host group %s: %s", e.Index, e.HostGroupID, e.Reason)
	}
	return fmt.Sprintf("malformed network document %d: %s", e.Index, e.Reason)
}

// EncodingError reports an invariant violated while building documents.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("failed to encode network documents: %s", e.Reason)
}
