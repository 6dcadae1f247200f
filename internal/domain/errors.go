package domain

import (
	"errors"
	"fmt"
)

// Suggestion failure taxonomy. These never cross the suggestion client
// boundary; they select the recovery path and label log entries.
var (
	ErrMalformedResponse   = errors.New("malformed response")
	ErrSemanticallyInvalid = errors.New("semantically invalid suggestion")
	ErrTransportFailure    = errors.New("transport failure")
)

// Use-case errors returned to the CLI.
var (
	ErrIncompleteParameters = errors.New("all four parameters are required")
	ErrUnknownOption        = errors.New("value is not in the catalog")
	ErrEmptyPrompt          = errors.New("prompt text is empty")
	ErrMetadataUnavailable  = errors.New("failed to generate title and keywords")
)

// RejectedError describes why a suggestion was rejected.
type RejectedError struct {
	Field  string
	Reason string
}

func (e *RejectedError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("suggestion rejected: %s", e.Reason)
	}
	return fmt.Sprintf("suggestion rejected: %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrSemanticallyInvalid.
func (e *RejectedError) Unwrap() error {
	return ErrSemanticallyInvalid
}

// Reject builds a RejectedError.
func Reject(field, reason string) error {
	return &RejectedError{Field: field, Reason: reason}
}

// FailureReason maps a suggestion error to the label used in logs and in
// Randomization.Reason.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSemanticallyInvalid):
		return "semantically_invalid"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	default:
		return "transport_failure"
	}
}
