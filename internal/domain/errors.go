package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired means no usable access token is present. Callers
	// redirect to login instead of calling the API.
	ErrAuthRequired = errors.New("authentication required")

	// ErrNoTransactionFound means the gateway callback carried none of the
	// recognized transaction-id parameters.
	ErrNoTransactionFound = errors.New("no transaction id found in callback parameters")

	// ErrNoPaymentURL means the initiation response carried neither a
	// payment_url nor a checkout_url field.
	ErrNoPaymentURL = errors.New("no payment url received")

	// ErrPlansUnavailable is the distinct catalog-load failure state. The
	// catalog stays empty and the caller offers a manual retry.
	ErrPlansUnavailable = errors.New("pricing plans unavailable")
)

// FetchError wraps a failed read (transport or decode). Reads recover
// locally into an empty state with a manual retry action.
type FetchError struct {
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SubmitError is a mutation rejected by the server. Scope names the
// smallest enclosing unit the message should be shown at, so unrelated
// parts of the UI stay usable.
type SubmitError struct {
	Scope   string
	Message string
}

func (e *SubmitError) Error() string {
	if e.Scope == "" {
		return e.Message
	}
	return e.Scope + ": " + e.Message
}
