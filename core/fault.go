package core

import (
	"errors"
	"fmt"
)

// FaultKind classifies a failed call into one of a small closed set of
// categories. The orchestrator maps each kind to a fixed speakable sentence,
// so every failure anywhere in the pipeline must surface as one of these.
type FaultKind string

const (
	// FaultTimeout indicates the transport deadline elapsed before the
	// gateway produced a complete response.
	FaultTimeout FaultKind = "timeout"
	// FaultConnectionRefused indicates the gateway host actively refused
	// the connection.
	FaultConnectionRefused FaultKind = "connection_refused"
	// FaultDNSFailure indicates the gateway hostname could not be resolved.
	FaultDNSFailure FaultKind = "dns_failure"
	// FaultTLSFailure indicates the TLS handshake with the gateway failed.
	FaultTLSFailure FaultKind = "tls_failure"
	// FaultAuthFailure indicates the gateway rejected the bearer credential
	// (HTTP 401 or 403).
	FaultAuthFailure FaultKind = "auth_failure"
	// FaultRemoteError indicates a non-2xx, non-auth status from the gateway.
	FaultRemoteError FaultKind = "remote_error"
	// FaultMalformedResponse indicates the gateway body did not match the
	// expected completion schema or carried no reply text.
	FaultMalformedResponse FaultKind = "malformed_response"
	// FaultInvalidInput indicates an empty utterance; detected before any
	// network activity.
	FaultInvalidInput FaultKind = "invalid_input"
	// FaultUnknown covers transport failures outside the named categories.
	FaultUnknown FaultKind = "unknown"
)

// Fault is the single error type crossing component boundaries. Status is
// set only for FaultRemoteError and FaultAuthFailure; Err retains the
// underlying cause for diagnostics and unwrapping.
type Fault struct {
	Kind    FaultKind
	Status  int
	Message string
	Err     error
}

// Error implements the error interface.
func (f *Fault) Error() string {
	switch {
	case f.Status != 0 && f.Message != "":
		return fmt.Sprintf("%s (status %d): %s", f.Kind, f.Status, f.Message)
	case f.Message != "":
		return fmt.Sprintf("%s: %s", f.Kind, f.Message)
	case f.Err != nil:
		return fmt.Sprintf("%s: %v", f.Kind, f.Err)
	default:
		return string(f.Kind)
	}
}

// Unwrap exposes the underlying cause to errors.Is / errors.As chains.
func (f *Fault) Unwrap() error { return f.Err }

// NewFault constructs a Fault of the given kind wrapping an optional cause.
func NewFault(kind FaultKind, message string, err error) *Fault {
	return &Fault{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the FaultKind from err. Non-Fault errors (including nil
// wrapping chains without a Fault) report FaultUnknown so callers always get
// a speakable category.
func KindOf(err error) FaultKind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return FaultUnknown
}

// IsTransient reports whether the kind represents a condition a user retry
// could plausibly clear (network weather rather than configuration).
func (k FaultKind) IsTransient() bool {
	switch k {
	case FaultTimeout, FaultConnectionRefused, FaultDNSFailure, FaultUnknown:
		return true
	default:
		return false
	}
}
