package gateway

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"

	"github.com/hearthlabs/clawbridge/core"
)

// ClassifyTransport maps a network-layer error to one of the closed transport
// fault kinds. Classification inspects the wrapped cause chain, so it works
// on the *url.Error values returned by net/http as well as on SDK errors that
// wrap them. Anything unrecognized becomes FaultUnknown; the cause is always
// retained for diagnostics.
func ClassifyTransport(err error) *core.Fault {
	if err == nil {
		return nil
	}

	// A Fault produced further down the stack passes through untouched.
	var fault *core.Fault
	if errors.As(err, &fault) {
		return fault
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return core.NewFault(core.FaultTimeout, "gateway did not respond in time", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return core.NewFault(core.FaultTimeout, "gateway did not respond in time", err)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return core.NewFault(core.FaultDNSFailure, "cannot resolve gateway host", err)
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return core.NewFault(core.FaultConnectionRefused, "gateway refused connection", err)
	}

	if isTLSError(err) {
		return core.NewFault(core.FaultTLSFailure, "TLS handshake with gateway failed", err)
	}

	return core.NewFault(core.FaultUnknown, "transport failure", err)
}

// FaultFromStatus maps a non-2xx HTTP status to an auth or remote fault.
// An empty message is replaced with a generic placeholder so the orchestrator
// always has something to log.
func FaultFromStatus(status int, message string) *core.Fault {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		if message == "" {
			message = "invalid API key or token"
		}
		return &core.Fault{Kind: core.FaultAuthFailure, Status: status, Message: message}
	}
	if message == "" {
		message = fmt.Sprintf("gateway returned status %d", status)
	}
	return &core.Fault{Kind: core.FaultRemoteError, Status: status, Message: message}
}

// isTLSError recognizes the handshake and certificate verification errors
// surfaced by crypto/tls and crypto/x509.
func isTLSError(err error) bool {
	var (
		certVerify   *tls.CertificateVerificationError
		recordHeader tls.RecordHeaderError
		unknownAuth  x509.UnknownAuthorityError
		hostname     x509.HostnameError
		certInvalid  x509.CertificateInvalidError
	)
	return errors.As(err, &certVerify) ||
		errors.As(err, &recordHeader) ||
		errors.As(err, &unknownAuth) ||
		errors.As(err, &hostname) ||
		errors.As(err, &certInvalid)
}
