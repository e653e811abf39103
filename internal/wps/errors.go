// SPDX-License-Identifier: MPL-2.0

package wps

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"strings"
)

const (
	// KindCertVerification is a certificate-chain validation failure during
	// the transport handshake.
	KindCertVerification ErrorKind = iota + 1
	// KindTLSProtocol is a lower-level TLS protocol error, typically caused
	// by a malformed or invalid client certificate.
	KindTLSProtocol
	// KindAccessForbidden is a service-level access refusal.
	KindAccessForbidden
	// KindConnection is the catch-all for any other submission or
	// monitoring failure.
	KindConnection
)

// User-facing messages, one per error kind. These are the only connection
// failure texts the CLI ever prints.
const (
	msgCertVerification = "SSL verification of server certificate failed."
	msgTLSProtocol      = "SSL error occurred. Did you use an invalid client certificate?"
	msgAccessForbidden  = "Access to service is forbidden."
	msgConnection       = "Connection failed."
)

// accessForbiddenToken is the marker WPS exception reports carry when a
// request is refused for authorization reasons.
const accessForbiddenToken = "AccessForbidden"

type (
	// ErrorKind classifies a normalized connection failure.
	ErrorKind int

	// ConnectionError is the single error type surfaced for transport and
	// service failures. Its message is fixed by Kind; the original failure
	// is kept only as the wrapped cause for verbose diagnostics.
	ConnectionError struct {
		Kind  ErrorKind
		cause error
	}

	// ServiceError is a failure reported by the service itself: a non-2xx
	// execution response or a job that reached the failed state. Message
	// preserves the service's failure detail verbatim.
	ServiceError struct {
		StatusCode int
		Message    string
	}
)

// Error returns the fixed user-facing message for the kind.
func (e *ConnectionError) Error() string {
	switch e.Kind {
	case KindCertVerification:
		return msgCertVerification
	case KindTLSProtocol:
		return msgTLSProtocol
	case KindAccessForbidden:
		return msgAccessForbidden
	default:
		return msgConnection
	}
}

// Unwrap exposes the original failure for errors.Is/As and verbose output.
func (e *ConnectionError) Unwrap() error { return e.cause }

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("service error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("service error: %s", e.Message)
}

// Normalize maps any dispatch or monitoring failure onto exactly one
// ConnectionError. Classification order matters: certificate-chain
// validation failures are recognized first, then other TLS protocol errors,
// then service-level access refusals, with an unconditional fallback last.
// Returns nil for a nil error; an already normalized error passes through.
func Normalize(err error) *ConnectionError {
	if err == nil {
		return nil
	}

	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return connErr
	}

	return &ConnectionError{Kind: classify(err), cause: err}
}

// classify is the explicit match over failure categories. Substring
// detection is used only at the service-error step, where the collaborator
// reports failures as free text.
func classify(err error) ErrorKind {
	var (
		unknownAuthority x509.UnknownAuthorityError
		certInvalid      x509.CertificateInvalidError
		hostname         x509.HostnameError
		certVerify       *tls.CertificateVerificationError
		recordHeader     tls.RecordHeaderError
		alert            tls.AlertError
		svcErr           *ServiceError
	)

	switch {
	case errors.As(err, &unknownAuthority),
		errors.As(err, &certInvalid),
		errors.As(err, &hostname),
		errors.As(err, &certVerify):
		return KindCertVerification
	case errors.As(err, &recordHeader), errors.As(err, &alert):
		return KindTLSProtocol
	case errors.As(err, &svcErr) && strings.Contains(svcErr.Message, accessForbiddenToken):
		return KindAccessForbidden
	default:
		return KindConnection
	}
}
