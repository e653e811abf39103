// SPDX-License-Identifier: MPL-2.0

// Package session holds the per-invocation state of a CLI run: service
// endpoint, credentials, TLS preferences, execution mode, and output
// selection. A Session is constructed once from config and flags and is
// read-only afterwards; there is no package-level state.
package session

type (
	// Session is the per-invocation context. The zero value is usable and
	// means: unauthenticated, TLS verification on, asynchronous execution,
	// service-default outputs, no language preference.
	Session struct {
		// URL is the service endpoint base URL.
		URL string
		// Token is the bearer token for Authorization headers.
		Token string
		// Verify controls TLS verification of the server certificate.
		Verify bool
		// CertPath is the client certificate file (PEM) used both for the
		// TLS handshake and, with CertAuth, for header-based auth.
		CertPath string
		// CertAuth requests certificate-contents header authentication.
		CertAuth bool
		// Sync requests synchronous execution. The default is asynchronous.
		Sync bool
		// Outputs names the outputs to request; empty means service default.
		Outputs []string
		// Language is the preferred response language (e.g. "en-US").
		Language string
	}
)

// New returns a Session with the defaults applied.
func New() Session {
	return Session{Verify: true}
}
