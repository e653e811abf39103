// SPDX-License-Identifier: MPL-2.0

package session

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// Headers derives the HTTP headers for the session: a bearer Authorization
// header when a token is set, the percent-encoded certificate contents in
// X-Ssl-Client-Cert when certificate auth is requested, and Accept-Language
// when a language preference is set.
//
// When both a token and certificate auth are configured, the certificate
// header replaces the bearer header. That precedence is deliberate and load
// bearing for services that reject requests carrying both.
//
// A certificate read failure propagates as the underlying filesystem error:
// it is a local configuration problem, not a service condition, so it is
// not normalized into the connection error vocabulary.
func (s Session) Headers() (http.Header, error) {
	headers := make(http.Header)

	if s.Token != "" {
		headers.Set("Authorization", "Bearer "+s.Token)
	}

	if s.CertAuth && s.CertPath != "" {
		contents, err := readCertificate(s.CertPath)
		if err != nil {
			return nil, err
		}
		headers.Del("Authorization")
		headers.Set("X-Ssl-Client-Cert", url.PathEscape(contents))
	}

	if s.Language != "" {
		headers.Set("Accept-Language", s.Language)
	}

	return headers, nil
}

// HTTPClient builds the transport for the session: TLS verification per the
// Verify flag and, when a certificate path is set, the client certificate
// for the handshake. A certificate that fails to parse is left to the
// handshake to reject, so the error surfaces through the normalizer as a
// TLS failure rather than aborting before submission.
func (s Session) HTTPClient() *http.Client {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: !s.Verify, //nolint:gosec // Verification is a user-controlled session setting.
	}

	if s.CertPath != "" {
		certPath := s.CertPath
		tlsConfig.GetClientCertificate = func(*tls.CertificateRequestInfo) (*tls.Certificate, error) {
			cert, err := tls.LoadX509KeyPair(certPath, certPath)
			if err != nil {
				return nil, fmt.Errorf("loading client certificate: %w", err)
			}
			return &cert, nil
		}
	}

	return &http.Client{
		Transport: &http.Transport{TLSClientConfig: tlsConfig},
	}
}

// readCertificate reads the certificate file, releasing the handle on every
// path including read failures.
func readCertificate(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }() // read-only file handle

	contents, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(contents), nil
}
