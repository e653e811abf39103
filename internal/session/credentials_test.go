// SPDX-License-Identifier: MPL-2.0

package session

import (
	"crypto/tls"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
)

const testCertPEM = "-----BEGIN CERTIFICATE-----\nMIIB\n-----END CERTIFICATE-----\n"

func writeCert(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "client.pem")
	if err := os.WriteFile(path, []byte(testCertPEM), 0o600); err != nil {
		t.Fatalf("writing certificate: %v", err)
	}
	return path
}

func TestHeaders_BearerToken(t *testing.T) {
	t.Parallel()

	s := New()
	s.Token = "abc123"

	headers, err := s.Headers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := headers.Get("Authorization"); got != "Bearer abc123" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestHeaders_CertificateAuth(t *testing.T) {
	t.Parallel()

	s := New()
	s.CertAuth = true
	s.CertPath = writeCert(t)

	headers, err := s.Headers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := headers.Get("X-Ssl-Client-Cert")
	if got == "" {
		t.Fatal("X-Ssl-Client-Cert not set")
	}
	if got == testCertPEM {
		t.Error("certificate contents should be percent-encoded")
	}
	decoded, err := url.PathUnescape(got)
	if err != nil {
		t.Fatalf("unescaping header: %v", err)
	}
	if decoded != testCertPEM {
		t.Errorf("decoded header = %q, want original PEM", decoded)
	}
}

func TestHeaders_CertificateReplacesBearer(t *testing.T) {
	t.Parallel()

	s := New()
	s.Token = "abc123"
	s.CertAuth = true
	s.CertPath = writeCert(t)

	headers, err := s.Headers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := headers.Get("Authorization"); got != "" {
		t.Errorf("Authorization should be dropped with certificate auth, got %q", got)
	}
	if headers.Get("X-Ssl-Client-Cert") == "" {
		t.Error("X-Ssl-Client-Cert not set")
	}
}

func TestHeaders_AcceptLanguage(t *testing.T) {
	t.Parallel()

	s := New()
	s.Language = "fr-CA"

	headers, err := s.Headers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := headers.Get("Accept-Language"); got != "fr-CA" {
		t.Errorf("Accept-Language = %q", got)
	}
}

func TestHeaders_MissingCertificatePropagatesRawError(t *testing.T) {
	t.Parallel()

	s := New()
	s.CertAuth = true
	s.CertPath = filepath.Join(t.TempDir(), "absent.pem")

	_, err := s.Headers()
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("got %v, want os.ErrNotExist", err)
	}
}

func TestHeaders_ZeroSessionIsEmpty(t *testing.T) {
	t.Parallel()

	headers, err := New().Headers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headers) != 0 {
		t.Errorf("expected no headers, got %v", headers)
	}
}

func TestHTTPClient_VerificationSettings(t *testing.T) {
	t.Parallel()

	tlsConfigOf := func(s Session) *tls.Config {
		transport, ok := s.HTTPClient().Transport.(*http.Transport)
		if !ok {
			t.Fatal("expected *http.Transport")
		}
		return transport.TLSClientConfig
	}

	if cfg := tlsConfigOf(New()); cfg.InsecureSkipVerify {
		t.Error("default session should verify server certificates")
	}

	s := New()
	s.Verify = false
	if cfg := tlsConfigOf(s); !cfg.InsecureSkipVerify {
		t.Error("Verify=false should skip server certificate verification")
	}
}

func TestHTTPClient_ClientCertificateCallback(t *testing.T) {
	t.Parallel()

	s := New()
	if cfg := s.HTTPClient().Transport.(*http.Transport).TLSClientConfig; cfg.GetClientCertificate != nil {
		t.Error("no certificate path should mean no client certificate callback")
	}

	s.CertPath = writeCert(t)
	cfg := s.HTTPClient().Transport.(*http.Transport).TLSClientConfig
	if cfg.GetClientCertificate == nil {
		t.Fatal("certificate path should install a client certificate callback")
	}

	// The fixture is not a valid key pair; the callback must surface the
	// parse failure instead of panicking.
	if _, err := cfg.GetClientCertificate(&tls.CertificateRequestInfo{}); err == nil {
		t.Error("expected an error loading an invalid key pair")
	}
}
