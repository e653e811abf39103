// SPDX-License-Identifier: MPL-2.0

package wps

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/url"
	"testing"
)

func TestNormalize_Classification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantKind ErrorKind
		wantMsg  string
	}{
		{
			name:     "unknown authority maps to certificate verification",
			err:      fmt.Errorf("submitting execution request: %w", x509.UnknownAuthorityError{}),
			wantKind: KindCertVerification,
			wantMsg:  "SSL verification of server certificate failed.",
		},
		{
			name:     "certificate invalid maps to certificate verification",
			err:      x509.CertificateInvalidError{Reason: x509.Expired},
			wantKind: KindCertVerification,
			wantMsg:  "SSL verification of server certificate failed.",
		},
		{
			name:     "hostname mismatch maps to certificate verification",
			err:      x509.HostnameError{Host: "example.org"},
			wantKind: KindCertVerification,
			wantMsg:  "SSL verification of server certificate failed.",
		},
		{
			name: "url error wrapping x509 maps to certificate verification",
			err: &url.Error{
				Op:  "Post",
				URL: "https://example.org/wps",
				Err: x509.UnknownAuthorityError{},
			},
			wantKind: KindCertVerification,
			wantMsg:  "SSL verification of server certificate failed.",
		},
		{
			name:     "record header error maps to TLS protocol",
			err:      fmt.Errorf("submitting execution request: %w", tls.RecordHeaderError{Msg: "bad record"}),
			wantKind: KindTLSProtocol,
			wantMsg:  "SSL error occurred. Did you use an invalid client certificate?",
		},
		{
			name:     "alert error maps to TLS protocol",
			err:      fmt.Errorf("submitting execution request: %w", tls.AlertError(42)),
			wantKind: KindTLSProtocol,
			wantMsg:  "SSL error occurred. Did you use an invalid client certificate?",
		},
		{
			name:     "service error with AccessForbidden token maps to forbidden",
			err:      &ServiceError{StatusCode: 403, Message: "AccessForbidden: execute not allowed"},
			wantKind: KindAccessForbidden,
			wantMsg:  "Access to service is forbidden.",
		},
		{
			name:     "failed job carrying AccessForbidden maps to forbidden",
			err:      &ServiceError{Message: "AccessForbidden"},
			wantKind: KindAccessForbidden,
			wantMsg:  "Access to service is forbidden.",
		},
		{
			name:     "service error without token falls through to connection",
			err:      &ServiceError{StatusCode: 500, Message: "NoApplicableCode: boom"},
			wantKind: KindConnection,
			wantMsg:  "Connection failed.",
		},
		{
			name:     "plain transport error maps to connection",
			err:      errors.New("dial tcp: connection refused"),
			wantKind: KindConnection,
			wantMsg:  "Connection failed.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Normalize(tt.err)
			if got.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", got.Error(), tt.wantMsg)
			}
		})
	}
}

func TestNormalize_Nil(t *testing.T) {
	t.Parallel()

	if Normalize(nil) != nil {
		t.Error("Normalize(nil) should return nil")
	}
}

func TestNormalize_AlreadyNormalizedPassesThrough(t *testing.T) {
	t.Parallel()

	orig := Normalize(&ServiceError{Message: "AccessForbidden"})
	again := Normalize(fmt.Errorf("wrapped: %w", orig))

	if again != orig {
		t.Error("an already normalized error should pass through unchanged")
	}
}

func TestConnectionError_PreservesCause(t *testing.T) {
	t.Parallel()

	cause := &ServiceError{StatusCode: 500, Message: "boom"}
	normalized := Normalize(cause)

	var svcErr *ServiceError
	if !errors.As(normalized, &svcErr) {
		t.Fatal("the original cause should stay reachable via errors.As")
	}
	if svcErr.Message != "boom" {
		t.Errorf("cause message = %q", svcErr.Message)
	}
}

func TestServiceError_Error(t *testing.T) {
	t.Parallel()

	e := &ServiceError{StatusCode: 500, Message: "boom"}
	if e.Error() != "service error (status 500): boom" {
		t.Errorf("unexpected message: %q", e.Error())
	}

	e = &ServiceError{Message: "job failed"}
	if e.Error() != "service error: job failed" {
		t.Errorf("unexpected message: %q", e.Error())
	}
}
