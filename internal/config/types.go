// SPDX-License-Identifier: MPL-2.0

package config

type (
	// ServiceConfig holds the remote-service settings.
	ServiceConfig struct {
		// URL is the service endpoint base URL.
		URL string `mapstructure:"url"`
		// Token is the bearer token for Authorization headers.
		Token string `mapstructure:"token"`
		// Verify controls TLS verification of the server certificate.
		Verify bool `mapstructure:"verify"`
		// Cert is the path to a PEM client certificate.
		Cert string `mapstructure:"cert"`
		// CertAuth requests certificate-contents header authentication.
		CertAuth bool `mapstructure:"cert_auth"`
		// Sync requests synchronous execution.
		Sync bool `mapstructure:"sync"`
		// Language is the preferred response language (e.g. "en-US").
		Language string `mapstructure:"language"`
		// Description is the path to the process description document.
		Description string `mapstructure:"description"`
		// Outputs names the outputs to request; empty means service default.
		Outputs []string `mapstructure:"outputs"`
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		// Verbose enables verbose diagnostic output.
		Verbose bool `mapstructure:"verbose"`
	}

	// Config is the root configuration.
	Config struct {
		Service ServiceConfig `mapstructure:"service"`
		UI      UIConfig      `mapstructure:"ui"`
	}
)

// DefaultConfig returns the configuration used when no file or environment
// overrides are present: TLS verification on, asynchronous execution.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Verify: true,
		},
	}
}
