// SPDX-License-Identifier: MPL-2.0

// Package config loads wpsctl configuration from a YAML file and WPSCTL_*
// environment variables. Configuration feeds the per-invocation session
// defaults; command-line flags override it at the CLI layer.
package config
