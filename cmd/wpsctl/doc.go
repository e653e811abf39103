// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for wpsctl. One command is generated
// per process in the description document; the shared RunE path collects
// option values, submits the execution request, and monitors it to
// completion.
package cmd
