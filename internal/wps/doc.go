// SPDX-License-Identifier: MPL-2.0

// Package wps is the remote-service side of the CLI: it assembles execution
// requests from collected option values, submits them to a WPS endpoint over
// its JSON job API, polls submitted jobs to a terminal state, and maps
// transport and service failures onto the small error vocabulary the CLI
// surfaces to users.
package wps
