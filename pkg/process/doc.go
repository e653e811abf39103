// SPDX-License-Identifier: MPL-2.0

// Package process models WPS process descriptions: the identifiers, typed
// input parameters, outputs, and language offerings that the CLI layer turns
// into runnable commands. Descriptions are loaded from a JSON document
// produced by an out-of-band capabilities fetch; this package never talks to
// a live service.
package process
