// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"wpsctl/internal/issue"
	"wpsctl/internal/wps"
)

// classifyConnectionError maps a dispatch/monitoring failure to an issue
// catalog ID and returns the styled message for CLI rendering. The message
// carries only the normalized vocabulary; in verbose mode the original
// failure chain is appended for diagnosis.
func classifyConnectionError(err error, verbose bool) (issueID issue.Id, styledMsg string) {
	normalized := wps.Normalize(err)

	switch normalized.Kind {
	case wps.KindCertVerification:
		issueID = issue.CertVerificationFailedId
	case wps.KindTLSProtocol:
		issueID = issue.TlsProtocolErrorId
	case wps.KindAccessForbidden:
		issueID = issue.AccessForbiddenId
	default:
		issueID = issue.ConnectionFailedId
	}

	msg := fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), normalized.Error())
	if verbose && normalized.Unwrap() != nil {
		msg += fmt.Sprintf("\nCaused by: %v\n", normalized.Unwrap())
	}

	return issueID, msg
}
