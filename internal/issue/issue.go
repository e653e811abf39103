// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	CertVerificationFailedId Id = iota + 1
	TlsProtocolErrorId
	AccessForbiddenId
	ConnectionFailedId
	ConfigLoadFailedId
	DescriptionNotFoundId
	DescriptionInvalidId
	ProcessNotFoundId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links shown in the See also section
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	certVerificationFailedIssue = &Issue{
		id: CertVerificationFailedId,
		mdMsg: `
# Server certificate could not be verified!

The service presented a certificate that does not chain to a trusted
authority, so the connection was refused before any request was sent.

## Things you can try:
- Check that the service URL points at the right host
- Install the service's CA certificate into your trust store
- If this is a test deployment you fully trust, disable verification:
~~~
$ wpsctl --insecure <process> ...
~~~`,
	}

	tlsProtocolErrorIssue = &Issue{
		id: TlsProtocolErrorId,
		mdMsg: `
# TLS handshake failed!

The TLS exchange with the service broke down below the certificate-chain
level. This usually means the client certificate is malformed, expired, or
not the one the service expects.

## Things you can try:
- Verify the file passed via --cert is a valid PEM certificate and key
- Check the certificate has not expired
- Confirm the service actually requires certificate authentication`,
	}

	accessForbiddenIssue = &Issue{
		id: AccessForbiddenId,
		mdMsg: `
# Access to the service is forbidden!

The service refused the request for authorization reasons.

## Things you can try:
- Check that your token is current:
~~~
$ wpsctl --token <token> <process> ...
~~~
- Confirm your account is allowed to execute this process
- Contact the service operator if the refusal is unexpected`,
	}

	connectionFailedIssue = &Issue{
		id: ConnectionFailedId,
		mdMsg: `
# Connection to the service failed!

The request could not be completed. The service may be down, unreachable,
or overloaded.

## Things you can try:
- Check the service URL:
~~~
$ wpsctl --url https://example.org/wps <process> ...
~~~
- Verify your network connection and proxy settings
- Retry later; the invocation is not retried automatically`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your configuration file exists but could not be read or parsed.

## Things you can try:
- Check the error message above for the specific problem
- Validate the YAML syntax of the file
- Move the file aside to fall back to defaults`,
	}

	descriptionNotFoundIssue = &Issue{
		id: DescriptionNotFoundId,
		mdMsg: `
# No process description document found!

wpsctl builds its commands from a process description document, and none
was found at the configured path.

## Search locations (in order of precedence):
1. The --description flag / WPSCTL_SERVICE_DESCRIPTION environment variable
2. The 'service.description' config entry
3. wps-processes.json in the current directory

## Things you can try:
- Point wpsctl at a document:
~~~
$ wpsctl --description /path/to/wps-processes.json <process> ...
~~~
- Regenerate the document from the service capabilities`,
	}

	descriptionInvalidIssue = &Issue{
		id: DescriptionInvalidId,
		mdMsg: `
# Process description document is invalid!

The document was found but failed to parse or validate.

## Common issues:
- Invalid JSON syntax
- A parameter with an unknown type
- Duplicate parameter names within a process
- A process with an empty identifier

## Things you can try:
- Check the error message above for the offending process or parameter
- Regenerate the document from the service capabilities`,
	}

	processNotFoundIssue = &Issue{
		id: ProcessNotFoundId,
		mdMsg: `
# Process not found!

The process you named is not in the description document.

## Things you can try:
- List the available processes:
~~~
$ wpsctl --help
~~~
- Check for typos in the process identifier
- Regenerate the description document if the service has changed`,
	}

	issues = map[Id]*Issue{
		certVerificationFailedIssue.Id(): certVerificationFailedIssue,
		tlsProtocolErrorIssue.Id():       tlsProtocolErrorIssue,
		accessForbiddenIssue.Id():        accessForbiddenIssue,
		connectionFailedIssue.Id():       connectionFailedIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
		descriptionNotFoundIssue.Id():    descriptionNotFoundIssue,
		descriptionInvalidIssue.Id():     descriptionInvalidIssue,
		processNotFoundIssue.Id():        processNotFoundIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
