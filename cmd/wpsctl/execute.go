// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"wpsctl/internal/config"
	"wpsctl/internal/issue"
	"wpsctl/internal/session"
	"wpsctl/internal/wps"
	"wpsctl/pkg/process"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runProcess is the shared execution path of every generated command:
// build the session, assemble the inputs, submit the request, monitor the
// job, and print the outputs. Connection-level failures are rendered from
// the normalized vocabulary only; a certificate file that cannot be read is
// a local problem and propagates as the raw filesystem error.
func runProcess(cmd *cobra.Command, desc process.Description, values map[string]any) error {
	ctx := cmd.Context()
	logger := newLogger()

	sess := buildSession(cmd, cmd.Flags())

	headers, err := sess.Headers()
	if err != nil {
		return err
	}

	client := wps.NewClient(sess.URL,
		wps.WithHTTPClient(sess.HTTPClient()),
		wps.WithHeaders(headers),
		wps.WithUserAgent("wpsctl/"+Version),
	)

	inputs := wps.BuildInputs(desc.Inputs, values)

	mode := wps.ModeAsync
	if sess.Sync {
		mode = wps.ModeSync
	}

	req := wps.ExecutionRequest{
		ProcessID: desc.ID,
		Inputs:    inputs,
		Outputs:   selectOutputs(desc, sess.Outputs),
		Mode:      mode,
	}

	logger.Debug("submitting execution request",
		"process", desc.ID, "inputs", len(inputs), "mode", mode)

	job, err := client.Execute(ctx, req)
	if err != nil {
		return renderConnectionFailure(cmd, err)
	}

	logger.Debug("job submitted", "job", job.ID, "state", job.Status.State)

	updates, done := client.Monitor(ctx, job)
	for update := range updates {
		renderStatus(cmd, desc.ID, update)
	}
	if err := <-done; err != nil {
		return renderConnectionFailure(cmd, err)
	}

	results, err := client.Results(ctx, job)
	if err != nil {
		return renderConnectionFailure(cmd, err)
	}

	renderResults(cmd, desc.ID, results)
	return nil
}

// buildSession derives the per-invocation session: configuration first,
// command-line flags on top.
func buildSession(cmd *cobra.Command, flags *pflag.FlagSet) session.Session {
	sess := session.New()

	cfg, err := config.NewProvider().Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		cfg = config.DefaultConfig()
	}

	sess.URL = cfg.Service.URL
	sess.Token = cfg.Service.Token
	sess.Verify = cfg.Service.Verify
	sess.CertPath = cfg.Service.Cert
	sess.CertAuth = cfg.Service.CertAuth
	sess.Sync = cfg.Service.Sync
	sess.Language = cfg.Service.Language
	sess.Outputs = cfg.Service.Outputs

	if flags.Changed("url") {
		sess.URL, _ = flags.GetString("url") //nolint:errcheck // Registered flag.
	}
	if flags.Changed("token") {
		sess.Token, _ = flags.GetString("token") //nolint:errcheck // Registered flag.
	}
	if flags.Changed("insecure") {
		insecure, _ := flags.GetBool("insecure") //nolint:errcheck // Registered flag.
		sess.Verify = !insecure
	}
	if flags.Changed("cert") {
		sess.CertPath, _ = flags.GetString("cert") //nolint:errcheck // Registered flag.
	}
	if flags.Changed("cert-auth") {
		sess.CertAuth, _ = flags.GetBool("cert-auth") //nolint:errcheck // Registered flag.
	}
	if flags.Changed("sync") {
		sess.Sync, _ = flags.GetBool("sync") //nolint:errcheck // Registered flag.
	}
	if flags.Changed("language") {
		sess.Language, _ = flags.GetString("language") //nolint:errcheck // Registered flag.
	}
	if flags.Changed("output") {
		sess.Outputs, _ = flags.GetStringArray("output") //nolint:errcheck // Registered flag.
	}

	return sess
}

// selectOutputs maps the session's output selection onto the declared
// outputs. An empty selection requests every declared output, mirroring
// what the service would produce by default.
func selectOutputs(desc process.Description, selection []string) []wps.OutputRequest {
	complexByName := make(map[string]bool, len(desc.Outputs))
	for _, out := range desc.Outputs {
		complexByName[out.Name] = out.Complex
	}

	if len(selection) == 0 {
		requests := make([]wps.OutputRequest, 0, len(desc.Outputs))
		for _, out := range desc.Outputs {
			requests = append(requests, wps.OutputRequest{Name: out.Name, Complex: out.Complex})
		}
		return requests
	}

	requests := make([]wps.OutputRequest, 0, len(selection))
	for _, name := range selection {
		requests = append(requests, wps.OutputRequest{Name: name, Complex: complexByName[name]})
	}
	return requests
}

// renderStatus prints one monitoring observation, matching the classic
// console monitor line: process [percent/100] - message.
func renderStatus(cmd *cobra.Command, processID string, u wps.StatusUpdate) {
	message := u.Message
	if len(message) > 50 {
		message = message[:50]
	}
	line := fmt.Sprintf("%s [%d/100] - %s", processID, u.Progress, message)
	fmt.Fprintln(cmd.OutOrStdout(), ProgressStyle.Render(line))
}

// renderResults prints the outputs of a succeeded job.
func renderResults(cmd *cobra.Command, processID string, results []wps.OutputValue) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, SuccessStyle.Render(processID+" done."))
	for _, r := range results {
		value := r.Data
		if value == "" {
			value = r.Reference
		}
		fmt.Fprintf(out, "%s: %s\n", ProcessStyle.Render(r.Name), value)
	}
}

// renderConnectionFailure classifies the failure, prints the mapped message
// (and catalog help), and converts it into a silent non-zero exit. Only the
// normalized message reaches the user; the raw transport error does not.
func renderConnectionFailure(cmd *cobra.Command, err error) error {
	issueID, styledMsg := classifyConnectionError(err, verbose)

	fmt.Fprint(os.Stderr, styledMsg)
	if rendered, rerr := issue.Get(issueID).Render("dark"); rerr == nil {
		fmt.Fprint(os.Stderr, rendered)
	}

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: 1, Err: wps.Normalize(err)}
}

// newLogger builds the verbose diagnostics logger.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "wpsctl",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
