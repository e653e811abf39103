// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"wpsctl/internal/config"
	"wpsctl/internal/issue"
	"wpsctl/pkg/process"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

const defaultDescriptionPath = "wps-processes.json"

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// descriptionFile is the path to the process description document
	descriptionFile string
	// showLanguages prints the service's language offerings and exits
	showLanguages bool

	// processDoc is the loaded description document the commands were
	// generated from. Nil when no document was found.
	processDoc *process.Document

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "wpsctl",
		Short: "A command-line client for Web Processing Services",
		Long: TitleStyle.Render("wpsctl") + SubtitleStyle.Render(" - A command-line client for Web Processing Services") + `

wpsctl turns a WPS process description document into runnable commands:
one subcommand per remote process, with flags generated from the process
input parameters. Invocations are submitted asynchronously by default and
monitored until they finish.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Generate wps-processes.json from the service capabilities
  2. Point wpsctl at the service with --url (or the config file)
  3. Invoke a process: wpsctl <process> --<param> <value>

` + SubtitleStyle.Render("Examples:") + `
  wpsctl --help                        List available processes
  wpsctl hello --name stranger         Run the 'hello' process
  wpsctl --sync wordcount --text @f.txt  Run synchronously
  wpsctl --show-languages              List service language offerings`,
		// Unknown process names fall through to the root so they can be
		// answered from the issue catalog instead of cobra's default error.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showLanguages {
				return runShowLanguages(cmd)
			}
			if len(args) > 0 {
				return renderUnknownProcess(cmd, args[0])
			}
			return cmd.Help()
		},
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/wpsctl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&descriptionFile, "description", "", "process description document (default is ./wps-processes.json)")
	rootCmd.PersistentFlags().String("url", "", "service endpoint base URL")
	rootCmd.PersistentFlags().String("token", "", "bearer token for authentication")
	rootCmd.PersistentFlags().String("cert", "", "client certificate file (PEM)")
	rootCmd.PersistentFlags().Bool("cert-auth", false, "send the certificate contents in the X-Ssl-Client-Cert header")
	rootCmd.PersistentFlags().BoolP("insecure", "k", false, "skip TLS verification of the server certificate")
	rootCmd.PersistentFlags().BoolP("sync", "s", false, "submit the request synchronously")
	rootCmd.PersistentFlags().StringP("language", "l", "", "preferred response language (e.g. en-US)")
	rootCmd.PersistentFlags().StringArrayP("output", "o", nil, "request a specific output (repeatable; default is all declared outputs)")

	rootCmd.Flags().BoolVar(&showLanguages, "show-languages", false, "list the languages the service accepts and exit")
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute generates the process commands, attaches them to the root command,
// and runs it. This is called by main.main().
func Execute() {
	registerProcessCommands()

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// registerProcessCommands loads the description document and adds one
// command per described process. A missing document is a warning, not a
// fatal error: the root command (help, version, --show-languages against a
// stale cache) must stay usable.
func registerProcessCommands() {
	path := resolveDescriptionPath()

	doc, err := process.LoadDocument(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if rendered, rerr := issue.Get(issue.DescriptionNotFoundId).Render("dark"); rerr == nil {
				fmt.Fprint(os.Stderr, rendered)
			}
			return
		}
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		if rendered, rerr := issue.Get(issue.DescriptionInvalidId).Render("dark"); rerr == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
		return
	}

	processDoc = doc
	for i := range doc.Processes {
		rootCmd.AddCommand(buildProcessCommand(doc.Processes[i]))
	}
}

// resolveDescriptionPath resolves the description document path before Cobra
// has parsed anything: the --description flag wins, then the environment,
// then the config file, then the working-directory default. The flag has to
// be scanned by hand because the generated commands must exist before
// parsing starts.
func resolveDescriptionPath() string {
	if path := scanArgsFor("--description"); path != "" {
		descriptionFile = path
		return path
	}
	if path := os.Getenv(config.EnvPrefix + "_SERVICE_DESCRIPTION"); path != "" {
		return path
	}
	if cfg, err := config.NewProvider().Load(context.Background(), config.LoadOptions{ConfigFilePath: scanArgsFor("--config")}); err == nil {
		if cfg.Service.Description != "" {
			return cfg.Service.Description
		}
	}
	return defaultDescriptionPath
}

// scanArgsFor extracts the value of a long flag from os.Args, handling both
// the "--flag value" and "--flag=value" spellings.
func scanArgsFor(flag string) string {
	args := os.Args[1:]
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(arg, flag+"=") {
			return strings.TrimPrefix(arg, flag+"=")
		}
	}
	return ""
}

// renderUnknownProcess reports an invocation of a process that is not in the
// description document and converts it into a silent non-zero exit.
func renderUnknownProcess(cmd *cobra.Command, name string) error {
	fmt.Fprintf(os.Stderr, "\n%s process %q is not in the description document\n",
		ErrorStyle.Render("Error:"), name)
	if rendered, rerr := issue.Get(issue.ProcessNotFoundId).Render("dark"); rerr == nil {
		fmt.Fprint(os.Stderr, rendered)
	}

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: 1, Err: fmt.Errorf("process %q not found", name)}
}

// runShowLanguages prints the service's language offerings.
func runShowLanguages(cmd *cobra.Command) error {
	if processDoc == nil {
		return fmt.Errorf("no process description document loaded")
	}
	for _, lang := range processDoc.Languages {
		fmt.Fprintln(cmd.OutOrStdout(), lang)
	}
	return nil
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
