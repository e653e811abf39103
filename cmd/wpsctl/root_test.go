// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"wpsctl/internal/issue"
	"wpsctl/pkg/process"

	"github.com/spf13/cobra"
)

func TestScanArgsFor(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "separate value",
			args: []string{"wpsctl", "--description", "/tmp/doc.json", "hello"},
			want: "/tmp/doc.json",
		},
		{
			name: "equals spelling",
			args: []string{"wpsctl", "--description=/tmp/doc.json", "hello"},
			want: "/tmp/doc.json",
		},
		{
			name: "absent flag",
			args: []string{"wpsctl", "hello", "--name", "stranger"},
			want: "",
		},
		{
			name: "flag at end without value",
			args: []string{"wpsctl", "--description"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			if got := scanArgsFor("--description"); got != tt.want {
				t.Errorf("scanArgsFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunShowLanguages(t *testing.T) {
	origDoc := processDoc
	defer func() { processDoc = origDoc }()

	processDoc = &process.Document{Languages: []string{"en-US", "fr-CA"}}

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	if err := runShowLanguages(cmd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); got != "en-US\nfr-CA\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRunShowLanguages_NoDocument(t *testing.T) {
	origDoc := processDoc
	defer func() { processDoc = origDoc }()

	processDoc = nil
	if err := runShowLanguages(&cobra.Command{}); err == nil {
		t.Fatal("expected error when no document is loaded")
	}
}

func TestRenderUnknownProcess(t *testing.T) {
	cmd := &cobra.Command{}

	err := renderUnknownProcess(cmd, "nope")

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.Code)
	}
	if !cmd.SilenceErrors || !cmd.SilenceUsage {
		t.Error("unknown process handling should silence cobra's own reporting")
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	plain := errors.New("plain failure")
	if got := formatErrorForDisplay(plain, false); got != "plain failure" {
		t.Errorf("plain error = %q", got)
	}

	actionable := issue.NewErrorContext().
		WithOperation("load configuration").
		WithSuggestion("Validate the YAML syntax of the file").
		BuildError()

	got := formatErrorForDisplay(actionable, false)
	if !strings.Contains(got, "failed to load configuration") {
		t.Errorf("actionable error = %q", got)
	}
	if !strings.Contains(got, "Validate the YAML syntax") {
		t.Errorf("actionable error should carry suggestions, got %q", got)
	}
}
