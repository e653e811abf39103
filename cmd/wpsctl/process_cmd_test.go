// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"wpsctl/internal/wps"
	"wpsctl/pkg/process"

	"github.com/spf13/cobra"
)

func helloDescription() process.Description {
	return process.Description{
		ID:    "hello",
		Title: "Say hello",
		Inputs: []process.Parameter{
			{Name: "name", Type: process.TypeString, MinOccurs: 1, MaxOccurs: 1},
			{Name: "count", Type: process.TypeInteger, MaxOccurs: 1, Default: "3"},
			{Name: "pretty", Type: process.TypeBoolean, MaxOccurs: 1},
			{Name: "tag", Type: process.TypeString, MaxOccurs: 0},
			{Name: "text", Type: process.TypeComplex, MaxOccurs: 1, MimeType: "text/plain"},
		},
		Outputs: []process.Output{
			{Name: "output", Complex: false},
			{Name: "report", Complex: true},
		},
	}
}

func TestBuildProcessCommand_Flags(t *testing.T) {
	cmd := buildProcessCommand(helloDescription())

	if cmd.Use != "hello" {
		t.Errorf("Use = %q", cmd.Use)
	}
	if cmd.Short != "Say hello" {
		t.Errorf("Short = %q", cmd.Short)
	}

	tests := []struct {
		flag     string
		wantType string
	}{
		{"name", "string"},
		{"count", "int"},
		{"pretty", "bool"},
		{"tag", "stringArray"},
		{"text", "string"},
	}
	for _, tt := range tests {
		f := cmd.Flags().Lookup(tt.flag)
		if f == nil {
			t.Errorf("flag %q not registered", tt.flag)
			continue
		}
		if f.Value.Type() != tt.wantType {
			t.Errorf("flag %q type = %q, want %q", tt.flag, f.Value.Type(), tt.wantType)
		}
	}

	required := cmd.Flags().Lookup("name")
	if required.Annotations[cobra.BashCompOneRequiredFlag] == nil {
		t.Error("required parameter should produce a required flag")
	}
	optional := cmd.Flags().Lookup("pretty")
	if optional.Annotations[cobra.BashCompOneRequiredFlag] != nil {
		t.Error("optional parameter should not be required")
	}
}

func TestBuildProcessCommand_DefaultsFromDescription(t *testing.T) {
	cmd := buildProcessCommand(helloDescription())

	if got := cmd.Flags().Lookup("count").DefValue; got != "3" {
		t.Errorf("count default = %q, want 3", got)
	}
}

func TestCollectOptionValues(t *testing.T) {
	desc := helloDescription()
	cmd := buildProcessCommand(desc)

	if err := cmd.Flags().Set("name", "stranger"); err != nil {
		t.Fatalf("setting flag: %v", err)
	}

	values, err := collectOptionValues(cmd, desc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if values["name"] != "stranger" {
		t.Errorf("name = %v", values["name"])
	}
	// A non-empty declared default counts as a value even when unset.
	if values["count"] != 3 {
		t.Errorf("count = %v, want default 3", values["count"])
	}
	// Untouched parameters without defaults stay absent.
	if _, ok := values["pretty"]; ok {
		t.Error("unset boolean should be absent")
	}
	if _, ok := values["tag"]; ok {
		t.Error("unset multi-valued parameter should be absent")
	}
	if _, ok := values["text"]; ok {
		t.Error("unset complex parameter should be absent")
	}
}

func TestCollectOptionValues_ExplicitFalseBoolean(t *testing.T) {
	desc := helloDescription()
	cmd := buildProcessCommand(desc)

	if err := cmd.Flags().Set("pretty", "false"); err != nil {
		t.Fatalf("setting flag: %v", err)
	}

	values, err := collectOptionValues(cmd, desc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, ok := values["pretty"]
	if !ok {
		t.Fatal("an explicitly passed false is a set value")
	}
	if v != false {
		t.Errorf("pretty = %v, want false", v)
	}
}

func TestCollectOptionValues_MultipleValues(t *testing.T) {
	desc := helloDescription()
	cmd := buildProcessCommand(desc)

	for _, v := range []string{"a", "b"} {
		if err := cmd.Flags().Set("tag", v); err != nil {
			t.Fatalf("setting flag: %v", err)
		}
	}

	values, err := collectOptionValues(cmd, desc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vals, ok := values["tag"].([]string)
	if !ok || len(vals) != 2 || vals[0] != "a" || vals[1] != "b" {
		t.Errorf("tag = %v", values["tag"])
	}
}

func TestResolveComplexValue(t *testing.T) {
	p := process.Parameter{Name: "text", Type: process.TypeComplex, MimeType: "text/plain"}

	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("file contents"), 0o600); err != nil {
		t.Fatalf("writing input file: %v", err)
	}

	tests := []struct {
		name string
		raw  string
		want wps.ComplexData
	}{
		{
			name: "at-prefixed path embeds the file",
			raw:  "@" + path,
			want: wps.ComplexData{MimeType: "text/plain", Payload: "file contents"},
		},
		{
			name: "http URL becomes a reference",
			raw:  "https://example.org/data.txt",
			want: wps.ComplexData{MimeType: "text/plain", Reference: "https://example.org/data.txt"},
		},
		{
			name: "anything else is an inline payload",
			raw:  "inline text",
			want: wps.ComplexData{MimeType: "text/plain", Payload: "inline text"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveComplexValue(p, tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *got != tt.want {
				t.Errorf("got %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestResolveComplexValue_MissingFile(t *testing.T) {
	p := process.Parameter{Name: "text", Type: process.TypeComplex}

	if _, err := resolveComplexValue(p, "@"+filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
