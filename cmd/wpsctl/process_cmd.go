// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"wpsctl/internal/wps"
	"wpsctl/pkg/process"

	"github.com/spf13/cobra"
)

// buildProcessCommand creates a Cobra command for one described process.
// Flags are generated from the input parameters with their declared types;
// the shared RunE path collects the values and runs the execution.
func buildProcessCommand(desc process.Description) *cobra.Command {
	long := fmt.Sprintf("Run the %s process on the remote service", ProcessStyle.Render(desc.ID))
	if desc.Abstract != "" {
		long = desc.Abstract
	}
	if desc.Version != "" {
		long += fmt.Sprintf("\n\nProcess version: %s", desc.Version)
	}

	newCmd := &cobra.Command{
		Use:   desc.ID,
		Short: desc.Title,
		Long:  long,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values, err := collectOptionValues(cmd, desc)
			if err != nil {
				return err
			}
			return runProcess(cmd, desc, values)
		},
	}

	for _, p := range desc.Inputs {
		addParameterFlag(newCmd, p)
		if p.Required() {
			_ = newCmd.MarkFlagRequired(p.Name)
		}
	}

	return newCmd
}

// addParameterFlag registers the flag for one parameter with the type the
// description declares. Multi-valued parameters use repeatable string flags
// regardless of element type; the service parses the individual values.
func addParameterFlag(cmd *cobra.Command, p process.Parameter) {
	if p.Multiple() {
		cmd.Flags().StringArray(p.Name, nil, p.FlagUsage())
		return
	}

	switch p.Type {
	case process.TypeBoolean:
		cmd.Flags().Bool(p.Name, p.Default == "true", p.FlagUsage())
	case process.TypeInteger:
		defaultVal := 0
		if p.Default != "" {
			defaultVal, _ = strconv.Atoi(p.Default) //nolint:errcheck // Validated documents carry numeric defaults.
		}
		cmd.Flags().Int(p.Name, defaultVal, p.FlagUsage())
	case process.TypeFloat:
		defaultVal := 0.0
		if p.Default != "" {
			defaultVal, _ = strconv.ParseFloat(p.Default, 64) //nolint:errcheck // Validated documents carry numeric defaults.
		}
		cmd.Flags().Float64(p.Name, defaultVal, p.FlagUsage())
	default: // string and complex parameters
		cmd.Flags().String(p.Name, p.Default, p.FlagUsage())
	}
}

// collectOptionValues gathers the parsed flag values into the raw value
// mapping the input builder consumes. A parameter contributes a value when
// its flag was set on the command line, or when the description declares a
// non-empty default for it. Anything else stays absent so the service sees
// the parameter as unset. An explicitly passed boolean false is a set value
// and is collected as such.
func collectOptionValues(cmd *cobra.Command, desc process.Description) (map[string]any, error) {
	values := make(map[string]any, len(desc.Inputs))

	for _, p := range desc.Inputs {
		changed := cmd.Flags().Changed(p.Name)
		if !changed && (p.Default == "" || p.Complex()) {
			continue
		}

		if p.Multiple() {
			vals, err := cmd.Flags().GetStringArray(p.Name)
			if err != nil {
				return nil, err
			}
			if len(vals) == 0 && p.Default != "" {
				vals = []string{p.Default}
			}
			values[p.Name] = vals
			continue
		}

		switch p.Type {
		case process.TypeBoolean:
			v, err := cmd.Flags().GetBool(p.Name)
			if err != nil {
				return nil, err
			}
			values[p.Name] = v
		case process.TypeInteger:
			v, err := cmd.Flags().GetInt(p.Name)
			if err != nil {
				return nil, err
			}
			values[p.Name] = v
		case process.TypeFloat:
			v, err := cmd.Flags().GetFloat64(p.Name)
			if err != nil {
				return nil, err
			}
			values[p.Name] = v
		case process.TypeComplex:
			raw, err := cmd.Flags().GetString(p.Name)
			if err != nil {
				return nil, err
			}
			cd, err := resolveComplexValue(p, raw)
			if err != nil {
				return nil, err
			}
			values[p.Name] = cd
		default:
			v, err := cmd.Flags().GetString(p.Name)
			if err != nil {
				return nil, err
			}
			values[p.Name] = v
		}
	}

	return values, nil
}

// resolveComplexValue turns the raw flag text of a complex parameter into
// structured data: "@path" reads a local file into an embedded payload,
// an http(s) URL becomes a reference, and anything else is treated as an
// inline payload.
func resolveComplexValue(p process.Parameter, raw string) (*wps.ComplexData, error) {
	switch {
	case strings.HasPrefix(raw, "@"):
		contents, err := os.ReadFile(strings.TrimPrefix(raw, "@"))
		if err != nil {
			return nil, fmt.Errorf("reading complex input %s: %w", p.Name, err)
		}
		return &wps.ComplexData{MimeType: p.MimeType, Payload: string(contents)}, nil
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		return &wps.ComplexData{MimeType: p.MimeType, Reference: raw}, nil
	default:
		return &wps.ComplexData{MimeType: p.MimeType, Payload: raw}, nil
	}
}
