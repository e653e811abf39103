// SPDX-License-Identifier: MPL-2.0

package process

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// TypeString is a plain text literal input.
	TypeString DataType = "string"
	// TypeInteger is a whole-number literal input.
	TypeInteger DataType = "integer"
	// TypeFloat is a floating-point literal input.
	TypeFloat DataType = "float"
	// TypeBoolean is a true/false literal input.
	TypeBoolean DataType = "boolean"
	// TypeComplex is a structured (non-literal) input such as an embedded
	// payload or a reference to a file.
	TypeComplex DataType = "complex"
)

var (
	// ErrInvalidDataType is returned when a parameter declares an unknown data type.
	ErrInvalidDataType = errors.New("invalid data type")
	// ErrInvalidDescription is the sentinel wrapped by description validation failures.
	ErrInvalidDescription = errors.New("invalid process description")
)

type (
	// DataType is the declared type of a process input parameter.
	DataType string

	// Parameter describes a single process input.
	Parameter struct {
		// Name is the parameter identifier, unique within a process.
		Name string `json:"name"`
		// Title is a short human-readable label.
		Title string `json:"title,omitempty"`
		// Abstract is the longer help text shown in command usage.
		Abstract string `json:"abstract,omitempty"`
		// Type is the declared data type.
		Type DataType `json:"type"`
		// MinOccurs is the minimum number of values (0 means optional).
		MinOccurs int `json:"minOccurs"`
		// MaxOccurs is the maximum number of values (0 means unbounded).
		MaxOccurs int `json:"maxOccurs"`
		// Default is the textual default value for literal parameters.
		Default string `json:"default,omitempty"`
		// MimeType is the expected media type for complex parameters.
		MimeType string `json:"mimeType,omitempty"`
	}

	// Output describes a single process output.
	Output struct {
		// Name is the output identifier.
		Name string `json:"name"`
		// Title is a short human-readable label.
		Title string `json:"title,omitempty"`
		// Complex reports whether the output carries structured data rather
		// than a literal value.
		Complex bool `json:"complex"`
	}

	// Description is the full description of one remote process.
	Description struct {
		// ID is the process identifier used in execution requests.
		ID string `json:"id"`
		// Title is a short human-readable label.
		Title string `json:"title,omitempty"`
		// Abstract is the long help text for the generated command.
		Abstract string `json:"abstract,omitempty"`
		// Version is the process version reported by the service.
		Version string `json:"version,omitempty"`
		// Inputs are the input parameters, in declaration order. The order is
		// preserved all the way into the execution request.
		Inputs []Parameter `json:"inputs"`
		// Outputs are the declared process outputs.
		Outputs []Output `json:"outputs"`
	}
)

// Valid reports whether the data type is one of the known kinds.
func (t DataType) Valid() bool {
	switch t {
	case TypeString, TypeInteger, TypeFloat, TypeBoolean, TypeComplex:
		return true
	}
	return false
}

// Required reports whether at least one value must be supplied.
func (p Parameter) Required() bool {
	return p.MinOccurs > 0
}

// Multiple reports whether the parameter accepts more than one value.
// MaxOccurs of zero means unbounded.
func (p Parameter) Multiple() bool {
	return p.MaxOccurs == 0 || p.MaxOccurs > 1
}

// Complex reports whether the parameter carries structured data.
func (p Parameter) Complex() bool {
	return p.Type == TypeComplex
}

// FlagUsage builds the help line for the generated command flag.
func (p Parameter) FlagUsage() string {
	usage := p.Abstract
	if usage == "" {
		usage = p.Title
	}
	if usage == "" {
		usage = fmt.Sprintf("%s input", p.Type)
	}
	if p.Required() {
		return usage + " (required)"
	}
	return usage
}

// Validate checks structural invariants of the description: a non-empty
// identifier, known parameter types, and parameter name uniqueness.
func (d *Description) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: process identifier is empty", ErrInvalidDescription)
	}

	seen := make(map[string]struct{}, len(d.Inputs))
	for _, in := range d.Inputs {
		if strings.TrimSpace(in.Name) == "" {
			return fmt.Errorf("%w: process %q has a parameter with an empty name", ErrInvalidDescription, d.ID)
		}
		if !in.Type.Valid() {
			return fmt.Errorf("%w: parameter %q of process %q: %q", ErrInvalidDataType, in.Name, d.ID, in.Type)
		}
		if _, dup := seen[in.Name]; dup {
			return fmt.Errorf("%w: process %q declares parameter %q twice", ErrInvalidDescription, d.ID, in.Name)
		}
		seen[in.Name] = struct{}{}
	}

	return nil
}
