// SPDX-License-Identifier: MPL-2.0

package wps

const (
	// ModeAsync submits the request and returns a pollable job. This is the
	// default execution mode.
	ModeAsync Mode = "async"
	// ModeSync blocks the submission call until the job is terminal.
	ModeSync Mode = "sync"

	// StateAccepted means the service has queued the job.
	StateAccepted State = "accepted"
	// StateRunning means the job is executing.
	StateRunning State = "running"
	// StateSucceeded is the terminal success state.
	StateSucceeded State = "succeeded"
	// StateFailed is the terminal failure state.
	StateFailed State = "failed"
)

type (
	// Mode selects synchronous or asynchronous execution.
	Mode string

	// State is a job lifecycle state.
	State string

	// ComplexData is a structured input value: either an embedded payload or
	// a reference to externally hosted data. It is submitted as-is, never
	// coerced to a plain literal.
	ComplexData struct {
		// MimeType is the media type of the payload or referenced data.
		MimeType string `json:"mimeType,omitempty"`
		// Payload is the embedded data, mutually exclusive with Reference.
		Payload string `json:"payload,omitempty"`
		// Reference is a URL to externally hosted data.
		Reference string `json:"reference,omitempty"`
	}

	// InputPair binds a parameter name to its serialized value. Data is
	// either a string (literal parameters) or *ComplexData.
	InputPair struct {
		Name string
		Data any
	}

	// OutputRequest names a process output the caller wants returned.
	OutputRequest struct {
		Name string
		// Complex requests structured (reference) delivery rather than a
		// literal value.
		Complex bool
	}

	// ExecutionRequest is the immutable submission unit: which process to
	// run, with which inputs and outputs, in which mode.
	ExecutionRequest struct {
		ProcessID string
		Inputs    []InputPair
		// Outputs selects the outputs to return. Empty means the service
		// default selection.
		Outputs []OutputRequest
		Mode    Mode
	}

	// StatusUpdate is one observation of a job's progress.
	StatusUpdate struct {
		State State
		// Progress is percent complete, 0 through 100.
		Progress int
		Message  string
	}

	// Job is the handle for a submitted execution request. It is owned by
	// the monitor until a terminal state is reached.
	Job struct {
		// ID is the service-assigned job identifier.
		ID string
		// ProcessID is the process the job executes.
		ProcessID string
		// Status is the most recently observed status.
		Status StatusUpdate
	}

	// OutputValue is one produced output of a succeeded job. Either Data
	// (literal value) or Reference (URL to the produced artifact) is set.
	OutputValue struct {
		Name      string `json:"name"`
		Data      string `json:"data,omitempty"`
		MimeType  string `json:"mimeType,omitempty"`
		Reference string `json:"reference,omitempty"`
	}
)

// Terminal reports whether the state is final.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}
