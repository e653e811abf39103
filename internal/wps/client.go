// SPDX-License-Identifier: MPL-2.0

package wps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// defaultPollInterval is the delay between job status checks.
	defaultPollInterval = 2 * time.Second

	// maxJSONResponseBytes is the upper bound on JSON response size (10 MB).
	// Prevents unbounded memory consumption from a misbehaving service.
	maxJSONResponseBytes = 10 << 20
)

type (
	// Client submits execution requests to a WPS endpoint's JSON job API and
	// polls submitted jobs. It never retries: a failed job is terminal.
	Client struct {
		httpClient   *http.Client
		baseURL      string
		headers      http.Header // auth and language headers from the session
		userAgent    string
		pollInterval time.Duration
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)

	// jobDocument is the JSON wire format of a job status response.
	jobDocument struct {
		JobID    string `json:"jobID"`
		Status   string `json:"status"`
		Progress int    `json:"progress"`
		Message  string `json:"message"`
	}

	// executeDocument is the JSON wire format of an execution request body.
	executeDocument struct {
		Inputs  []executeInput  `json:"inputs"`
		Outputs []executeOutput `json:"outputs,omitempty"`
		Mode    string          `json:"mode"`
	}

	executeInput struct {
		ID      string       `json:"id"`
		Data    string       `json:"data,omitempty"`
		Complex *ComplexData `json:"complex,omitempty"`
	}

	executeOutput struct {
		ID      string `json:"id"`
		Complex bool   `json:"complex"`
	}

	// resultsDocument is the JSON wire format of a job results response.
	resultsDocument struct {
		Outputs []OutputValue `json:"outputs"`
	}
)

// WithHTTPClient sets a custom HTTP client. The session layer uses this to
// install its TLS verification and client certificate settings.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(w *Client) {
		w.httpClient = c
	}
}

// WithHeaders sets headers attached to every request (authorization,
// language preference).
func WithHeaders(h http.Header) ClientOption {
	return func(w *Client) {
		w.headers = h
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(w *Client) {
		w.userAgent = ua
	}
}

// WithPollInterval sets the delay between job status checks.
func WithPollInterval(d time.Duration) ClientOption {
	return func(w *Client) {
		w.pollInterval = d
	}
}

// NewClient creates a Client for the given service base URL.
// Defaults: httpClient=http.DefaultClient, userAgent="wpsctl",
// pollInterval=2s.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient:   http.DefaultClient,
		baseURL:      strings.TrimRight(baseURL, "/"),
		userAgent:    "wpsctl",
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute submits an execution request and returns the job handle. In sync
// mode the returned job is already terminal; in async mode it must be driven
// to completion with Monitor. Transport failures and non-2xx responses
// produce an error and no job.
func (c *Client) Execute(ctx context.Context, req ExecutionRequest) (*Job, error) {
	mode := req.Mode
	if mode == "" {
		mode = ModeAsync
	}

	body := executeDocument{
		Inputs: make([]executeInput, 0, len(req.Inputs)),
		Mode:   string(mode),
	}
	for _, in := range req.Inputs {
		ei := executeInput{ID: in.Name}
		switch data := in.Data.(type) {
		case *ComplexData:
			ei.Complex = data
		case string:
			ei.Data = data
		default:
			ei.Data = fmt.Sprint(data)
		}
		body.Inputs = append(body.Inputs, ei)
	}
	for _, out := range req.Outputs {
		body.Outputs = append(body.Outputs, executeOutput{ID: out.Name, Complex: out.Complex})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding execution request: %w", err)
	}

	execURL := fmt.Sprintf("%s/processes/%s/execution", c.baseURL, req.ProcessID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, execURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating execution request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if mode == ModeAsync {
		httpReq.Header.Set("Prefer", "respond-async")
	}
	c.applyCommonHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("submitting execution request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var doc jobDocument
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding execution response: %w", err)
	}

	return &Job{
		ID:        doc.JobID,
		ProcessID: req.ProcessID,
		Status:    doc.toStatus(),
	}, nil
}

// Status fetches the current status of a submitted job and records it on
// the handle.
func (c *Client) Status(ctx context.Context, job *Job) (StatusUpdate, error) {
	statusURL := fmt.Sprintf("%s/jobs/%s", c.baseURL, job.ID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, http.NoBody)
	if err != nil {
		return StatusUpdate{}, fmt.Errorf("creating status request: %w", err)
	}
	c.applyCommonHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return StatusUpdate{}, fmt.Errorf("checking job %s: %w", job.ID, err)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if err := checkResponse(resp); err != nil {
		return StatusUpdate{}, err
	}

	var doc jobDocument
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(&doc); err != nil {
		return StatusUpdate{}, fmt.Errorf("decoding job status: %w", err)
	}

	job.Status = doc.toStatus()
	return job.Status, nil
}

// Results fetches the outputs of a succeeded job.
func (c *Client) Results(ctx context.Context, job *Job) ([]OutputValue, error) {
	resultsURL := fmt.Sprintf("%s/jobs/%s/results", c.baseURL, job.ID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, resultsURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating results request: %w", err)
	}
	c.applyCommonHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetching results of job %s: %w", job.ID, err)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var doc resultsDocument
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding results of job %s: %w", job.ID, err)
	}

	return doc.Outputs, nil
}

// applyCommonHeaders attaches the session headers and User-Agent.
func (c *Client) applyCommonHeaders(req *http.Request) {
	for name, values := range c.headers {
		for _, v := range values {
			req.Header.Set(name, v)
		}
	}
	req.Header.Set("User-Agent", c.userAgent)
}

// checkResponse turns a non-2xx response into a ServiceError preserving the
// service's failure detail. Authorization refusals are tagged with the
// AccessForbidden token so the normalizer can recognize them even when the
// service omits an exception report body.
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxJSONResponseBytes)) //nolint:errcheck // Best-effort body read for diagnostics.
	message := strings.TrimSpace(string(detail))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		switch {
		case message == "":
			message = accessForbiddenToken
		case !strings.Contains(message, accessForbiddenToken):
			message = accessForbiddenToken + ": " + message
		}
	}

	return &ServiceError{StatusCode: resp.StatusCode, Message: message}
}

// toStatus converts the wire document to a StatusUpdate, clamping progress
// into the 0-100 range.
func (d jobDocument) toStatus() StatusUpdate {
	progress := d.Progress
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return StatusUpdate{
		State:    State(d.Status),
		Progress: progress,
		Message:  d.Message,
	}
}
