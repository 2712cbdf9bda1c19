// Package ai is a small client for an external text-generation endpoint
// speaking the generate API: POST {model, prompt, stream:false} and a single
// JSON response. Calls are best-effort with a hard timeout and no retry;
// failures come back as a typed result, never as a raised error.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a generation call when no timeout is configured.
const DefaultTimeout = 120 * time.Second

// FailureKind discriminates generation failures.
type FailureKind string

const (
	FailureTimeout  FailureKind = "timeout"
	FailureUpstream FailureKind = "upstream"
)

// Failure describes why a generation call did not produce text.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// Result is the discriminated outcome of a generation call: either Response
// is set, or Err is.
type Result struct {
	Response string   `json:"response,omitempty"`
	Err      *Failure `json:"error,omitempty"`
}

// OK reports whether the call produced a response.
func (r Result) OK() bool {
	return r.Err == nil
}

// Client talks to the generation endpoint.
type Client struct {
	baseURL    string
	model      string
	timeout    time.Duration
	httpClient *http.Client
}

// generateRequest is the wire format of the generate endpoint.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse is the non-streaming response shape.
type generateResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}

// NewClient creates a generation client for the given base URL and model.
func NewClient(baseURL, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		model:   model,
		timeout: timeout,
		// The context deadline owns cancellation; the http.Client itself
		// stays unbounded so the two do not race.
		httpClient: &http.Client{},
	}
}

// Generate sends the prompt and returns a typed result. A deadline overrun
// yields a timeout failure, any other transport or non-2xx condition an
// upstream failure.
func (c *Client) Generate(ctx context.Context, prompt string) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return upstreamFailure(fmt.Sprintf("encode request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return upstreamFailure(fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return Result{Err: &Failure{Kind: FailureTimeout, Message: "generation timed out"}}
		}
		return upstreamFailure(fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return upstreamFailure(fmt.Sprintf("endpoint returned %d: %s", resp.StatusCode, string(raw)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return Result{Err: &Failure{Kind: FailureTimeout, Message: "generation timed out"}}
		}
		return upstreamFailure(fmt.Sprintf("decode response: %v", err))
	}
	return Result{Response: out.Response}
}

func upstreamFailure(msg string) Result {
	return Result{Err: &Failure{Kind: FailureUpstream, Message: msg}}
}
