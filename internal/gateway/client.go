// Package gateway is the typed client for the strategy backend. Each backend
// capability maps to one method, and every method resolves to a
// contract.Result: the gateway never lets an error escape its boundary.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	CodeValidation  = "VALIDATION"
	CodeRejected    = "BACKEND_REJECTED"
	CodeUnreachable = "BACKEND_UNREACHABLE"
	CodeNotFound    = "NOT_FOUND"
	CodeDecode      = "DECODE_FAILURE"
)

// CodedError is a typed error used internally and for stable HTTP mapping in
// the web layer. Message is safe to show to a user.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *CodedError) Unwrap() error { return e.Cause }

func newError(code, msg string, cause error) error {
	return &CodedError{Code: code, Message: msg, Cause: cause}
}

// Config is the injected gateway configuration. BaseURL selects the backend
// target per environment; HTTPClient substitutes the transport in tests.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the strategy backend. Safe for concurrent use.
type Client struct {
	base string
	http *http.Client
}

// New builds a Client from cfg, applying the default target and the fixed
// request deadline when unset.
func New(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "http://localhost:5000"
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{base: base, http: hc}
}

// backendError is the error body shape the backend attaches to non-2xx
// responses.
type backendError struct {
	Error string `json:"error"`
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return newError(CodeDecode, "failed to encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return newError(CodeUnreachable, "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return newError(CodeUnreachable, "failed to build request", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("backend request failed", "method", req.Method, "url", req.URL.String(), "error", err)
		return newError(CodeUnreachable, "", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return newError(CodeUnreachable, "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var be backendError
		_ = json.Unmarshal(data, &be)
		code := CodeRejected
		if resp.StatusCode == http.StatusNotFound {
			code = CodeNotFound
		}
		slog.Debug("backend rejected request",
			"method", req.Method, "url", req.URL.String(), "status", resp.StatusCode, "error", be.Error)
		return newError(code, be.Error, fmt.Errorf("status %d", resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return newError(CodeDecode, "", err)
	}
	return nil
}

// failMessage collapses an internal error into the envelope: the backend's
// own message when it provided one, otherwise the per-operation fallback.
func failMessage(err error, fallback string) string {
	var coded *CodedError
	if errors.As(err, &coded) && coded.Message != "" {
		return coded.Message
	}
	return fallback
}
