// Copyright 2025 SFCC Metadata Explorer contributors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/ocapi"
	"github.com/david-mkhitaryan-dev/sfcc-metadata-explorer/shared/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second
	// DefaultMaxResponseSize is the maximum response body size (10MB)
	DefaultMaxResponseSize = 10 * 1024 * 1024
	// DefaultMaxRetries is the default number of retry attempts
	DefaultMaxRetries = 3
	// DefaultRetryDelay is the initial delay between retries
	DefaultRetryDelay = 100 * time.Millisecond
	// MaxRetryDelay is the maximum delay between retries
	MaxRetryDelay = 5 * time.Second
)

// ErrSetup is returned when a call carrying a setup error reaches Execute.
// Such calls must never be dispatched to the network.
var ErrSetup = errors.New("call has unresolved setup errors")

// HTTPClient is an interface for HTTP client operations (enables testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenProvider supplies the OAuth bearer token for authorized calls. Token
// acquisition itself is out of scope here; hosts plug in their own flow.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenProvider around an already-acquired token
type StaticToken string

// Token returns the wrapped token
func (s StaticToken) Token(ctx context.Context) (string, error) {
	if s == "" {
		return "", errors.New("no access token configured")
	}
	return string(s), nil
}

// Executor is the narrow transport boundary the tree materializer depends
// on. The default implementation is Client; hosts may substitute their own.
type Executor interface {
	Execute(ctx context.Context, call ocapi.ResolvedCall) (*Response, error)
}

// Config configures a Client
type Config struct {
	HTTPClient      HTTPClient    // optional, defaults to a pooled net/http client
	Tokens          TokenProvider // optional, bearer calls fail without one
	Timeout         time.Duration
	MaxRetries      int
	RetryDelay      time.Duration
	MaxResponseSize int64
	Logger          *logger.Logger
}

// Client executes ResolvedCalls against the sandbox with retry support,
// size-limited reads and per-call request IDs for log correlation.
type Client struct {
	httpClient      HTTPClient
	tokens          TokenProvider
	maxRetries      int
	retryDelay      time.Duration
	maxResponseSize int64
	log             *logger.Logger
	metrics         *CallMetrics
}

// New creates a Client with secure defaults
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.MaxResponseSize <= 0 {
		cfg.MaxResponseSize = DefaultMaxResponseSize
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.New("executor")
	}
	return &Client{
		httpClient:      cfg.HTTPClient,
		tokens:          cfg.Tokens,
		maxRetries:      cfg.MaxRetries,
		retryDelay:      cfg.RetryDelay,
		maxResponseSize: cfg.MaxResponseSize,
		log:             cfg.Logger,
		metrics:         NewCallMetrics(),
	}
}

// Metrics exposes the client's call metrics
func (c *Client) Metrics() *CallMetrics {
	return c.metrics
}

// Execute dispatches a ResolvedCall and decodes the OCAPI response envelope.
// GET, PUT and DELETE calls are retried on retryable status codes with
// exponential backoff; other methods are dispatched once.
func (c *Client) Execute(ctx context.Context, call ocapi.ResolvedCall) (resp *Response, err error) {
	start := time.Now()
	defer func() {
		c.metrics.Record(time.Since(start), err)
	}()

	if call.SetupError {
		return nil, ocapi.NewOCAPIError(call.Resource, call.Call, call.SetupErrMsg, ErrSetup)
	}

	requestID := uuid.NewString()

	maxRetries := c.maxRetries
	if !isIdempotentMethod(call.Method) {
		maxRetries = 0
	}

	var lastErr error
	var httpResp *http.Response

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.calculateBackoff(attempt)
			c.metrics.RecordRetry()
			c.log.Warn(requestID, "retrying call", map[string]interface{}{
				"attempt": attempt,
				"delay":   delay.String(),
			})
			select {
			case <-ctx.Done():
				return nil, ocapi.NewOCAPIError(call.Resource, call.Call, "context cancelled during retry", ctx.Err())
			case <-time.After(delay):
			}
		}

		req, err := c.buildRequest(ctx, call, requestID)
		if err != nil {
			return nil, ocapi.NewOCAPIError(call.Resource, call.Call, "failed to create request", err)
		}

		httpResp, lastErr = c.httpClient.Do(req)
		if lastErr == nil && !isRetryableStatusCode(httpResp.StatusCode) {
			break
		}
		if httpResp != nil {
			_, _ = io.Copy(io.Discard, io.LimitReader(httpResp.Body, 1024))
			_ = httpResp.Body.Close()
		}
		if lastErr == nil {
			lastErr = fmt.Errorf("HTTP %d", httpResp.StatusCode)
		}
	}

	if lastErr != nil {
		c.log.ErrorWithCause(requestID, "request failed after retries", lastErr, map[string]interface{}{
			"resource": call.Resource,
			"call":     call.Call,
		})
		return nil, ocapi.NewOCAPIError(call.Resource, call.Call, "request failed after retries", lastErr)
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := c.readBody(httpResp.Body)
	if err != nil {
		return nil, ocapi.NewOCAPIError(call.Resource, call.Call, "failed to read response", err)
	}

	decoded, apiErr := decodeEnvelope(httpResp.StatusCode, body)
	if apiErr != nil {
		c.log.ErrorWithCause(requestID, "sandbox returned a fault", apiErr, map[string]interface{}{
			"resource": call.Resource,
			"call":     call.Call,
			"status":   httpResp.StatusCode,
		})
		return nil, apiErr
	}

	c.log.InfoWithDuration(requestID, "call completed",
		float64(time.Since(start).Milliseconds()), map[string]interface{}{
			"resource": call.Resource,
			"call":     call.Call,
			"method":   call.Method,
			"status":   httpResp.StatusCode,
		})

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       decoded,
		RequestID:  requestID,
	}, nil
}

// buildRequest turns a ResolvedCall into an http.Request with the call's
// declared headers and, when required, a bearer token.
func (c *Client) buildRequest(ctx context.Context, call ocapi.ResolvedCall, requestID string) (*http.Request, error) {
	var bodyReader io.Reader
	if len(call.Body) > 0 {
		bodyReader = bytes.NewReader(call.Body)
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, call.Endpoint, bodyReader)
	if err != nil {
		return nil, err
	}

	for key, val := range call.Headers {
		req.Header.Set(key, val)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	req.Header.Set("X-Request-ID", requestID)

	if call.Authorization == ocapi.AuthBearer {
		if c.tokens == nil {
			return nil, errors.New("call requires a bearer token but no token provider is configured")
		}
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("token provider: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// readBody reads the response with the configured size limit
func (c *Client) readBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, c.maxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > c.maxResponseSize {
		return nil, fmt.Errorf("response size exceeds limit of %d bytes", c.maxResponseSize)
	}
	return body, nil
}

// calculateBackoff calculates exponential backoff delay
func (c *Client) calculateBackoff(attempt int) time.Duration {
	delay := c.retryDelay * time.Duration(1<<uint(attempt-1))
	if delay > MaxRetryDelay {
		delay = MaxRetryDelay
	}
	return delay
}

func isIdempotentMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodHead:
		return true
	default:
		return false
	}
}

// isRetryableStatusCode returns true if the status code indicates a retryable error
func isRetryableStatusCode(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
