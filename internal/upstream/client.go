// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package upstream provides a small JSON client for the REST API the portal proxies.

Non-2xx answers surface as [*StatusError] so that callers can map a missing
remote resource to NOT_FOUND and every other failure to BAD_GATEWAY.
*/
package upstream

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
	"strings"
	"time"

	"github.com/taibuivan/portal/internal/platform/apperr"
	"github.com/taibuivan/portal/internal/platform/ctxutil"
)

// maxErrorBody bounds how much of a failed response body is drained.
const maxErrorBody = 4 << 10

// # Errors

// StatusError reports a non-2xx upstream answer.
type StatusError struct {
	StatusCode int
	Method     string
	Path       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream: %s %s returned %d", e.Method, e.Path, e.StatusCode)
}

// IsNotFound reports whether err carries an upstream 404.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// MapError converts an upstream failure into the error rendered to API clients.
// A remote 404 becomes NOT_FOUND for resource; anything else is BAD_GATEWAY.
func MapError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if IsNotFound(err) {
		return apperr.NotFound(resource)
	}
	return apperr.BadGateway("Upstream service request failed", err)
}

// # Client

// Client issues JSON requests against a fixed base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("upstream_invalid_base_url: %q", baseURL)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Get decodes the JSON answer of GET path?query into out.
func (client *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return client.do(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON and decodes the answer into out.
func (client *Client) Post(ctx context.Context, path string, body, out any) error {
	return client.do(ctx, http.MethodPost, path, body, out)
}

// Put sends body as JSON and decodes the answer into out.
func (client *Client) Put(ctx context.Context, path string, body, out any) error {
	return client.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues DELETE path and discards the answer.
func (client *Client) Delete(ctx context.Context, path string) error {
	return client.do(ctx, http.MethodDelete, path, nil, nil)
}

/*
do executes one round trip.

Parameters:
  - ctx: context.Context (carries the request logger and cancellation)
  - method: string
  - path: string (relative to the base URL, may include a query)
  - body: any (encoded as JSON when non-nil)
  - out: any (decoded from JSON when non-nil)

Returns:
  - error: *StatusError for non-2xx answers, wrapped transport or decode failures
*/
func (client *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream_encode_failed: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("upstream_request_build_failed: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	start := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("upstream_request_failed: %w", err)
	}
	defer response.Body.Close()

	ctxutil.GetLogger(ctx).DebugContext(ctx, "upstream_call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", response.StatusCode),
		slog.Int64("latency_ms", time.Since(start).Milliseconds()),
	)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, maxErrorBody))
		return &StatusError{StatusCode: response.StatusCode, Method: method, Path: path}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("upstream_decode_failed: %w", err)
	}

	return nil
}
