package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is the transport collaborator a Bridge issues requests through.
// Implementations return *TransportError for transport-level failures and
// *APIError for requests the server rejected; the bridge never sees a raw
// undecorated error from the transport boundary.
type Client interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	GetList(ctx context.Context, path string, query url.Values, items any) (PageMeta, error)
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// PageMeta mirrors the server's pagination meta block on list responses
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// TransportError is a transport-level failure (connection refused, timeout,
// 5xx with an unreadable body). Retryable is decided here, at the client
// boundary, so downstream consumers never infer it from message text.
type TransportError struct {
	Err        error
	StatusCode int
	Retryable  bool
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("transport error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport error: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a well-formed error envelope returned by the server.
type APIError struct {
	Code       string
	Message    string
	StatusCode int
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %s: %s", e.Code, e.Message)
}

// apiEnvelope mirrors the server's dto.Response shape
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta json.RawMessage `json:"meta"`
}

// HTTPClient is the default Client implementation over net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

// HTTPClientOption is a functional option for HTTPClient configuration
type HTTPClientOption func(*HTTPClient)

// WithToken sets the bearer token attached to every request
func WithToken(token string) HTTPClientOption {
	return func(c *HTTPClient) {
		c.token = token
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) HTTPClientOption {
	return func(c *HTTPClient) {
		c.http.Timeout = d
	}
}

// NewHTTPClient creates a client for the API at baseURL
func NewHTTPClient(baseURL string, opts ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token, e.g. after a login or refresh
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// Get issues a GET request and decodes the envelope data into out
func (c *HTTPClient) Get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, target, nil, out, nil)
}

// GetList issues a GET request for a paginated listing: the envelope
// data holds the item array, the meta block holds the counts
func (c *HTTPClient) GetList(ctx context.Context, path string, query url.Values, items any) (PageMeta, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	var meta PageMeta
	err := c.do(ctx, http.MethodGet, target, nil, items, &meta)
	return meta, err
}

// Post issues a POST request with a JSON body
func (c *HTTPClient) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, c.baseURL+path, body, out, nil)
}

// Patch issues a PATCH request with a JSON body
func (c *HTTPClient) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, c.baseURL+path, body, out, nil)
}

// Delete issues a DELETE request
func (c *HTTPClient) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+path, nil, nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, target string, body, out any, meta *PageMeta) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &APIError{Code: "ERR_INVALID_INPUT", Message: err.Error(), StatusCode: http.StatusBadRequest}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &TransportError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err, Retryable: isRetryableTransport(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err, StatusCode: resp.StatusCode, Retryable: true}
	}

	// Deletes answer 204 with no body; there is no envelope to decode
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		if resp.StatusCode < http.StatusBadRequest {
			return nil
		}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return &TransportError{Err: fmt.Errorf("empty response with status %d", resp.StatusCode), StatusCode: resp.StatusCode, Retryable: true}
		}
		return &APIError{Code: "ERR_UNKNOWN", Message: http.StatusText(resp.StatusCode), StatusCode: resp.StatusCode}
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return &TransportError{Err: fmt.Errorf("unreadable response: %w", err), StatusCode: resp.StatusCode, Retryable: true}
		}
		return &APIError{Code: "ERR_VALIDATION", Message: "malformed response body", StatusCode: resp.StatusCode}
	}

	if !envelope.Success {
		apiErr := &APIError{Code: "ERR_UNKNOWN", Message: "request failed", StatusCode: resp.StatusCode}
		if envelope.Error != nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return &APIError{Code: "ERR_VALIDATION", Message: "malformed response shape: " + err.Error(), StatusCode: resp.StatusCode}
		}
	}
	if meta != nil && len(envelope.Meta) > 0 {
		if err := json.Unmarshal(envelope.Meta, meta); err != nil {
			return &APIError{Code: "ERR_VALIDATION", Message: "malformed response meta: " + err.Error(), StatusCode: resp.StatusCode}
		}
	}
	return nil
}

// isRetryableTransport classifies pre-response failures: timeouts and
// temporary network conditions are retryable, everything else is not.
func isRetryableTransport(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
