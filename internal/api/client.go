package api

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

// TokenSource yields the current bearer credential, or "" when logged out.
type TokenSource interface {
	Token() string
}

// Client speaks JSON to the storefront backend. The bearer Authorization
// header is the only credential transport.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// New builds a Client for the given base URL. tokens may be nil for a
// client that only performs public reads.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
}

// Do issues one request and decodes the JSON response into out (skipped when
// out is nil). Classification of failures:
//   - backend rejection with a parseable body -> *Error with its message
//   - unparseable body on any status -> ErrMalformedResponse
//   - request never completed -> the wrapped transport error
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return decodeFailure(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s %s returned status %d", ErrMalformedResponse, method, path, resp.StatusCode)
	}
	return nil
}

func decodeFailure(status int, raw []byte) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return &Error{Status: status}
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("%w: status %d", ErrMalformedResponse, status)
	}
	return &Error{Status: status, Message: payload.Message}
}
