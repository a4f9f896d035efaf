package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"chat-client/internal/observability"
)

// ErrNetwork marks requests that failed to complete or came back non-2xx.
var ErrNetwork = errors.New("network error")

// ErrDecode marks responses whose body could not be decoded.
var ErrDecode = errors.New("malformed response")

// Client issues JSON requests against the chat server REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient constructs a Client for the given base URL. token may be empty;
// when set it is passed as a bearer token on every request.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// do performs a JSON request. endpoint is a low-cardinality label used for
// metrics; path is the concrete URL path. out may be nil for calls whose
// response body is ignored.
func (c *Client) do(ctx context.Context, method, endpoint, path string, in, out any) error {
	var body *bytes.Buffer
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewBuffer(payload)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.ObserveHTTPRequest(method, endpoint, 0, time.Since(start))
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()
	observability.ObserveHTTPRequest(method, endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s: unexpected status %d", ErrNetwork, method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrDecode, method, path, err)
	}
	return nil
}
