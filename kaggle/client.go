package kaggle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public Kaggle API v1 endpoint.
const DefaultBaseURL = "https://www.kaggle.com/api/v1"

// Client calls the Kaggle API.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Context: every call honors cancellation/deadlines.
// - Errors: non-2xx responses surface as *StatusError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      Credentials
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used in tests).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Kaggle API client with the given credentials.
func NewClient(creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		creds: creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, op string, query url.Values, out any) error {
	resp, err := c.do(ctx, op, query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("kaggle: %s: decode response: %w", op, err)
	}
	return nil
}

// do issues the request and validates the status. The caller owns the body.
func (c *Client) do(ctx context.Context, op string, query url.Values) (*http.Response, error) {
	if c.creds.Empty() {
		return nil, ErrMissingCredentials
	}

	u := c.baseURL + "/" + op
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("kaggle: %s: build request: %w", op, err)
	}
	req.SetBasicAuth(c.creds.Username, c.creds.Key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kaggle: %s: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a bounded amount so the connection can be reused.
		io.CopyN(io.Discard, resp.Body, 4096)
		resp.Body.Close()
		return nil, &StatusError{Op: op, Code: resp.StatusCode, Status: resp.Status}
	}

	return resp, nil
}
