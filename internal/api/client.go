// Package api provides a client for the Notion REST API, covering the
// database endpoints boardnotifier reads tasks from.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/exitcode"
)

const (
	DefaultEndpoint      = "https://api.notion.com"
	DefaultNotionVersion = "2022-06-28"
	userAgent            = "boardnotifier/dev"
)

// Client is a Notion API client.
type Client struct {
	endpoint      string
	token         string
	notionVersion string
	httpClient    *http.Client
	verbose       bool
	logFunc       func(format string, args ...any)
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint sets a custom API base URL (useful for testing).
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithVerbose enables request/response logging through logFunc.
func WithVerbose(logFunc func(format string, args ...any)) Option {
	return func(c *Client) {
		c.verbose = true
		c.logFunc = logFunc
	}
}

// WithNotionVersion overrides the Notion-Version header.
func WithNotionVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.notionVersion = version
		}
	}
}

// New creates a Notion API client authenticated with an integration token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		endpoint:      DefaultEndpoint,
		token:         token,
		notionVersion: DefaultNotionVersion,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorResponse is the body Notion returns with non-2xx statuses.
type errorResponse struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIError is a Notion error response that doesn't map to a more specific
// exit code.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// do sends a request to path and decodes the JSON response into out.
// body is JSON-encoded when non-nil.
func (c *Client) do(method, path string, body, out any) error {
	url := c.endpoint + path

	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return exitcode.General("marshaling request", err)
		}
		if c.verbose {
			c.log("→ %s %s\n", method, url)
			c.log("→ Body: %s\n", bodyBytes)
		}
		reader = bytes.NewReader(bodyBytes)
	} else if c.verbose {
		c.log("→ %s %s\n", method, url)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return exitcode.General("creating request", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.notionVersion)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return exitcode.General("Notion request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return exitcode.General("reading response", err)
	}

	if c.verbose {
		c.log("← %d %s\n", resp.StatusCode, http.StatusText(resp.StatusCode))
		c.log("← Body: %s\n", truncate(string(respBody), 2000))
	}

	if err := checkStatus(resp, respBody); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return exitcode.General("parsing Notion response", err)
	}
	return nil
}

// checkStatus maps non-2xx responses to exit-coded errors. Nothing is
// retried; a rate-limited run reports the server's hint and stops.
func checkStatus(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr errorResponse
	_ = json.Unmarshal(body, &apiErr)
	detail := &APIError{StatusCode: resp.StatusCode, Code: apiErr.Code, Message: apiErr.Message}
	if detail.Message == "" {
		detail.Message = truncate(string(body), 200)
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			return exitcode.Generalf("rate limited by Notion, retry after %d seconds", secs)
		}
		return exitcode.Generalf("rate limited by Notion, try again later")
	case http.StatusUnauthorized, http.StatusForbidden:
		return exitcode.Auth("Notion authentication failed, check NOTION_TOKEN", detail)
	case http.StatusNotFound:
		return exitcode.NotFoundError("Notion object not found, make sure the database is shared with your integration: " + detail.Message)
	}
	return exitcode.General("Notion API error", detail)
}

func (c *Client) log(format string, args ...any) {
	if c.logFunc != nil {
		c.logFunc(format, args...)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
