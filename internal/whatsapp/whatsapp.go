// Package whatsapp sends text messages through the WhatsApp Business Cloud
// API.
package whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Startup-Mindset/marketplace-boardNotifier/internal/exitcode"
)

const (
	DefaultEndpoint   = "https://graph.facebook.com"
	DefaultAPIVersion = "v21.0"
	userAgent         = "boardnotifier/dev"

	// maxBodyLength is the Cloud API limit for a text message body.
	maxBodyLength = 4096
)

// Client sends messages from one WhatsApp business phone number.
type Client struct {
	endpoint      string
	apiVersion    string
	token         string
	phoneNumberID string
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

// WithAPIVersion sets the Graph API version path segment.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.apiVersion = version
		}
	}
}

// WithVerbose enables request/response logging through logFunc.
func WithVerbose(logFunc func(format string, args ...any)) Option {
	return func(c *Client) {
		c.verbose = true
		c.logFunc = logFunc
	}
}

// New creates a client that sends from phoneNumberID using an access token.
func New(token, phoneNumberID string, opts ...Option) *Client {
	c := &Client{
		endpoint:      DefaultEndpoint,
		apiVersion:    DefaultAPIVersion,
		token:         token,
		phoneNumberID: phoneNumberID,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type textMessage struct {
	MessagingProduct string `json:"messaging_product"`
	RecipientType    string `json:"recipient_type"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		PreviewURL bool   `json:"preview_url"`
		Body       string `json:"body"`
	} `json:"text"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Send delivers body as a text message to recipient. It blocks until the
// API accepts or rejects the message and never retries.
func (c *Client) Send(recipient, body string) error {
	to, err := NormalizeNumber(recipient)
	if err != nil {
		return err
	}
	if body == "" {
		return exitcode.Usage("refusing to send an empty message")
	}
	if len([]rune(body)) > maxBodyLength {
		return exitcode.Generalf("message is %d characters, WhatsApp allows %d", len([]rune(body)), maxBodyLength)
	}

	msg := textMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
	}
	msg.Text.Body = body

	bodyBytes, err := json.Marshal(msg)
	if err != nil {
		return exitcode.General("marshaling message", err)
	}

	url := fmt.Sprintf("%s/%s/%s/messages", c.endpoint, c.apiVersion, c.phoneNumberID)
	if c.verbose {
		c.log("→ POST %s\n", url)
		c.log("→ Body: %s\n", bodyBytes)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return exitcode.General("creating request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return exitcode.General("WhatsApp request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return exitcode.General("reading response", err)
	}

	if c.verbose {
		c.log("← %d %s\n", resp.StatusCode, http.StatusText(resp.StatusCode))
		c.log("← Body: %s\n", respBody)
	}

	var parsed sendResponse
	_ = json.Unmarshal(respBody, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reason := strings.TrimSpace(string(respBody))
		if parsed.Error != nil && parsed.Error.Message != "" {
			reason = fmt.Sprintf("%s (code %d)", parsed.Error.Message, parsed.Error.Code)
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return exitcode.Auth("WhatsApp authentication failed, check WHATSAPP_TOKEN", fmt.Errorf("%s", reason))
		}
		return exitcode.Generalf("WhatsApp API returned HTTP %d: %s", resp.StatusCode, reason)
	}

	if len(parsed.Messages) == 0 {
		return exitcode.Generalf("WhatsApp API accepted the request but returned no message id")
	}
	return nil
}

// NormalizeNumber strips formatting from a phone number, leaving the digits
// the Cloud API expects (country code first, no leading +).
func NormalizeNumber(number string) (string, error) {
	var b strings.Builder
	for _, r := range strings.TrimPrefix(strings.TrimSpace(number), "+") {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", exitcode.Usage(fmt.Sprintf("invalid phone number %q", number))
		}
	}
	if b.Len() == 0 {
		return "", exitcode.Usage("no recipient phone number given")
	}
	return b.String(), nil
}

func (c *Client) log(format string, args ...any) {
	if c.logFunc != nil {
		c.logFunc(format, args...)
	}
}
