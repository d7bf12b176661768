// Package captcha verifies reCAPTCHA-style proof tokens against a siteverify
// endpoint.
package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultVerifyURL is Google's reCAPTCHA verification endpoint.
const DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// ErrUpstream wraps transport failures and unusable responses from the
// verification service.
var ErrUpstream = errors.New("captcha: verification service unavailable")

// maxResponseBytes caps how much of the siteverify response is read.
const maxResponseBytes = 64 << 10

// Client calls a siteverify endpoint. The zero value uses DefaultVerifyURL and
// http.DefaultClient.
type Client struct {
	VerifyURL  string
	HTTPClient *http.Client
}

// NewClient returns a Client with a bounded HTTP timeout.
func NewClient(verifyURL string, timeout time.Duration) *Client {
	return &Client{
		VerifyURL:  verifyURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Verify posts secret and response as form data and reports the service's
// success field. A missing or non-boolean success is reported as false.
// remoteIP is optional and only forwarded when non-empty.
func (c *Client) Verify(ctx context.Context, secret, response, remoteIP string) (bool, error) {
	form := url.Values{}
	form.Set("secret", secret)
	form.Set("response", response)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return false, fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return false, fmt.Errorf("%w: failed to decode response: %w", ErrUpstream, err)
	}

	success, _ := body["success"].(bool)
	return success, nil
}

func (c *Client) verifyURL() string {
	if c.VerifyURL == "" {
		return DefaultVerifyURL
	}
	return c.VerifyURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}
