// internal/paypal/client.go

package paypal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// PayPal's IPN validation endpoints (the "postback" URLs).
const (
	ProductionURL = "https://ipnpb.paypal.com/cgi-bin/webscr"
	SandboxURL    = "https://ipnpb.sandbox.paypal.com/cgi-bin/webscr"

	ModeProduction = "production"
	ModeSandbox    = "sandbox"

	// The validation answer is one word; anything bigger is not worth reading.
	maxResponseBytes = 4 << 10
)

var (
	ErrUnknownMode = errors.New("unknown paypal mode")
	// ErrUpstreamStatus is a non-200 answer from the validation endpoint.
	ErrUpstreamStatus = errors.New("paypal returned non-200 status")
)

// StatusError carries the HTTP status of a rejected validation request.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUpstreamStatus, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrUpstreamStatus }

// EndpointFor resolves the validation endpoint for a mode ("production" or "sandbox").
func EndpointFor(mode string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeProduction, "live":
		return ProductionURL, nil
	case ModeSandbox, "":
		return SandboxURL, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

// Client posts IPN bodies back to PayPal. It implements ipn.Poster.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a Client whose requests give up after timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// NewClientWithHTTP allows injecting a preconfigured http.Client (tests, proxies).
func NewClientWithHTTP(hc *http.Client) *Client {
	return &Client{httpClient: hc}
}

// Post sends body to url and returns the response body untouched.
// The caller's context cancels the request (server shutdown, handler timeout).
func (c *Client) Post(ctx context.Context, url string, body string, headers map[string]string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build validation request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	// net/http takes the length from the request, not from the header map.
	req.ContentLength = int64(len(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{StatusCode: resp.StatusCode}
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read validation response: %w", err)
	}
	return string(b), nil
}
