package upsert

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/secret-dreams/fonts/core/retry"
	"github.com/secret-dreams/fonts/core/store"
)

// Client talks to the remote font-family service. Only the response status
// matters to the protocol, so methods return it directly.
type Client struct {
	http     *http.Client
	store    *store.Store
	base     string
	user     string
	password string
}

// NewClient creates a Client for the collection endpoint under service.
func NewClient(st *store.Store, service, user, password string) *Client {
	return &Client{
		http:     &http.Client{Timeout: 60 * time.Second},
		store:    st,
		base:     service + "/api/themes/font_families",
		user:     user,
		password: password,
	}
}

// BaseURL returns the collection endpoint.
func (c *Client) BaseURL() string {
	return c.base
}

// Lookup checks whether a handle exists: 200 present, 404 absent.
func (c *Client) Lookup(ctx context.Context, handle string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/"+url.PathEscape(handle), nil)
	if err != nil {
		return 0, err
	}
	return c.do(req)
}

// Create POSTs the multipart payload to the collection endpoint and returns
// the response status (201 expected, 429 when rate-limited).
func (c *Client) Create(ctx context.Context, payload *Payload) (int, error) {
	body, contentType, err := payload.Encode(c.store)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", contentType)

	return c.do(req)
}

func (c *Client) do(req *http.Request) (int, error) {
	if c.user != "" && c.password != "" {
		req.SetBasicAuth(c.user, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, classifyTransport(err)
	}
	resp.Body.Close()

	return resp.StatusCode, nil
}

// classifyTransport marks network timeouts as retryable; every other
// transport failure is terminal.
func classifyTransport(err error) error {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return retry.Mark(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return retry.Mark(err)
	}
	return err
}
