// Package yookassa is a thin client for the YooKassa payments HTTP API.
//
// The client issues authenticated REST calls and returns either raw decoded
// bodies (mutating operations) or typed snapshots (lookups). It keeps no
// state between calls; every value it returns is owned by the caller.
package yookassa

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.yookassa.ru/v3"

// Config carries the credentials and endpoint for a Client. It is passed
// explicitly rather than read from process-wide state so tests and multi-shop
// deployments can run several clients side by side.
type Config struct {
	BaseURL   string
	ShopID    string
	SecretKey string

	// HTTPClient is used for all outbound calls. Defaults to
	// http.DefaultClient; callers wanting tracing or timeouts wrap their own.
	HTTPClient *http.Client
}

// RawResponse is the transport-level result of a single API call. Non-2xx
// statuses are not errors at this layer; the caller interprets them.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// Client talks to the payment API over HTTP Basic auth.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, http: httpClient}
}

func (c *Client) baseURL() string {
	base := strings.TrimSpace(c.cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/")
}

func (c *Client) checkCredentials() error {
	if strings.TrimSpace(c.cfg.ShopID) == "" || strings.TrimSpace(c.cfg.SecretKey) == "" {
		return ErrMissingCredentials
	}
	return nil
}

// Post sends a JSON body to path. Every call carries a fresh UUIDv4
// Idempotence-Key so client-side retransmission of the same logical operation
// cannot double-charge at the remote side.
func (c *Client) Post(ctx context.Context, path string, body any) (*RawResponse, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotence-Key", uuid.NewString())
	req.SetBasicAuth(c.cfg.ShopID, c.cfg.SecretKey)

	return c.do(req)
}

// Get fetches path. Lookups carry no idempotency key.
func (c *Client) Get(ctx context.Context, path string) (*RawResponse, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL()+path, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.cfg.ShopID, c.cfg.SecretKey)

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*RawResponse, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &RawResponse{StatusCode: resp.StatusCode, Body: body}, nil
}
