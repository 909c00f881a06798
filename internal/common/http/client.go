// internal/common/http/client.go
package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"cloud-api-console/internal/common/metrics"
)

// Client is the outbound HTTP client shared by the model backend.
type Client struct {
	httpClient *http.Client
}

// NewClient builds a client. A zero timeout leaves requests bounded only by their context.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &countingTransport{base: http.DefaultTransport},
		},
	}
}

// Standard exposes the underlying *http.Client for SDKs that take one.
func (c *Client) Standard() *http.Client {
	return c.httpClient
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req.WithContext(ctx))
}

type countingTransport struct {
	base http.RoundTripper
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode/100) + "xx"
	}
	metrics.OutboundRequests.WithLabelValues(req.URL.Host, status).Inc()
	return resp, err
}
