package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client forwards validated requests to the core server verbatim.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Do performs a request против core-сервера, сохраняя путь, query и заголовки.
func (c *Client) Do(ctx context.Context, method, pathAndQuery string, header http.Header, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+pathAndQuery, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for _, name := range forwardedHeaders {
		if v := header.Get(name); v != "" {
			req.Header.Set(name, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forward %s %s: %w", method, pathAndQuery, err)
	}
	return resp, nil
}

var forwardedHeaders = []string{
	"Content-Type",
	"X-Sharer-User-Id",
	"X-Request-Id",
}
