package duckduckgo

import (
	"net/http"
	"net/url"
)

const baseURL = "https://api.duckduckgo.com"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=duckduckgo_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the DuckDuckGo Instant Answer API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP client.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values
}

// ClientOption is a configuration option for the DuckDuckGo client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewClient creates a new DuckDuckGo client.
func NewClient(options ...ClientOption) *Client {
	var client = &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	// https://duckduckgo.com/duckduckgo-help-pages/open-source/instant-answer-interface/
	client.query.Set("format", "json")
	client.query.Set("no_html", "1")
	client.query.Set("skip_disambig", "1")
	for _, option := range options {
		option(client)
	}
	return client
}

// Name identifies the source in logs and provenance messages.
func (c *Client) Name() string { return "duckduckgo" }
