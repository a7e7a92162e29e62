// Package httpclient provides the HTTP fetch collaborator for the crawler.
package httpclient

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/Cr3zy-dev/webdust/internal/errors"
)

// maxBodySize caps how much of a response body is read (5MB).
const maxBodySize = 5 * 1024 * 1024

// Client is a connection-reusing HTTP client tuned for crawling a
// single origin.
type Client struct {
	client    *http.Client
	userAgent string
	headers   map[string]string
	mu        sync.RWMutex
}

// Config holds configuration for the HTTP client.
type Config struct {
	Timeout             time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	UserAgent           string
	Headers             map[string]string
	SkipTLSVerify       bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:             10 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		UserAgent:           "WebDust/1.1 (+https://github.com/Cr3zy-dev/webdust)",
		SkipTLSVerify:       true,
	}
}

// New creates a new HTTP client.
func New(config Config) *Client {
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          config.MaxIdleConns,
		MaxIdleConnsPerHost:   config.MaxIdleConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.SkipTLSVerify,
		},
	}

	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		userAgent: config.UserAgent,
		headers:   config.Headers,
	}
}

// Response is the result of one fetch.
type Response struct {
	URL         string
	FinalURL    string
	StatusCode  int
	ContentType string
	Body        string
	Duration    time.Duration
}

// IsHTML reports whether the declared content type is HTML-like.
func (r *Response) IsHTML() bool {
	ct := strings.ToLower(r.ContentType)
	return strings.Contains(ct, "text/html") ||
		strings.Contains(ct, "application/xhtml+xml")
}

// IsJavaScript reports whether the declared content type is
// script-like.
func (r *Response) IsJavaScript() bool {
	return strings.Contains(strings.ToLower(r.ContentType), "javascript")
}

// SetHeaders sets custom headers for all requests.
func (c *Client) SetHeaders(headers map[string]string) {
	c.mu.Lock()
	c.headers = headers
	c.mu.Unlock()
}

// Get fetches a URL. On transport failure it returns a categorized
// *errors.ScanError; the caller skips the URL and continues.
func (c *Client) Get(ctx context.Context, targetURL string) (*Response, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, errors.NewParseError(targetURL, "request_creation", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	c.mu.RLock()
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	c.mu.RUnlock()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Categorize(err, targetURL)
	}
	defer resp.Body.Close()

	result := &Response{
		URL:         targetURL,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}

	// Only HTML bodies get parsed downstream; skip the read for
	// everything else.
	if !result.IsHTML() {
		result.Duration = time.Since(start)
		return result, nil
	}

	// Decode to UTF-8 based on the declared charset.
	reader, err := charset.NewReader(io.LimitReader(resp.Body, maxBodySize), result.ContentType)
	if err != nil {
		reader = io.LimitReader(resp.Body, maxBodySize)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Categorize(err, targetURL)
	}
	result.Body = string(body)

	result.Duration = time.Since(start)
	return result, nil
}

// Close closes idle connections.
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}
