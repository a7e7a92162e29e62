// Package scope provides origin scoping and URL normalization for the crawler.
package scope

import (
	"fmt"
	"net/url"
	"strings"
)

// Checker validates URLs against the seed's origin (scheme + host).
type Checker struct {
	scheme string
	host   string
}

// NewChecker creates a scope checker for the given seed URL. The seed
// must be an absolute http(s) URL with a non-empty host.
func NewChecker(seedURL string) (*Checker, error) {
	parsed, err := url.Parse(seedURL)
	if err != nil {
		return nil, err
	}
	if err := validate(parsed); err != nil {
		return nil, err
	}

	return &Checker{
		scheme: strings.ToLower(parsed.Scheme),
		host:   strings.ToLower(parsed.Host),
	}, nil
}

// Origin returns the scheme://host pair the checker is scoped to.
func (c *Checker) Origin() string {
	return c.scheme + "://" + c.host
}

// Host returns the target host.
func (c *Checker) Host() string {
	return c.host
}

// InScope reports whether a URL shares the seed's origin.
// Off-origin URLs are discovered-but-dropped: never fetched,
// never inventoried.
func (c *Checker) InScope(urlStr string) bool {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return strings.ToLower(parsed.Scheme) == c.scheme &&
		strings.ToLower(parsed.Host) == c.host
}

// ValidateSeed rejects a seed URL that is missing a scheme or host.
// This is the one fatal precondition for the scan core.
func ValidateSeed(seedURL string) error {
	parsed, err := url.Parse(seedURL)
	if err != nil {
		return fmt.Errorf("invalid seed URL %q: %w", seedURL, err)
	}
	return validate(parsed)
}

func validate(parsed *url.URL) error {
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("seed URL must use http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("seed URL is missing a host")
	}
	return nil
}

// Normalize reduces a URL to its canonical form: scheme://host/path
// plus ?query when a query string is present. The fragment is always
// dropped and a trailing slash on a non-root path is trimmed, so two
// URLs differing only in fragment or trailing slash dedupe to the
// same resource.
func Normalize(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)

	// Remove default ports
	if (parsed.Scheme == "http" && strings.HasSuffix(parsed.Host, ":80")) ||
		(parsed.Scheme == "https" && strings.HasSuffix(parsed.Host, ":443")) {
		parsed.Host = parsed.Host[:strings.LastIndex(parsed.Host, ":")]
	}

	parsed.Fragment = ""
	parsed.RawFragment = ""

	if parsed.Path != "/" && strings.HasSuffix(parsed.Path, "/") {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}
	if parsed.Path == "" {
		parsed.Path = "/"
	}

	return parsed.String(), nil
}

// ResolveURL resolves a relative URL against a base URL.
func ResolveURL(baseURL, relativeURL string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}

	ref, err := url.Parse(relativeURL)
	if err != nil {
		return "", err
	}

	return base.ResolveReference(ref).String(), nil
}

// IsCrawlable reports whether an href target can be resolved and
// enqueued at all. javascript:, mailto:, tel:, data: and bare
// fragment targets are never followed.
func IsCrawlable(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") {
		return false
	}

	lower := strings.ToLower(href)
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	return true
}
