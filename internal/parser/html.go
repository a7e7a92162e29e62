// Package parser provides HTML parsing for the traversal engine.
package parser

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Cr3zy-dev/webdust/internal/scope"
)

// PageInfo is what the traversal engine extracts from one HTML document.
type PageInfo struct {
	// Links holds every <a href> target resolved against the
	// document URL. Off-origin links are included here; scoping is
	// the crawler's concern.
	Links []string

	// Scripts holds every <script src> reference, resolved.
	Scripts []string

	// HasForm is true when the document contains at least one <form>.
	HasForm bool

	// HasUpload is true when any form input is a file-upload field.
	HasUpload bool
}

// Parse extracts links, scripts, and form signals from an HTML
// document, resolving relative references against docURL.
func Parse(html, docURL string) (*PageInfo, error) {
	base, err := url.Parse(docURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	info := &PageInfo{
		Links:   make([]string, 0),
		Scripts: make([]string, 0),
	}

	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || !scope.IsCrawlable(href) {
			return
		}
		if resolved := resolveRef(base, href); resolved != "" {
			info.Links = append(info.Links, resolved)
		}
	})

	doc.Find("form").Each(func(i int, s *goquery.Selection) {
		info.HasForm = true
		s.Find("input[type='file']").Each(func(i int, input *goquery.Selection) {
			info.HasUpload = true
		})
	})

	doc.Find("script[src]").Each(func(i int, s *goquery.Selection) {
		src, exists := s.Attr("src")
		if !exists || src == "" {
			return
		}
		if resolved := resolveRef(base, src); resolved != "" {
			info.Scripts = append(info.Scripts, resolved)
		}
	})

	return info, nil
}

// resolveRef resolves an href against the document base, keeping only
// http(s) results.
func resolveRef(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}
