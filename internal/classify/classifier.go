// Package classify assigns vulnerability-vector labels to discovered
// endpoints using name- and path-based heuristics.
package classify

import (
	"net/url"
	"strings"

	"github.com/Cr3zy-dev/webdust/internal/logger"
	"github.com/Cr3zy-dev/webdust/internal/wordlist"
)

// Page is the classifier's view of one discovered endpoint.
type Page struct {
	// URL is the endpoint's normalized absolute URL.
	URL string

	// Params maps query-parameter names to their values. Keys are
	// matched case-insensitively.
	Params map[string][]string

	// HasForm is true if the page contains at least one form.
	HasForm bool

	// HasUpload is true if any form input is a file-upload field.
	HasUpload bool

	// IsScript is true for referenced script files; those are
	// labeled JS and skip every other heuristic.
	IsScript bool
}

// Config holds classifier construction parameters.
type Config struct {
	// OverrideFiles maps a category to a keyword file merged into
	// its builtin defaults. A missing or unreadable file is a
	// warning, never fatal: the category keeps its defaults.
	OverrideFiles map[Category]string

	// Overrides holds pre-loaded extra keywords per category,
	// merged the same way.
	Overrides map[Category][]string
}

// Classifier maps endpoint signals to vector labels. The effective
// keyword sets are computed once at construction and immutable
// afterwards, so a Classifier is safe for concurrent use.
type Classifier struct {
	sets map[Category]map[string]struct{}
	log  *logger.Logger
}

// New builds a classifier with effective keyword sets = builtin
// defaults merged with any configured overrides.
func New(cfg Config, log *logger.Logger) *Classifier {
	if log == nil {
		log = logger.Nop()
	}

	c := &Classifier{
		sets: make(map[Category]map[string]struct{}, len(Categories)),
		log:  log,
	}

	for _, cat := range Categories {
		set := make(map[string]struct{})
		for _, word := range defaultKeywords[cat] {
			set[word] = struct{}{}
		}

		if path, ok := cfg.OverrideFiles[cat]; ok && path != "" {
			words, err := wordlist.Load(path)
			switch {
			case err != nil:
				log.Warnf("Ignoring %s wordlist override %s: %v", cat, path, err)
			case len(words) == 0:
				log.Warnf("Ignoring empty %s wordlist override %s", cat, path)
			default:
				for _, word := range words {
					set[word] = struct{}{}
				}
				log.Debugf("Merged %d custom %s keywords from %s", len(words), cat, path)
			}
		}

		for _, word := range cfg.Overrides[cat] {
			set[strings.ToLower(word)] = struct{}{}
		}

		c.sets[cat] = set
	}

	return c
}

// Keywords returns the effective keyword set for a category.
func (c *Classifier) Keywords(cat Category) []string {
	words := make([]string, 0, len(c.sets[cat]))
	for word := range c.sets[cat] {
		words = append(words, word)
	}
	return words
}

// Classify assigns vector labels to one page. Labels are appended in
// a fixed precedence order so output is deterministic: parameter
// categories, form signals, conservative defaults, then path-based
// labels, with INFO as the terminal fallback. Every non-script page
// gets at least one label.
func (c *Classifier) Classify(page Page) []Vector {
	// Script resources are labeled JS and nothing else.
	if page.IsScript {
		return []Vector{VectorJS}
	}

	vectors := make([]Vector, 0, 4)

	paramNames := make(map[string]struct{}, len(page.Params))
	for name := range page.Params {
		paramNames[strings.ToLower(name)] = struct{}{}
	}

	if len(paramNames) > 0 {
		for _, cat := range Categories {
			if c.matches(cat, paramNames) {
				vectors = append(vectors, categoryVectors[cat])
			}
		}
	}

	if page.HasForm {
		vectors = append(vectors, VectorForm)
	}
	if page.HasUpload {
		vectors = append(vectors, VectorUpload)
	}

	// A parameterized endpoint that matched no category is still an
	// input sink; flag it as possible XSS. This is a heuristic
	// choice carried over from the keyword model, not a finding.
	if len(paramNames) > 0 && len(vectors) == 0 {
		vectors = append(vectors, VectorXSS)
	}

	// Unparameterized form with no other signal: possible CSRF.
	if len(vectors) == 0 && page.HasForm {
		vectors = append(vectors, VectorCSRF)
	}

	vectors = append(vectors, pathVectors(page.URL)...)

	if len(vectors) == 0 {
		vectors = append(vectors, VectorInfo)
	}

	return vectors
}

// matches reports whether any parameter name is in the category's
// effective keyword set.
func (c *Classifier) matches(cat Category, paramNames map[string]struct{}) bool {
	set := c.sets[cat]
	for name := range paramNames {
		if _, ok := set[name]; ok {
			return true
		}
	}
	return false
}

// pathVectors derives additive labels from the URL path alone. These
// never suppress or replace parameter-based labels.
func pathVectors(rawURL string) []Vector {
	path := ""
	if parsed, err := url.Parse(rawURL); err == nil {
		path = strings.ToLower(parsed.Path)
	}

	vectors := make([]Vector, 0, 3)

	if strings.Contains(path, "admin") || strings.Contains(path, "dashboard") {
		vectors = append(vectors, VectorAdmin)
	}
	if strings.Contains(path, "api") || strings.Contains(path, "rest") || strings.Contains(path, "graphql") {
		vectors = append(vectors, VectorAPI)
	}
	if strings.Contains(path, "login") || strings.Contains(path, "auth") || strings.Contains(path, "signin") {
		vectors = append(vectors, VectorAuth)
	}

	return vectors
}
