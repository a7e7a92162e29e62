// Package state tracks visited URLs for one traversal run.
package state

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Deduplicator is the visited-URL set. A Bloom filter answers the
// common "never seen" case without touching the exact map; the map
// resolves the filter's false positives and backs GetAll.
type Deduplicator struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
	exact  map[string]struct{}
	count  int
}

// NewDeduplicator creates a deduplicator sized for the estimated
// number of URLs one scan will touch.
func NewDeduplicator(estimatedItems int) *Deduplicator {
	if estimatedItems < 1000 {
		estimatedItems = 1000
	}

	return &Deduplicator{
		filter: bloom.NewWithEstimates(uint(estimatedItems), 0.001),
		exact:  make(map[string]struct{}),
	}
}

// Seen marks a URL as visited and reports whether it had been seen
// before. Check and mark happen under one lock, so concurrent workers
// can never both claim the same URL.
func (d *Deduplicator) Seen(url string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.filter.TestString(url) {
		if _, exists := d.exact[url]; exists {
			return true
		}
	}

	d.filter.AddString(url)
	d.exact[url] = struct{}{}
	d.count++
	return false
}

// HasSeen checks if a URL has been seen, without marking it.
func (d *Deduplicator) HasSeen(url string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.filter.TestString(url) {
		return false
	}
	_, exists := d.exact[url]
	return exists
}

// Count returns the number of unique URLs seen.
func (d *Deduplicator) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

// GetAll returns every URL in the visited set.
func (d *Deduplicator) GetAll() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	urls := make([]string, 0, len(d.exact))
	for url := range d.exact {
		urls = append(urls, url)
	}
	return urls
}

// Reset clears the visited set.
func (d *Deduplicator) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.filter.ClearAll()
	d.exact = make(map[string]struct{})
	d.count = 0
}
