// Package crawl implements breadth-first discovery of in-origin URLs.
//
// Starting from a seed, the engine fetches pages over HTTP, extracts
// structural signals (query parameters, forms, upload fields, script
// references), and follows anchor links up to a bounded depth. Every
// normalized URL is visited at most once; fetch failures are skipped,
// never retried, and never abort the run.
package crawl

import (
	"context"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Cr3zy-dev/webdust/internal/httpclient"
	"github.com/Cr3zy-dev/webdust/internal/logger"
	"github.com/Cr3zy-dev/webdust/internal/parser"
	"github.com/Cr3zy-dev/webdust/internal/queue"
	"github.com/Cr3zy-dev/webdust/internal/ratelimit"
	"github.com/Cr3zy-dev/webdust/internal/scope"
	"github.com/Cr3zy-dev/webdust/internal/state"
)

// Config holds traversal engine configuration.
type Config struct {
	// Seed is the absolute URL discovery starts from.
	Seed string

	// MaxDepth bounds the hop distance from the seed. Links found
	// at MaxDepth are not followed.
	MaxDepth int

	// Workers is the number of concurrent fetchers. 1 reproduces
	// strict breadth-first ordering.
	Workers int

	// Timeout bounds each individual fetch.
	Timeout time.Duration

	// Delay is the politeness pause between fetches.
	Delay time.Duration

	// RequestsPerSecond and Burst feed the token-bucket limiter.
	// Zero disables it.
	RequestsPerSecond float64
	Burst             int

	// UserAgent and Headers are sent with every request.
	UserAgent string
	Headers   map[string]string

	// SkipTLSVerify disables certificate verification.
	SkipTLSVerify bool

	// EstimatedURLs sizes the visited-set bloom filter.
	EstimatedURLs int
}

// Engine performs one bounded breadth-first traversal. An Engine owns
// its queue and visited set for the duration of a Discover call and
// is not reusable across runs.
type Engine struct {
	cfg     Config
	client  *httpclient.Client
	scope   *scope.Checker
	queue   *queue.WorkQueue
	visited *state.Deduplicator
	limiter *ratelimit.Limiter
	log     *logger.Logger

	mu       sync.Mutex
	pages    []Page
	errs     []FetchError
	duration time.Duration

	fetched atomic.Int64
	scripts atomic.Int64
}

// New creates a traversal engine. The seed is validated here; a seed
// without a scheme or host is the one fatal precondition violation.
func New(cfg Config, log *logger.Logger) (*Engine, error) {
	if err := scope.ValidateSeed(cfg.Seed); err != nil {
		return nil, err
	}
	checker, err := scope.NewChecker(cfg.Seed)
	if err != nil {
		return nil, err
	}

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = httpclient.DefaultConfig().UserAgent
	}
	if cfg.EstimatedURLs <= 0 {
		cfg.EstimatedURLs = 10000
	}
	if log == nil {
		log = logger.Nop()
	}

	limiter := ratelimit.NewLimiter(cfg.RequestsPerSecond, cfg.Burst)
	limiter.SetDelay(cfg.Delay)

	return &Engine{
		cfg:   cfg,
		scope: checker,
		client: httpclient.New(httpclient.Config{
			Timeout:       cfg.Timeout,
			UserAgent:     cfg.UserAgent,
			Headers:       cfg.Headers,
			SkipTLSVerify: cfg.SkipTLSVerify,
		}),
		queue:   queue.New(),
		visited: state.NewDeduplicator(cfg.EstimatedURLs),
		limiter: limiter,
		log:     log.WithComponent("crawl"),
		pages:   make([]Page, 0, 64),
		errs:    make([]FetchError, 0),
	}, nil
}

// Discover runs the traversal to completion and returns the inventory
// of discovered pages. Ownership of the returned slices transfers to
// the caller.
func (e *Engine) Discover(ctx context.Context) ([]Page, []FetchError, error) {
	start := time.Now()

	seed, err := scope.Normalize(e.cfg.Seed)
	if err != nil {
		return nil, nil, err
	}

	e.log.Infof("Starting crawl from %s (depth %d, %d workers)", seed, e.cfg.MaxDepth, e.cfg.Workers)

	e.queue.Push(&queue.Item{URL: seed, Depth: 0})

	var wg sync.WaitGroup
	for i := 0; i < e.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.worker(ctx)
		}()
	}
	wg.Wait()

	e.mu.Lock()
	pages, errs := e.pages, e.errs
	e.duration = time.Since(start)
	e.mu.Unlock()

	e.client.Close()
	e.queue.Close()

	e.log.Infof("Crawl complete: %d endpoints, %d errors in %s",
		len(pages), len(errs), time.Since(start).Round(time.Millisecond))

	return pages, errs, nil
}

// Stats returns counters for the last run.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	errCount := len(e.errs)
	duration := e.duration
	e.mu.Unlock()

	return Stats{
		PagesFetched: int(e.fetched.Load()),
		ScriptsFound: int(e.scripts.Load()),
		URLsSeen:     e.visited.Count(),
		ErrorCount:   errCount,
		Duration:     duration,
	}
}

// worker drains the queue until it reports drained or the context is
// cancelled.
func (e *Engine) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			// Closing the queue unblocks workers waiting in Pop.
			e.queue.Close()
			return
		default:
		}

		item, err := e.queue.Pop()
		if err != nil {
			return
		}

		e.process(ctx, item)
		e.queue.Done()
	}
}

// process handles one queue entry: visited check, fetch, triage,
// extraction, and child enqueueing.
func (e *Engine) process(ctx context.Context, item *queue.Item) {
	// Atomic check-and-mark: concurrent workers never fetch the
	// same URL twice.
	if e.visited.Seen(item.URL) {
		return
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return
	}

	e.log.Debugf("Crawling %s (depth %d)", item.URL, item.Depth)

	resp, err := e.client.Get(ctx, item.URL)
	if err != nil {
		// Transport failure: skip, no retry, children unexplored.
		e.log.WithError(err).Debugf("Skipping %s", item.URL)
		e.addError(item.URL, err)
		return
	}
	e.fetched.Add(1)
	e.log.RequestEvent(item.URL, resp.StatusCode, resp.Duration)

	switch {
	case resp.IsJavaScript():
		// Script-typed responses become script entries without
		// parsing.
		e.addPage(Page{
			URL:        item.URL,
			Params:     map[string][]string{},
			IsScript:   true,
			StatusCode: resp.StatusCode,
			Depth:      item.Depth,
			ParentURL:  item.ParentURL,
			FetchedAt:  time.Now(),
		})
		e.scripts.Add(1)
		return

	case !resp.IsHTML():
		// Unsupported content type: discarded, not an error.
		e.log.Debugf("Discarding %s (content type %q)", item.URL, resp.ContentType)
		return
	}

	info, err := parser.Parse(resp.Body, item.URL)
	if err != nil {
		e.addError(item.URL, err)
		return
	}

	e.addPage(Page{
		URL:        item.URL,
		Params:     queryParams(item.URL),
		HasForm:    info.HasForm,
		HasUpload:  info.HasUpload,
		StatusCode: resp.StatusCode,
		Depth:      item.Depth,
		ParentURL:  item.ParentURL,
		FetchedAt:  time.Now(),
	})

	e.recordScripts(info.Scripts, item)

	if item.Depth >= e.cfg.MaxDepth {
		return
	}
	e.enqueueLinks(info.Links, item)
}

// recordScripts inventories same-origin script references directly,
// unfetched, with a zero status code. Marking them visited here keeps
// them from being independently queued and double-counted.
func (e *Engine) recordScripts(scripts []string, item *queue.Item) {
	for _, scriptURL := range scripts {
		if !e.scope.InScope(scriptURL) {
			continue
		}

		normalized, err := scope.Normalize(scriptURL)
		if err != nil {
			continue
		}
		if e.visited.Seen(normalized) {
			continue
		}

		e.addPage(Page{
			URL:       normalized,
			Params:    map[string][]string{},
			IsScript:  true,
			Depth:     item.Depth,
			ParentURL: item.URL,
			FetchedAt: time.Now(),
		})
		e.scripts.Add(1)
	}
}

// enqueueLinks pushes unvisited in-origin links at depth+1.
func (e *Engine) enqueueLinks(links []string, item *queue.Item) {
	for _, link := range links {
		if !e.scope.InScope(link) {
			continue
		}

		normalized, err := scope.Normalize(link)
		if err != nil {
			continue
		}
		if e.visited.HasSeen(normalized) {
			continue
		}

		e.queue.Push(&queue.Item{
			URL:       normalized,
			Depth:     item.Depth + 1,
			ParentURL: item.URL,
		})
	}
}

func (e *Engine) addPage(page Page) {
	e.mu.Lock()
	e.pages = append(e.pages, page)
	e.mu.Unlock()
}

func (e *Engine) addError(url string, err error) {
	e.mu.Lock()
	e.errs = append(e.errs, FetchError{
		URL:       url,
		Error:     err.Error(),
		Timestamp: time.Now(),
	})
	e.mu.Unlock()
}

// queryParams extracts the query parameters from a URL, preserving
// multi-valued parameters.
func queryParams(rawURL string) map[string][]string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return map[string][]string{}
	}
	return parsed.Query()
}
