package recon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"sync/atomic"
	"time"

	"github.com/Cr3zy-dev/webdust/internal/classify"
	"github.com/Cr3zy-dev/webdust/internal/crawl"
	"github.com/Cr3zy-dev/webdust/internal/history"
	"github.com/Cr3zy-dev/webdust/internal/logger"
	"github.com/Cr3zy-dev/webdust/internal/output"
	"github.com/Cr3zy-dev/webdust/internal/wordlist"
)

// Runner orchestrates one scan: bounded traversal, then
// classification, then rendering and optional history persistence.
type Runner struct {
	config       *Config
	logger       *logger.Logger
	outputWriter io.Writer

	running atomic.Bool
}

// New creates a new runner with the given options.
func New(opts ...Option) (*Runner, error) {
	r := &Runner{
		config: DefaultConfig(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if err := r.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logLevel := logger.WarnLevel
	if r.config.Debug {
		logLevel = logger.DebugLevel
	} else if r.config.Verbose {
		logLevel = logger.InfoLevel
	}
	r.logger = logger.New(logger.Config{
		Level:     logLevel,
		Pretty:    true,
		Component: "recon",
	})

	return r, nil
}

// Config returns a copy of the runner's configuration.
func (r *Runner) Config() *Config {
	return r.config.Clone()
}

// IsRunning reports whether a scan is in progress.
func (r *Runner) IsRunning() bool {
	return r.running.Load()
}

// Run executes the scan and returns the labeled inventory.
func (r *Runner) Run(ctx context.Context) (*ScanResult, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("scan is already running")
	}
	defer r.running.Store(false)

	startedAt := time.Now()

	engine, err := crawl.New(crawl.Config{
		Seed:              r.config.Target,
		MaxDepth:          r.config.MaxDepth,
		Workers:           r.config.Workers,
		Timeout:           r.config.Timeout,
		Delay:             r.config.Delay,
		RequestsPerSecond: r.config.RequestsPerSecond,
		Burst:             r.config.Burst,
		UserAgent:         r.config.UserAgent,
		Headers:           r.config.CustomHeaders,
		SkipTLSVerify:     r.config.SkipTLSVerify,
	}, r.logger)
	if err != nil {
		return nil, err
	}

	pages, fetchErrs, err := engine.Discover(ctx)
	if err != nil {
		return nil, err
	}

	classifier := classify.New(classify.Config{
		OverrideFiles: r.overrideFiles(),
	}, r.logger)

	result := r.assemble(startedAt, pages, fetchErrs, engine.Stats(), classifier)

	if err := r.writeOutput(result); err != nil {
		return result, err
	}

	if r.config.HistoryDB != "" {
		if err := r.saveHistory(result); err != nil {
			r.logger.Warnf("Failed to record scan history: %v", err)
		}
	}

	return result, nil
}

// overrideFiles locates per-category wordlist overrides. A missing
// directory is a warning; classification proceeds on defaults.
func (r *Runner) overrideFiles() map[classify.Category]string {
	if r.config.WordlistDir == "" {
		return nil
	}

	names := make([]string, 0, len(classify.Categories))
	for _, cat := range classify.Categories {
		names = append(names, string(cat))
	}

	found, err := wordlist.FindCategoryFiles(r.config.WordlistDir, names)
	if err != nil {
		r.logger.Warnf("Ignoring wordlist directory %s: %v", r.config.WordlistDir, err)
		return nil
	}

	files := make(map[classify.Category]string, len(found))
	for cat, path := range found {
		files[classify.Category(cat)] = path
	}
	return files
}

// assemble converts crawl pages into classified endpoints and totals
// the scan statistics.
func (r *Runner) assemble(startedAt time.Time, pages []crawl.Page, fetchErrs []crawl.FetchError, crawlStats crawl.Stats, classifier *classify.Classifier) *ScanResult {
	result := &ScanResult{
		Target:    r.config.Target,
		Domain:    targetDomain(r.config.Target),
		StartedAt: startedAt,
		Endpoints: make([]Endpoint, 0, len(pages)),
		Errors:    make([]ScanError, 0, len(fetchErrs)),
	}

	vectorsAssigned := 0
	formsFound := 0
	uploadsFound := 0

	for _, page := range pages {
		vectors := classifier.Classify(classify.Page{
			URL:       page.URL,
			Params:    page.Params,
			HasForm:   page.HasForm,
			HasUpload: page.HasUpload,
			IsScript:  page.IsScript,
		})

		labels := make([]string, 0, len(vectors))
		for _, v := range vectors {
			labels = append(labels, string(v))
		}
		vectorsAssigned += len(labels)
		if page.HasForm {
			formsFound++
		}
		if page.HasUpload {
			uploadsFound++
		}

		ep := Endpoint{
			URL:            page.URL,
			Params:         page.Params,
			HasForm:        page.HasForm,
			HasUpload:      page.HasUpload,
			IsScript:       page.IsScript,
			StatusCode:     page.StatusCode,
			Depth:          page.Depth,
			DiscoveredFrom: page.ParentURL,
			Vectors:        labels,
			Timestamp:      page.FetchedAt,
		}
		result.Endpoints = append(result.Endpoints, ep)

		r.logger.EndpointEvent(ep.URL, ep.Depth, ep.Vectors)
	}

	for _, fe := range fetchErrs {
		result.Errors = append(result.Errors, ScanError{
			URL:       fe.URL,
			Error:     fe.Error,
			Timestamp: fe.Timestamp,
		})
	}

	result.CompletedAt = time.Now()
	result.Stats = ScanStats{
		EndpointsDiscovered: len(result.Endpoints),
		PagesFetched:        crawlStats.PagesFetched,
		ScriptsFound:        crawlStats.ScriptsFound,
		FormsFound:          formsFound,
		UploadsFound:        uploadsFound,
		VectorsAssigned:     vectorsAssigned,
		ErrorCount:          len(result.Errors),
		Duration:            result.CompletedAt.Sub(startedAt),
	}

	return result
}

// writeOutput renders the result to the configured destination.
func (r *Runner) writeOutput(result *ScanResult) error {
	w := r.outputWriter
	var file *os.File
	if w == nil {
		if r.config.Output.FilePath != "" {
			f, err := os.Create(r.config.Output.FilePath)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			file = f
			w = f
		} else {
			w = os.Stdout
		}
	}

	writer := output.NewWriter(w, output.Config{
		Format:  r.config.Output.Format,
		Pretty:  r.config.Output.Pretty,
		NoColor: r.config.Output.NoColor,
	})

	if err := writer.WriteResult(convertToOutputResult(result)); err != nil {
		if file != nil {
			file.Close()
		}
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	if file != nil {
		return file.Close()
	}
	return nil
}

// saveHistory records the scan in the bbolt archive.
func (r *Runner) saveHistory(result *ScanResult) error {
	store, err := history.Open(r.config.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	key, err := store.Save(history.Record{
		Target:        result.Target,
		Domain:        result.Domain,
		StartedAt:     result.StartedAt,
		EndpointCount: result.Stats.EndpointsDiscovered,
		VectorCount:   result.Stats.VectorsAssigned,
		Result:        data,
	})
	if err != nil {
		return err
	}

	r.logger.Debugf("Recorded scan history as %s", key)
	return nil
}

// convertToOutputResult converts a ScanResult to the output package's
// renderable form.
func convertToOutputResult(result *ScanResult) *output.Result {
	out := &output.Result{
		Target:      result.Target,
		Domain:      result.Domain,
		StartedAt:   result.StartedAt,
		CompletedAt: result.CompletedAt,
		Stats: output.Stats{
			EndpointsDiscovered: result.Stats.EndpointsDiscovered,
			PagesFetched:        result.Stats.PagesFetched,
			ScriptsFound:        result.Stats.ScriptsFound,
			FormsFound:          result.Stats.FormsFound,
			UploadsFound:        result.Stats.UploadsFound,
			VectorsAssigned:     result.Stats.VectorsAssigned,
			ErrorCount:          result.Stats.ErrorCount,
			Duration:            result.Stats.Duration,
		},
		Endpoints: make([]output.Endpoint, 0, len(result.Endpoints)),
		Errors:    make([]output.ScanError, 0, len(result.Errors)),
	}

	for _, ep := range result.Endpoints {
		out.Endpoints = append(out.Endpoints, output.Endpoint{
			URL:        ep.URL,
			Params:     ep.Params,
			HasForm:    ep.HasForm,
			HasUpload:  ep.HasUpload,
			IsScript:   ep.IsScript,
			StatusCode: ep.StatusCode,
			Vectors:    ep.Vectors,
		})
	}

	for _, e := range result.Errors {
		out.Errors = append(out.Errors, output.ScanError{
			URL:       e.URL,
			Error:     e.Error,
			Timestamp: e.Timestamp,
		})
	}

	return out
}

// targetDomain extracts the host from the target URL for display.
func targetDomain(target string) string {
	parsed, err := url.Parse(target)
	if err != nil {
		return target
	}
	return parsed.Host
}
