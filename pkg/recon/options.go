package recon

import (
	"io"
	"time"
)

// Option is a functional option for configuring the Runner.
type Option func(*Runner) error

// WithTarget sets the target URL to scan.
func WithTarget(url string) Option {
	return func(r *Runner) error {
		r.config.Target = url
		return nil
	}
}

// WithConfig replaces the entire configuration.
func WithConfig(config *Config) Option {
	return func(r *Runner) error {
		if config != nil {
			r.config = config
		}
		return nil
	}
}

// WithMaxDepth sets the maximum crawl depth.
func WithMaxDepth(depth int) Option {
	return func(r *Runner) error {
		if depth < 0 {
			depth = 0
		}
		r.config.MaxDepth = depth
		return nil
	}
}

// WithWorkers sets the number of concurrent fetch workers.
func WithWorkers(n int) Option {
	return func(r *Runner) error {
		if n < 1 {
			n = 1
		}
		r.config.Workers = n
		return nil
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Runner) error {
		r.config.Timeout = timeout
		return nil
	}
}

// WithDelay sets the politeness delay between fetches.
func WithDelay(delay time.Duration) Option {
	return func(r *Runner) error {
		r.config.Delay = delay
		return nil
	}
}

// WithRateLimit sets the fetch rate limit.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(r *Runner) error {
		r.config.RequestsPerSecond = requestsPerSecond
		r.config.Burst = burst
		return nil
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(r *Runner) error {
		r.config.UserAgent = ua
		return nil
	}
}

// WithHeaders sets custom headers for all requests.
func WithHeaders(headers map[string]string) Option {
	return func(r *Runner) error {
		r.config.CustomHeaders = headers
		return nil
	}
}

// WithWordlistDir sets the keyword-override wordlist directory.
func WithWordlistDir(dir string) Option {
	return func(r *Runner) error {
		r.config.WordlistDir = dir
		return nil
	}
}

// WithOutput sets the output configuration.
func WithOutput(output OutputConfig) Option {
	return func(r *Runner) error {
		r.config.Output = output
		return nil
	}
}

// WithOutputWriter redirects rendered output to w instead of the
// configured file path or stdout.
func WithOutputWriter(w io.Writer) Option {
	return func(r *Runner) error {
		r.outputWriter = w
		return nil
	}
}

// WithHistoryDB sets the scan-history database path.
func WithHistoryDB(path string) Option {
	return func(r *Runner) error {
		r.config.HistoryDB = path
		return nil
	}
}

// WithVerbose enables verbose logging.
func WithVerbose(verbose bool) Option {
	return func(r *Runner) error {
		r.config.Verbose = verbose
		return nil
	}
}

// WithDebug enables debug logging.
func WithDebug(debug bool) Option {
	return func(r *Runner) error {
		r.config.Debug = debug
		return nil
	}
}
