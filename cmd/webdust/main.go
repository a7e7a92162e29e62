package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Cr3zy-dev/webdust/internal/history"
	"github.com/Cr3zy-dev/webdust/pkg/recon"
)

var (
	version = "1.1.0"

	// Global flags
	configFile string
	verbose    bool
	debug      bool
	noColor    bool

	// Scan flags
	maxDepth    int
	workers     int
	timeoutSecs int
	delayMillis int
	rateLimit   float64
	outputFile  string
	format      string
	userAgent   string
	wordlistDir string
	historyDB   string
	insecure    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "webdust",
		Short: "WebDust - Web Application Reconnaissance",
		Long: `WebDust - Unauthenticated web application reconnaissance.

Maps the reachable surface of a target by breadth-first same-origin
crawling, then labels each discovered endpoint with heuristic
vulnerability vectors (IDOR, LFI, XSS, SQLi, open redirect and more)
based on parameter names, forms and path structure.`,
		Version: version,
	}

	scanCmd := &cobra.Command{
		Use:   "scan [target]",
		Short: "Scan a target URL",
		Long:  "Crawl a target within its origin and classify every discovered endpoint.",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded scans",
		Long:  "List the scans recorded in the local history database.",
		RunE:  runHistory,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug mode")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	scanCmd.Flags().IntVarP(&maxDepth, "depth", "d", 2, "Maximum crawl depth")
	scanCmd.Flags().IntVarP(&workers, "workers", "w", 1, "Number of concurrent workers")
	scanCmd.Flags().IntVarP(&timeoutSecs, "timeout", "t", 10, "Request timeout in seconds")
	scanCmd.Flags().IntVar(&delayMillis, "delay", 100, "Delay between requests in milliseconds")
	scanCmd.Flags().Float64VarP(&rateLimit, "rate-limit", "r", 20, "Requests per second")
	scanCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	scanCmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json, text)")
	scanCmd.Flags().StringVar(&userAgent, "user-agent", "", "Custom User-Agent header")
	scanCmd.Flags().StringVar(&wordlistDir, "wordlist-dir", "", "Directory with per-category keyword overrides")
	scanCmd.Flags().StringVar(&historyDB, "history-db", "", "Record the scan in this bbolt database")
	scanCmd.Flags().BoolVarP(&insecure, "insecure", "k", true, "Skip TLS certificate verification")

	historyCmd.Flags().StringVar(&historyDB, "history-db", "", "History database to read")
	historyCmd.MarkFlagRequired("history-db")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	target := normalizeTarget(args[0])

	config := recon.DefaultConfig()

	if configFile != "" {
		fileConfig, err := recon.LoadFromFile(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config file: %w", err)
		}
		config = fileConfig
	}

	config.Target = target

	if cmd.Flags().Changed("depth") {
		config.MaxDepth = maxDepth
	}
	if cmd.Flags().Changed("workers") {
		config.Workers = workers
	}
	if cmd.Flags().Changed("timeout") {
		config.Timeout = time.Duration(timeoutSecs) * time.Second
	}
	if cmd.Flags().Changed("delay") {
		config.Delay = time.Duration(delayMillis) * time.Millisecond
	}
	if cmd.Flags().Changed("rate-limit") {
		config.RequestsPerSecond = rateLimit
	}
	if cmd.Flags().Changed("format") {
		config.Output.Format = format
	}
	if cmd.Flags().Changed("insecure") {
		config.SkipTLSVerify = insecure
	}
	if userAgent != "" {
		config.UserAgent = userAgent
	}
	if wordlistDir != "" {
		config.WordlistDir = wordlistDir
	}
	if outputFile != "" {
		config.Output.FilePath = outputFile
	}
	if historyDB != "" {
		config.HistoryDB = historyDB
	}
	config.Output.NoColor = noColor
	config.Verbose = verbose
	config.Debug = debug

	runner, err := recon.New(recon.WithConfig(config))
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
		cancel()
	}()

	printBanner(target, config)

	result, err := runner.Run(ctx)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if result != nil {
		printSummary(result)
	}

	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyDB)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	summaries, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list scans: %w", err)
	}

	if len(summaries) == 0 {
		fmt.Println("No scans recorded.")
		return nil
	}

	fmt.Printf("%-44s %-24s %10s %8s\n", "KEY", "STARTED", "ENDPOINTS", "VECTORS")
	for _, s := range summaries {
		fmt.Printf("%-44s %-24s %10d %8d\n",
			s.Key,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			s.EndpointCount,
			s.VectorCount,
		)
	}

	return nil
}

// normalizeTarget prepends https:// when the argument has no scheme,
// so bare hostnames are accepted on the command line.
func normalizeTarget(target string) string {
	if strings.Contains(target, "://") {
		return target
	}
	return "https://" + target
}

func printBanner(target string, config *recon.Config) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║                        WebDust v1.1                          ║")
	fmt.Println("║              Web Application Reconnaissance                  ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Target:     %s\n", target)
	fmt.Printf("Max Depth:  %d\n", config.MaxDepth)
	fmt.Printf("Workers:    %d\n", config.Workers)
	fmt.Printf("Rate Limit: %.0f req/s\n", config.RequestsPerSecond)
	fmt.Println()
	fmt.Println("Starting scan...")
	fmt.Println()
}

func printSummary(result *recon.ScanResult) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║                        Scan Summary                          ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Duration:          %v\n", result.Stats.Duration.Round(time.Millisecond))
	fmt.Printf("Endpoints Found:   %d\n", result.Stats.EndpointsDiscovered)
	fmt.Printf("Pages Fetched:     %d\n", result.Stats.PagesFetched)
	fmt.Printf("Scripts Found:     %d\n", result.Stats.ScriptsFound)
	fmt.Printf("Forms Found:       %d\n", result.Stats.FormsFound)
	fmt.Printf("Uploads Found:     %d\n", result.Stats.UploadsFound)
	fmt.Printf("Vectors Assigned:  %d\n", result.Stats.VectorsAssigned)
	fmt.Printf("Errors:            %d\n", result.Stats.ErrorCount)
	fmt.Println()
}
