package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"crawn/internal/config"
	"crawn/internal/logging"
	"crawn/pkg/crawler"
	"crawn/pkg/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "crawn [URL]",
	Short: "Crawl a website breadth-first and emit one JSON record per page",
	Long: `crawn crawls a website starting from a seed URL, following only
same-domain links judged relevant by keywords extracted from the seed's
path, and appends one JSON object per visited page to an NDJSON file.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runCrawl,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringP("output", "o", "", "output file for NDJSON records (required)")
	flags.StringP("log-file", "l", "", "write log lines to this file instead of stderr")
	flags.IntP("max-depth", "m", 4, "BFS depth ceiling, 0 crawls the seed page only")
	flags.BoolP("verbose", "v", false, "log every request at INFO level")
	flags.Bool("include-text", false, "include extracted visible text in records")
	flags.Bool("include-content", false, "include raw HTML in records")
	flags.Int("concurrency", 4, "number of concurrent crawl workers")
	flags.Duration("interval", 250*time.Millisecond, "minimum delay between requests")
	flags.Duration("timeout", 10*time.Second, "per-request timeout")
	flags.String("user-agent", "crawn/1.0", "User-Agent header")
	flags.Bool("include-subdomains", false, "crawl subdomains of the seed's registrable domain")
	flags.Int64("max-pages", 0, "stop enqueueing after this many pages (0 = unlimited)")
	flags.String("config", "", "config file path")
	rootCmd.MarkFlagRequired("output")
}

func runCrawl(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(logging.Options{
		Verbose: cfg.Logging.Verbose,
		File:    cfg.Logging.File,
	})

	sink, err := output.NewFileSink(cfg.Output.Path)
	if err != nil {
		return err
	}

	c, err := crawler.New(args[0], crawler.Options{
		MaxDepth:          cfg.Crawler.MaxDepth,
		Concurrency:       cfg.Crawler.Concurrency,
		RequestInterval:   cfg.Crawler.RequestInterval,
		RequestTimeout:    cfg.Crawler.RequestTimeout,
		UserAgent:         cfg.Crawler.UserAgent,
		MaxPages:          cfg.Crawler.MaxPages,
		IncludeSubdomains: cfg.Crawler.IncludeSubdomains,
		IncludeText:       cfg.Output.IncludeText,
		IncludeContent:    cfg.Output.IncludeContent,
	}, sink, logger)
	if err != nil {
		sink.Close()
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := c.Crawl(ctx)
	if cerr := sink.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	logger.Info().
		Int64("pages", stats.Pages).
		Int64("skipped", stats.Skipped).
		Int64("errors", stats.Errors).
		Dur("duration", stats.Duration).
		Msg("crawl complete")
	fmt.Printf("Crawled %d pages from %s in %s (%d skipped by filter, %d errors)\n",
		stats.Pages, stats.Domain, stats.Duration.Round(time.Millisecond), stats.Skipped, stats.Errors)
	return nil
}

// applyFlags lets explicitly set flags override file and env configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if v, _ := flags.GetString("output"); flags.Changed("output") {
		cfg.Output.Path = v
	}
	if v, _ := flags.GetString("log-file"); flags.Changed("log-file") {
		cfg.Logging.File = v
	}
	if v, _ := flags.GetInt("max-depth"); flags.Changed("max-depth") {
		cfg.Crawler.MaxDepth = v
	}
	if v, _ := flags.GetBool("verbose"); flags.Changed("verbose") {
		cfg.Logging.Verbose = v
	}
	if v, _ := flags.GetBool("include-text"); flags.Changed("include-text") {
		cfg.Output.IncludeText = v
	}
	if v, _ := flags.GetBool("include-content"); flags.Changed("include-content") {
		cfg.Output.IncludeContent = v
	}
	if v, _ := flags.GetInt("concurrency"); flags.Changed("concurrency") {
		cfg.Crawler.Concurrency = v
	}
	if v, _ := flags.GetDuration("interval"); flags.Changed("interval") {
		cfg.Crawler.RequestInterval = v
	}
	if v, _ := flags.GetDuration("timeout"); flags.Changed("timeout") {
		cfg.Crawler.RequestTimeout = v
	}
	if v, _ := flags.GetString("user-agent"); flags.Changed("user-agent") {
		cfg.Crawler.UserAgent = v
	}
	if v, _ := flags.GetBool("include-subdomains"); flags.Changed("include-subdomains") {
		cfg.Crawler.IncludeSubdomains = v
	}
	if v, _ := flags.GetInt64("max-pages"); flags.Changed("max-pages") {
		cfg.Crawler.MaxPages = v
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// One FATAL line carrying the full cause chain.
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
		logger.Fatal().Err(err).Msg("crawl aborted")
	}
}
