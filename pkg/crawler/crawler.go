// Package crawler implements the crawl engine: a breadth-first frontier
// over same-domain links, a keyword relevance filter applied before any
// fetch, a shared rate-limit gate, and a bounded worker pool tying the
// fetch, parse, filter, and enqueue stages together.
package crawler

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"crawn/internal/models"
)

// State is the orchestrator lifecycle: Running while frontier work remains,
// Draining once workers quiesce, Done when every record has been emitted.
type State int32

const (
	StateRunning State = iota
	StateDraining
	StateDone
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Crawler owns the frontier and a bounded pool of concurrent workers. Each
// worker loops: pop a target, apply the keyword filter (the seed is
// exempt), acquire a rate-limit permit, fetch, process, emit the record,
// and push newly discovered links back into the frontier. Per-target
// failures are logged and dropped; they never abort the run.
type Crawler struct {
	seed      *url.URL
	keywords  KeywordSet
	frontier  *Frontier
	limiter   *Limiter
	fetcher   *Fetcher
	processor *Processor
	sink      ResultSink
	logger    zerolog.Logger
	workers   int

	state   atomic.Int32
	pages   atomic.Int64
	skipped atomic.Int64
	errs    atomic.Int64
}

// New validates the seed URL and assembles a crawler around the sink.
func New(seedURL string, opts Options, sink ResultSink, logger zerolog.Logger) (*Crawler, error) {
	seed, err := url.Parse(seedURL)
	if err != nil {
		return nil, fmt.Errorf("invalid seed URL %q: %w", seedURL, err)
	}
	if seed.Scheme != "http" && seed.Scheme != "https" {
		return nil, fmt.Errorf("seed URL %q: scheme must be http or https", seedURL)
	}
	scope, err := NewScope(seed, opts.IncludeSubdomains)
	if err != nil {
		return nil, err
	}
	if opts.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth must be non-negative, got %d", opts.MaxDepth)
	}
	if sink == nil {
		return nil, fmt.Errorf("output sink is required")
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.RequestInterval <= 0 {
		opts.RequestInterval = 250 * time.Millisecond
	}

	normalized := normalizeURL(seed)
	return &Crawler{
		seed:      normalized,
		keywords:  ExtractKeywords(normalized.Path),
		frontier:  NewFrontier(scope, opts.MaxDepth, opts.MaxPages),
		limiter:   NewLimiter(opts.RequestInterval),
		fetcher:   NewFetcher(opts.RequestTimeout, opts.UserAgent),
		processor: NewProcessor(scope, opts.IncludeText, opts.IncludeContent, logger),
		sink:      sink,
		logger:    logger,
		workers:   opts.Concurrency,
	}, nil
}

// Crawl runs to frontier exhaustion and returns run totals. Only
// process-level failures (sink I/O, cancellation) abort the run early.
func (c *Crawler) Crawl(ctx context.Context) (*models.CrawlStats, error) {
	start := time.Now()
	c.state.Store(int32(StateRunning))

	if !c.frontier.Push(models.CrawlTarget{URL: c.seed, Depth: 0}) {
		return nil, fmt.Errorf("seed URL %s was rejected by the frontier", c.seed.String())
	}

	g, ctx := errgroup.WithContext(ctx)
	// A cond wait cannot observe ctx; closing the frontier wakes workers
	// when the run is cancelled or a worker fails.
	stop := context.AfterFunc(ctx, c.frontier.Close)
	defer stop()

	for i := 0; i < c.workers; i++ {
		g.Go(func() error { return c.worker(ctx) })
	}
	err := g.Wait()
	c.state.Store(int32(StateDone))

	stats := &models.CrawlStats{
		Domain:   c.seed.Hostname(),
		Pages:    c.pages.Load(),
		Skipped:  c.skipped.Load(),
		Errors:   c.errs.Load(),
		Duration: time.Since(start),
	}
	return stats, err
}

func (c *Crawler) worker(ctx context.Context) error {
	for {
		target, ok := c.frontier.Next(ctx)
		if !ok {
			c.state.CompareAndSwap(int32(StateRunning), int32(StateDraining))
			return ctx.Err()
		}
		err := c.handle(ctx, target)
		c.frontier.Done()
		if err != nil {
			return err
		}
	}
}

// handle runs one target through filter, rate gate, fetch, process, emit,
// and child enqueue. A returned error is process-fatal.
func (c *Crawler) handle(ctx context.Context, target models.CrawlTarget) error {
	// The seed cannot be judged against its own keywords; it is always fetched.
	if target.Depth > 0 && !IsRelevant(target.URL, c.keywords) {
		c.skipped.Add(1)
		c.logger.Debug().Str("url", target.URL.String()).Int("depth", target.Depth).
			Msg("skipped by keyword filter")
		return nil
	}

	if err := c.limiter.Acquire(ctx); err != nil {
		return nil // cancelled while waiting on the gate
	}

	c.logger.Info().Str("url", target.URL.String()).Int("depth", target.Depth).Msg("sent request")

	page, err := c.fetcher.Fetch(ctx, target.URL)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		c.errs.Add(1)
		c.logger.Warn().Err(err).Str("url", target.URL.String()).Int("depth", target.Depth).
			Msg("failed to fetch URL")
		return nil
	}

	result, links := c.processor.Process(target, page)

	if err := c.sink.Write(result); err != nil {
		return fmt.Errorf("write output record for %s: %w", result.URL, err)
	}
	c.pages.Add(1)

	for _, link := range links {
		c.frontier.Push(models.CrawlTarget{URL: link, Depth: target.Depth + 1})
	}
	return nil
}

// State reports the orchestrator lifecycle phase.
func (c *Crawler) State() State { return State(c.state.Load()) }

// BaseKeywords exposes the seed-derived relevance reference.
func (c *Crawler) BaseKeywords() KeywordSet { return c.keywords }
