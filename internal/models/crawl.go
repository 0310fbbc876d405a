package models

import (
	"net/url"
	"time"
)

// CrawlTarget is one unit of frontier work: an absolute URL and the BFS
// depth at which it was discovered. A target is created when a link passes
// resolution, consumed exactly once by a worker, and never mutated.
type CrawlTarget struct {
	URL   *url.URL
	Depth int
}

// PageResult is one emitted NDJSON record. Title is null when the page has
// no <title>; Text and Content appear only when the corresponding output
// mode is enabled.
type PageResult struct {
	URL     string  `json:"url"`
	Title   *string `json:"title"`
	Depth   int     `json:"depth"`
	Links   int     `json:"links"`
	Text    *string `json:"text,omitempty"`
	Content *string `json:"content,omitempty"`
}

// CrawlStats summarizes a finished crawl run.
type CrawlStats struct {
	Domain   string
	Pages    int64
	Skipped  int64
	Errors   int64
	Duration time.Duration
}
