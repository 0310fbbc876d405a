package crawler

import (
	"time"

	"crawn/internal/models"
)

// ResultSink receives finished records in the order fetches complete.
// Implementations must be safe for concurrent callers.
type ResultSink interface {
	Write(models.PageResult) error
}

// Options contains configuration for the crawler.
type Options struct {
	MaxDepth          int           // BFS level ceiling, 0 = seed page only
	Concurrency       int           // worker pool size
	RequestInterval   time.Duration // minimum gap between outbound requests
	RequestTimeout    time.Duration // per-request timeout
	UserAgent         string        // User-Agent header
	MaxPages          int64         // total enqueue budget, 0 = unlimited
	IncludeSubdomains bool          // widen scope to the registrable domain
	IncludeText       bool          // populate PageResult.Text
	IncludeContent    bool          // populate PageResult.Content
}
