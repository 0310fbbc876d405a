package crawler

import (
	"context"
	"sync"

	"crawn/internal/models"
)

// Frontier is the BFS queue plus the visited set. Discovery order within a
// level is FIFO, and the two-queue design gives a strict level barrier: no
// depth d+1 target is handed to a worker until every depth-d target has
// been popped and fully resolved, so maxDepth is a true level bound.
type Frontier struct {
	mu   sync.Mutex
	cond *sync.Cond

	scope    Scope
	maxDepth int
	maxPages int64

	visited  map[string]struct{}
	current  []models.CrawlTarget
	next     []models.CrawlTarget
	depth    int
	inFlight int
	enqueued int64
	closed   bool
}

// NewFrontier builds an empty frontier at level zero. maxPages of zero
// means no page budget.
func NewFrontier(scope Scope, maxDepth int, maxPages int64) *Frontier {
	f := &Frontier{
		scope:    scope,
		maxDepth: maxDepth,
		maxPages: maxPages,
		visited:  make(map[string]struct{}),
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Push offers a target to the frontier. The visited-set membership test,
// insertion, and enqueue happen under one lock acquisition, so a URL can be
// enqueued at most once no matter how many workers discover it at the same
// time. Returns false for duplicates and out-of-policy targets, which the
// caller discards silently.
func (f *Frontier) Push(t models.CrawlTarget) bool {
	if t.URL == nil || t.Depth < 0 || t.Depth > f.maxDepth {
		return false
	}
	// Redundant with the processor's scoping, kept as a hard boundary.
	if !f.scope.Allows(t.URL) {
		return false
	}
	key := t.URL.String()

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	if _, dup := f.visited[key]; dup {
		return false
	}
	if f.maxPages > 0 && f.enqueued >= f.maxPages {
		return false
	}
	switch t.Depth {
	case f.depth:
		f.current = append(f.current, t)
	case f.depth + 1:
		f.next = append(f.next, t)
	default:
		return false
	}
	f.visited[key] = struct{}{}
	f.enqueued++
	f.cond.Broadcast()
	return true
}

// PopBatch removes up to max ready targets from the current BFS level.
// Popped targets count as in flight until Done is called for each.
func (f *Frontier) PopBatch(max int) []models.CrawlTarget {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.advanceLocked()
	if max <= 0 || len(f.current) == 0 {
		return nil
	}
	if max > len(f.current) {
		max = len(f.current)
	}
	batch := make([]models.CrawlTarget, max)
	copy(batch, f.current[:max])
	f.current = f.current[max:]
	f.inFlight += max
	return batch
}

// Done reports that one previously popped target has been fully resolved,
// including any child pushes. The level barrier advances only once the
// current level is drained and nothing is in flight.
func (f *Frontier) Done() {
	f.mu.Lock()
	f.inFlight--
	f.advanceLocked()
	f.mu.Unlock()
	f.cond.Broadcast()
}

func (f *Frontier) advanceLocked() {
	if len(f.current) == 0 && f.inFlight == 0 && len(f.next) > 0 {
		f.current, f.next = f.next, nil
		f.depth++
	}
}

// Exhausted reports completion: both levels empty and no worker holding a
// target that could still push children.
func (f *Frontier) Exhausted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exhaustedLocked()
}

func (f *Frontier) exhaustedLocked() bool {
	return len(f.current) == 0 && len(f.next) == 0 && f.inFlight == 0
}

// Next blocks until a target is ready, returning false once the frontier is
// exhausted, closed, or ctx is cancelled. Close must be wired to ctx by the
// caller; Next itself cannot interrupt a cond wait.
func (f *Frontier) Next(ctx context.Context) (models.CrawlTarget, bool) {
	for {
		if ctx.Err() != nil {
			return models.CrawlTarget{}, false
		}
		if batch := f.PopBatch(1); len(batch) == 1 {
			return batch[0], true
		}

		f.mu.Lock()
		for len(f.current) == 0 && !f.exhaustedLocked() && !f.closed && ctx.Err() == nil {
			f.cond.Wait()
		}
		done := f.exhaustedLocked() || f.closed
		f.mu.Unlock()
		if done {
			return models.CrawlTarget{}, false
		}
	}
}

// Close wakes all blocked workers and rejects further pushes.
func (f *Frontier) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.cond.Broadcast()
}

// Enqueued reports how many unique URLs have been accepted so far.
func (f *Frontier) Enqueued() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enqueued
}

// Depth reports the BFS level currently being served.
func (f *Frontier) Depth() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.depth
}
