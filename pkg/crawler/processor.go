package crawler

import (
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"crawn/internal/models"
	"crawn/pkg/parser"
)

// nonWebpageExtensions are resource suffixes that can never yield HTML;
// links ending in one are discarded before they reach the frontier.
var nonWebpageExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".svg", ".ico",
	".pdf", ".zip", ".gz", ".mp4", ".mp3", ".css", ".js",
}

// Processor turns fetched pages into output records and frontier
// candidates via the parse collaborator.
type Processor struct {
	scope          Scope
	includeText    bool
	includeContent bool
	logger         zerolog.Logger
}

// NewProcessor builds a processor scoped to the crawl domain.
func NewProcessor(scope Scope, includeText, includeContent bool, logger zerolog.Logger) *Processor {
	return &Processor{
		scope:          scope,
		includeText:    includeText,
		includeContent: includeContent,
		logger:         logger,
	}
}

// Process parses a fetched page and returns its output record plus the
// in-scope links discovered on it. Unparseable or non-HTML pages degrade to
// an empty record and no links; the crawl continues.
func (p *Processor) Process(target models.CrawlTarget, page *Page) (models.PageResult, []*url.URL) {
	result := models.PageResult{
		URL:   target.URL.String(),
		Depth: target.Depth,
	}

	doc := &parser.Document{}
	if page.HTML {
		parsed, err := parser.Parse(page.Body, parser.Options{ExtractText: p.includeText})
		if err != nil {
			p.logger.Warn().Err(err).Str("url", result.URL).Msg("HTML parse failed, emitting empty record")
		} else {
			doc = parsed
		}
	} else {
		p.logger.Debug().Str("url", result.URL).Str("content_type", page.ContentType).
			Msg("non-HTML content, skipping extraction")
	}

	if doc.Title != "" {
		title := doc.Title
		result.Title = &title
	}
	if p.includeText {
		text := doc.Text
		result.Text = &text
	}
	if p.includeContent {
		content := string(page.Body)
		result.Content = &content
	}

	links := p.ResolveLinks(target.URL, doc.Links)
	result.Links = len(links)
	return result, links
}

// ResolveLinks resolves raw hrefs against the page URL and keeps only
// normalized, deduplicated, in-scope HTTP(S) links. Same-domain-only is a
// hard boundary of the crawl and is enforced here, not merely by the
// relevance filter.
func (p *Processor) ResolveLinks(base *url.URL, hrefs []string) []*url.URL {
	seen := make(map[string]struct{}, len(hrefs))
	links := make([]*url.URL, 0, len(hrefs))
	for _, href := range hrefs {
		ref, err := url.Parse(href)
		if err != nil {
			p.logger.Debug().Str("href", href).Msg("discarding unparseable link")
			continue
		}
		u := normalizeURL(base.ResolveReference(ref))
		if u.Scheme != "http" && u.Scheme != "https" {
			continue
		}
		if !p.scope.Allows(u) {
			continue
		}
		if !isWebpageURL(u) {
			continue
		}
		key := u.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		links = append(links, u)
	}
	return links
}

// normalizeURL strips the fragment and lower-cases scheme and host so the
// visited set treats trivially different spellings as one URL.
func normalizeURL(u *url.URL) *url.URL {
	n := *u
	n.Fragment = ""
	n.RawFragment = ""
	n.Scheme = strings.ToLower(n.Scheme)
	n.Host = strings.ToLower(n.Host)
	return &n
}

func isWebpageURL(u *url.URL) bool {
	path := strings.ToLower(u.Path)
	for _, ext := range nonWebpageExtensions {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}
	return true
}
