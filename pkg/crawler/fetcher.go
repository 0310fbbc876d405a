package crawler

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
)

const defaultMaxBodyBytes = 5 << 20

// Page is the raw outcome of a successful fetch.
type Page struct {
	Body        []byte
	ContentType string
	StatusCode  int
	HTML        bool
}

// Fetcher performs single GET requests. It never retries and never caches;
// failed targets are dropped by the orchestrator.
type Fetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
}

// NewFetcher builds a fetcher with a bounded per-request timeout.
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	transport := &http.Transport{
		DialContext:         (&net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 50,
		IdleConnTimeout:     30 * time.Second,
	}
	return &Fetcher{
		client:       &http.Client{Transport: transport, Timeout: timeout},
		userAgent:    userAgent,
		maxBodyBytes: defaultMaxBodyBytes,
	}
}

// Fetch issues exactly one GET for u and classifies the outcome: transport
// failures become NetworkError, non-2xx statuses become HTTPError, and a
// successful non-HTML response is returned with HTML unset so downstream
// stages degrade to an empty document instead of failing.
func (f *Fetcher) Fetch(ctx context.Context, u *url.URL) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", u.String(), err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: u.String(), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &HTTPError{URL: u.String(), StatusCode: resp.StatusCode}
	}

	body, err := f.readBody(resp)
	if err != nil {
		return nil, &NetworkError{URL: u.String(), Err: err}
	}

	contentType := resp.Header.Get("Content-Type")
	return &Page{
		Body:        body,
		ContentType: contentType,
		StatusCode:  resp.StatusCode,
		HTML:        isHTMLContent(contentType),
	}, nil
}

func (f *Fetcher) readBody(resp *http.Response) ([]byte, error) {
	reader := io.Reader(resp.Body)
	closers := []io.Closer{resp.Body}

	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("gzip decode: %w", err)
		}
		reader = gz
		closers = append(closers, gz)
	case "br":
		reader = brotli.NewReader(resp.Body)
	case "deflate":
		fl := flate.NewReader(resp.Body)
		reader = fl
		closers = append(closers, fl)
	}
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i].Close()
		}
	}()

	body, err := io.ReadAll(io.LimitReader(reader, f.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBodyBytes {
		return nil, fmt.Errorf("response body exceeds %d bytes", f.maxBodyBytes)
	}
	return body, nil
}

// isHTMLContent reports whether the MIME type is parseable markup. An empty
// content type is treated as HTML and left for the parser to make sense of.
func isHTMLContent(contentType string) bool {
	mime := strings.TrimSpace(strings.Split(strings.ToLower(contentType), ";")[0])
	switch mime {
	case "", "text/html", "application/xhtml+xml", "application/xhtml", "text/xml", "application/xml":
		return true
	}
	return false
}
