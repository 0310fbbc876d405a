// Package parser turns raw HTML into the title, outbound links, and visible
// text the crawler records. Parsing is tolerant: structurally broken markup
// yields a best-effort (possibly empty) document wherever the underlying
// tokenizer can recover.
package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"
)

// Document is the parse collaborator's view of one page.
type Document struct {
	Title string
	Links []string
	Text  string
}

// Options toggles the optional extraction stages.
type Options struct {
	// ExtractText enables visible-text extraction, the costliest stage.
	ExtractText bool
}

var whitespace = regexp.MustCompile(`\s+`)

// Parse extracts the title, raw hrefs, and optionally the visible text from
// an HTML document.
func Parse(body []byte, opts Options) (*Document, error) {
	gq, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	doc := &Document{
		Title: CleanText(gq.Find("title").First().Text()),
	}

	gq.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		if href = strings.TrimSpace(href); href != "" {
			doc.Links = append(doc.Links, href)
		}
	})

	if opts.ExtractText {
		doc.Text = extractText(body, gq)
	}
	return doc, nil
}

// extractText prefers trafilatura's boilerplate-stripped content and falls
// back to the flattened <body> text when extraction yields nothing.
func extractText(body []byte, gq *goquery.Document) string {
	result, err := trafilatura.Extract(bytes.NewReader(body), trafilatura.Options{})
	if err == nil && result != nil && result.ContentText != "" {
		return result.ContentText
	}
	return CleanText(gq.Find("body").Text())
}

// CleanText collapses runs of whitespace and trims the result.
func CleanText(text string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}
