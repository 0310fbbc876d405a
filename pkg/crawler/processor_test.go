package crawler

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const processorTestHTML = `<!DOCTYPE html>
<html>
<head><title>  Docs Index  </title></head>
<body>
	<a href="guide.html">relative</a>
	<a href="/top">rooted</a>
	<a href="https://example.com/other#frag">fragment stripped</a>
	<a href="https://EXAMPLE.com/mixed-case-host">host lowered</a>
	<a href="https://elsewhere.com/off-domain">external</a>
	<a href="mailto:someone@example.com">mail</a>
	<a href="javascript:void(0)">script</a>
	<a href="/report.pdf">binary</a>
	<a href="/top">duplicate</a>
</body>
</html>`

func newTestProcessor(t *testing.T, includeText, includeContent bool) *Processor {
	t.Helper()
	return NewProcessor(testScope(t), includeText, includeContent, zerolog.Nop())
}

func TestProcessResolvesLinks(t *testing.T) {
	p := newTestProcessor(t, false, false)
	tgt := target(t, "https://example.com/docs/", 1)
	page := &Page{Body: []byte(processorTestHTML), ContentType: "text/html", HTML: true}

	result, links := p.Process(tgt, page)

	require.NotNil(t, result.Title)
	assert.Equal(t, "Docs Index", *result.Title)
	assert.Equal(t, 1, result.Depth)
	assert.Equal(t, "https://example.com/docs/", result.URL)
	assert.Nil(t, result.Text)
	assert.Nil(t, result.Content)

	got := make([]string, 0, len(links))
	for _, u := range links {
		got = append(got, u.String())
	}
	assert.ElementsMatch(t, []string{
		"https://example.com/docs/guide.html",
		"https://example.com/top",
		"https://example.com/other",
		"https://example.com/mixed-case-host",
	}, got)
	assert.Equal(t, len(links), result.Links)
}

func TestProcessNonHTMLPage(t *testing.T) {
	p := newTestProcessor(t, false, false)
	tgt := target(t, "https://example.com/data.json", 2)
	page := &Page{Body: []byte(`{"k":"v"}`), ContentType: "application/json", HTML: false}

	result, links := p.Process(tgt, page)

	assert.Nil(t, result.Title)
	assert.Empty(t, links)
	assert.Zero(t, result.Links)
	assert.Equal(t, 2, result.Depth)
}

func TestProcessOptionalFields(t *testing.T) {
	html := `<html><head><title>t</title></head><body><p>Visible body text here.</p></body></html>`
	tgt := target(t, "https://example.com/", 0)
	page := &Page{Body: []byte(html), ContentType: "text/html", HTML: true}

	t.Run("both disabled", func(t *testing.T) {
		result, _ := newTestProcessor(t, false, false).Process(tgt, page)
		assert.Nil(t, result.Text)
		assert.Nil(t, result.Content)
	})

	t.Run("text enabled", func(t *testing.T) {
		result, _ := newTestProcessor(t, true, false).Process(tgt, page)
		require.NotNil(t, result.Text)
		assert.Nil(t, result.Content)
	})

	t.Run("both enabled", func(t *testing.T) {
		result, _ := newTestProcessor(t, true, true).Process(tgt, page)
		require.NotNil(t, result.Text)
		require.NotNil(t, result.Content)
		assert.Equal(t, html, *result.Content)
	})
}

func TestNormalizeURL(t *testing.T) {
	u := mustParse(t, "https://Example.COM/Path/Page#section")
	n := normalizeURL(u)
	assert.Equal(t, "https://example.com/Path/Page", n.String())
	// The original is untouched.
	assert.Equal(t, "Example.COM", u.Host)
}

func TestScopeSubdomains(t *testing.T) {
	seed := mustParse(t, "https://docs.example.com/")

	strict, err := NewScope(seed, false)
	require.NoError(t, err)
	assert.True(t, strict.Allows(mustParse(t, "https://docs.example.com/page")))
	assert.False(t, strict.Allows(mustParse(t, "https://example.com/page")))

	wide, err := NewScope(seed, true)
	require.NoError(t, err)
	assert.True(t, wide.Allows(mustParse(t, "https://example.com/page")))
	assert.True(t, wide.Allows(mustParse(t, "https://blog.example.com/page")))
	assert.False(t, wide.Allows(mustParse(t, "https://example.org/page")))
}

func TestResolveLinksEmptyHrefs(t *testing.T) {
	p := newTestProcessor(t, false, false)
	links := p.ResolveLinks(mustParse(t, "https://example.com/"), nil)
	assert.Empty(t, links)
}
