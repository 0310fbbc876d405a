package crawler

import (
	"net/url"
	"strings"
)

// stopWords are path tokens too common to signal topical relevance.
var stopWords = map[string]struct{}{
	"how": {}, "to": {}, "the": {}, "and": {}, "for": {},
	"with": {}, "from": {}, "about": {}, "by": {},
}

// genericKeywords match any crawl topic regardless of the base keywords.
var genericKeywords = map[string]struct{}{
	"tutorial": {}, "guide": {}, "blog": {},
}

// KeywordSet holds normalized relevance tokens derived from a URL path.
type KeywordSet map[string]struct{}

// Contains reports membership of a single token.
func (k KeywordSet) Contains(token string) bool {
	_, ok := k[token]
	return ok
}

// ExtractKeywords tokenizes a URL path into relevance keywords. The path is
// lower-cased and split on '/', '-' and '_'; tokens shorter than three
// characters, purely numeric tokens, and stop words are dropped, and the
// survivors are reduced to their ASCII alphanumeric characters.
func ExtractKeywords(path string) KeywordSet {
	set := make(KeywordSet)
	tokens := strings.FieldsFunc(strings.ToLower(path), func(r rune) bool {
		return r == '/' || r == '-' || r == '_'
	})
	for _, tok := range tokens {
		if len(tok) < 3 || isNumeric(tok) {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if tok = sanitizeToken(tok); tok != "" {
			set[tok] = struct{}{}
		}
	}
	return set
}

// IsRelevant reports whether a candidate URL looks topically related to the
// base keywords. Candidates whose paths yield no usable keywords (the root
// path, short slugs) cannot be judged and are always considered relevant.
// Pure function: no I/O, safe for concurrent callers.
func IsRelevant(u *url.URL, base KeywordSet) bool {
	keywords := ExtractKeywords(u.Path)
	if len(keywords) == 0 {
		return true
	}
	for kw := range keywords {
		if base.Contains(kw) {
			return true
		}
		if _, generic := genericKeywords[kw]; generic {
			return true
		}
	}
	return false
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func sanitizeToken(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
