package crawler

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Scope decides whether a URL stays inside the crawl's domain boundary.
// By default only the seed's exact host is in scope; with subdomains
// enabled, any host sharing the seed's registrable domain (eTLD+1) passes.
type Scope struct {
	host        string
	registrable string
	subdomains  bool
}

// NewScope derives the domain boundary from the seed URL.
func NewScope(seed *url.URL, includeSubdomains bool) (Scope, error) {
	host := strings.ToLower(seed.Hostname())
	if host == "" {
		return Scope{}, fmt.Errorf("seed URL %q has no host", seed.String())
	}
	scope := Scope{host: host, subdomains: includeSubdomains}
	if includeSubdomains {
		registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
		if err != nil {
			return Scope{}, fmt.Errorf("derive registrable domain for %q: %w", host, err)
		}
		scope.registrable = registrable
	}
	return scope, nil
}

// Allows reports whether u's host falls inside the crawl domain.
func (s Scope) Allows(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	if host == s.host {
		return true
	}
	if !s.subdomains {
		return false
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	return err == nil && registrable == s.registrable
}

// Host returns the seed host the scope was built from.
func (s Scope) Host() string { return s.host }
