package storefront

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	httpRe    = regexp.MustCompile(`(?i)^https?://`)
	proxiedRe = regexp.MustCompile(`(?i)(\bwsrv\.nl\b|\bimages\.weserv\.nl\b)`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// imageProxyBase is the resize proxy fronting remote product images.
const imageProxyBase = "https://wsrv.nl/"

// IsHTTPURL reports whether u is an absolute http(s) URL.
func IsHTTPURL(u string) bool {
	return httpRe.MatchString(strings.TrimSpace(u))
}

// NormalizeImageURL cleans a raw image URL: trims surrounding space,
// upgrades protocol-relative //host/... to https, and strips any embedded
// whitespace. An empty input stays empty.
func NormalizeImageURL(raw string) string {
	if raw == "" {
		return ""
	}
	u := strings.TrimSpace(raw)
	if strings.HasPrefix(u, "//") {
		u = "https:" + u
	}
	return spaceRe.ReplaceAllString(u, "")
}

// DisplayOptions tune the resize proxy. Zero values are omitted.
type DisplayOptions struct {
	Width   int
	Quality int
}

// DisplayURL returns the URL to render for an image reference. Remote
// http(s) images are routed through the resize proxy; local paths, data
// URIs and already-proxied URLs pass through untouched.
func DisplayURL(raw string, opts DisplayOptions) string {
	u := NormalizeImageURL(raw)
	if u == "" {
		return ""
	}
	if !IsHTTPURL(u) {
		return u
	}
	if proxiedRe.MatchString(u) {
		return u
	}

	params := url.Values{}
	params.Set("url", u)
	if opts.Width > 0 {
		params.Set("w", strconv.Itoa(opts.Width))
	}
	if opts.Quality > 0 {
		params.Set("q", strconv.Itoa(opts.Quality))
	}
	return imageProxyBase + "?" + params.Encode()
}
