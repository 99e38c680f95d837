package metadata

import (
	"net/url"
	"strings"
)

// NormalizeURL trims whitespace and prepends https:// unless the string
// already starts with http:// or https:// in any letter case.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return s
	}
	return "https://" + s
}

// HostTitle returns the hostname of rawURL with a leading "www." removed.
// Returns rawURL unchanged when it has no parsable host.
func HostTitle(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// DefaultFavicon returns {scheme}://{host}/favicon.ico for rawURL,
// or "" when it has no parsable host.
func DefaultFavicon(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || u.Scheme == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/favicon.ico"
}

// resolve makes ref absolute against base. Unparsable refs yield "".
func resolve(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base == nil {
		return r.String()
	}
	return base.ResolveReference(r).String()
}
