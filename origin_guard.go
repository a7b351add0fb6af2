// origin_guard.go
// ----------------
// The origin guard decides whether a candidate URL may be routed through the
// proxy fallback chain. Matching is exact-host or true-subdomain only: an
// entry "github.com" admits "api.github.com" but never "evilgithub.com" and
// never a host that merely embeds the entry somewhere in the middle.
package resilientfetch

import (
	"net/url"
	"strings"
)

// IsAllowedOrigin reports whether raw parses as an absolute URL whose host is
// an allow-listed name or a dot-boundary subdomain of one. Malformed input is
// simply not allowed; this never returns an error.
func IsAllowedOrigin(raw string, allowed []string) bool {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Hostname() == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, entry := range allowed {
		entry = strings.ToLower(entry)
		if host == entry || strings.HasSuffix(host, "."+entry) {
			return true
		}
	}
	return false
}

// IsAllowed applies the client's configured allow-list to raw.
func (c *Client) IsAllowed(raw string) bool {
	return IsAllowedOrigin(raw, c.allowedHosts)
}
