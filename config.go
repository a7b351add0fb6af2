// config.go
// ----------
// This file defines the Config structure injected at client construction:
// the trusted-origin allow-list, the ordered proxy prefixes used by the
// fallback chain, and the default retry budget. All values are fixed for the
// lifetime of the client; per-request overrides exist only for the retry
// budget.
package resilientfetch

import "time"

// Config carries the construction-time settings of a Client. Zero values fall
// back to the package defaults below.
type Config struct {
	// AllowedHosts lists trusted hostnames for the proxy fallback chain.
	// A candidate URL passes if its host equals an entry or is a true
	// subdomain of one (dot-boundary suffix match).
	AllowedHosts []string

	// ProxyPrefixes are tried in order by FetchWithFallback; the
	// percent-encoded target URL is appended to each.
	ProxyPrefixes []string

	// MaxRetries is the default attempt budget for FetchWithRetry.
	MaxRetries int
}

// DefaultMaxRetries is the attempt budget used when neither the config nor
// the request sets one.
const DefaultMaxRetries = 3

// Backoff curve: strictly exponential, 1s doubling per attempt, capped at
// 10s, no jitter. The rate-limit wait is separately capped at one minute.
const (
	baseBackoff      = time.Second
	maxBackoff       = 10 * time.Second
	maxRateLimitWait = time.Minute
)

// DefaultAllowedHosts trusts the GitHub serving hosts the SDK was built
// around. Subdomain matching covers api.github.com and
// raw.githubusercontent.com.
var DefaultAllowedHosts = []string{
	"github.com",
	"githubusercontent.com",
}

// DefaultProxyPrefixes are public CORS relays, in preference order. Each is a
// prefix onto which the percent-encoded target URL is appended.
var DefaultProxyPrefixes = []string{
	"https://api.allorigins.win/raw?url=",
	"https://corsproxy.io/?",
	"https://api.codetabs.com/v1/proxy?quest=",
}
