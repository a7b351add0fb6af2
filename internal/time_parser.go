// internal/time_parser.go
// ------------------------
// This internal package provides helper functions for parsing rate-limit
// reset headers and converting between timestamp units. The SDK treats reset
// headers as UNIX timestamps in seconds and does all wait arithmetic in
// milliseconds.
package internal

import (
	"strconv"
	"strings"
)

// ParseUnixSeconds parses a decimal UNIX-seconds timestamp such as the value
// of an X-RateLimit-Reset header. It returns false for empty or non-numeric
// input.
func ParseUnixSeconds(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return secs, true
}

// UnixToMs converts a UNIX timestamp in seconds to milliseconds.
func UnixToMs(timestamp int64) int64 {
	return timestamp * 1000
}
