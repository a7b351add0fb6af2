package resilientfetch

import "strings"

// Request describes one logical fetch. Method defaults to GET and MaxRetries
// defaults to the client's configured budget when zero.
type Request struct {
	Method     string
	URL        string
	Headers    map[string]string
	Body       []byte
	MaxRetries int
}

// Response is the normalized result of a transport exchange.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Data       []byte
}

// OK reports whether the response carries a success status (2xx or 3xx).
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 400
}

// Header returns the value for the named header using a case-insensitive
// lookup, or "" if absent.
func (r *Response) Header(name string) string {
	if v, ok := r.Headers[name]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
