// http_transport.go
// -----------------
// This adapter is the production Transport: a tuned net/http client that
// normalizes responses into the SDK's Response type. A returned error always
// means the exchange never produced a response (DNS, connect, TLS, timeout);
// any received status, including 4xx/5xx, comes back as a Response so the
// executor can apply its own policy.
//
// When a TokenSource is configured, requests go through oauth2's refreshing
// round-tripper, which keeps Authorization headers current for authenticated
// APIs such as api.github.com.
package adapters

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	resilientfetch "github.com/securedash/resilient-fetch"
)

const DefaultHTTPTimeout = 20 * time.Second

// HTTPOptions configures NewHTTPTransport. The zero value is usable.
type HTTPOptions struct {
	Timeout     time.Duration      // Overall per-request timeout; DefaultHTTPTimeout if zero.
	TokenSource oauth2.TokenSource // Optional; installs oauth2's refreshing round-tripper.
	UserAgent   string             // Optional; set when the request carries no User-Agent.
}

type HTTPTransport struct {
	client    *http.Client
	userAgent string
}

// NewHTTPTransport builds the default production transport.
func NewHTTPTransport(opts HTTPOptions) *HTTPTransport {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultHTTPTimeout
	}
	client := &http.Client{
		Transport: &http.Transport{
			DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 15 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
		Timeout: opts.Timeout,
	}
	if opts.TokenSource != nil {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, client)
		client = oauth2.NewClient(ctx, opts.TokenSource)
		client.Timeout = opts.Timeout
	}
	return &HTTPTransport{client: client, userAgent: opts.UserAgent}
}

func (t *HTTPTransport) Execute(ctx context.Context, req *resilientfetch.Request) (*resilientfetch.Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, err
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if t.userAgent != "" && httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	headers := make(map[string]string)
	for k, vals := range resp.Header {
		if len(vals) > 0 {
			headers[strings.ToLower(k)] = vals[0]
		}
	}

	return &resilientfetch.Response{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Data:       data,
	}, nil
}
