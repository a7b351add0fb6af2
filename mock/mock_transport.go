package mock

import (
	"context"

	resilientfetch "github.com/securedash/resilient-fetch"
)

// Outcome is one scripted transport result: either a response or a
// transport-level error, never both.
type Outcome struct {
	Resp *resilientfetch.Response
	Err  error
}

// Transport replays a fixed sequence of outcomes, one per Execute call, and
// records every URL it was asked for. When the script runs out, the last
// outcome repeats; an empty script always answers 200.
type Transport struct {
	Outcomes []Outcome

	Calls []string
	pos   int
}

func (t *Transport) Execute(_ context.Context, req *resilientfetch.Request) (*resilientfetch.Response, error) {
	t.Calls = append(t.Calls, req.URL)
	if len(t.Outcomes) == 0 {
		return OK(), nil
	}
	o := t.Outcomes[t.pos]
	if t.pos < len(t.Outcomes)-1 {
		t.pos++
	}
	return o.Resp, o.Err
}

// OK builds a plain 200 response.
func OK() *resilientfetch.Response {
	return &resilientfetch.Response{
		StatusCode: 200,
		Headers:    map[string]string{},
		Data:       []byte(`{"success":true}`),
	}
}

// Status builds a response with the given code and headers.
func Status(code int, headers map[string]string) *resilientfetch.Response {
	if headers == nil {
		headers = map[string]string{}
	}
	return &resilientfetch.Response{
		StatusCode: code,
		Headers:    headers,
		Data:       []byte{},
	}
}
