package mapper

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// loggingTransport logs every round trip to the LLM providers.
type loggingTransport struct {
	base http.RoundTripper
	log  zerolog.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.log.Warn().Err(err).Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Msg("http request failed")
		return nil, err
	}
	t.log.Debug().
		Str("method", req.Method).
		Str("host", req.URL.Host).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("http request")
	return resp, nil
}

// NewHTTPClient returns a client logging its calls on log. A nil base uses
// http.DefaultTransport.
func NewHTTPClient(base http.RoundTripper, timeout time.Duration, log zerolog.Logger) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Transport: &loggingTransport{base: base, log: log},
		Timeout:   timeout,
	}
}
