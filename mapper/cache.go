package mapper

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// DiskCache replays successful LLM replies stored in Dir. Entries are keyed by
// day, method, URL and request body, so they expire every day and a new prompt
// always reaches the provider.
type DiskCache struct {
	Base http.RoundTripper // nil means http.DefaultTransport
	Dir  string
	Log  zerolog.Logger
	Now  func() time.Time // nil means time.Now
}

func (c *DiskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key, err := c.key(req)
	if err != nil {
		return nil, err
	}
	if resp, err := c.get(key, req); err == nil {
		c.Log.Debug().Str("path", req.URL.Path).Str("key", key).Msg("cache hit")
		return resp, nil
	}

	base := c.Base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err != nil || resp.StatusCode >= 300 {
		return resp, err
	}
	if err := c.put(key, resp); err != nil {
		c.Log.Warn().Err(err).Msg("cache write failed (ignored)")
	}
	return resp, nil
}

// key hashes the request, restoring its body for the actual round trip.
func (c *DiskCache) key(req *http.Request) (string, error) {
	var body []byte
	if req.Body != nil {
		var err error
		if body, err = io.ReadAll(req.Body); err != nil {
			return "", err
		}
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(body))
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	h := sha1.New()
	fmt.Fprintf(h, "%s %s %s\n", now().Format(time.DateOnly), req.Method, req.URL.String())
	h.Write(body)
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func (c *DiskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.Dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores resp. DumpResponse leaves resp.Body readable again.
func (c *DiskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.Dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.Dir, key), content, 0o600)
}
