// Package ingest acquires the run's input, either a local file path or an
// http(s):// URL, into a local file the rest of the pipeline can stream
// from with a plain os.Open.
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/hopgraph/cyclefind/internal/errtax"
)

// Acquired is an input ready to be read. Close releases any temp file
// created for a URL fetch; for a local path it is a no-op.
type Acquired struct {
	Path  string
	close func() error
}

// Close releases resources held by the acquisition.
func (a Acquired) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

// Open acquires input, which is either a local filesystem path or an
// http(s):// URL. A URL is fetched into a temp file under ctx; a local path
// is used directly. Fetch failure, a non-2xx response, or a missing local
// file is an acquisition error (exit 1 per the documented taxonomy).
func Open(ctx context.Context, input string) (Acquired, error) {
	if u, ok := parseHTTPURL(input); ok {
		return fetch(ctx, u)
	}

	if _, err := os.Stat(input); err != nil {
		return Acquired{}, errtax.Acquire.Wrap(fmt.Errorf("open %s: %w", input, err))
	}
	return Acquired{Path: input}, nil
}

func parseHTTPURL(input string) (*url.URL, bool) {
	u, err := url.Parse(input)
	if err != nil {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	return u, true
}

func fetch(ctx context.Context, u *url.URL) (Acquired, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Acquired{}, errtax.Acquire.Wrap(fmt.Errorf("build request for %s: %w", u, err))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Acquired{}, errtax.Acquire.Wrap(fmt.Errorf("fetch %s: %w", u, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Acquired{}, errtax.Acquire.Wrap(fmt.Errorf("fetch %s: status %s", u, resp.Status))
	}

	f, err := os.CreateTemp("", "hopcycle-input-*")
	if err != nil {
		return Acquired{}, errtax.Acquire.Wrap(fmt.Errorf("create temp file: %w", err))
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return Acquired{}, errtax.Acquire.Wrap(fmt.Errorf("download %s: %w", u, err))
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return Acquired{}, errtax.Acquire.Wrap(fmt.Errorf("close temp file: %w", err))
	}

	path := f.Name()
	return Acquired{
		Path: path,
		close: func() error {
			return os.Remove(path)
		},
	}, nil
}
