package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/pders01/relampago/internal/config"
	"github.com/pders01/relampago/internal/validation"
)

// maxBodySize caps how much of a single resource is read.
const maxBodySize = 8 << 20

// Source opens static feed resources by slash-separated relative path.
type Source interface {
	Open(ctx context.Context, name string) ([]byte, error)
	String() string
}

// HTTPSource reads resources below a base URL. Every request asks caches
// along the way to revalidate so edits to the static files show up at once.
type HTTPSource struct {
	base      *url.URL
	client    *http.Client
	userAgent string
}

func NewHTTPSource(base *url.URL, cfg config.SourceConfig) *HTTPSource {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPSource{
		base:      base,
		client:    &http.Client{Timeout: timeout},
		userAgent: cfg.UserAgent,
	}
}

func (s *HTTPSource) String() string { return s.base.String() }

func (s *HTTPSource) Open(ctx context.Context, name string) ([]byte, error) {
	ref, err := url.Parse(name)
	if err != nil {
		return nil, &LoadError{Kind: KindNetwork, Path: name, Message: "invalid resource path", Err: err}
	}
	target := s.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, &LoadError{Kind: KindNetwork, Path: name, Message: "creating request", Err: err}
	}
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "application/json, application/rss+xml, application/atom+xml, text/xml;q=0.9, */*;q=0.5")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &LoadError{Kind: KindNetwork, Path: name, Message: "fetching", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{Kind: KindNetwork, Path: name, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &LoadError{Kind: KindNetwork, Path: name, Message: "reading response", Err: err}
	}
	return body, nil
}

// FSSource reads resources from a directory, typically the site checkout.
// A missing file reports status 404 so it surfaces exactly like the HTTP case.
type FSSource struct {
	fs   afero.Fs
	root string
}

func NewFSSource(fsys afero.Fs, root string) *FSSource {
	return &FSSource{fs: afero.NewBasePathFs(fsys, root), root: root}
}

func (s *FSSource) String() string { return s.root }

func (s *FSSource) Open(_ context.Context, name string) ([]byte, error) {
	clean := path.Clean("/" + strings.TrimPrefix(name, "/"))

	f, err := s.fs.Open(clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, afero.ErrFileNotFound) {
			return nil, &LoadError{Kind: KindNetwork, Path: name, Status: http.StatusNotFound}
		}
		return nil, &LoadError{Kind: KindNetwork, Path: name, Message: "opening", Err: err}
	}
	defer f.Close()

	body, err := io.ReadAll(io.LimitReader(f, maxBodySize))
	if err != nil {
		return nil, &LoadError{Kind: KindNetwork, Path: name, Message: "reading", Err: err}
	}
	return body, nil
}

// NewSource picks the source for cfg.Location: http(s) URLs are fetched,
// anything else is a local directory.
func NewSource(cfg config.SourceConfig) (Source, error) {
	loc := strings.TrimSpace(cfg.Location)
	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		v := validation.NewSourceURLValidator()
		v.AllowLocalhost = cfg.AllowLocal
		v.AllowPrivateIPs = cfg.AllowLocal
		base, err := v.ValidateAndNormalize(loc)
		if err != nil {
			return nil, fmt.Errorf("invalid source URL: %w", err)
		}
		return NewHTTPSource(base, cfg), nil
	}

	dir, err := validation.ValidateSourceDir(loc)
	if err != nil {
		return nil, fmt.Errorf("invalid source directory: %w", err)
	}
	return NewFSSource(afero.NewOsFs(), dir), nil
}
