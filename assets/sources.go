package assets

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"
)

// Source is one candidate location an asset may be fetched from.
type Source interface {
	// Fetch returns the raw bytes of name relative to the location.
	Fetch(ctx context.Context, name string) ([]byte, error)
	// Location returns the configured base, used in diagnostics.
	Location() string
}

// FSSource reads assets from a directory of an fs.FS.
type FSSource struct {
	name string
	fsys fs.FS
	dir  string
}

// NewFSSource serves files under dir of fsys. name is what diagnostics show.
func NewFSSource(name string, fsys fs.FS, dir string) *FSSource {
	if dir == "" {
		dir = "."
	}
	return &FSSource{name: name, fsys: fsys, dir: dir}
}

// NewDirSource serves files from a directory on disk.
func NewDirSource(dir string) *FSSource {
	return NewFSSource(dir, os.DirFS(dir), ".")
}

func (s *FSSource) Location() string { return s.name }

func (s *FSSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, path.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", name, err)
	}
	return data, nil
}

// HTTPSource fetches assets with GET <base>/<name>.
type HTTPSource struct {
	base   string
	client *http.Client
}

// NewHTTPSource creates a source rooted at base. A zero timeout means none.
func NewHTTPSource(base string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Location() string { return s.base }

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	u := s.base + "/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", u, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: %s", u, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", u, err)
	}
	return data, nil
}

// ParseLocation turns a configured location string into a Source.
// http:// and https:// bases become HTTP sources, anything else a directory.
func ParseLocation(loc string, httpTimeout time.Duration) Source {
	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		return NewHTTPSource(loc, httpTimeout)
	}
	return NewDirSource(loc)
}

// ParseLocations parses locations in order.
func ParseLocations(locs []string, httpTimeout time.Duration) []Source {
	out := make([]Source, 0, len(locs))
	for _, loc := range locs {
		out = append(out, ParseLocation(loc, httpTimeout))
	}
	return out
}
