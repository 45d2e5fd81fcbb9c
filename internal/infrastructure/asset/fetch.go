package asset

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// Fetcher retrieves the raw bytes behind a resource source.
type Fetcher interface {
	Fetch(ctx context.Context, src string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, src string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, src string) ([]byte, error) {
	return f(ctx, src)
}

// SourceFetcher resolves data: URIs, http(s) URLs and paths inside a
// filesystem.
type SourceFetcher struct {
	FS     fs.FS        // relative paths are read from here
	Client *http.Client // nil means http.DefaultClient
}

// NewSourceFetcher creates a fetcher reading relative paths from fsys.
func NewSourceFetcher(fsys fs.FS) *SourceFetcher {
	return &SourceFetcher{FS: fsys}
}

func (f *SourceFetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		return decodeDataURI(src)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return f.fetchURL(ctx, src)
	default:
		return f.readFile(src)
	}
}

func (f *SourceFetcher) fetchURL(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", src, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get %s: %s", src, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (f *SourceFetcher) readFile(src string) ([]byte, error) {
	if f.FS == nil {
		return nil, fmt.Errorf("no filesystem to read %s from", src)
	}
	name := path.Clean(strings.TrimPrefix(src, "./"))
	data, err := fs.ReadFile(f.FS, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src, err)
	}
	return data, nil
}

var errMalformedDataURI = errors.New("malformed data URI")

// decodeDataURI decodes "data:[<mediatype>][;base64],<data>".
func decodeDataURI(src string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok {
		return nil, errMalformedDataURI
	}

	if strings.HasSuffix(header, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedDataURI, err)
		}
		return data, nil
	}

	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedDataURI, err)
	}
	return []byte(data), nil
}
