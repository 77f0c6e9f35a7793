package media

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/jens1o/smashcast/apierror"
	"github.com/jens1o/smashcast/client"
)

// Logo references a remotely hosted image by path. Content is fetched at
// most once and kept for the handle's lifetime; construct a new Logo to
// refetch.
type Logo struct {
	fetcher client.RawFetcher
	url     string

	mu      sync.Mutex
	content []byte
	fetched bool
}

// NewLogo creates a handle on baseURL/relativePath without touching the
// network.
func NewLogo(fetcher client.RawFetcher, baseURL, relativePath string) *Logo {
	return &Logo{
		fetcher: fetcher,
		url:     strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(relativePath, "/"),
	}
}

// URL returns the resolved absolute location of the image.
func (l *Logo) URL() string {
	return l.url
}

// String returns the resolved absolute location, not the content.
func (l *Logo) String() string {
	return l.url
}

// Content returns the image bytes, downloading them on first use. A failed
// download is returned as an apierror of kind Fetch, so callers can tell
// why materialization failed.
func (l *Logo) Content(ctx context.Context) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fetched {
		return l.content, nil
	}

	data, err := l.fetcher.FetchRaw(ctx, l.url)
	if err != nil {
		return nil, apierror.Fetch("failed to fetch "+l.url, err)
	}

	l.content = data
	l.fetched = true
	return l.content, nil
}

// DownloadTo materializes the image at localPath. It reports false when the
// content is unavailable or the local write fails; it never panics on write
// errors.
func (l *Logo) DownloadTo(ctx context.Context, localPath string) bool {
	content, err := l.Content(ctx)
	if err != nil {
		return false
	}

	if err := os.WriteFile(localPath, content, 0o644); err != nil {
		return false
	}

	return true
}
