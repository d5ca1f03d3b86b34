package logofetch

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/vfat-io/vfat-token-lists/gerror"
)

// Acquirer resolves a logo reference to raw image bytes. Remote
// references go through the injected Fetcher; local references are read
// from disk.
type Acquirer struct {
	fetcher Fetcher
}

// NewAcquirer creates an Acquirer using the given Fetcher for remote
// references.
func NewAcquirer(fetcher Fetcher) *Acquirer {
	return &Acquirer{fetcher: fetcher}
}

// Acquire resolves ref to image bytes. Resolution order: http(s) URLs
// are fetched remotely, file:// URIs are decoded to a filesystem path,
// anything else is a local path resolved against baseDir when
// relative. The second return value is the absolute local path the
// bytes came from, or "" for remote references, so the caller can
// delete the source afterwards.
func (a *Acquirer) Acquire(ref, baseDir string) ([]byte, string, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		data, err := a.fetcher.Fetch(ref)
		return data, "", err
	}

	path := ref
	if strings.HasPrefix(ref, "file://") {
		u, err := url.Parse(ref)
		if err != nil {
			return nil, "", errors.Wrapf(gerror.ErrInvalidURL, "%q", ref)
		}
		path = u.Path
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, "", err
	}
	return data, abs, nil
}
