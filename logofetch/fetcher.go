package logofetch

import (
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	vfattokenlists "github.com/vfat-io/vfat-token-lists"
	"github.com/vfat-io/vfat-token-lists/gerror"
)

// maxRedirects is the cap on redirects followed per fetch.
const maxRedirects = 5

// Fetcher fetches the raw bytes behind a remote URL, following
// redirects up to a bounded depth.
type Fetcher interface {
	Fetch(rawURL string) ([]byte, error)
}

// HTTPFetcher implements Fetcher on top of net/http. Redirects are
// followed manually so the cap and the relative-location resolution
// stay in one place.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates an HTTPFetcher with the default client.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: 30 * time.Second, //nolint:gomnd
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent: "vfat-token-lists/" + vfattokenlists.Version,
	}
}

// Fetch issues a GET for rawURL and returns the response body.
// 301/302/303/307/308 responses with a Location header are followed,
// resolving the new location against the previous URL. More than
// maxRedirects hops fail with gerror.ErrTooManyRedirects; any non-200
// terminal response fails with a request-failed error.
func (f *HTTPFetcher) Fetch(rawURL string) ([]byte, error) {
	current, err := url.Parse(rawURL)
	if err != nil || !current.IsAbs() {
		return nil, errors.Wrapf(gerror.ErrInvalidURL, "%q", rawURL)
	}

	redirects := 0
	for {
		req, err := http.NewRequest(http.MethodGet, current.String(), nil)
		if err != nil {
			return nil, errors.Wrapf(gerror.ErrInvalidURL, "%q", current.String())
		}
		req.Header.Set("User-Agent", f.userAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, errors.Wrapf(err, "fetch %s", current)
		}

		switch resp.StatusCode {
		case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
			http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
			loc := resp.Header.Get("Location")
			resp.Body.Close()
			if loc == "" {
				return nil, errors.Errorf("request failed (%d) for %s", resp.StatusCode, current)
			}
			redirects++
			if redirects > maxRedirects {
				return nil, errors.Wrapf(gerror.ErrTooManyRedirects, "fetching %s", rawURL)
			}
			next, err := url.Parse(loc)
			if err != nil {
				return nil, errors.Wrapf(gerror.ErrInvalidURL, "redirect location %q", loc)
			}
			current = current.ResolveReference(next)

		case http.StatusOK:
			data, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, errors.Wrapf(err, "read response body of %s", current)
			}
			return data, nil

		default:
			resp.Body.Close()
			return nil, errors.Errorf("request failed (%d) for %s", resp.StatusCode, current)
		}
	}
}
