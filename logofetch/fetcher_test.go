package logofetch

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vfat-io/vfat-token-lists/gerror"
)

// redirectServer serves /hop/{n} redirecting down to /hop/0, which
// returns the payload.
func redirectServer(t *testing.T, payload []byte) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for i := 1; i <= 10; i++ {
		i := i
		mux.HandleFunc(fmt.Sprintf("/hop/%d", i), func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, fmt.Sprintf("/hop/%d", i-1), http.StatusFound)
		})
	}
	mux.HandleFunc("/hop/0", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchDirect(t *testing.T) {
	payload := []byte("logo-bytes")
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	data, err := NewHTTPFetcher().Fetch(srv.URL)
	require.NoError(t, err)
	require.Equal(t, payload, data)
	require.Contains(t, gotUA, "vfat-token-lists/")
}

func TestFetchFollowsRedirects(t *testing.T) {
	payload := []byte("logo-bytes")
	srv := redirectServer(t, payload)

	// Five redirects is within the cap.
	data, err := NewHTTPFetcher().Fetch(srv.URL + "/hop/5")
	require.NoError(t, err)
	require.Equal(t, payload, data)
}

func TestFetchTooManyRedirects(t *testing.T) {
	srv := redirectServer(t, []byte("unreachable"))

	_, err := NewHTTPFetcher().Fetch(srv.URL + "/hop/6")
	require.ErrorIs(t, err, gerror.ErrTooManyRedirects)
}

func TestFetchRelativeRedirectResolution(t *testing.T) {
	payload := []byte("payload")
	mux := http.NewServeMux()
	mux.HandleFunc("/a/b", func(w http.ResponseWriter, r *http.Request) {
		// Relative location, must resolve against /a/b.
		w.Header().Set("Location", "c")
		w.WriteHeader(http.StatusMovedPermanently)
	})
	mux.HandleFunc("/a/c", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	data, err := NewHTTPFetcher().Fetch(srv.URL + "/a/b")
	require.NoError(t, err)
	require.Equal(t, payload, data)
}

func TestFetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher().Fetch(srv.URL)
	require.Error(t, err)
	require.Contains(t, err.Error(), "request failed (404)")
}

func TestFetchInvalidURL(t *testing.T) {
	_, err := NewHTTPFetcher().Fetch("://not-a-url")
	require.ErrorIs(t, err, gerror.ErrInvalidURL)

	_, err = NewHTTPFetcher().Fetch("relative/path.png")
	require.ErrorIs(t, err, gerror.ErrInvalidURL)
}
