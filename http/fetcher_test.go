package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/slackmoji"
	smhttp "github.com/fwojciec/slackmoji/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("\x89PNG fake"))
		}))
		defer server.Close()

		fetcher := smhttp.NewFetcher()

		body, err := fetcher.Fetch(context.Background(), server.URL+"/parrot.png")
		require.NoError(t, err)
		assert.Equal(t, []byte("\x89PNG fake"), body)
	})

	t.Run("sends configured user agent", func(t *testing.T) {
		t.Parallel()

		gotUA := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA <- r.Header.Get("User-Agent")
		}))
		defer server.Close()

		fetcher := smhttp.NewFetcher(smhttp.WithUserAgent("emoji-test/2"))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "emoji-test/2", <-gotUA)
	})

	t.Run("classifies slow response as timeout", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		fetcher := smhttp.NewFetcher(smhttp.WithTimeout(20 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, slackmoji.ETIMEOUT, slackmoji.ErrorCode(err))
	})

	t.Run("classifies caller deadline as timeout", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		fetcher := smhttp.NewFetcher(smhttp.WithTimeout(0))
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
		assert.Equal(t, slackmoji.ETIMEOUT, slackmoji.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := smhttp.NewFetcher()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
		assert.Equal(t, slackmoji.EFETCH, slackmoji.ErrorCode(err))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := smhttp.NewFetcher(smhttp.WithTimeout(time.Second))

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/parrot.png")
		require.Error(t, err)
	})

	t.Run("returns status error for non-2xx codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		fetcher := smhttp.NewFetcher(smhttp.WithMaxConnsPerHost(4))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, slackmoji.EFETCH, slackmoji.ErrorCode(err))
		assert.Contains(t, err.Error(), "404")

		var statusErr *smhttp.StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	})

	t.Run("accepts any 2xx status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNonAuthoritativeInfo)
			_, _ = w.Write([]byte("gif"))
		}))
		defer server.Close()

		fetcher := smhttp.NewFetcher()

		body, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, []byte("gif"), body)
	})
}

// Compile-time verification that Fetcher implements slackmoji.Fetcher
var _ slackmoji.Fetcher = (*smhttp.Fetcher)(nil)
