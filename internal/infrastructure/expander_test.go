package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestExpander_FollowsOneRedirect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		assert.Equal(t, extractionUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Location", "https://www.tiktok.com/@user/video/7200000000000000000")
		w.WriteHeader(http.StatusMovedPermanently)
	}))
	defer server.Close()

	expander := NewRedirectExpander(5*time.Second, zap.NewNop())

	expanded := expander.Expand(context.Background(), server.URL+"/ZMabcdef/")
	assert.Equal(t, "https://www.tiktok.com/@user/video/7200000000000000000", expanded)
}

func TestExpander_HonorsLocationOnNonRedirectStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "https://vt.tiktok.com/resolved/")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	expander := NewRedirectExpander(5*time.Second, zap.NewNop())

	assert.Equal(t, "https://vt.tiktok.com/resolved/", expander.Expand(context.Background(), server.URL))
}

func TestExpander_NoRedirectReturnsInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	expander := NewRedirectExpander(5*time.Second, zap.NewNop())

	assert.Equal(t, server.URL, expander.Expand(context.Background(), server.URL))
}

func TestExpander_RedirectWithoutLocationReturnsInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusFound)
	}))
	defer server.Close()

	expander := NewRedirectExpander(5*time.Second, zap.NewNop())

	assert.Equal(t, server.URL, expander.Expand(context.Background(), server.URL))
}

func TestExpander_FailureReturnsInput(t *testing.T) {
	expander := NewRedirectExpander(100*time.Millisecond, zap.NewNop())

	url := "http://127.0.0.1:1/short"
	assert.Equal(t, url, expander.Expand(context.Background(), url))
}
