package sitefetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFetcher() *Fetcher {
	return New(Config{
		Timeout:   5 * time.Second,
		UserAgent: "test-agent/1.0",
		MaxChars:  12000,
	}, zap.NewNop())
}

func TestFetch(t *testing.T) {
	var seenUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`<html><head><title>Acme</title>
<meta name="description" content="Acme builds widgets for the whole wide world."></head>
<body><main>Hello</main></body></html>`))
	}))
	defer srv.Close()

	content, err := newTestFetcher().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Acme", content.Title)
	assert.Equal(t, "Acme builds widgets for the whole wide world.", content.MetaDescription)
	assert.Equal(t, "Hello", content.Text)
	assert.Equal(t, "test-agent/1.0", seenUA)
}

func TestFetchEmptyURLIsNotAnError(t *testing.T) {
	content, err := newTestFetcher().Fetch(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, PageContent{}, content)
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestFetcher().Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetchFollowsRedirects(t *testing.T) {
	var target *httptest.Server
	target = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/start" {
			http.Redirect(w, r, target.URL+"/final", http.StatusMovedPermanently)
			return
		}
		_, _ = w.Write([]byte("<html><body><main>Landed</main></body></html>"))
	}))
	defer target.Close()

	content, err := newTestFetcher().Fetch(context.Background(), target.URL+"/start")
	require.NoError(t, err)
	assert.Equal(t, "Landed", content.Text)
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"acme.com", "https://acme.com"},
		{"https://acme.com", "https://acme.com"},
		{"HTTP://acme.com", "HTTP://acme.com"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Fatalf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
