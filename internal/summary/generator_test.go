package summary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(baseURL string) Config {
	return Config{
		APIKey:         "sk-test",
		Model:          "gpt-4.1-mini",
		BaseURL:        baseURL,
		Timeout:        5 * time.Second,
		MaxAttempts:    5,
		BaseBackoff:    1500 * time.Millisecond,
		PromptMaxChars: 8000,
		Temperature:    0.4,
	}
}

func newTestGenerator(cfg Config) (*Generator, *[]time.Duration) {
	g := New(cfg, zap.NewNop())
	var slept []time.Duration
	g.sleep = func(d time.Duration) { slept = append(slept, d) }
	return g, &slept
}

const successBody = `{
  "output": [
    {"type": "reasoning", "content": [{"type": "text", "text": "ignored"}]},
    {"type": "message", "content": [
      {"type": "output_text", "text": "Acme builds widgets."},
      {"type": "text", "value": "  Lots of   them. "}
    ]}
  ]
}`

func TestGenerateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/responses", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(successBody))
	}))
	defer srv.Close()

	g, _ := newTestGenerator(testConfig(srv.URL))
	got := g.Generate(context.Background(), Input{CompanyName: "Acme"})
	assert.Equal(t, "Acme builds widgets. Lots of them.", got)
}

func TestGenerateRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(successBody))
	}))
	defer srv.Close()

	g, slept := newTestGenerator(testConfig(srv.URL))
	got := g.Generate(context.Background(), Input{CompanyName: "Acme"})

	assert.Equal(t, "Acme builds widgets. Lots of them.", got)
	assert.Equal(t, int32(2), calls.Load())
	require.Len(t, *slept, 1)
	assert.Equal(t, 2*time.Second, (*slept)[0], "numeric Retry-After must be honored")
}

func TestGenerateExhaustsRetriesAndFallsBack(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g, slept := newTestGenerator(testConfig(srv.URL))
	got := g.Generate(context.Background(), Input{CompanyName: "Acme", Title: "Acme"})

	assert.Equal(t, "Acme — demo environment based on publicly available information.", got)
	assert.Equal(t, int32(5), calls.Load())
	assert.Len(t, *slept, 4, "no sleep after the final attempt")
	for i, d := range *slept {
		// base * 2^i plus jitter in [0, 750ms)
		min := 1500 * time.Millisecond << i
		assert.GreaterOrEqual(t, d, min)
		assert.Less(t, d, min+750*time.Millisecond)
	}
}

func TestGenerateNonRetryableFallsBackImmediately(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g, slept := newTestGenerator(testConfig(srv.URL))
	got := g.Generate(context.Background(), Input{CompanyName: "Acme"})

	assert.Equal(t, "Demo environment for this company.", got)
	assert.Equal(t, int32(1), calls.Load())
	assert.Empty(t, *slept)
}

func TestGenerateEmptyResponseFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"output": []}`))
	}))
	defer srv.Close()

	g, _ := newTestGenerator(testConfig(srv.URL))
	got := g.Generate(context.Background(), Input{CompanyName: "Acme"})
	assert.Equal(t, "Demo environment for this company.", got)
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	cfg := testConfig("https://api.openai.com")
	cfg.APIKey = ""
	g, _ := newTestGenerator(cfg)

	t.Run("meta description preferred when substantial", func(t *testing.T) {
		meta := "Acme builds precision widgets for industrial customers."
		got := g.Generate(context.Background(), Input{CompanyName: "Acme", MetaDescription: meta})
		assert.Equal(t, meta, got)
	})

	t.Run("short meta loses to title sentence", func(t *testing.T) {
		got := g.Generate(context.Background(), Input{
			CompanyName:     "Acme",
			Title:           "Acme Home",
			MetaDescription: "Widgets.",
		})
		assert.Equal(t, "Acme — demo environment based on publicly available information.", got)
	})

	t.Run("generic placeholder when nothing extracted", func(t *testing.T) {
		got := g.Generate(context.Background(), Input{CompanyName: "Acme"})
		assert.Equal(t, "Demo environment for this company.", got)
	})
}

func TestBuildPromptClampsText(t *testing.T) {
	cfg := testConfig("https://api.openai.com")
	cfg.PromptMaxChars = 100
	g, _ := newTestGenerator(cfg)

	prompt := g.buildPrompt(Input{
		CompanyName: "Acme",
		Text:        strings.Repeat("x", 500),
	})
	assert.Contains(t, prompt, strings.Repeat("x", 100))
	assert.NotContains(t, prompt, strings.Repeat("x", 101))
	assert.Contains(t, prompt, "Website: (not provided)")
}

func TestRetryAfterDelay(t *testing.T) {
	tests := []struct {
		header string
		want   time.Duration
		ok     bool
	}{
		{"2", 2 * time.Second, true},
		{"0.5", 500 * time.Millisecond, true},
		{"", 0, false},
		{"Wed, 21 Oct 2026 07:28:00 GMT", 0, false},
		{"-1", 0, false},
	}
	for _, tt := range tests {
		got, ok := retryAfterDelay(tt.header)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("retryAfterDelay(%q) = (%v, %v), want (%v, %v)", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, outcomeSuccess, classify(200))
	assert.Equal(t, outcomeSuccess, classify(201))
	assert.Equal(t, outcomeRetryable, classify(429))
	assert.Equal(t, outcomeRetryable, classify(500))
	assert.Equal(t, outcomeRetryable, classify(502))
	assert.Equal(t, outcomeRetryable, classify(503))
	assert.Equal(t, outcomeRetryable, classify(504))
	assert.Equal(t, outcomeFatal, classify(400))
	assert.Equal(t, outcomeFatal, classify(401))
	assert.Equal(t, outcomeFatal, classify(404))
}
