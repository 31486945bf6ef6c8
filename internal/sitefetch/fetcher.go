// Package sitefetch retrieves a company's public page and extracts the text
// signals used for summarization.
package sitefetch

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// PageContent carries everything extracted from a fetched page. All fields
// are empty when the company has no public site.
type PageContent struct {
	Title           string
	MetaDescription string
	Text            string
	OGImage         string
}

// Config controls fetch behavior.
type Config struct {
	Timeout   time.Duration
	UserAgent string
	// MaxChars caps the extracted text; longer text is truncated with an
	// ellipsis marker.
	MaxChars int
}

// Fetcher performs a single HTTP GET via Colly and parses the result.
type Fetcher struct {
	cfg           Config
	logger        *zap.Logger
	baseCollector *colly.Collector
}

// New builds a Fetcher.
func New(cfg Config, logger *zap.Logger) *Fetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.MaxChars == 0 {
		cfg.MaxChars = 12000
	}
	c := colly.NewCollector(colly.Async(false))
	c.IgnoreRobotsTxt = true
	return &Fetcher{
		cfg:           cfg,
		logger:        logger,
		baseCollector: c,
	}
}

var schemeRe = regexp.MustCompile(`(?i)^https?://`)

// NormalizeURL prefixes https:// when the URL carries no scheme. Issue
// authors usually paste bare domains.
func NormalizeURL(raw string) string {
	if raw == "" || schemeRe.MatchString(raw) {
		return raw
	}
	return "https://" + raw
}

// Fetch retrieves the URL and extracts its content. An empty URL is a valid
// no-site state and returns the zero value without error. A non-2xx/3xx
// response is a fetch error; there is no retry at this layer.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (PageContent, error) {
	if rawURL == "" {
		return PageContent{}, nil
	}
	target := NormalizeURL(rawURL)

	var (
		body     []byte
		fetchErr error
	)

	collector := f.baseCollector.Clone()
	collector.UserAgent = f.cfg.UserAgent
	collector.IgnoreRobotsTxt = true
	collector.SetRequestTimeout(f.cfg.Timeout)

	collector.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if err := f.runCollector(ctx, collector, target); err != nil {
		return PageContent{}, err
	}
	if fetchErr != nil {
		return PageContent{}, fmt.Errorf("fetch %s: %w", target, fetchErr)
	}

	content, err := Extract(body, f.cfg.MaxChars)
	if err != nil {
		return PageContent{}, fmt.Errorf("parse %s: %w", target, err)
	}

	f.logger.Debug("Fetched site content",
		zap.String("url", target),
		zap.Int("text_chars", len(content.Text)),
		zap.Bool("has_meta_description", content.MetaDescription != ""),
	)
	return content, nil
}

func (f *Fetcher) runCollector(ctx context.Context, collector *colly.Collector, url string) error {
	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(url)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("visit %s: %w", url, err)
		}
		return nil
	}
}
