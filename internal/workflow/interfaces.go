package workflow

import (
	"context"

	"github.com/cjrolfe/demosites/internal/sitefetch"
	"github.com/cjrolfe/demosites/internal/summary"
)

// ContentFetcher retrieves and extracts a company page.
type ContentFetcher interface {
	Fetch(ctx context.Context, rawURL string) (sitefetch.PageContent, error)
}

// Summarizer produces a short company blurb. Implementations never fail;
// they degrade to a local fallback instead.
type Summarizer interface {
	Generate(ctx context.Context, in summary.Input) string
}

// Capturer takes a best-effort screenshot and returns a site-relative
// reference path, or "" when the capture was skipped for any reason.
type Capturer interface {
	Capture(ctx context.Context, slug, rawURL string) string
}

// ManifestStore records the company in the site directory.
type ManifestStore interface {
	Upsert(slug, name, description, defaultTag, defaultLogoURL string) error
}
