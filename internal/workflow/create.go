// Package workflow wires the per-issue pipelines together.
package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cjrolfe/demosites/internal/issue"
	"github.com/cjrolfe/demosites/internal/site"
	"github.com/cjrolfe/demosites/internal/sitefetch"
	"github.com/cjrolfe/demosites/internal/slug"
	"github.com/cjrolfe/demosites/internal/summary"
)

// CreateConfig locates the directories the create pipeline touches.
type CreateConfig struct {
	Root        string
	TemplateDir string
	DefaultTag  string
}

// Creator runs the create-company pipeline: parse the issue, scaffold the
// folder, gather content, summarize, screenshot, render, and record the
// company in the manifest.
type Creator struct {
	cfg        CreateConfig
	assets     site.AssetConvention
	fetcher    ContentFetcher
	summarizer Summarizer
	capturer   Capturer
	manifest   ManifestStore
	logger     *zap.Logger
}

// NewCreator builds a Creator from its collaborators.
func NewCreator(
	cfg CreateConfig,
	assets site.AssetConvention,
	fetcher ContentFetcher,
	summarizer Summarizer,
	capturer Capturer,
	manifest ManifestStore,
	logger *zap.Logger,
) *Creator {
	return &Creator{
		cfg:        cfg,
		assets:     assets,
		fetcher:    fetcher,
		summarizer: summarizer,
		capturer:   capturer,
		manifest:   manifest,
		logger:     logger,
	}
}

// Run executes the pipeline for one issue body. An empty body and an
// already-existing company folder are both success states: the first means
// there is nothing to do, the second makes re-delivered events idempotent.
func (c *Creator) Run(ctx context.Context, issueBody string) error {
	if strings.TrimSpace(issueBody) == "" {
		c.logger.Info("Issue body is empty; nothing to do")
		return nil
	}

	req, err := issue.ParseCreate(issueBody)
	if err != nil {
		return err
	}
	companySlug := slug.Make(req.Name)
	req.Website = sitefetch.NormalizeURL(req.Website)

	companyDir := filepath.Join(c.cfg.Root, companySlug)
	if _, err := os.Stat(companyDir); err == nil {
		c.logger.Info("Company folder already exists; skipping",
			zap.String("slug", companySlug),
			zap.String("dir", companyDir),
		)
		return nil
	}

	if err := site.Scaffold(c.cfg.TemplateDir, companyDir); err != nil {
		return err
	}

	page, err := c.fetcher.Fetch(ctx, req.Website)
	if err != nil {
		return fmt.Errorf("fetch site content: %w", err)
	}

	summaryText := c.summarizer.Generate(ctx, summary.Input{
		CompanyName:     req.Name,
		Website:         req.Website,
		Tone:            req.Tone,
		Title:           page.Title,
		MetaDescription: page.MetaDescription,
		Text:            page.Text,
	})

	shotRef := c.capturer.Capture(ctx, companySlug, req.Website)
	if shotRef == "" && page.OGImage != "" {
		// No screenshot, but the page advertises its own hero image.
		shotRef = page.OGImage
	}

	if err := c.renderPage(companyDir, companySlug, req, summaryText, shotRef); err != nil {
		return err
	}

	logoURL := c.assets.LogoURL(companySlug)
	if err := c.manifest.Upsert(companySlug, req.Name, summaryText, c.cfg.DefaultTag, logoURL); err != nil {
		return fmt.Errorf("update manifest: %w", err)
	}

	c.logger.Info("Created company site",
		zap.String("slug", companySlug),
		zap.String("screenshot", shotRef),
	)
	return nil
}

func (c *Creator) renderPage(companyDir, companySlug string, req issue.Request, summaryText, shotRef string) error {
	templatePath := filepath.Join(c.cfg.TemplateDir, site.PageFile)
	templateHTML, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("read page template %s: %w", templatePath, err)
	}

	rendered := site.Render(string(templateHTML), site.RenderData{
		CompanyName:    req.Name,
		Website:        req.Website,
		Summary:        summaryText,
		Tone:           req.Tone,
		LogoURL:        c.assets.LogoURL(companySlug),
		BucketHint:     c.assets.BucketHint(companySlug),
		LogoHint:       c.assets.LogoHint(companySlug),
		ScreenshotPath: shotRef,
	})

	pagePath := filepath.Join(companyDir, site.PageFile)
	if err := os.WriteFile(pagePath, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write rendered page %s: %w", pagePath, err)
	}
	return nil
}
