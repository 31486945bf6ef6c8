// Package screenshot captures full-page images of company sites with
// headless Chrome. Capturing is best-effort: every failure mode degrades to
// "no screenshot" and must never abort the calling workflow.
package screenshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/cjrolfe/demosites/internal/sitefetch"
)

// Config controls the behavior of the chromedp capturer.
type Config struct {
	// OutputDir receives <slug>.png files.
	OutputDir string
	// RefPrefix is the site-relative prefix returned for saved captures.
	RefPrefix string
	NavTimeout     time.Duration
	SettleDelay    time.Duration
	ViewportWidth  int
	ViewportHeight int
	DenyMarkers    []string
}

// Chromedp captures screenshots in an ephemeral headless browser session
// per call; nothing is kept warm between invocations of a one-shot CLI.
type Chromedp struct {
	cfg    Config
	logger *zap.Logger
}

// NewChromedp creates a capturer using the provided configuration.
func NewChromedp(cfg Config, logger *zap.Logger) *Chromedp {
	if cfg.NavTimeout <= 0 {
		cfg.NavTimeout = 45 * time.Second
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = 1500 * time.Millisecond
	}
	if cfg.ViewportWidth <= 0 {
		cfg.ViewportWidth = 1280
	}
	if cfg.ViewportHeight <= 0 {
		cfg.ViewportHeight = 720
	}
	return &Chromedp{cfg: cfg, logger: logger}
}

// Capture renders the URL and saves a full-page PNG keyed by slug, returning
// the site-relative reference path. It returns "" when the URL is empty, the
// page is bot-blocked, or anything at all goes wrong.
func (c *Chromedp) Capture(ctx context.Context, slug, rawURL string) string {
	if rawURL == "" {
		return ""
	}
	target := sitefetch.NormalizeURL(rawURL)
	outPath := filepath.Join(c.cfg.OutputDir, slug+".png")

	if err := os.MkdirAll(c.cfg.OutputDir, 0o750); err != nil {
		c.logger.Warn("Could not create screenshot dir", zap.Error(err))
		return ""
	}

	ref, err := c.capture(ctx, target, outPath)
	if err != nil {
		c.logger.Info("Screenshot skipped",
			zap.String("url", target),
			zap.Error(err),
		)
		removePartial(outPath)
		return ""
	}
	return ref
}

func (c *Chromedp) capture(ctx context.Context, target, outPath string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	defer tabCancel()

	taskCtx, taskCancel := context.WithTimeout(tabCtx, c.cfg.NavTimeout)
	defer taskCancel()

	meta := newResponseMeta()
	chromedp.ListenTarget(tabCtx, meta.captureEvent)

	var html string
	var shot []byte
	navigate := chromedp.Tasks{
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{"Accept-Language": "en-GB,en;q=0.9"}),
		emulation.SetDeviceMetricsOverride(int64(c.cfg.ViewportWidth), int64(c.cfg.ViewportHeight), 1, false),
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(c.cfg.SettleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	}
	if err := chromedp.Run(taskCtx, navigate); err != nil {
		return "", fmt.Errorf("navigate: %w", err)
	}

	if status := meta.documentStatus(); blockedStatus(status) {
		return "", fmt.Errorf("page blocked with status %d", status)
	}
	if marker := denyMarker(html, c.cfg.DenyMarkers); marker != "" {
		return "", fmt.Errorf("page content matched deny marker %q", marker)
	}

	if err := chromedp.Run(taskCtx, chromedp.FullScreenshot(&shot, 90)); err != nil {
		return "", fmt.Errorf("full screenshot: %w", err)
	}
	if err := os.WriteFile(outPath, shot, 0o644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}

	ref := c.cfg.RefPrefix + "/" + filepath.Base(outPath)
	c.logger.Info("Screenshot captured",
		zap.String("url", target),
		zap.String("path", outPath),
	)
	return ref, nil
}

func removePartial(path string) {
	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(path)
	}
}

// responseMeta records the main document response status from CDP events.
type responseMeta struct {
	mu     sync.Mutex
	status int
}

func newResponseMeta() *responseMeta {
	return &responseMeta{}
}

func (m *responseMeta) captureEvent(ev any) {
	resp, ok := ev.(*network.EventResponseReceived)
	if !ok || resp.Type != network.ResourceTypeDocument || resp.Response == nil {
		return
	}
	m.mu.Lock()
	if m.status == 0 {
		m.status = int(resp.Response.Status)
	}
	m.mu.Unlock()
}

func (m *responseMeta) documentStatus() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}
