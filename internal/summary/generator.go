// Package summary asks a text-generation API for a short company blurb,
// retrying transient failures and degrading to a deterministic local
// fallback so the workflow always produces usable copy.
package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Input carries the company request plus the extracted page signals.
type Input struct {
	CompanyName     string
	Website         string
	Tone            string
	Title           string
	MetaDescription string
	Text            string
}

// Config controls the generator and its retry policy.
type Config struct {
	APIKey         string
	Model          string
	BaseURL        string
	Timeout        time.Duration
	MaxAttempts    int
	BaseBackoff    time.Duration
	PromptMaxChars int
	Temperature    float64
}

// Generator produces 1-2 sentence company summaries.
type Generator struct {
	cfg    Config
	client *Client
	logger *zap.Logger

	// sleep is swapped out in tests to avoid real backoff waits.
	sleep func(time.Duration)
}

// New builds a Generator. With no API key configured the generator never
// touches the network and always answers from the fallback.
func New(cfg Config, logger *zap.Logger) *Generator {
	g := &Generator{
		cfg:    cfg,
		logger: logger,
		sleep:  time.Sleep,
	}
	if strings.TrimSpace(cfg.APIKey) != "" {
		g.client = NewClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout)
	}
	return g
}

// Generate returns a summary for the company. It never fails: transient API
// errors are retried with bounded backoff, everything else degrades to the
// local fallback.
func (g *Generator) Generate(ctx context.Context, in Input) string {
	if g.client == nil {
		g.logger.Info("No API key configured; using fallback summary")
		return fallbackSummary(in)
	}

	req := responsesRequest{
		Model: g.cfg.Model,
		Input: []message{
			{Role: "system", Content: "You write concise, factual company summaries for internal demo directories."},
			{Role: "user", Content: g.buildPrompt(in)},
		},
		Temperature: g.cfg.Temperature,
	}

	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		result, err := g.client.CreateResponse(ctx, req)
		if err != nil {
			// Network-level failure: retry with backoff until attempts run out.
			g.logger.Warn("Summary request failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			if attempt < g.cfg.MaxAttempts {
				g.sleep(backoff(g.cfg.BaseBackoff, attempt))
				continue
			}
			return fallbackSummary(in)
		}

		switch classify(result.status) {
		case outcomeSuccess:
			if text := result.payload.joinedText(); text != "" {
				return text
			}
			g.logger.Warn("Summary response contained no text; using fallback")
			return fallbackSummary(in)
		case outcomeRetryable:
			g.logger.Warn("Summary API returned transient error",
				zap.Int("attempt", attempt),
				zap.Int("status", result.status),
			)
			if attempt < g.cfg.MaxAttempts {
				if delay, ok := retryAfterDelay(result.retryAfter); ok {
					g.sleep(delay)
				} else {
					g.sleep(backoff(g.cfg.BaseBackoff, attempt))
				}
				continue
			}
			return fallbackSummary(in)
		default:
			g.logger.Warn("Summary API returned non-retryable error",
				zap.Int("status", result.status),
			)
			return fallbackSummary(in)
		}
	}

	return fallbackSummary(in)
}

// buildPrompt assembles the single-turn user prompt, clamping the extracted
// text to keep cost and rate-limit pressure down.
func (g *Generator) buildPrompt(in Input) string {
	website := in.Website
	if website == "" {
		website = "(not provided)"
	}

	text := in.Text
	if g.cfg.PromptMaxChars > 0 {
		runes := []rune(text)
		if len(runes) > g.cfg.PromptMaxChars {
			text = string(runes[:g.cfg.PromptMaxChars])
		}
	}

	return strings.TrimSpace(fmt.Sprintf(`
You are generating short blurbs for an internal demo-site directory.

Company name: %s
Website: %s
Tone: %s

Use the information below from the company's website (it may be partial or messy).
Write a concise 1-2 sentence summary (max 45 words).
No hype, no markdown, no quotes. Don't mention that you're an AI.

Page title: %s
Meta description: %s

Extracted text:
%s
`, in.CompanyName, website, in.Tone, in.Title, in.MetaDescription, text))
}

// fallbackSummary is the no-network answer: the page's own meta description
// when it is substantial, else a templated sentence.
func fallbackSummary(in Input) string {
	meta := strings.TrimSpace(in.MetaDescription)
	if len([]rune(meta)) >= 40 {
		return meta
	}
	if in.Title != "" {
		return fmt.Sprintf("%s — demo environment based on publicly available information.", in.CompanyName)
	}
	return "Demo environment for this company."
}

// joinFields joins parts with single spaces, collapsing internal whitespace.
func joinFields(parts []string) string {
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
