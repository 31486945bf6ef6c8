package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cjrolfe/demosites/internal/screenshot"
	"github.com/cjrolfe/demosites/internal/site"
	"github.com/cjrolfe/demosites/internal/sitefetch"
	"github.com/cjrolfe/demosites/internal/summary"
	"github.com/cjrolfe/demosites/internal/workflow"
)

// screenshotSubdir is where captures land under the assets directory.
const screenshotSubdir = "screenshots"

// newCreateCmd builds the command that turns a "New company" issue into a
// rendered micro-site plus a manifest entry.
func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a company site from the issue body in ISSUE_BODY.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			cfg := a.cfg

			fetcher := sitefetch.New(sitefetch.Config{
				Timeout:   cfg.FetchTimeout(),
				UserAgent: cfg.Fetch.UserAgent,
				MaxChars:  cfg.Fetch.MaxChars,
			}, a.logger)

			summarizer := summary.New(summary.Config{
				APIKey:         cfg.OpenAI.APIKey,
				Model:          cfg.OpenAI.Model,
				BaseURL:        cfg.OpenAI.BaseURL,
				Timeout:        cfg.OpenAITimeout(),
				MaxAttempts:    cfg.OpenAI.MaxAttempts,
				BaseBackoff:    cfg.BaseBackoff(),
				PromptMaxChars: cfg.OpenAI.PromptMaxChars,
				Temperature:    cfg.OpenAI.Temperature,
			}, a.logger)

			var capturer workflow.Capturer = screenshot.NewNoop()
			if cfg.Screenshot.Enabled {
				capturer = screenshot.NewChromedp(screenshot.Config{
					OutputDir:      filepath.Join(cfg.Paths.Root, cfg.Paths.AssetsDir, screenshotSubdir),
					RefPrefix:      "/" + cfg.Paths.AssetsDir + "/" + screenshotSubdir,
					NavTimeout:     cfg.NavTimeout(),
					SettleDelay:    cfg.SettleDelay(),
					ViewportWidth:  cfg.Screenshot.ViewportWidth,
					ViewportHeight: cfg.Screenshot.ViewportHeight,
					DenyMarkers:    cfg.Screenshot.DenyMarkers,
				}, a.logger)
			}

			creator := workflow.NewCreator(
				workflow.CreateConfig{
					Root:        cfg.Paths.Root,
					TemplateDir: a.templateDir(),
					DefaultTag:  cfg.Assets.Tag,
				},
				site.AssetConvention{
					BaseURL: cfg.Assets.S3Base,
					Bucket:  cfg.Assets.S3Bucket,
				},
				fetcher, summarizer, capturer, a.manifestManager(),
				a.logger,
			)

			return creator.Run(cmd.Context(), os.Getenv("ISSUE_BODY"))
		},
	}
}
