package cmd

import (
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cjrolfe/demosites/internal/manifest"
)

// newGenerateCmd builds the command that resyncs sites.json with the company
// folders actually present on disk.
func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Rebuild sites.json from the folders on disk.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			cfg := a.cfg

			exclude := slices.Clone(cfg.Paths.ExcludeDirs)
			if !slices.Contains(exclude, cfg.Paths.TemplateDir) {
				exclude = append(exclude, cfg.Paths.TemplateDir)
			}

			doc, err := a.manifestManager().Regenerate(manifest.RegenerateOptions{
				Root:        cfg.Paths.Root,
				ExcludeDirs: exclude,
				DefaultTag:  cfg.Assets.Tag,
				LogoBaseURL: cfg.Assets.S3Base,
			})
			if err != nil {
				return err
			}

			a.logger.Info("Manifest regenerated",
				zap.Int("sites", len(doc.Sites)),
				zap.String("updated", doc.Updated),
			)
			return nil
		},
	}
}
