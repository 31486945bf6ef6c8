// Package cmd defines and implements the CLI commands for the demosites
// executable. Each subcommand corresponds to one CI-triggered workflow.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cjrolfe/demosites/internal/clock/system"
	"github.com/cjrolfe/demosites/internal/config"
	"github.com/cjrolfe/demosites/internal/logging"
	"github.com/cjrolfe/demosites/internal/manifest"
	"github.com/cjrolfe/demosites/internal/run"
)

var cfgFile string

// appKeyType is the key for storing the app in the command context.
type appKeyType string

const appKey appKeyType = "app"

// app holds the per-invocation services shared by all subcommands.
type app struct {
	cfg    config.Config
	logger *zap.Logger
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demosites",
		Short: "Maintains the demo-company site directory from issue events.",
		Long: `demosites is the automation behind the demo-company directory.
Triggered by issue-tracker events in CI, it scaffolds new company
micro-sites from a template, summarizes the company's website, captures a
screenshot, and keeps the sites.json manifest up to date.`,

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger, err := logging.New(cfg.Logging.Development)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			if runID, idErr := run.NewID(); idErr == nil {
				logger = logger.With(zap.String("run_id", runID))
			}

			ctx := context.WithValue(cmd.Context(), appKey, &app{cfg: cfg, logger: logger})
			cmd.SetContext(ctx)
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a, ok := cmd.Context().Value(appKey).(*app); ok && a != nil {
				_ = a.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional; defaults and environment apply without one)")

	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newArchiveCmd())
	cmd.AddCommand(newGenerateCmd())

	return cmd
}

// Execute is the main entry point. Any uncaught failure is printed to the
// error stream and turned into a non-zero status for the CI system.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func resolveApp(ctx context.Context) (*app, error) {
	a, ok := ctx.Value(appKey).(*app)
	if !ok || a == nil {
		return nil, errors.New("application services not initialized")
	}
	return a, nil
}

// manifestManager builds the Manager for the configured sites.json location.
func (a *app) manifestManager() *manifest.Manager {
	path := filepath.Join(a.cfg.Paths.Root, a.cfg.Paths.AssetsDir, a.cfg.Paths.ManifestFile)
	return manifest.NewManager(path, system.New())
}

// templateDir resolves the company template folder under the site root.
func (a *app) templateDir() string {
	return filepath.Join(a.cfg.Paths.Root, a.cfg.Paths.TemplateDir)
}
