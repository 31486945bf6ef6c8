package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cjrolfe/demosites/internal/issue"
)

// newArchiveCmd builds the command that flips a company's archived flag from
// an "Archive company" or "Restore company" issue.
func newArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Archive or restore a company based on ISSUE_TITLE and ISSUE_BODY.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}

			action, id, err := issue.ParseAction(os.Getenv("ISSUE_TITLE"), os.Getenv("ISSUE_BODY"))
			if err != nil {
				return err
			}

			mgr := a.manifestManager()
			if err := mgr.SetArchived(id, action == issue.ActionArchive); err != nil {
				return fmt.Errorf("%s %s: %w", action, id, err)
			}

			a.logger.Info("Manifest entry updated",
				zap.String("action", string(action)),
				zap.String("id", id),
			)
			return nil
		},
	}
}
