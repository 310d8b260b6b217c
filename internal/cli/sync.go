package cli

import (
	"fmt"

	"github.com/rulekit-labs/rulekit/internal/linker"
	"github.com/spf13/cobra"
)

var syncProject string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Repair links from the project manifest",
	Long: `Re-materialize every linked module whose files are missing or whose symlink
is broken, based on the project manifest. Useful after moving the registry or
after an interrupted link run.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncProject, "project", "", "Target project directory (default: current directory)")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	project, err := projectDir(syncProject)
	if err != nil {
		return fmt.Errorf("resolving project directory: %w", err)
	}

	repaired, warnings, err := linker.Sync(project)
	if err != nil {
		return err
	}

	for _, w := range warnings {
		logger.Warn(w)
	}
	for _, id := range repaired {
		fmt.Fprintf(cmd.OutOrStdout(), "  relinked %s\n", id)
	}

	if len(repaired) == 0 && len(warnings) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "All links are up to date.")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Sync complete: %d relinked, %d warning(s).\n", len(repaired), len(warnings))
	}
	return nil
}
