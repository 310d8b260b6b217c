package cli

import (
	"fmt"

	"github.com/rulekit-labs/rulekit/internal/linker"
	"github.com/spf13/cobra"
)

var (
	selfRemoveDryRun  bool
	selfRemoveProject string
)

var selfRemoveCmd = &cobra.Command{
	Use:   "self-remove",
	Short: "Remove all linked modules and RuleKit state from this project",
	Long: `Unlink every tracked module and delete the project's .rulekit/ directory.

With --dry-run, print the actions that would be taken without touching the
filesystem. The dry-run list is exactly what a real run would execute.`,
	Args: cobra.NoArgs,
	RunE: runSelfRemove,
}

func init() {
	selfRemoveCmd.Flags().BoolVar(&selfRemoveDryRun, "dry-run", false, "Print planned actions without performing them")
	selfRemoveCmd.Flags().StringVar(&selfRemoveProject, "project", "", "Target project directory (default: current directory)")
	rootCmd.AddCommand(selfRemoveCmd)
}

func runSelfRemove(cmd *cobra.Command, args []string) error {
	project, err := projectDir(selfRemoveProject)
	if err != nil {
		return fmt.Errorf("resolving project directory: %w", err)
	}

	actions, err := linker.SelfRemove(project, selfRemoveDryRun)
	if err != nil {
		return err
	}

	if len(actions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to remove.")
		return nil
	}

	for _, a := range actions {
		if selfRemoveDryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "  would %s\n", a)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", a)
		}
	}

	if selfRemoveDryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %d action(s) planned.\n", len(actions))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed RuleKit state (%d action(s)).\n", len(actions))
	}
	return nil
}
