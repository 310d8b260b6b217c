package cli

import (
	"errors"
	"fmt"

	"github.com/rulekit-labs/rulekit/internal/linker"
	"github.com/spf13/cobra"
)

var (
	unlinkForce   bool
	unlinkProject string
)

var unlinkCmd = &cobra.Command{
	Use:   "unlink <module>",
	Short: "Unlink a module from this project",
	Long: `Remove a linked module from the project's .rulekit/modules/ directory and
drop it from the manifest.

If other linked modules depend on the module, the unlink is refused and the
dependents are listed. Use --force to unlink anyway.

Example:
  rulekit unlink coding-standards/go
  rulekit unlink coding-standards/common --force`,
	Args: cobra.ExactArgs(1),
	RunE: runUnlink,
}

func init() {
	unlinkCmd.Flags().BoolVar(&unlinkForce, "force", false, "Unlink even if other linked modules depend on it")
	unlinkCmd.Flags().StringVar(&unlinkProject, "project", "", "Target project directory (default: current directory)")
	rootCmd.AddCommand(unlinkCmd)
}

func runUnlink(cmd *cobra.Command, args []string) error {
	id := args[0]

	project, err := projectDir(unlinkProject)
	if err != nil {
		return fmt.Errorf("resolving project directory: %w", err)
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	if err := linker.Unlink(catalog, id, project, unlinkForce); err != nil {
		var conflict *linker.DependencyConflict
		if errors.As(err, &conflict) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is required by:\n", id)
			for _, dep := range conflict.Dependents {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", dep)
			}
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Unlinked %s\n", id)
	return nil
}
