package cli

import (
	"fmt"

	"github.com/rulekit-labs/rulekit/internal/linker"
	"github.com/spf13/cobra"
)

var statusProject string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show health of linked modules",
	Long:  `Check every manifest entry against the filesystem and report its state.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusProject, "project", "", "Target project directory (default: current directory)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	project, err := projectDir(statusProject)
	if err != nil {
		return fmt.Errorf("resolving project directory: %w", err)
	}

	statuses, err := linker.Status(project)
	if err != nil {
		return err
	}

	if len(statuses) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No modules linked in this project.")
		return nil
	}

	broken := 0
	for _, st := range statuses {
		icon := "OK"
		switch st.State {
		case "broken":
			icon = "!!"
			broken++
		case "missing-source":
			icon = "--"
			broken++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s\n", icon, st.ID)
	}

	if broken > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d link(s) need attention. Run 'rulekit sync' to repair.\n", broken)
	}
	return nil
}
