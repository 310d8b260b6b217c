package cli

import (
	"fmt"

	"github.com/rulekit-labs/rulekit/internal/config"
	"github.com/rulekit-labs/rulekit/internal/linker"
	"github.com/rulekit-labs/rulekit/internal/tui"
	"github.com/spf13/cobra"
)

var guiProject string

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the interactive module browser",
	Long: `Open a menu-driven interactive shell: browse and multi-select modules to
link, link whole collections, and unlink modules, with keyboard navigation and
filtering.`,
	Args: cobra.NoArgs,
	RunE: runGUI,
}

func init() {
	guiCmd.Flags().StringVar(&guiProject, "project", "", "Target project directory (default: current directory)")
	rootCmd.AddCommand(guiCmd)
}

func runGUI(cmd *cobra.Command, args []string) error {
	project, err := projectDir(guiProject)
	if err != nil {
		return fmt.Errorf("resolving project directory: %w", err)
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	if len(catalog.Modules()) == 0 {
		return fmt.Errorf("registry %s contains no modules", catalog.Root())
	}

	return tui.Run(tui.Deps{
		Catalog:     catalog,
		ProjectPath: project,
		Method:      linker.LinkMethod(config.LinkMethod()),
	})
}
