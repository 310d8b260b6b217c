package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/rulekit-labs/rulekit/internal/branding"
	"github.com/rulekit-labs/rulekit/internal/config"
	"github.com/rulekit-labs/rulekit/internal/registry"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// logger writes leveled diagnostics to stderr, keeping stdout clean for
// command output.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` discovers reusable documentation rule modules and collections
in a registry and links them into consuming projects, tracking link state in a
project-local manifest.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		logger.Error(err)
	}
	return err
}

// loadCatalog scans the configured registry root and logs a warning for every
// descriptor skipped during discovery.
func loadCatalog() (*registry.Catalog, error) {
	root, err := config.RegistryRoot()
	if err != nil {
		return nil, err
	}

	catalog, err := registry.Scan(root)
	if err != nil {
		return nil, err
	}

	for _, w := range catalog.Warnings() {
		logger.Warn("skipping descriptor", "path", w.Path, "reason", w.Err)
	}
	return catalog, nil
}

// projectDir resolves the --project flag, defaulting to the current directory.
func projectDir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return os.Getwd()
}
