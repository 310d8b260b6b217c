package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info <module>",
	Short: "Show details of a registry module",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	id := args[0]

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	entry, ok := catalog.Module(id)
	if !ok {
		return fmt.Errorf("unknown module %q", id)
	}

	if infoJSON {
		return printJSON(cmd, entry.Descriptor)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:          %s\n", entry.ID)
	fmt.Fprintf(out, "Name:        %s\n", entry.Descriptor.Name)
	fmt.Fprintf(out, "Version:     %s\n", entry.Descriptor.Version)
	fmt.Fprintf(out, "Description: %s\n", entry.Descriptor.Description)
	if len(entry.Descriptor.Tags) > 0 {
		fmt.Fprintf(out, "Tags:        %s\n", strings.Join(entry.Descriptor.Tags, ", "))
	}
	fmt.Fprintf(out, "Path:        %s\n", entry.Dir)

	if len(entry.Descriptor.Dependencies) > 0 {
		fmt.Fprintln(out, "Dependencies:")
		for _, dep := range entry.Descriptor.Dependencies {
			if dep.Version != "" {
				fmt.Fprintf(out, "  %s (%s)\n", dep.ID, dep.Version)
			} else {
				fmt.Fprintf(out, "  %s\n", dep.ID)
			}
		}
	}

	closure, err := catalog.ResolveModule(id)
	if err != nil {
		logger.Warn("resolving dependency closure", "err", err)
		return nil
	}
	if len(closure) > 1 {
		fmt.Fprintf(out, "Linking this module links %d module(s) total.\n", len(closure))
	}
	return nil
}
