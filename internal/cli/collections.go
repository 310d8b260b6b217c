package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var collectionsJSON bool

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List available collections",
	Long:  `List the collections defined in the registry with their member counts.`,
	Args:  cobra.NoArgs,
	RunE:  runCollections,
}

func init() {
	collectionsCmd.Flags().BoolVar(&collectionsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(collectionsCmd)
}

// collectionEntry represents one row of collections output.
type collectionEntry struct {
	ID          string   `json:"id"`
	Description string   `json:"description,omitempty"`
	Modules     []string `json:"modules"`
}

func runCollections(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	collections := catalog.Collections()
	if len(collections) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Registry defines no collections.")
		return nil
	}

	entries := make([]collectionEntry, len(collections))
	for i, col := range collections {
		entries[i] = collectionEntry{
			ID:          col.ID,
			Description: col.Descriptor.Description,
			Modules:     col.Descriptor.Modules,
		}
	}

	if collectionsJSON {
		return printJSON(cmd, entries)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "COLLECTION\tMODULES\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\t%s\n", e.ID, len(e.Modules), e.Description)
	}
	return w.Flush()
}
