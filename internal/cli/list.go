package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/rulekit-labs/rulekit/internal/linker"
	"github.com/spf13/cobra"
)

var (
	listAvailable bool
	listJSON      bool
	listProject   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List linked modules",
	Long: `List the modules linked into the current project. With --available, list
every module in the registry instead.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listAvailable, "available", false, "List all registry modules instead of linked ones")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listProject, "project", "", "Target project directory (default: current directory)")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents one row of list output.
type listEntry struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
	Method  string `json:"method,omitempty"`
	State   string `json:"state,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	if listAvailable {
		return runListAvailable(cmd)
	}

	project, err := projectDir(listProject)
	if err != nil {
		return fmt.Errorf("resolving project directory: %w", err)
	}

	manifest, err := linker.LoadManifest(project)
	if err != nil {
		return err
	}
	if len(manifest.Links) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No modules linked in this project.")
		return nil
	}

	statuses, err := linker.Status(project)
	if err != nil {
		return err
	}
	stateByID := make(map[string]string, len(statuses))
	for _, st := range statuses {
		stateByID[st.ID] = st.State
	}

	catalog, catErr := loadCatalog()

	entries := make([]listEntry, 0, len(manifest.Links))
	for _, rec := range manifest.Links {
		entry := listEntry{
			ID:     rec.ID,
			Method: string(rec.Method),
			State:  stateByID[rec.ID],
		}
		if catErr == nil {
			if mod, ok := catalog.Module(rec.ID); ok {
				entry.Name = mod.Descriptor.Name
				entry.Version = mod.Descriptor.Version
			}
		}
		entries = append(entries, entry)
	}

	if listJSON {
		return printJSON(cmd, entries)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tVERSION\tMETHOD\tSTATE")
	for _, e := range entries {
		version := e.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, version, e.Method, e.State)
	}
	return w.Flush()
}

func runListAvailable(cmd *cobra.Command) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	modules := catalog.Modules()
	if len(modules) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Registry contains no modules.")
		return nil
	}

	entries := make([]listEntry, len(modules))
	for i, m := range modules {
		entries[i] = listEntry{
			ID:      m.ID,
			Name:    m.Descriptor.Name,
			Version: m.Descriptor.Version,
		}
	}

	if listJSON {
		return printJSON(cmd, entries)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVERSION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Name, e.Version)
	}
	return w.Flush()
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
