package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rulekit-labs/rulekit/internal/config"
	"github.com/rulekit-labs/rulekit/internal/registry"
	"github.com/spf13/cobra"
)

var (
	searchTagFilter string
	searchJSON      bool
	searchNoCache   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for modules in the registry",
	Long: `Search registry modules by name, description, or ID (case-insensitive
substring match). Use --tag to filter by tags (comma-separated, matches any).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchTagFilter, "tag", "", "Filter by tags (comma-separated, matches any)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	searchCmd.Flags().BoolVar(&searchNoCache, "no-cache", false, "Bypass the discovery cache")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	root, err := config.RegistryRoot()
	if err != nil {
		return err
	}

	entries, err := discoverEntries(root)
	if err != nil {
		return fmt.Errorf("discovering modules: %w", err)
	}

	// Parse tag filter into a set.
	var filterTags []string
	if searchTagFilter != "" {
		for _, t := range strings.Split(searchTagFilter, ",") {
			if tag := strings.TrimSpace(t); tag != "" {
				filterTags = append(filterTags, strings.ToLower(tag))
			}
		}
	}

	var matches []registry.IndexEntry
	for _, e := range entries {
		if matchesSearch(e, query, filterTags) {
			matches = append(matches, e)
		}
	}

	if len(matches) == 0 {
		msg := "No modules found"
		if query != "" {
			msg += fmt.Sprintf(" matching %q", query)
		}
		if searchTagFilter != "" {
			msg += fmt.Sprintf(" with --tag=%s", searchTagFilter)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}

	if searchJSON {
		return printJSON(cmd, matches)
	}
	return printSearchTable(cmd, matches)
}

// discoverEntries loads the module index, going through the mtime-keyed cache
// unless --no-cache is set.
func discoverEntries(root string) ([]registry.IndexEntry, error) {
	if searchNoCache {
		catalog, err := registry.Scan(root)
		if err != nil {
			return nil, err
		}
		modules := catalog.Modules()
		entries := make([]registry.IndexEntry, len(modules))
		for i, m := range modules {
			entries[i] = registry.IndexEntry{
				ID:          m.ID,
				Name:        m.Descriptor.Name,
				Version:     m.Descriptor.Version,
				Description: m.Descriptor.Description,
				Tags:        m.Descriptor.Tags,
				Dir:         m.Dir,
			}
		}
		return entries, nil
	}

	cachePath, err := registry.DefaultCachePath()
	if err != nil {
		cachePath = ""
	}
	return registry.ScanCached(root, cachePath)
}

// matchesSearch returns true if the entry matches the query and all tag
// filters. Filters are AND-combined; tags match any.
func matchesSearch(e registry.IndexEntry, query string, filterTags []string) bool {
	if len(filterTags) > 0 && !matchesAnyTag(e.Tags, filterTags) {
		return false
	}

	if query != "" {
		q := strings.ToLower(query)
		if !strings.Contains(strings.ToLower(e.Name), q) &&
			!strings.Contains(strings.ToLower(e.Description), q) &&
			!strings.Contains(strings.ToLower(e.ID), q) {
			return false
		}
	}
	return true
}

// matchesAnyTag returns true if any entry tag matches any filter tag,
// case-insensitively.
func matchesAnyTag(entryTags, filterTags []string) bool {
	for _, ft := range filterTags {
		for _, et := range entryTags {
			if strings.ToLower(et) == ft {
				return true
			}
		}
	}
	return false
}

func printSearchTable(cmd *cobra.Command, entries []registry.IndexEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tVERSION\tDESCRIPTION")
	for _, e := range entries {
		version := e.Version
		if version == "" {
			version = "-"
		}
		desc := e.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, version, desc)
	}
	return w.Flush()
}
