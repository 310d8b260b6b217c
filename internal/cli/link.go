package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rulekit-labs/rulekit/internal/config"
	"github.com/rulekit-labs/rulekit/internal/linker"
	"github.com/rulekit-labs/rulekit/internal/registry"
	"github.com/spf13/cobra"
)

var (
	linkCopy       bool
	linkProject    string
	linkCollection bool
)

var linkCmd = &cobra.Command{
	Use:   "link <module|collection>",
	Short: "Link a module or collection into this project",
	Long: `Link a module (and its dependencies) or a whole collection into the
current project's .rulekit/modules/ directory and record it in the manifest.

Collections are referenced as collections/<name> or with --collection. A bare
name that only matches a collection is also accepted.

Example:
  rulekit link coding-standards/go
  rulekit link collections/wordpress-plugin
  rulekit link wordpress-plugin --collection
  rulekit link coding-standards/go --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runLink,
}

func init() {
	linkCmd.Flags().BoolVar(&linkCopy, "copy", false, "Copy module files instead of symlinking")
	linkCmd.Flags().BoolVar(&linkCollection, "collection", false, "Treat the argument as a collection name")
	linkCmd.Flags().StringVar(&linkProject, "project", "", "Target project directory (default: current directory)")
	rootCmd.AddCommand(linkCmd)
}

func runLink(cmd *cobra.Command, args []string) error {
	ref := args[0]

	project, err := projectDir(linkProject)
	if err != nil {
		return fmt.Errorf("resolving project directory: %w", err)
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	closure, err := resolveRef(catalog, ref)
	if err != nil {
		return err
	}

	for _, warning := range catalog.CheckConstraints(closure) {
		logger.Warn(warning)
	}

	method := linker.LinkMethod(config.LinkMethod())
	if linkCopy {
		method = linker.MethodCopy
	}

	linked, skipped := 0, 0
	for _, id := range closure {
		created, err := linker.Link(catalog, id, project, linker.Options{Method: method})
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "  linked %s\n", id)
			linked++
		} else {
			skipped++
		}
	}

	if skipped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Linked %d module(s), %d already linked.\n", linked, skipped)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Linked %d module(s).\n", linked)
	}
	return nil
}

// resolveRef expands a module or collection reference into a dependency-closed
// ID list. The collections/ prefix and the --collection flag force collection
// lookup; otherwise modules take priority and collections are the fallback.
func resolveRef(catalog *registry.Catalog, ref string) ([]string, error) {
	if name, ok := strings.CutPrefix(ref, registry.CollectionsDir+"/"); ok {
		return catalog.ResolveCollection(name)
	}
	if linkCollection {
		return catalog.ResolveCollection(ref)
	}

	closure, err := catalog.ResolveModule(ref)
	if err == nil {
		return closure, nil
	}

	var unknown *registry.UnknownModuleError
	if errors.As(err, &unknown) && unknown.ID == ref {
		if _, isCollection := catalog.Collection(ref); isCollection {
			return catalog.ResolveCollection(ref)
		}
	}
	return nil, err
}
