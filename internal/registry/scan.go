package registry

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rulekit-labs/rulekit/internal/descriptor"
)

// CollectionsDir is the top-level registry directory that holds collections.
const CollectionsDir = "collections"

// skippedNames are directory entries never descended into during a scan.
var skippedNames = map[string]bool{
	".git":         true,
	"node_modules": true,
	".DS_Store":    true,
}

// Scan walks the registry root and builds a catalog of modules and
// collections. A directory containing a module descriptor is registered as a
// module and not descended into further; its module ID is the registry-relative
// path unless the descriptor carries an explicit id. Malformed descriptors are
// recorded as warnings and skipped, never failing the scan.
func Scan(root string) (*Catalog, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading registry root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("registry root %s is not a directory", root)
	}

	c := &Catalog{
		root:        root,
		modules:     make(map[string]*ModuleEntry),
		collections: make(map[string]*CollectionEntry),
	}

	if err := scanModules(c, root); err != nil {
		return nil, err
	}
	scanCollections(c, filepath.Join(root, CollectionsDir))

	return c, nil
}

// scanModules walks root looking for module descriptor files.
func scanModules(c *Catalog, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if !d.IsDir() {
			return nil
		}
		if skippedNames[d.Name()] {
			return filepath.SkipDir
		}

		// Collections have their own descriptor format.
		if path == filepath.Join(root, CollectionsDir) {
			return filepath.SkipDir
		}

		descPath, ok := descriptor.FindModuleFile(path)
		if !ok {
			return nil
		}

		relDir, relErr := filepath.Rel(root, path)
		if relErr != nil || relDir == "." {
			return nil
		}

		if entry, derr := loadModule(path, descPath, relDir); derr != nil {
			c.warnings = append(c.warnings, derr)
		} else if _, exists := c.modules[entry.ID]; exists {
			c.warnings = append(c.warnings, &DiscoveryError{
				Path: descPath,
				Err:  fmt.Errorf("duplicate module id %q", entry.ID),
			})
		} else {
			c.modules[entry.ID] = entry
		}

		// Module contents are payload, not nested modules.
		return filepath.SkipDir
	})
}

// loadModule validates and parses a single module descriptor.
func loadModule(dir, descPath, relDir string) (*ModuleEntry, *DiscoveryError) {
	result, err := descriptor.ValidateModuleFile(descPath)
	if err != nil {
		return nil, &DiscoveryError{Path: descPath, Err: err}
	}
	if !result.Valid {
		return nil, &DiscoveryError{Path: descPath, Err: issuesError(result.Issues)}
	}

	mod, err := descriptor.ParseModule(descPath)
	if err != nil {
		return nil, &DiscoveryError{Path: descPath, Err: err}
	}

	id := mod.ID
	if id == "" {
		id = filepath.ToSlash(relDir)
	}

	return &ModuleEntry{
		ID:             id,
		Dir:            dir,
		DescriptorPath: descPath,
		Descriptor:     *mod,
	}, nil
}

// scanCollections reads the collections directory. Both layouts are accepted:
// collections/<name>/collection.{json,yaml} and flat collections/<name>.{json,yaml}.
func scanCollections(c *Catalog, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return // no collections directory is fine
	}

	for _, entry := range entries {
		if skippedNames[entry.Name()] {
			continue
		}

		var id, descPath string
		if entry.IsDir() {
			p, ok := descriptor.FindCollectionFile(filepath.Join(dir, entry.Name()))
			if !ok {
				continue
			}
			id, descPath = entry.Name(), p
		} else {
			name := entry.Name()
			ext := filepath.Ext(name)
			if ext != ".json" && ext != ".yaml" {
				continue
			}
			id, descPath = strings.TrimSuffix(name, ext), filepath.Join(dir, name)
		}

		col, err := descriptor.ParseCollection(descPath)
		if err != nil {
			c.warnings = append(c.warnings, &DiscoveryError{Path: descPath, Err: err})
			continue
		}
		if len(col.Modules) == 0 {
			c.warnings = append(c.warnings, &DiscoveryError{
				Path: descPath,
				Err:  fmt.Errorf("collection %q lists no modules", id),
			})
			continue
		}

		c.collections[id] = &CollectionEntry{
			ID:             id,
			DescriptorPath: descPath,
			Descriptor:     *col,
		}
	}
}

// issuesError flattens validation issues into a single error message.
func issuesError(issues []descriptor.ValidationIssue) error {
	parts := make([]string, len(issues))
	for i, issue := range issues {
		if issue.Path != "" {
			parts[i] = fmt.Sprintf("%s: %s", issue.Path, issue.Message)
		} else {
			parts[i] = issue.Message
		}
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(parts, "; "))
}
