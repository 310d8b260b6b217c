package registry

import (
	"sort"

	"github.com/rulekit-labs/rulekit/internal/descriptor"
)

// ModuleEntry is a module found in the registry.
type ModuleEntry struct {
	ID             string // registry-relative path (or descriptor id override)
	Dir            string // absolute path to the module directory
	DescriptorPath string // absolute path to the descriptor file
	Descriptor     descriptor.Module
}

// CollectionEntry is a collection found in the registry.
type CollectionEntry struct {
	ID             string
	DescriptorPath string
	Descriptor     descriptor.Collection
}

// Catalog is the result of scanning a registry root. It is immutable after
// Scan returns: construct a new one for a fresh view of the filesystem.
type Catalog struct {
	root        string
	modules     map[string]*ModuleEntry
	collections map[string]*CollectionEntry
	warnings    []*DiscoveryError
}

// Root returns the registry root the catalog was scanned from.
func (c *Catalog) Root() string { return c.root }

// Module looks up a module by ID.
func (c *Catalog) Module(id string) (*ModuleEntry, bool) {
	m, ok := c.modules[id]
	return m, ok
}

// Collection looks up a collection by ID.
func (c *Catalog) Collection(id string) (*CollectionEntry, bool) {
	col, ok := c.collections[id]
	return col, ok
}

// Modules returns all modules sorted by ID.
func (c *Catalog) Modules() []*ModuleEntry {
	ids := make([]string, 0, len(c.modules))
	for id := range c.modules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]*ModuleEntry, len(ids))
	for i, id := range ids {
		result[i] = c.modules[id]
	}
	return result
}

// Collections returns all collections sorted by ID.
func (c *Catalog) Collections() []*CollectionEntry {
	ids := make([]string, 0, len(c.collections))
	for id := range c.collections {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]*CollectionEntry, len(ids))
	for i, id := range ids {
		result[i] = c.collections[id]
	}
	return result
}

// Warnings returns the discovery errors for descriptors skipped during the scan.
func (c *Catalog) Warnings() []*DiscoveryError {
	return c.warnings
}
