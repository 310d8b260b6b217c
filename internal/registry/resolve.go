package registry

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ResolveModule returns the dependency-closed set of module IDs implied by
// linking the given module, in topological order (dependencies first, the
// requested module last). Cycles are reported as a CyclicDependencyError
// rather than recursing forever.
func (c *Catalog) ResolveModule(id string) ([]string, error) {
	if _, ok := c.modules[id]; !ok {
		return nil, &UnknownModuleError{ID: id}
	}

	seen := make(map[string]bool)
	inProgress := make(map[string]bool)
	var order []string

	if err := c.resolveInto(id, nil, seen, inProgress, &order); err != nil {
		return nil, err
	}
	return order, nil
}

// ResolveCollection expands a collection into the deduplicated,
// dependency-closed set of module IDs it implies, preserving the collection's
// member order (each member's dependencies precede it).
func (c *Catalog) ResolveCollection(id string) ([]string, error) {
	col, ok := c.collections[id]
	if !ok {
		return nil, &UnknownCollectionError{ID: id}
	}

	seen := make(map[string]bool)
	inProgress := make(map[string]bool)
	var order []string

	for _, member := range col.Descriptor.Modules {
		if _, ok := c.modules[member]; !ok {
			return nil, fmt.Errorf("collection %q: %w", id, &UnknownModuleError{ID: member})
		}
		if err := c.resolveInto(member, nil, seen, inProgress, &order); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// resolveInto walks the dependency graph depth-first. chain tracks the path
// from the resolution root for cycle reporting.
func (c *Catalog) resolveInto(id string, chain []string, seen, inProgress map[string]bool, order *[]string) error {
	if seen[id] {
		return nil
	}
	if inProgress[id] {
		return &CyclicDependencyError{Chain: append(append([]string{}, chain...), id)}
	}

	entry, ok := c.modules[id]
	if !ok {
		return &UnknownModuleError{ID: id}
	}

	inProgress[id] = true
	chain = append(chain, id)

	for _, dep := range entry.Descriptor.Dependencies {
		if err := c.resolveInto(dep.ID, chain, seen, inProgress, order); err != nil {
			return err
		}
	}

	delete(inProgress, id)
	seen[id] = true
	*order = append(*order, id)
	return nil
}

// CheckConstraints verifies the declared semver constraints between the given
// modules and their dependencies. Violations come back as human-readable
// warnings; constraint mismatches never block linking.
func (c *Catalog) CheckConstraints(ids []string) []string {
	var warnings []string

	for _, id := range ids {
		entry, ok := c.modules[id]
		if !ok {
			continue
		}

		for _, dep := range entry.Descriptor.Dependencies {
			if dep.Version == "" {
				continue
			}

			constraint, err := semver.NewConstraint(dep.Version)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf(
					"%s: invalid version constraint %q for dependency %s", id, dep.Version, dep.ID))
				continue
			}

			depEntry, ok := c.modules[dep.ID]
			if !ok {
				continue // resolution already reports unknown modules
			}

			ver, err := semver.NewVersion(depEntry.Descriptor.Version)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf(
					"%s: dependency %s has non-semver version %q", id, dep.ID, depEntry.Descriptor.Version))
				continue
			}

			if !constraint.Check(ver) {
				warnings = append(warnings, fmt.Sprintf(
					"%s requires %s %s, found %s", id, dep.ID, dep.Version, depEntry.Descriptor.Version))
			}
		}
	}

	return warnings
}

// Dependents returns the IDs in candidates whose modules declare a dependency
// on the given module ID, directly or transitively.
func (c *Catalog) Dependents(id string, candidates []string) []string {
	var result []string
	for _, cand := range candidates {
		if cand == id {
			continue
		}
		closure, err := c.ResolveModule(cand)
		if err != nil {
			continue
		}
		for _, dep := range closure {
			if dep == id {
				result = append(result, cand)
				break
			}
		}
	}
	return result
}
