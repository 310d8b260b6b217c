package registry

import (
	"fmt"
	"strings"
)

// DiscoveryError records a descriptor that could not be parsed or failed
// schema validation during a scan. The module is skipped; the scan continues.
type DiscoveryError struct {
	Path string // descriptor file path
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("bad descriptor %s: %v", e.Path, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// UnknownModuleError reports a module ID absent from the catalog.
type UnknownModuleError struct {
	ID string
}

func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("unknown module %q", e.ID)
}

// UnknownCollectionError reports a collection ID absent from the catalog.
type UnknownCollectionError struct {
	ID string
}

func (e *UnknownCollectionError) Error() string {
	return fmt.Sprintf("unknown collection %q", e.ID)
}

// CyclicDependencyError reports a dependency cycle found during resolution.
// Chain holds the module IDs along the cycle, ending with the repeated ID.
type CyclicDependencyError struct {
	Chain []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", strings.Join(e.Chain, " -> "))
}
