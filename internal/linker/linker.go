package linker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rulekit-labs/rulekit/internal/platform"
	"github.com/rulekit-labs/rulekit/internal/registry"
)

// DependencyConflict is returned when unlinking a module that other linked
// modules still depend on. The manifest is left untouched.
type DependencyConflict struct {
	ID         string
	Dependents []string
}

func (e *DependencyConflict) Error() string {
	return fmt.Sprintf("cannot unlink %s: required by %s (use --force to unlink anyway)",
		e.ID, strings.Join(e.Dependents, ", "))
}

// Options controls how Link materializes module files.
type Options struct {
	Method LinkMethod // defaults to MethodSymlink
}

// Link materializes a single module into the project's .rulekit/modules/ tree
// and records it in the manifest. Linking an already-linked module is a no-op
// success; the returned bool reports whether a new link was created.
//
// Dependency closure is the caller's concern: resolve the module or collection
// first and link each ID in the resulting order.
func Link(catalog *registry.Catalog, id, projectPath string, opts Options) (bool, error) {
	entry, ok := catalog.Module(id)
	if !ok {
		return false, &registry.UnknownModuleError{ID: id}
	}

	method := opts.Method
	if method == "" {
		method = MethodSymlink
	}
	if method == MethodSymlink && !platform.SymlinkSupported() {
		method = MethodCopy
	}

	m, err := LoadManifest(projectPath)
	if err != nil {
		return false, err
	}
	if _, linked := m.Find(id); linked {
		return false, nil
	}

	dest := filepath.Join(ModulesRoot(projectPath), filepath.FromSlash(id))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return false, fmt.Errorf("creating modules directory: %w", err)
	}

	// A leftover destination without a manifest record is stale state from an
	// interrupted run. Replace it.
	if _, err := os.Lstat(dest); err == nil {
		if err := platform.Remove(dest); err != nil {
			return false, fmt.Errorf("replacing stale link %s: %w", dest, err)
		}
	}

	if err := materialize(entry.Dir, dest, method); err != nil {
		return false, fmt.Errorf("linking %s: %w", id, err)
	}

	m.Add(LinkRecord{
		ID:       id,
		Source:   entry.Dir,
		Method:   method,
		LinkedAt: time.Now().UTC(),
	})
	if err := SaveManifest(projectPath, m); err != nil {
		return false, err
	}
	return true, nil
}

// Unlink removes a linked module from the project. When other linked modules
// depend on it and force is false, it returns a DependencyConflict without
// touching the filesystem or the manifest.
func Unlink(catalog *registry.Catalog, id, projectPath string, force bool) error {
	m, err := LoadManifest(projectPath)
	if err != nil {
		return err
	}
	if _, linked := m.Find(id); !linked {
		return fmt.Errorf("%s is not linked in this project", id)
	}

	if !force {
		dependents := catalog.Dependents(id, m.IDs())
		if len(dependents) > 0 {
			return &DependencyConflict{ID: id, Dependents: dependents}
		}
	}

	dest := filepath.Join(ModulesRoot(projectPath), filepath.FromSlash(id))
	if err := platform.Remove(dest); err != nil {
		return fmt.Errorf("removing %s: %w", dest, err)
	}
	pruneEmptyParents(filepath.Dir(dest), ModulesRoot(projectPath))

	m.Remove(id)
	return SaveManifest(projectPath, m)
}

// LinkStatus describes the health of one manifest entry.
type LinkStatus struct {
	ID    string
	State string // "ok", "broken", "missing-source"
	Dest  string
}

// Status checks every manifest entry against the filesystem.
func Status(projectPath string) ([]LinkStatus, error) {
	m, err := LoadManifest(projectPath)
	if err != nil {
		return nil, err
	}

	statuses := make([]LinkStatus, 0, len(m.Links))
	for _, rec := range m.Links {
		dest := filepath.Join(ModulesRoot(projectPath), filepath.FromSlash(rec.ID))
		st := LinkStatus{ID: rec.ID, Dest: dest, State: "ok"}

		if _, err := os.Stat(rec.Source); err != nil {
			st.State = "missing-source"
		} else if _, err := os.Stat(dest); err != nil {
			// Stat follows symlinks, so a dangling link also lands here.
			st.State = "broken"
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}

// Sync re-materializes every manifest entry whose destination is missing or
// broken. It returns the IDs repaired and warnings for entries whose registry
// source has disappeared.
func Sync(projectPath string) (repaired []string, warnings []string, err error) {
	m, err := LoadManifest(projectPath)
	if err != nil {
		return nil, nil, err
	}

	for _, rec := range m.Links {
		if _, serr := os.Stat(rec.Source); serr != nil {
			warnings = append(warnings, fmt.Sprintf("%s: source %s no longer exists", rec.ID, rec.Source))
			continue
		}

		dest := filepath.Join(ModulesRoot(projectPath), filepath.FromSlash(rec.ID))
		if _, serr := os.Stat(dest); serr == nil {
			continue
		}

		if rerr := platform.Remove(dest); rerr != nil {
			warnings = append(warnings, fmt.Sprintf("%s: clearing broken link: %v", rec.ID, rerr))
			continue
		}
		if merr := os.MkdirAll(filepath.Dir(dest), 0755); merr != nil {
			return repaired, warnings, fmt.Errorf("creating modules directory: %w", merr)
		}
		if lerr := materialize(rec.Source, dest, rec.Method); lerr != nil {
			warnings = append(warnings, fmt.Sprintf("%s: relinking: %v", rec.ID, lerr))
			continue
		}
		repaired = append(repaired, rec.ID)
	}
	return repaired, warnings, nil
}

// materialize creates the module files at dest using the given method.
func materialize(source, dest string, method LinkMethod) error {
	if method == MethodCopy {
		return platform.CopyDir(source, dest)
	}
	return platform.Symlink(source, dest)
}

// pruneEmptyParents removes empty directories from dir up to (excluding) stop.
// Nested module IDs create intermediate directories that should not outlive
// their last module.
func pruneEmptyParents(dir, stop string) {
	for dir != stop && strings.HasPrefix(dir, stop) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
