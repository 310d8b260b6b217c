package linker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rulekit-labs/rulekit/internal/platform"
)

// Action is one step of a self-remove operation.
type Action struct {
	Kind string // "unlink" or "remove-dir"
	ID   string // module ID for unlink actions
	Path string
}

func (a Action) String() string {
	switch a.Kind {
	case "unlink":
		return fmt.Sprintf("unlink %s (%s)", a.ID, a.Path)
	default:
		return fmt.Sprintf("remove %s", a.Path)
	}
}

// SelfRemovePlan lists the actions SelfRemove would take: one unlink per
// manifest entry, then removal of the .rulekit directory itself.
func SelfRemovePlan(projectPath string) ([]Action, error) {
	m, err := LoadManifest(projectPath)
	if err != nil {
		return nil, err
	}

	var actions []Action
	for _, rec := range m.Links {
		actions = append(actions, Action{
			Kind: "unlink",
			ID:   rec.ID,
			Path: filepath.Join(ModulesRoot(projectPath), filepath.FromSlash(rec.ID)),
		})
	}

	if _, err := os.Stat(StateDir(projectPath)); err == nil {
		actions = append(actions, Action{Kind: "remove-dir", Path: StateDir(projectPath)})
	}
	return actions, nil
}

// SelfRemove unlinks every tracked module and deletes the project's .rulekit
// directory. In dry-run mode it returns the same action list without touching
// the filesystem. Both modes share one plan, so dry-run output always matches
// what a real run would do.
func SelfRemove(projectPath string, dryRun bool) ([]Action, error) {
	actions, err := SelfRemovePlan(projectPath)
	if err != nil {
		return nil, err
	}
	if dryRun {
		return actions, nil
	}

	for _, a := range actions {
		switch a.Kind {
		case "unlink":
			if err := platform.Remove(a.Path); err != nil {
				return nil, fmt.Errorf("unlinking %s: %w", a.ID, err)
			}
		case "remove-dir":
			if err := os.RemoveAll(a.Path); err != nil {
				return nil, fmt.Errorf("removing %s: %w", a.Path, err)
			}
		}
	}
	return actions, nil
}
