// Package linker materializes modules into a consuming project and tracks
// them in the project-local .rulekit/manifest.yaml. It links and unlinks
// single modules, guards unlink against linked dependents, re-syncs stale
// links from the manifest, and removes all RuleKit state from a project.
package linker
