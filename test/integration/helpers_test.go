//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	RegistryDir string // RULEKIT_REGISTRY: contains modules and collections/
	ProjectDir  string // A mock project directory
}

// setupTestEnv creates isolated temp directories and points RULEKIT_REGISTRY
// at the registry fixture so all operations are sandboxed.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		RegistryDir: t.TempDir(),
		ProjectDir:  t.TempDir(),
	}
	t.Setenv("RULEKIT_REGISTRY", env.RegistryDir)
	return env
}

// setupRegistry populates the registry with a small dependency chain
// (base <- mid <- top), a standalone module, a malformed descriptor, and a
// "starter" collection referencing top and standalone.
func setupRegistry(t *testing.T, registryDir string) {
	t.Helper()

	writeDescriptor(t, registryDir, "rules/base", `{
  "name": "base",
  "version": "1.0.0",
  "description": "Foundational rules",
  "tags": ["core"]
}`)
	writeDescriptor(t, registryDir, "rules/mid", `{
  "name": "mid",
  "version": "1.2.0",
  "description": "Mid-level rules",
  "dependencies": [{"id": "rules/base", "version": ">=1.0.0"}]
}`)
	writeDescriptor(t, registryDir, "rules/top", `{
  "name": "top",
  "version": "2.0.0",
  "description": "Top-level rules",
  "dependencies": [{"id": "rules/mid"}]
}`)
	writeDescriptor(t, registryDir, "extras/standalone", `{
  "name": "standalone",
  "version": "0.3.0",
  "description": "No dependencies",
  "tags": ["extra"]
}`)

	// Malformed on purpose: missing required fields.
	writeDescriptor(t, registryDir, "broken/bad", `{"name": "bad"}`)

	writeFile(t, filepath.Join(registryDir, "collections", "starter", "collection.yaml"), `name: starter
description: Starter rule pack
modules:
  - rules/top
  - extras/standalone
`)
}

// writeDescriptor creates a module directory with module.json and a payload file.
func writeDescriptor(t *testing.T, registryDir, modulePath, descriptor string) {
	t.Helper()
	dir := filepath.Join(registryDir, filepath.FromSlash(modulePath))
	writeFile(t, filepath.Join(dir, "module.json"), descriptor)
	writeFile(t, filepath.Join(dir, "rules.md"), "# rules for "+modulePath+"\n")
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertNotExists fails the test if the path exists.
func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected path NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
