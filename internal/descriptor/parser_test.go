package descriptor

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestParseModuleJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "module.json")
	writeFile(t, path, `{
  "name": "Go Coding Standards",
  "version": "1.2.0",
  "description": "Style rules for Go",
  "tags": ["go", "style"],
  "dependencies": [{"id": "coding-standards/common", "version": ">=1.0.0"}]
}`)

	mod, err := ParseModule(path)
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	if mod.Name != "Go Coding Standards" {
		t.Errorf("Name = %q", mod.Name)
	}
	if mod.Version != "1.2.0" {
		t.Errorf("Version = %q", mod.Version)
	}
	if len(mod.Tags) != 2 {
		t.Errorf("Tags = %v", mod.Tags)
	}
	if len(mod.Dependencies) != 1 || mod.Dependencies[0].ID != "coding-standards/common" {
		t.Errorf("Dependencies = %v", mod.Dependencies)
	}
	if mod.Dependencies[0].Version != ">=1.0.0" {
		t.Errorf("Dependencies[0].Version = %q", mod.Dependencies[0].Version)
	}
}

func TestParseModuleYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "module.yaml")
	writeFile(t, path, `name: Screenplay Genres
version: "2.0.0"
description: Genre writing guides
dependencies:
  - id: screenplay/structure
`)

	mod, err := ParseModule(path)
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	if mod.Name != "Screenplay Genres" {
		t.Errorf("Name = %q", mod.Name)
	}
	if len(mod.Dependencies) != 1 || mod.Dependencies[0].ID != "screenplay/structure" {
		t.Errorf("Dependencies = %v", mod.Dependencies)
	}
}

func TestParseModuleMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "module.json")
	writeFile(t, path, `{"name": "broken",`)

	if _, err := ParseModule(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestParseCollection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "collection.json")
	writeFile(t, path, `{
  "name": "wordpress-plugin",
  "description": "Everything for WordPress plugin work",
  "modules": ["wordpress/architecture", "coding-standards/php"]
}`)

	col, err := ParseCollection(path)
	if err != nil {
		t.Fatalf("ParseCollection: %v", err)
	}
	if len(col.Modules) != 2 {
		t.Fatalf("Modules = %v", col.Modules)
	}
	if col.Modules[0] != "wordpress/architecture" {
		t.Errorf("Modules[0] = %q, order must be preserved", col.Modules[0])
	}
}

func TestFindModuleFilePriority(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "module.yaml"), "name: yaml\nversion: \"1.0.0\"\ndescription: d\n")
	writeFile(t, filepath.Join(dir, "module.json"), `{"name":"json","version":"1.0.0","description":"d"}`)

	path, ok := FindModuleFile(dir)
	if !ok {
		t.Fatal("FindModuleFile: not found")
	}
	if filepath.Base(path) != "module.json" {
		t.Errorf("found %s, want module.json first", path)
	}
}

func TestFindModuleFileAbsent(t *testing.T) {
	if _, ok := FindModuleFile(t.TempDir()); ok {
		t.Error("expected no descriptor in empty dir")
	}
}
