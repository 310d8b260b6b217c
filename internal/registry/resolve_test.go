package registry

import (
	"errors"
	"fmt"
	"testing"
)

// depDesc builds a descriptor with versioned dependencies.
func depDesc(name, version string, deps ...[2]string) string {
	depJSON := ""
	for i, d := range deps {
		if i > 0 {
			depJSON += ","
		}
		if d[1] == "" {
			depJSON += fmt.Sprintf(`{"id":%q}`, d[0])
		} else {
			depJSON += fmt.Sprintf(`{"id":%q,"version":%q}`, d[0], d[1])
		}
	}
	return fmt.Sprintf(`{"name":%q,"version":%q,"description":"test","dependencies":[%s]}`, name, version, depJSON)
}

func scanFixture(t *testing.T, root string) *Catalog {
	t.Helper()
	catalog, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return catalog
}

func TestResolveModuleClosure(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "a", simpleDesc("A", "b"))
	writeModule(t, root, "b", simpleDesc("B", "c"))
	writeModule(t, root, "c", simpleDesc("C"))

	catalog := scanFixture(t, root)

	order, err := catalog.ResolveModule("a")
	if err != nil {
		t.Fatalf("ResolveModule: %v", err)
	}

	want := []string{"c", "b", "a"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v (dependencies first)", order, want)
		}
	}
}

func TestResolveModuleUnknown(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "a", simpleDesc("A"))

	catalog := scanFixture(t, root)

	_, err := catalog.ResolveModule("missing")
	var unknown *UnknownModuleError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownModuleError", err)
	}
	if unknown.ID != "missing" {
		t.Errorf("ID = %q", unknown.ID)
	}
}

func TestResolveModuleUnknownDependency(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "a", simpleDesc("A", "ghost"))

	catalog := scanFixture(t, root)

	_, err := catalog.ResolveModule("a")
	var unknown *UnknownModuleError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownModuleError for dependency", err)
	}
	if unknown.ID != "ghost" {
		t.Errorf("ID = %q", unknown.ID)
	}
}

func TestResolveModuleCycle(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "a", simpleDesc("A", "b"))
	writeModule(t, root, "b", simpleDesc("B", "c"))
	writeModule(t, root, "c", simpleDesc("C", "a"))

	catalog := scanFixture(t, root)

	_, err := catalog.ResolveModule("a")
	var cyclic *CyclicDependencyError
	if !errors.As(err, &cyclic) {
		t.Fatalf("err = %v, want CyclicDependencyError", err)
	}
	if len(cyclic.Chain) < 2 || cyclic.Chain[len(cyclic.Chain)-1] != cyclic.Chain[0] {
		t.Errorf("Chain = %v, should close on the repeated module", cyclic.Chain)
	}
}

func TestResolveModuleSelfCycle(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "a", simpleDesc("A", "a"))

	catalog := scanFixture(t, root)

	_, err := catalog.ResolveModule("a")
	var cyclic *CyclicDependencyError
	if !errors.As(err, &cyclic) {
		t.Fatalf("err = %v, want CyclicDependencyError", err)
	}
}

func TestResolveCollectionClosure(t *testing.T) {
	root := t.TempDir()
	// Collection {a, b} where b depends on c: closure must include c.
	writeModule(t, root, "a", simpleDesc("A"))
	writeModule(t, root, "b", simpleDesc("B", "c"))
	writeModule(t, root, "c", simpleDesc("C"))
	writeCollection(t, root, "bundle", `{"name":"bundle","modules":["a","b"]}`)

	catalog := scanFixture(t, root)

	order, err := catalog.ResolveCollection("bundle")
	if err != nil {
		t.Fatalf("ResolveCollection: %v", err)
	}

	seen := make(map[string]int)
	for i, id := range order {
		seen[id] = i
	}
	for _, id := range []string{"a", "b", "c"} {
		if _, ok := seen[id]; !ok {
			t.Errorf("closure missing %s: %v", id, order)
		}
	}
	if len(order) != 3 {
		t.Errorf("order = %v, want 3 unique modules", order)
	}
	if seen["c"] > seen["b"] {
		t.Errorf("c must precede its dependent b: %v", order)
	}
}

func TestResolveCollectionDedup(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "shared", simpleDesc("S"))
	writeModule(t, root, "x", simpleDesc("X", "shared"))
	writeModule(t, root, "y", simpleDesc("Y", "shared"))
	writeCollection(t, root, "both", `{"name":"both","modules":["x","y"]}`)

	catalog := scanFixture(t, root)

	order, err := catalog.ResolveCollection("both")
	if err != nil {
		t.Fatalf("ResolveCollection: %v", err)
	}
	if len(order) != 3 {
		t.Errorf("order = %v, shared must appear once", order)
	}
}

func TestResolveCollectionUnknown(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "a", simpleDesc("A"))

	catalog := scanFixture(t, root)

	_, err := catalog.ResolveCollection("missing")
	var unknown *UnknownCollectionError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownCollectionError", err)
	}
}

func TestResolveCollectionUnknownMember(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "a", simpleDesc("A"))
	writeCollection(t, root, "broken", `{"name":"broken","modules":["a","ghost"]}`)

	catalog := scanFixture(t, root)

	_, err := catalog.ResolveCollection("broken")
	var unknown *UnknownModuleError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownModuleError for member", err)
	}
}

func TestCheckConstraints(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "app", depDesc("App", "1.0.0", [2]string{"lib", ">=2.0.0"}))
	writeModule(t, root, "lib", depDesc("Lib", "1.5.0"))

	catalog := scanFixture(t, root)

	warnings := catalog.CheckConstraints([]string{"app", "lib"})
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want 1 constraint violation", warnings)
	}
}

func TestCheckConstraintsSatisfied(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "app", depDesc("App", "1.0.0", [2]string{"lib", ">=1.0.0"}))
	writeModule(t, root, "lib", depDesc("Lib", "1.5.0"))

	catalog := scanFixture(t, root)

	if warnings := catalog.CheckConstraints([]string{"app", "lib"}); len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
}

func TestCheckConstraintsBadVersion(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "app", depDesc("App", "1.0.0", [2]string{"lib", ">=1.0.0"}))
	writeModule(t, root, "lib", depDesc("Lib", "not-semver"))

	catalog := scanFixture(t, root)

	if warnings := catalog.CheckConstraints([]string{"app"}); len(warnings) != 1 {
		t.Errorf("warnings = %v, want 1 for non-semver dependency version", warnings)
	}
}

func TestDependents(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "base", simpleDesc("Base"))
	writeModule(t, root, "mid", simpleDesc("Mid", "base"))
	writeModule(t, root, "top", simpleDesc("Top", "mid"))
	writeModule(t, root, "other", simpleDesc("Other"))

	catalog := scanFixture(t, root)

	// top depends on base transitively through mid.
	deps := catalog.Dependents("base", []string{"mid", "top", "other"})
	if len(deps) != 2 {
		t.Fatalf("Dependents = %v, want [mid top]", deps)
	}
}
