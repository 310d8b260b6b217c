package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestSymlinkAndReadTarget(t *testing.T) {
	if runtime.GOOS == "windows" && !SymlinkSupported() {
		t.Skip("symlinks not supported on this machine")
	}

	target := t.TempDir()
	if err := os.WriteFile(filepath.Join(target, "file.txt"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(t.TempDir(), "link")

	if err := Symlink(target, link); err != nil {
		t.Fatalf("Symlink: %v", err)
	}

	got, err := ReadTarget(link)
	if err != nil {
		t.Fatalf("ReadTarget: %v", err)
	}
	if got != target {
		t.Errorf("ReadTarget = %q, want %q", got, target)
	}

	// Files are reachable through the link.
	if _, err := os.Stat(filepath.Join(link, "file.txt")); err != nil {
		t.Errorf("stat through link: %v", err)
	}
}

func TestRemoveSymlinkKeepsTarget(t *testing.T) {
	if runtime.GOOS == "windows" && !SymlinkSupported() {
		t.Skip("symlinks not supported on this machine")
	}

	target := t.TempDir()
	if err := os.WriteFile(filepath.Join(target, "file.txt"), []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(t.TempDir(), "link")
	if err := Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	if err := Remove(link); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Lstat(link); !os.IsNotExist(err) {
		t.Error("link still present")
	}
	if _, err := os.Stat(filepath.Join(target, "file.txt")); err != nil {
		t.Errorf("target files removed through link: %v", err)
	}
}

func TestRemoveMissingPath(t *testing.T) {
	if err := Remove(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Errorf("Remove of missing path = %v, want nil", err)
	}
}

func TestRemoveRealDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "copy")
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "f"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Remove(dir); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("directory still present")
	}
}

func TestCopyDir(t *testing.T) {
	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "top.txt"), []byte("top"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "nested", "deep.txt"), []byte("deep"), 0600); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(t.TempDir(), "out")
	if err := CopyDir(src, dst); err != nil {
		t.Fatalf("CopyDir: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dst, "nested", "deep.txt"))
	if err != nil {
		t.Fatalf("reading copied file: %v", err)
	}
	if string(data) != "deep" {
		t.Errorf("content = %q", data)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(dst, "nested", "deep.txt"))
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("mode = %v, want 0600", info.Mode().Perm())
		}
	}
}
