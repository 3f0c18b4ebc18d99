// Where: internal/fileops/file_ops_test.go
// What: Tests for filesystem helpers.
// Why: Staging correctness rests on these primitives.
package fileops

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFilePreservesContentAndMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "script.sh")
	if err := os.WriteFile(src, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write src: %v", err)
	}

	dst := filepath.Join(dir, "out", "script.sh")
	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("copy: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(got) != "#!/bin/sh\n" {
		t.Fatal("content mismatch after copy")
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat dst: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Fatalf("expected mode 0755, got %v", info.Mode().Perm())
	}
}

func TestCopyDirRecursive(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "dags")
	if err := os.MkdirAll(filepath.Join(src, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "nested", "etl.py"), []byte("# dag"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	dst := filepath.Join(dir, "ctx", "dags")
	if err := CopyDir(src, dst); err != nil {
		t.Fatalf("copy dir: %v", err)
	}
	if !FileExists(filepath.Join(dst, "nested", "etl.py")) {
		t.Fatal("expected nested file to be copied")
	}
}

func TestRemoveDirMissingIsNoop(t *testing.T) {
	if err := RemoveDir(filepath.Join(t.TempDir(), "absent")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := RemoveDir(""); err != nil {
		t.Fatalf("remove empty path: %v", err)
	}
}

func TestFileAndDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if !FileExists(file) || FileExists(dir) {
		t.Fatal("FileExists misclassified")
	}
	if !DirExists(dir) || DirExists(file) {
		t.Fatal("DirExists misclassified")
	}
}
