package gitinfo

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestBranchFromHeadRef(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".git", "HEAD"), "ref: refs/heads/main\n")

	if got := Branch(dir); got != "main" {
		t.Fatalf("Branch = %q, want %q", got, "main")
	}
}

func TestBranchFromNestedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".git", "HEAD"), "ref: refs/heads/feature/search\n")
	writeFile(t, filepath.Join(dir, "docs", "notes.org"), "* notes\n")

	if got := Branch(filepath.Join(dir, "docs", "notes.org")); got != "search" {
		t.Fatalf("Branch = %q, want %q", got, "search")
	}
}

func TestBranchDetachedHead(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".git", "HEAD"), "0123456789abcdef0123456789abcdef01234567\n")

	if got := Branch(dir); got != "detached:0123456" {
		t.Fatalf("Branch = %q, want detached:0123456", got)
	}
}

func TestBranchGitFilePointer(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real-gitdir")
	writeFile(t, filepath.Join(real, "HEAD"), "ref: refs/heads/work\n")

	tree := filepath.Join(dir, "tree")
	writeFile(t, filepath.Join(tree, ".git"), "gitdir: "+real+"\n")

	if got := Branch(tree); got != "work" {
		t.Fatalf("Branch = %q, want %q", got, "work")
	}
}

func TestBranchOutsideRepo(t *testing.T) {
	if got := Branch(t.TempDir()); got != "" {
		t.Fatalf("Branch = %q, want empty", got)
	}
}
