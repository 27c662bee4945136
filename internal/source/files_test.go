package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func names(files []File) []string {
	var out []string
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}

func TestWalkFilesSkipsIgnoredAndHidden(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.md"), "# A")
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "b")
	writeFile(t, filepath.Join(root, "node_modules", "dep.js"), "x")
	writeFile(t, filepath.Join(root, ".hidden", "c.txt"), "c")
	writeFile(t, filepath.Join(root, ".dotfile"), "d")

	files, err := WalkFiles(root, WalkOptions{IgnoredFolders: []string{"node_modules"}})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	got := names(files)
	if len(got) != 2 {
		t.Fatalf("expected 2 files, got %v", got)
	}
	for _, n := range got {
		if n == filepath.Join("node_modules", "dep.js") || n == ".dotfile" {
			t.Fatalf("filter leaked %q", n)
		}
	}
}

func TestWalkFilesExtensionFilter(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.md"), "# A")
	writeFile(t, filepath.Join(root, "b.txt"), "b")
	writeFile(t, filepath.Join(root, "c.go"), "package c")

	files, err := WalkFiles(root, WalkOptions{Extensions: []string{"md", ".go"}})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	got := names(files)
	if len(got) != 2 {
		t.Fatalf("expected [a.md c.go], got %v", got)
	}
	for _, n := range got {
		if n == "b.txt" {
			t.Fatalf("extension filter leaked %q", n)
		}
	}
}

func TestWalkFilesSinceFilter(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	oldPath := filepath.Join(root, "old.txt")
	newPath := filepath.Join(root, "new.txt")
	writeFile(t, oldPath, "old")
	writeFile(t, newPath, "new")

	cutoff := time.Now().Add(-time.Hour)
	stale := cutoff.Add(-24 * time.Hour)
	if err := os.Chtimes(oldPath, stale, stale); err != nil {
		t.Fatalf("failed to backdate file: %v", err)
	}

	files, err := WalkFiles(root, WalkOptions{Since: cutoff})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	got := names(files)
	if len(got) != 1 || got[0] != "new.txt" {
		t.Fatalf("since filter: got %v, want [new.txt]", got)
	}
}

func TestWalkFilesReadsMarkdownTitle(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "front.md"), "---\ntitle: From Frontmatter\n---\n# Ignored\n")
	writeFile(t, filepath.Join(root, "heading.md"), "some text\n\n# From Heading\n")
	writeFile(t, filepath.Join(root, "bare.md"), "no title here\n")

	files, err := WalkFiles(root, WalkOptions{Extensions: []string{".md"}})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	byName := make(map[string]File)
	for _, f := range files {
		byName[f.Name] = f
	}

	if got := byName["front.md"].Title; got != "From Frontmatter" {
		t.Fatalf("frontmatter title: got %q", got)
	}
	if got := byName["heading.md"].Title; got != "From Heading" {
		t.Fatalf("heading title: got %q", got)
	}
	if got := byName["bare.md"].Title; got != "" {
		t.Fatalf("bare file should have no title, got %q", got)
	}

	if got := byName["front.md"].Display(); got != "front.md (From Frontmatter)" {
		t.Fatalf("display text: got %q", got)
	}
	if got := byName["bare.md"].Display(); got != "bare.md" {
		t.Fatalf("display text without title: got %q", got)
	}
}

func TestFileLoaderCapsAndSniffs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	textPath := filepath.Join(root, "a.txt")
	binPath := filepath.Join(root, "a.bin")
	writeFile(t, textPath, "hello")
	writeFile(t, binPath, "he\x00llo")

	loader := FileLoader{MaxBytes: 4}
	if _, err := loader.Load(textPath); err == nil {
		t.Fatal("expected size cap to refuse a 5 byte file")
	}

	loader = FileLoader{}
	if content, err := loader.Load(textPath); err != nil || content != "hello" {
		t.Fatalf("load: content=%q err=%v", content, err)
	}
	if _, err := loader.Load(binPath); err == nil {
		t.Fatal("expected binary sniff to refuse NUL content")
	}
}

func TestFileLoaderCanonicalResolvesSymlinks(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	target := filepath.Join(root, "target.txt")
	link := filepath.Join(root, "link.txt")
	writeFile(t, target, "x")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	loader := FileLoader{}
	canonLink, err := loader.Canonical(link)
	if err != nil {
		t.Fatalf("canonical(link) failed: %v", err)
	}
	canonTarget, err := loader.Canonical(target)
	if err != nil {
		t.Fatalf("canonical(target) failed: %v", err)
	}
	if canonLink != canonTarget {
		t.Fatalf("symlink and target should share a canonical path: %q vs %q", canonLink, canonTarget)
	}

	if _, err := loader.Canonical(filepath.Join(root, "missing.txt")); err == nil {
		t.Fatal("expected canonicalization of a missing path to fail")
	}
}
