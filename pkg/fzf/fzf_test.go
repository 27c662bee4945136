package fzf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Paintersrp/pick/internal/source"
)

func TestRenderPreviewOutOfRange(t *testing.T) {
	t.Parallel()

	f := NewQuickFinder(nil, "", 0)
	if got := f.renderPreview(-1, 80, 24); got != "" {
		t.Fatalf("expected empty preview for no selection, got %q", got)
	}
}

func TestRenderPreviewPlainAndUnavailable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("plain content"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	f := NewQuickFinder([]source.File{
		{Path: path, Name: "a.txt"},
		{Path: filepath.Join(dir, "missing.txt"), Name: "missing.txt"},
	}, "", 0)

	if got := f.renderPreview(0, 80, 24); got != "plain content" {
		t.Fatalf("plain preview: got %q", got)
	}
	if got := f.renderPreview(1, 80, 24); !strings.HasPrefix(got, "Preview unavailable") {
		t.Fatalf("missing file preview: got %q", got)
	}
}
