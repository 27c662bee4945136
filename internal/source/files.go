// Package source produces picker candidates: files walked from a
// workspace root, or objects listed from an S3 bucket. Each candidate
// kind carries its own preview loader.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// File is one selectable file under the workspace root.
type File struct {
	Path    string // absolute path
	Name    string // path relative to the root, what the user matches on
	Title   string // markdown title when present
	Size    int64
	ModTime time.Time
}

func (f File) Display() string {
	if f.Title != "" {
		return fmt.Sprintf("%s (%s)", f.Name, f.Title)
	}
	return f.Name
}

func (f File) PreviewPath() (string, bool) {
	return f.Path, true
}

// WalkOptions narrows the walk. Zero times mean unbounded; an empty
// extension list admits every file.
type WalkOptions struct {
	IgnoredFolders []string
	Extensions     []string
	Since          time.Time
	Until          time.Time
}

// WalkFiles collects the candidate universe for a session. Hidden files
// and directories are skipped, as are the configured ignored folders.
// The returned order is the walk order; the picker treats it as the
// original candidate order for tie-breaking.
func WalkFiles(root string, opts WalkOptions) ([]File, error) {
	var files []File

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		name := filepath.Base(path)
		if strings.HasPrefix(name, ".") && path != root {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			for _, d := range opts.IgnoredFolders {
				if path == filepath.Join(root, d) {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if len(opts.Extensions) > 0 {
			ext := filepath.Ext(name)
			keep := false
			for _, e := range opts.Extensions {
				if ext == normalizeExt(e) {
					keep = true
					break
				}
			}
			if !keep {
				return nil
			}
		}

		if !opts.Since.IsZero() && info.ModTime().Before(opts.Since) {
			return nil
		}
		if !opts.Until.IsZero() && info.ModTime().After(opts.Until) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = name
		}

		f := File{
			Path:    path,
			Name:    rel,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}

		if filepath.Ext(name) == ".md" {
			if content, err := os.ReadFile(path); err == nil {
				f.Title = markdownTitle(content)
			}
		}

		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", root, err)
	}

	return files, nil
}

func normalizeExt(e string) string {
	if e == "" || strings.HasPrefix(e, ".") {
		return e
	}
	return "." + e
}

// FileLoader performs cold preview loads from the filesystem.
type FileLoader struct {
	// MaxBytes caps how large a file the preview will read; zero means
	// no cap.
	MaxBytes int64
}

func (l FileLoader) Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func (l FileLoader) Load(canonicalPath string) (string, error) {
	info, err := os.Stat(canonicalPath)
	if err != nil {
		return "", err
	}
	if l.MaxBytes > 0 && info.Size() > l.MaxBytes {
		return "", fmt.Errorf("file is %d bytes, preview cap is %d", info.Size(), l.MaxBytes)
	}

	content, err := os.ReadFile(canonicalPath)
	if err != nil {
		return "", err
	}
	if bytes.IndexByte(content, 0) >= 0 {
		return "", errors.New("binary file")
	}
	return string(content), nil
}
