// Package fzf drives the one-shot quick mode: a go-fuzzyfinder session
// over the walked candidates, for when the full selector is more than the
// task needs.
package fzf

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"

	"github.com/Paintersrp/pick/internal/source"
)

type QuickFinder struct {
	Header string
	files  []source.File
	loader source.FileLoader
}

func NewQuickFinder(files []source.File, header string, maxPreviewBytes int64) *QuickFinder {
	return &QuickFinder{
		Header: header,
		files:  files,
		loader: source.FileLoader{MaxBytes: maxPreviewBytes},
	}
}

// Run performs the fuzzy selection, optionally seeded with a query.
func (f *QuickFinder) Run(query string) (source.File, error) {
	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderPreview),
	}

	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := fuzzyfinder.Find(f.files, func(i int) string {
		return f.files[i].Display()
	}, options...)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			return source.File{}, fmt.Errorf("no file selected")
		}
		return source.File{}, fmt.Errorf("error selecting file: %w", err)
	}

	return f.files[idx], nil
}

// renderPreview fills the preview window, colorizing markdown with glamour.
func (f *QuickFinder) renderPreview(i, w, h int) string {
	if i == -1 {
		return "" // show nothing
	}

	content, err := f.loader.Load(f.files[i].Path)
	if err != nil {
		return "Preview unavailable: " + err.Error()
	}

	if !strings.HasSuffix(f.files[i].Path, ".md") {
		return content
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(w),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
