package files

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/pick/internal/editor"
	"github.com/Paintersrp/pick/internal/picker"
	"github.com/Paintersrp/pick/internal/preview"
	"github.com/Paintersrp/pick/internal/source"
	"github.com/Paintersrp/pick/internal/state"
	"github.com/Paintersrp/pick/internal/tui/finder"
)

func NewCmdFiles(s *state.State) *cobra.Command {
	var (
		path      string
		query     string
		since     string
		until     string
		exts      []string
		print     bool
		noPreview bool
	)

	cmd := &cobra.Command{
		Use:     "files",
		Aliases: []string{"f"},
		Short:   "Interactively pick a file from the workspace",
		Long: heredoc.Doc(`
			Walks the workspace root, ranks the files against what you type,
			and opens the confirmed file in your configured editor.

			Ctrl+s narrows the session to the current matches, ctrl+g widens
			it back out. Ctrl+x and ctrl+v open the file in a horizontal or
			vertical split.
		`),
		Example: heredoc.Doc(`
			pick files
			pick files --query meeting --since 2026-08-01
			pick files --ext md --ext txt --print | xargs wc -l
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, cmd, path, query, since, until, exts, print, noPreview)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Directory to pick from instead of the workspace root")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Starting query")
	cmd.Flags().StringVar(&since, "since", "", "Only offer files modified after this time")
	cmd.Flags().StringVar(&until, "until", "", "Only offer files modified before this time")
	cmd.Flags().StringSliceVarP(&exts, "ext", "e", nil, "Only offer files with these extensions")
	cmd.Flags().BoolVar(&print, "print", false, "Print the selected path instead of opening an editor")
	cmd.Flags().BoolVar(&noPreview, "no-preview", false, "Disable the preview pane")

	return cmd
}

func run(
	s *state.State,
	cmd *cobra.Command,
	path, query, since, until string,
	exts []string,
	print, noPreview bool,
) error {
	ws := s.Workspace

	root := ws.Root
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("error resolving %s: %w", path, err)
		}
		root = abs
	}

	opts := source.WalkOptions{
		IgnoredFolders: ws.IgnoredFolders,
		Extensions:     ws.Extensions,
	}
	if len(exts) > 0 {
		opts.Extensions = exts
	}

	var err error
	if opts.Since, err = parseTimeFlag("since", since); err != nil {
		return err
	}
	if opts.Until, err = parseTimeFlag("until", until); err != nil {
		return err
	}

	files, err := source.WalkFiles(root, opts)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files to pick from under %s", root)
	}

	candidates := make([]picker.Candidate, len(files))
	for i, f := range files {
		candidates[i] = f
	}
	engine := picker.NewEngine(candidates, s.Scorer)

	var cache *preview.Cache
	if !noPreview && !ws.Preview.Disabled {
		loader := source.FileLoader{MaxBytes: ws.Preview.MaxFileKB * 1024}
		cache, err = preview.NewCache(ws.Preview.MaxCacheMB, s.Registry, loader)
		if err != nil {
			return err
		}
	}

	result, err := finder.Run(finder.NewModel(engine, cache, "Files", query))
	if err != nil {
		return err
	}
	if !result.Confirmed {
		return nil
	}

	var d picker.Dispatcher
	if print {
		d = &editor.Printer{Out: cmd.OutOrStdout()}
	} else {
		d = &editor.Editor{Template: ws.Editor}
	}
	return d.Dispatch(result.Candidate, result.Action)
}

func parseTimeFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseAny(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing --%s %q: %w", name, value, err)
	}
	return t, nil
}
