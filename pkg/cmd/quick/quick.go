package quick

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Paintersrp/pick/internal/editor"
	"github.com/Paintersrp/pick/internal/picker"
	"github.com/Paintersrp/pick/internal/source"
	"github.com/Paintersrp/pick/internal/state"
	"github.com/Paintersrp/pick/pkg/fzf"
)

func NewCmdQuick(s *state.State) *cobra.Command {
	var (
		path  string
		query string
		open  bool
	)

	cmd := &cobra.Command{
		Use:     "quick",
		Aliases: []string{"qk"},
		Short:   "One-shot fuzzy pick, printing the selected path",
		Long: heredoc.Doc(`
			A lighter selector without scoping or the cached preview pane:
			fuzzy-find a file under the workspace root and print its path,
			or open it directly with --open.
		`),
		Example: heredoc.Doc(`
			vim $(pick quick)
			pick quick --query todo --open
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, path, query, open)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Directory to pick from instead of the workspace root")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Starting query")
	cmd.Flags().BoolVarP(&open, "open", "o", false, "Open the selection in the configured editor")

	return cmd
}

func run(s *state.State, path, query string, open bool) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("quick mode needs an interactive terminal")
	}

	ws := s.Workspace
	root := ws.Root
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("error resolving %s: %w", path, err)
		}
		root = abs
	}

	files, err := source.WalkFiles(root, source.WalkOptions{
		IgnoredFolders: ws.IgnoredFolders,
		Extensions:     ws.Extensions,
	})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files to pick from under %s", root)
	}

	finder := fzf.NewQuickFinder(files, root, ws.Preview.MaxFileKB*1024)
	file, err := finder.Run(query)
	if err != nil {
		return err
	}

	if open {
		e := &editor.Editor{Template: ws.Editor}
		return e.Dispatch(file, picker.ActionOpen)
	}

	fmt.Println(file.Path)
	return nil
}
