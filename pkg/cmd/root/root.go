package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/pick/internal/constants"
	"github.com/Paintersrp/pick/internal/state"
	"github.com/Paintersrp/pick/pkg/cmd/files"
	"github.com/Paintersrp/pick/pkg/cmd/initialize"
	"github.com/Paintersrp/pick/pkg/cmd/quick"
	"github.com/Paintersrp/pick/pkg/cmd/s3"
	"github.com/Paintersrp/pick/pkg/cmd/workspace"
)

var workspaceName string

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     "pick",
		Version: constants.Version,
		Short:   "Fuzzy-pick files and objects from the terminal",
		Long: heredoc.Doc(`
			pick is an interactive selector: it walks a workspace (or lists
			an S3 bucket), ranks the candidates against every keystroke, and
			hands the confirmed selection to your editor or stdout.

			Running pick with no subcommand starts the file selector.
		`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if workspaceName != "" {
				return s.SwitchWorkspace(workspaceName)
			}
			return nil
		},
		RunE: files.NewCmdFiles(s).RunE,
	}

	cmd.PersistentFlags().
		StringVarP(
			&workspaceName,
			"workspace",
			"w",
			"",
			"Workspace to use for this run.",
		)
	viper.BindPFlag("workspace", cmd.PersistentFlags().Lookup("workspace"))

	cmd.AddCommand(
		initialize.NewCmdInit(s),
		files.NewCmdFiles(s),
		quick.NewCmdQuick(s),
		s3.NewCmdS3(s),
		workspace.NewCmdWorkspace(s),
	)

	return cmd, nil
}
