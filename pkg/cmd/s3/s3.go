package s3

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/pick/internal/editor"
	"github.com/Paintersrp/pick/internal/picker"
	"github.com/Paintersrp/pick/internal/preview"
	"github.com/Paintersrp/pick/internal/source"
	"github.com/Paintersrp/pick/internal/state"
	"github.com/Paintersrp/pick/internal/tui/finder"
)

func NewCmdS3(s *state.State) *cobra.Command {
	var (
		bucket    string
		prefix    string
		max       int
		query     string
		noPreview bool
	)

	cmd := &cobra.Command{
		Use:   "s3",
		Short: "Interactively pick an object from an S3 bucket",
		Long: heredoc.Doc(`
			Lists objects under a bucket prefix and ranks them against what
			you type. Previews download the object body on demand, capped by
			the workspace preview limits. The selected object's s3:// URI is
			printed to stdout for composing into other commands.

			Credentials and region resolve through the standard AWS config
			chain.
		`),
		Example: heredoc.Doc(`
			pick s3 --bucket reports
			pick s3 --bucket reports --prefix 2026/ --query august
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, cmd, bucket, prefix, max, query, noPreview)
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Bucket to list (required)")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Only offer keys under this prefix")
	cmd.Flags().IntVarP(&max, "max", "m", 1000, "Maximum number of objects to list; 0 means no limit")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Starting query")
	cmd.Flags().BoolVar(&noPreview, "no-preview", false, "Disable the preview pane")
	cmd.MarkFlagRequired("bucket")

	return cmd
}

func run(
	s *state.State,
	cmd *cobra.Command,
	bucket, prefix string,
	max int,
	query string,
	noPreview bool,
) error {
	ctx := cmd.Context()

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("error loading aws config: %w", err)
	}
	client := awss3.NewFromConfig(cfg)

	objects, err := source.ListObjects(ctx, client, bucket, prefix, max)
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		return fmt.Errorf("no objects to pick from in s3://%s/%s", bucket, prefix)
	}

	candidates := make([]picker.Candidate, len(objects))
	for i, o := range objects {
		candidates[i] = o
	}
	engine := picker.NewEngine(candidates, s.Scorer)

	var cache *preview.Cache
	if !noPreview && !s.Workspace.Preview.Disabled {
		loader := source.NewS3Loader(ctx, client, s.Workspace.Preview.MaxFileKB*1024)
		cache, err = preview.NewCache(s.Workspace.Preview.MaxCacheMB, s.Registry, loader)
		if err != nil {
			return err
		}
	}

	result, err := finder.Run(finder.NewModel(engine, cache, "s3://"+bucket, query))
	if err != nil {
		return err
	}
	if !result.Confirmed {
		return nil
	}

	// Objects have no local path to hand an editor; print the URI.
	p := &editor.Printer{Out: cmd.OutOrStdout()}
	return p.Dispatch(result.Candidate, result.Action)
}
