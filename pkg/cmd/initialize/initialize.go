/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package initialize

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/erikgeiser/promptkit/selection"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/pick/internal/config"
	"github.com/Paintersrp/pick/internal/state"
)

func NewCmdInit(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "initialize [root]",
		Aliases: []string{"i", "init"},
		Short:   "Write the initial pick configuration",
		Long:    "Walks you through setting up pick's default workspace and writes the config file.",
		Example: "pick init ~/notes",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, cmd, args)
		},
	}

	return cmd
}

func run(s *state.State, cmd *cobra.Command, args []string) error {
	root := ""
	if len(args) == 1 {
		root = args[0]
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("error resolving working directory: %w", err)
		}
		root = cwd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("error resolving %s: %w", root, err)
	}

	sel := selection.New(
		"Select your editor.",
		[]string{"nvim", "vim", "hx", "code"},
	)
	sel.Filter = nil

	choice, err := sel.RunPrompt()
	if err != nil {
		return err
	}

	cfg := config.Default(s.Home, root)
	cfg.Workspaces["default"].Editor.Exec = choice
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized workspace %q at %s\n", "default", root)
	return nil
}
