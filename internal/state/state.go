// Package state wires the shared collaborators the commands need: the
// loaded config, the active workspace, the live document registry, and
// the scorer.
package state

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/Paintersrp/pick/internal/config"
	"github.com/Paintersrp/pick/internal/constants"
	"github.com/Paintersrp/pick/internal/docs"
	"github.com/Paintersrp/pick/internal/picker"
)

type State struct {
	Config        *config.Config
	Workspace     *config.Workspace
	WorkspaceName string
	Home          string
	Registry      *docs.Registry
	Scorer        picker.Scorer
}

func NewState(workspaceOverride string) (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetEnvPrefix("pick")
	viper.AutomaticEnv()
	// A missing config file is fine; Load falls back to defaults.
	_ = viper.ReadInConfig()

	cfg, err := config.Load(home)
	if err != nil {
		return nil, err
	}

	if workspaceOverride != "" {
		if err := cfg.ActivateWorkspace(workspaceOverride); err != nil {
			return nil, err
		}
	}

	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return nil, err
	}

	return &State{
		Config:        cfg,
		Workspace:     ws,
		WorkspaceName: cfg.CurrentWorkspace,
		Home:          home,
		Registry:      docs.NewRegistry(),
		Scorer:        picker.FuzzyScorer{},
	}, nil
}

// SwitchWorkspace activates another configured workspace for this run.
func (s *State) SwitchWorkspace(name string) error {
	if err := s.Config.ActivateWorkspace(name); err != nil {
		return err
	}
	ws, err := s.Config.ActiveWorkspace()
	if err != nil {
		return err
	}
	s.Workspace = ws
	s.WorkspaceName = name
	return nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting user home directory: %w", err)
	}
	return home, nil
}
