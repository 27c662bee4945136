// Package config holds the on-disk configuration: named workspaces, the
// editor command template, and preview limits.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/pick/internal/constants"
)

// CommandTemplate describes how to launch the configured editor. Args are
// passed before the file path.
type CommandTemplate struct {
	Exec string   `yaml:"exec" json:"exec"`
	Args []string `yaml:"args" json:"args"`
}

// PreviewConfig bounds the preview cache and single-file loads.
type PreviewConfig struct {
	MaxCacheMB int64 `yaml:"max_cache_mb" json:"max_cache_mb"`
	MaxFileKB  int64 `yaml:"max_file_kb"  json:"max_file_kb"`
	Disabled   bool  `yaml:"disabled"     json:"disabled"`
}

// Workspace is a named candidate universe: a root directory plus the
// filters applied when walking it.
type Workspace struct {
	Root           string          `yaml:"root"            json:"root"`
	Extensions     []string        `yaml:"extensions"      json:"extensions"`
	IgnoredFolders []string        `yaml:"ignored_folders" json:"ignored_folders"`
	Editor         CommandTemplate `yaml:"editor"          json:"editor"`
	Preview        PreviewConfig   `yaml:"preview"         json:"preview"`
}

type Config struct {
	Workspaces       map[string]*Workspace `yaml:"workspaces"        json:"workspaces"`
	CurrentWorkspace string                `yaml:"current_workspace" json:"current_workspace"`

	path string `yaml:"-"`
}

// Path returns the config file location under home.
func Path(home string) string {
	return filepath.Join(
		home+constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

// Default produces a single-workspace config rooted at root.
func Default(home, root string) *Config {
	return &Config{
		Workspaces: map[string]*Workspace{
			"default": {
				Root:           root,
				IgnoredFolders: []string{"node_modules", "vendor", "target"},
				Editor: CommandTemplate{
					Exec: constants.DefaultEditor,
				},
				Preview: PreviewConfig{
					MaxCacheMB: constants.DefaultPreviewCacheMB,
					MaxFileKB:  constants.DefaultPreviewFileKB,
				},
			},
		},
		CurrentWorkspace: "default",
		path:             Path(home),
	}
}

// Load reads the config from home, falling back to defaults when no file
// exists yet.
func Load(home string) (*Config, error) {
	path := Path(home)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cwd, err := os.Getwd()
			if err != nil {
				cwd = home
			}
			return Default(home, cwd), nil
		}
		return nil, fmt.Errorf("error reading config %s: %w", path, err)
	}

	cfg := &Config{path: path}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config %s: %w", path, err)
	}

	if cfg.Workspaces == nil {
		cfg.Workspaces = make(map[string]*Workspace)
	}
	for _, ws := range cfg.Workspaces {
		ws.applyDefaults()
	}

	return cfg, nil
}

func (ws *Workspace) applyDefaults() {
	if ws.Editor.Exec == "" {
		ws.Editor.Exec = constants.DefaultEditor
	}
	if ws.Preview.MaxCacheMB <= 0 {
		ws.Preview.MaxCacheMB = constants.DefaultPreviewCacheMB
	}
	if ws.Preview.MaxFileKB <= 0 {
		ws.Preview.MaxFileKB = constants.DefaultPreviewFileKB
	}
}

// ActiveWorkspace resolves the current workspace.
func (c *Config) ActiveWorkspace() (*Workspace, error) {
	if c.CurrentWorkspace == "" {
		return nil, fmt.Errorf("no current workspace set")
	}
	ws, ok := c.Workspaces[c.CurrentWorkspace]
	if !ok {
		return nil, fmt.Errorf("workspace %q does not exist", c.CurrentWorkspace)
	}
	return ws, nil
}

// ActivateWorkspace switches the current workspace.
func (c *Config) ActivateWorkspace(name string) error {
	if _, ok := c.Workspaces[name]; !ok {
		return fmt.Errorf("workspace %q does not exist", name)
	}
	c.CurrentWorkspace = name
	return nil
}

// AddWorkspace registers a workspace, activating it when it is the first.
func (c *Config) AddWorkspace(name string, ws *Workspace) {
	ws.applyDefaults()
	if c.Workspaces == nil {
		c.Workspaces = make(map[string]*Workspace)
	}
	c.Workspaces[name] = ws
	if c.CurrentWorkspace == "" {
		c.CurrentWorkspace = name
	}
}

// RemoveWorkspace deletes a workspace. The active workspace cannot be
// removed; switch away first.
func (c *Config) RemoveWorkspace(name string) error {
	if _, ok := c.Workspaces[name]; !ok {
		return fmt.Errorf("workspace %q does not exist", name)
	}
	if name == c.CurrentWorkspace {
		return fmt.Errorf("cannot remove the active workspace %q", name)
	}
	delete(c.Workspaces, name)
	return nil
}

// WorkspaceNames returns the configured workspace names, sorted.
func (c *Config) WorkspaceNames() []string {
	names := make([]string, 0, len(c.Workspaces))
	for name := range c.Workspaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Save writes the config back to disk, creating the directory when needed.
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config has no backing path")
	}

	content, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	if err := os.WriteFile(c.path, content, 0o644); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	return nil
}
