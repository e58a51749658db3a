// Package config provides configuration loading from asgen.toml files.
// It implements the ConfigLoader interface for reading generator configuration.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/iainlane/appstream-generator/internal/core/entities"
)

// Loader implements the ConfigLoader interface for TOML configuration
// files, applying the precedence chain: project-local asgen.toml overrides
// the global config file, which overrides built-in defaults. Loader only
// knows about the file tiers; flags and environment variables are not
// applied to the configuration it returns.
type Loader struct {
	globalConfigPath string
}

// NewLoader creates a config loader rooted at globalConfigPath (the
// resolved XDG config file path, e.g. from XDGPathResolver.ConfigFile()).
// A nil/empty path disables global-config lookup.
func NewLoader(globalConfigPath *string) *Loader {
	path := ""
	if globalConfigPath != nil {
		path = *globalConfigPath
	}
	return &Loader{globalConfigPath: path}
}

// tomlConfig mirrors asgen.toml's on-disk shape.
type tomlConfig struct {
	WorkspaceDir  string         `toml:"workspace_dir"`
	ProjectName   string         `toml:"project_name"`
	HTMLBaseUrl   string         `toml:"html_base_url"`
	FormatVersion *int           `toml:"format_version"`
	TmpDir        string         `toml:"tmp_dir"`
	MaxWorkers    *int           `toml:"max_workers"`
	Suites        []suiteSection `toml:"suites"`
}

type suiteSection struct {
	Name          string   `toml:"name"`
	Sections      []string `toml:"sections"`
	Architectures []string `toml:"architectures"`
}

// Load resolves defaults, then the global config file, then the
// project-local asgen.toml, each tier overriding the previous one only for
// the fields it sets.
func (l *Loader) Load(ctx context.Context, projectRoot string) (*entities.GeneratorConfig, error) {
	cfg := entities.DefaultGeneratorConfig()

	if l.globalConfigPath != "" {
		if _, err := os.Stat(l.globalConfigPath); err == nil {
			if err := l.loadFromFile(l.globalConfigPath, cfg); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	projectConfigPath := filepath.Join(projectRoot, "asgen.toml")
	if _, err := os.Stat(projectConfigPath); err == nil {
		if err := l.loadFromFile(projectConfigPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load project config: %w", err)
		}
	}

	return cfg, nil
}

func (l *Loader) loadFromFile(path string, cfg *entities.GeneratorConfig) error {
	var tc tomlConfig
	if _, err := toml.DecodeFile(path, &tc); err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}

	if tc.WorkspaceDir != "" {
		cfg.WorkspaceDir = tc.WorkspaceDir
	}
	if tc.ProjectName != "" {
		cfg.ProjectName = tc.ProjectName
	}
	if tc.HTMLBaseUrl != "" {
		cfg.HTMLBaseUrl = tc.HTMLBaseUrl
	}
	if tc.FormatVersion != nil {
		cfg.FormatVersion = *tc.FormatVersion
	}
	if tc.TmpDir != "" {
		cfg.TmpDir = tc.TmpDir
	}
	if tc.MaxWorkers != nil {
		cfg.MaxWorkers = *tc.MaxWorkers
	}
	if len(tc.Suites) > 0 {
		suites := make([]entities.SuiteConfig, 0, len(tc.Suites))
		for _, s := range tc.Suites {
			suites = append(suites, entities.SuiteConfig{
				Name:          s.Name,
				Sections:      s.Sections,
				Architectures: s.Architectures,
			})
		}
		cfg.Suites = suites
	}

	return nil
}

// Save persists cfg to asgen.toml under projectRoot.
func (l *Loader) Save(ctx context.Context, projectRoot string, cfg *entities.GeneratorConfig) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	tc := tomlConfig{
		WorkspaceDir:  cfg.WorkspaceDir,
		ProjectName:   cfg.ProjectName,
		HTMLBaseUrl:   cfg.HTMLBaseUrl,
		FormatVersion: &cfg.FormatVersion,
		TmpDir:        cfg.TmpDir,
		MaxWorkers:    &cfg.MaxWorkers,
	}
	for _, s := range cfg.Suites {
		tc.Suites = append(tc.Suites, suiteSection{
			Name:          s.Name,
			Sections:      s.Sections,
			Architectures: s.Architectures,
		})
	}

	if err := os.MkdirAll(projectRoot, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	configPath := filepath.Join(projectRoot, "asgen.toml")
	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	f.WriteString("# appstream-generator project configuration\n")
	f.WriteString("# See https://github.com/iainlane/appstream-generator for documentation\n\n")

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(tc); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
