// Package projectconfig provides the ProjectConfig struct and loader for
// .parley.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values for project configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultNotebooksDir = "notebooks/"
	DefaultKnowledgeDir = "knowledge/"
	DefaultPersonasDir  = "personas/"

	DefaultBaseURL             = "https://api.openai.com"
	DefaultModel               = "gpt-4o-mini"
	DefaultTurnMaxTokens       = 200
	DefaultReflectionMaxTokens = 4000
	DefaultTemperature         = 0.7

	DefaultNotebookThreshold = 4
	DefaultRefreshRetries    = 2

	DefaultServerPort = 3000
)

// PathsConfig holds directory paths for notebooks, knowledge, and personas.
type PathsConfig struct {
	Notebooks string `yaml:"notebooks,omitempty"`
	Knowledge string `yaml:"knowledge,omitempty"`
	Personas  string `yaml:"personas,omitempty"`
}

// GatewayConfig holds model provider settings. The API key is deliberately
// not part of the file; it comes from the environment only.
type GatewayConfig struct {
	BaseURL             string  `yaml:"base_url,omitempty"`
	Model               string  `yaml:"model,omitempty"`
	TurnMaxTokens       int     `yaml:"turn_max_tokens,omitempty"`
	ReflectionMaxTokens int     `yaml:"reflection_max_tokens,omitempty"`
	Temperature         float64 `yaml:"temperature,omitempty"`
}

// NotebookConfig holds refresh policy settings.
type NotebookConfig struct {
	Threshold int  `yaml:"threshold,omitempty"`
	Retries   *int `yaml:"retries,omitempty"`
}

// ServerConfig holds web API server settings.
type ServerConfig struct {
	Port int `yaml:"port,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .parley.yaml.
type ProjectConfig struct {
	Paths    PathsConfig    `yaml:"paths,omitempty"`
	Gateway  GatewayConfig  `yaml:"gateway,omitempty"`
	Notebook NotebookConfig `yaml:"notebook,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	retries := DefaultRefreshRetries
	return &ProjectConfig{
		Paths: PathsConfig{
			Notebooks: DefaultNotebooksDir,
			Knowledge: DefaultKnowledgeDir,
			Personas:  DefaultPersonasDir,
		},
		Gateway: GatewayConfig{
			BaseURL:             DefaultBaseURL,
			Model:               DefaultModel,
			TurnMaxTokens:       DefaultTurnMaxTokens,
			ReflectionMaxTokens: DefaultReflectionMaxTokens,
			Temperature:         DefaultTemperature,
		},
		Notebook: NotebookConfig{
			Threshold: DefaultNotebookThreshold,
			Retries:   &retries,
		},
		Server: ServerConfig{
			Port: DefaultServerPort,
		},
	}
}

// Load finds .parley.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading .parley.yaml: %w", err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing .parley.yaml: %w", err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .parley.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".parley.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Paths
	if src.Paths.Notebooks != "" {
		dst.Paths.Notebooks = src.Paths.Notebooks
	}
	if src.Paths.Knowledge != "" {
		dst.Paths.Knowledge = src.Paths.Knowledge
	}
	if src.Paths.Personas != "" {
		dst.Paths.Personas = src.Paths.Personas
	}

	// Gateway
	if src.Gateway.BaseURL != "" {
		dst.Gateway.BaseURL = src.Gateway.BaseURL
	}
	if src.Gateway.Model != "" {
		dst.Gateway.Model = src.Gateway.Model
	}
	if src.Gateway.TurnMaxTokens != 0 {
		dst.Gateway.TurnMaxTokens = src.Gateway.TurnMaxTokens
	}
	if src.Gateway.ReflectionMaxTokens != 0 {
		dst.Gateway.ReflectionMaxTokens = src.Gateway.ReflectionMaxTokens
	}
	if src.Gateway.Temperature != 0 {
		dst.Gateway.Temperature = src.Gateway.Temperature
	}

	// Notebook
	if src.Notebook.Threshold != 0 {
		dst.Notebook.Threshold = src.Notebook.Threshold
	}
	if src.Notebook.Retries != nil {
		dst.Notebook.Retries = src.Notebook.Retries
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
}
