package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	apperrors "git.home.luguber.info/inful/gowork/internal/errors"
)

// FileName is the project configuration file gowork looks for.
const FileName = "gowork.yaml"

// Config represents the project configuration
type Config struct {
	// ImportPath is the logical import path the project must appear at
	// inside the workspace source root (e.g. "example.org/proj").
	ImportPath string `yaml:"import_path"`

	// PackageDir is the directory under the project root holding library
	// packages, relative to the project root.
	PackageDir string `yaml:"package_dir,omitempty"`

	// CommandsDir is the directory whose subdirectories each build one binary.
	CommandsDir string `yaml:"commands_dir,omitempty"`

	// SourceSuffix selects the files discovery counts as compilable source.
	SourceSuffix string `yaml:"source_suffix,omitempty"`

	Tools ToolsConfig  `yaml:"tools,omitempty"`
	Lint  LintConfig   `yaml:"lint,omitempty"`
	Watch WatchConfig  `yaml:"watch,omitempty"`
	Stamp *StampConfig `yaml:"stamp,omitempty"`

	// projectRoot is the directory containing the configuration file.
	// Not serialized; set by Load or Default.
	projectRoot string
}

// ToolsConfig names the external executables gowork drives.
type ToolsConfig struct {
	Go     string   `yaml:"go,omitempty"`
	Fmt    string   `yaml:"fmt,omitempty"`
	Lint   string   `yaml:"lint,omitempty"`
	Vendor []string `yaml:"vendor,omitempty"` // full argv for the dependency tool
	Direct []string `yaml:"direct,omitempty"` // first-token names forwarded unparsed
}

// LintConfig holds linter invocation settings.
type LintConfig struct {
	MinConfidence float64 `yaml:"min_confidence,omitempty"`
}

// WatchConfig holds watch-mode settings.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms,omitempty"`
}

// StampConfig names the package whose version variables binary builds stamp
// via -ldflags -X.
type StampConfig struct {
	Package string `yaml:"package"`
}

// ProjectRoot returns the directory containing the configuration file.
func (c *Config) ProjectRoot() string { return c.projectRoot }

// Load loads configuration from the specified file. Environment variables in
// the YAML content are expanded after .env files are loaded.
func Load(configPath string) (*Config, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	loadEnvFiles(filepath.Dir(absPath))

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil, apperrors.ConfigNotFound(absPath)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expandedData := os.ExpandEnv(string(data))

	config := Default(filepath.Dir(absPath))
	if err := yaml.Unmarshal([]byte(expandedData), config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Locate searches for the configuration file starting at startDir and walking
// upward. Returns the empty string when no configuration file exists.
func Locate(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
